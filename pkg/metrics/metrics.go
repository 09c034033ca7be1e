// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for go-keyset
// operations. It exposes counters for primitive construction and for the
// production/consumption paths of the capability wrappers, enabling
// monitoring of key rotation health (e.g. a climbing raw-scan counter after
// a rotation points at ciphertexts produced before prefixed keys existed).
//
// Collection is disabled by default so library consumers that do not run a
// Prometheus endpoint pay only an atomic load per operation. Call Enable to
// turn recording on.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all keyset metrics
	Namespace = "keyset"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelKeyType   = "key_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpEncrypt     = "encrypt"
	OpDecrypt     = "decrypt"
	OpComputeMAC  = "compute_mac"
	OpVerifyMAC   = "verify_mac"
	OpSign        = "sign"
	OpVerify      = "verify"
	OpGenerateKey = "generate_key"
	OpRotate      = "rotate"
)

var (
	// OperationsTotal tracks primitive operations by operation name and
	// outcome. Use RecordOperation to increment it.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of keyset primitive operations by operation and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// KeysGeneratedTotal counts new keys generated through the registry,
	// labeled by key type identifier.
	KeysGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "keys_generated_total",
			Help:      "Total number of keys generated through the registry by key type",
		},
		[]string{LabelKeyType},
	)

	// RawScanTotal counts consumption operations that fell through to the
	// raw-entry linear scan after the prefixed dispatch found no match.
	RawScanTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "raw_scan_total",
			Help:      "Total number of consumption operations dispatched to the raw-entry scan",
		},
	)

	enabled atomic.Bool
)

// Enable turns metric recording on.
func Enable() {
	enabled.Store(true)
}

// Disable turns metric recording off.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns true if metric recording is on.
func IsEnabled() bool {
	return enabled.Load()
}

// RecordOperation increments OperationsTotal for the given operation name
// with StatusSuccess or StatusError depending on err.
func RecordOperation(operation string, err error) {
	if !IsEnabled() {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordKeyGenerated increments KeysGeneratedTotal for the given key type.
func RecordKeyGenerated(typeID string) {
	if !IsEnabled() {
		return
	}
	KeysGeneratedTotal.WithLabelValues(typeID).Inc()
}

// RecordRawScan increments RawScanTotal.
func RecordRawScan() {
	if !IsEnabled() {
		return
	}
	RawScanTotal.Inc()
}
