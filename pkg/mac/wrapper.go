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

package mac

import (
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/prefix"
	"github.com/jeremyhahn/go-keyset/pkg/primitiveset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// wrappedMAC dispatches MAC operations over a frozen primitive set. Tag
// computation always uses the primary entry and prepends its wire prefix;
// verification routes by the tag's prefix and falls back to a scan of the
// raw entries.
type wrappedMAC struct {
	set *primitiveset.Set[types.MAC]
}

// New builds a types.MAC that computes tags with the primary key of handle's
// keyset and verifies tags produced under any enabled key.
func New(reg *registry.Registry, handle *keyset.Handle) (types.MAC, error) {
	return NewWithKeyManager(reg, handle, nil)
}

// NewWithKeyManager is like New but resolves primitives for key types
// supported by custom through custom instead of the registry.
func NewWithKeyManager(reg *registry.Registry, handle *keyset.Handle, custom types.KeyManager) (types.MAC, error) {
	set, err := keyset.PrimitivesWithKeyManager[types.MAC](reg, handle, custom)
	if err != nil {
		return nil, err
	}
	if set.Primary() == nil {
		return nil, types.ErrNoPrimaryKey
	}
	return &wrappedMAC{set: set}, nil
}

// ComputeMAC computes a tag over data with the primary key's primitive and
// prepends the primary's wire prefix.
func (w *wrappedMAC) ComputeMAC(data []byte) ([]byte, error) {
	primary := w.set.Primary()
	tag, err := primary.Primitive.ComputeMAC(data)
	metrics.RecordOperation(metrics.OpComputeMAC, err)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(primary.Prefix)+len(tag))
	out = append(out, primary.Prefix...)
	return append(out, tag...), nil
}

// VerifyMAC verifies that mac authenticates data under some enabled key.
// Prefixed candidates are tried first in insertion order, then every raw
// entry against the full tag. Rejection is the single generic
// authentication error.
func (w *wrappedMAC) VerifyMAC(mac, data []byte) error {
	if len(mac) >= prefix.NonRawSize {
		candidate := mac[:prefix.NonRawSize]
		payload := mac[prefix.NonRawSize:]
		for _, entry := range w.set.EntriesForPrefix(candidate) {
			if err := entry.Primitive.VerifyMAC(payload, data); err == nil {
				metrics.RecordOperation(metrics.OpVerifyMAC, nil)
				return nil
			}
		}
	}

	rawEntries := w.set.RawEntries()
	if len(rawEntries) > 0 {
		metrics.RecordRawScan()
	}
	for _, entry := range rawEntries {
		if err := entry.Primitive.VerifyMAC(mac, data); err == nil {
			metrics.RecordOperation(metrics.OpVerifyMAC, nil)
			return nil
		}
	}

	metrics.RecordOperation(metrics.OpVerifyMAC, types.ErrAuthenticationFailed)
	return types.ErrAuthenticationFailed
}
