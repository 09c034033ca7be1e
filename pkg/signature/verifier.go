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

package signature

import (
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/prefix"
	"github.com/jeremyhahn/go-keyset/pkg/primitiveset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// wrappedVerifier dispatches signature verification over a frozen primitive
// set: prefixed candidates first, then the raw entries against the full
// signature.
type wrappedVerifier struct {
	set *primitiveset.Set[types.Verifier]
}

// NewVerifier builds a types.Verifier that accepts signatures produced under
// any enabled key of handle's keyset.
func NewVerifier(reg *registry.Registry, handle *keyset.Handle) (types.Verifier, error) {
	return NewVerifierWithKeyManager(reg, handle, nil)
}

// NewVerifierWithKeyManager is like NewVerifier but resolves primitives for
// key types supported by custom through custom instead of the registry.
func NewVerifierWithKeyManager(reg *registry.Registry, handle *keyset.Handle, custom types.KeyManager) (types.Verifier, error) {
	set, err := keyset.PrimitivesWithKeyManager[types.Verifier](reg, handle, custom)
	if err != nil {
		return nil, err
	}
	if set.Primary() == nil {
		return nil, types.ErrNoPrimaryKey
	}
	return &wrappedVerifier{set: set}, nil
}

// Verify checks that signature was produced over data by some enabled key.
// Prefixed candidates are tried first in insertion order, then every raw
// entry against the full signature. Rejection is the single generic
// authentication error.
func (w *wrappedVerifier) Verify(signature, data []byte) error {
	if len(signature) >= prefix.NonRawSize {
		candidate := signature[:prefix.NonRawSize]
		payload := signature[prefix.NonRawSize:]
		for _, entry := range w.set.EntriesForPrefix(candidate) {
			if err := entry.Primitive.Verify(payload, data); err == nil {
				metrics.RecordOperation(metrics.OpVerify, nil)
				return nil
			}
		}
	}

	rawEntries := w.set.RawEntries()
	if len(rawEntries) > 0 {
		metrics.RecordRawScan()
	}
	for _, entry := range rawEntries {
		if err := entry.Primitive.Verify(signature, data); err == nil {
			metrics.RecordOperation(metrics.OpVerify, nil)
			return nil
		}
	}

	metrics.RecordOperation(metrics.OpVerify, types.ErrAuthenticationFailed)
	return types.ErrAuthenticationFailed
}
