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
	"github.com/jeremyhahn/go-keyset/pkg/primitiveset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// wrappedSigner signs with the primary entry of a frozen primitive set and
// prepends the primary's wire prefix to the signature.
type wrappedSigner struct {
	set *primitiveset.Set[types.Signer]
}

// NewSigner builds a types.Signer that signs with the primary key of
// handle's keyset.
func NewSigner(reg *registry.Registry, handle *keyset.Handle) (types.Signer, error) {
	return NewSignerWithKeyManager(reg, handle, nil)
}

// NewSignerWithKeyManager is like NewSigner but resolves primitives for key
// types supported by custom through custom instead of the registry.
func NewSignerWithKeyManager(reg *registry.Registry, handle *keyset.Handle, custom types.KeyManager) (types.Signer, error) {
	set, err := keyset.PrimitivesWithKeyManager[types.Signer](reg, handle, custom)
	if err != nil {
		return nil, err
	}
	if set.Primary() == nil {
		return nil, types.ErrNoPrimaryKey
	}
	return &wrappedSigner{set: set}, nil
}

// Sign computes a signature over data with the primary key's primitive and
// prepends the primary's wire prefix, so verification can dispatch directly
// to the producing key.
func (w *wrappedSigner) Sign(data []byte) ([]byte, error) {
	primary := w.set.Primary()
	sig, err := primary.Primitive.Sign(data)
	metrics.RecordOperation(metrics.OpSign, err)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(primary.Prefix)+len(sig))
	out = append(out, primary.Prefix...)
	return append(out, sig...), nil
}
