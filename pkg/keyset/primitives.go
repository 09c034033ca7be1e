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

package keyset

import (
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/primitiveset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// Primitives builds a frozen primitive set from the handle's enabled keys,
// resolving one primitive per key through the registry's current managers.
// See PrimitivesWithKeyManager.
func Primitives[P any](reg *registry.Registry, h *Handle) (*primitiveset.Set[P], error) {
	return PrimitivesWithKeyManager[P](reg, h, nil)
}

// PrimitivesWithKeyManager builds a frozen primitive set from the handle's
// enabled keys. For each key, the primitive is instantiated by custom when
// custom is non-nil and declares support for the key's type, and by the
// registry otherwise. Keys are processed in keyset order so that consumption
// dispatch within a shared prefix bucket stays deterministic across
// rotations. The entry whose key id equals the keyset's primary id becomes
// the set's primary.
//
// The keyset is validated first; a set is never built without a valid
// enabled primary. Every instantiated primitive must implement P, the
// capability interface the caller dispatches through.
//
// The build performs one registry lookup per enabled key. A build that races
// a concurrent registration may observe a mix of pre- and post-registration
// state across keys; each individual lookup is atomic.
func PrimitivesWithKeyManager[P any](reg *registry.Registry, h *Handle, custom types.KeyManager) (*primitiveset.Set[P], error) {
	if h == nil {
		return nil, ErrEmptyKeyset
	}
	if err := Validate(h.ks); err != nil {
		return nil, err
	}

	set := primitiveset.New[P]()
	for i := range h.ks.Keys {
		key := &h.ks.Keys[i]
		if key.Status != types.StatusEnabled {
			continue
		}

		var (
			raw any
			err error
		)
		if custom != nil && custom.DoesSupport(key.Data.TypeID) {
			raw, err = custom.Primitive(key.Data.Value)
		} else {
			raw, err = reg.Primitive(key.Data.TypeID, key.Data.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate primitive for key %d: %w", key.ID, err)
		}

		primitive, ok := raw.(P)
		if !ok {
			return nil, fmt.Errorf("%w: key %d yielded %T", ErrWrongPrimitiveType, key.ID, raw)
		}

		entry, err := set.Add(primitive, key)
		if err != nil {
			return nil, err
		}
		if key.ID == h.ks.PrimaryKeyID {
			if err := set.SetPrimary(entry); err != nil {
				return nil, err
			}
		}
	}

	set.Freeze()
	return set, nil
}
