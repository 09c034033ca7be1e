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

// Package keyset provides validated keysets and the handle, rotation and
// primitive-construction operations built on them. A keyset is an ordered
// collection of keys with one designated primary; a handle is an immutable
// wrapper guaranteeing its keyset passed validation.
package keyset

import (
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// Handle wraps a validated keyset. A Handle is immutable: the wrapped keyset
// passed Validate at construction and is never modified afterwards, so every
// consumer can rely on the presence of an enabled primary. Key material is
// only reachable through the explicit Keyset extraction path; logging a
// Handle or its Info never exposes material.
type Handle struct {
	ks *types.Keyset
}

// FromKeyset validates ks and wraps it in a Handle. The keyset is deep-copied
// so later mutation of ks cannot bypass validation.
func FromKeyset(ks *types.Keyset) (*Handle, error) {
	if err := Validate(ks); err != nil {
		return nil, err
	}
	return &Handle{ks: copyKeyset(ks)}, nil
}

// NewHandle generates a fresh keyset containing a single enabled key built
// from template, with that key as primary.
func NewHandle(reg *registry.Registry, template *types.Template) (*Handle, error) {
	m := NewManager(reg)
	if _, err := m.Rotate(template); err != nil {
		return nil, fmt.Errorf("failed to generate keyset: %w", err)
	}
	return m.Handle()
}

// Keyset returns a deep copy of the wrapped keyset, including key material.
// This is the controlled extraction path; callers own the copy and are
// responsible for protecting the material it contains.
func (h *Handle) Keyset() *types.Keyset {
	return copyKeyset(h.ks)
}

// Info returns material-free metadata about the wrapped keyset.
func (h *Handle) Info() *types.KeysetInfo {
	info := &types.KeysetInfo{
		PrimaryKeyID: h.ks.PrimaryKeyID,
		Keys:         make([]types.KeyInfo, 0, len(h.ks.Keys)),
	}
	for i := range h.ks.Keys {
		key := &h.ks.Keys[i]
		info.Keys = append(info.Keys, types.KeyInfo{
			ID:         key.ID,
			Status:     key.Status,
			PrefixType: key.PrefixType,
			TypeID:     key.Data.TypeID,
		})
	}
	return info
}

// String renders the handle's material-free metadata.
func (h *Handle) String() string {
	info := h.Info()
	return fmt.Sprintf("keyset(primary=%d, keys=%d)", info.PrimaryKeyID, len(info.Keys))
}

func copyKeyset(ks *types.Keyset) *types.Keyset {
	out := &types.Keyset{
		PrimaryKeyID: ks.PrimaryKeyID,
		Keys:         make([]types.Key, len(ks.Keys)),
	}
	copy(out.Keys, ks.Keys)
	for i := range out.Keys {
		if v := out.Keys[i].Data.Value; v != nil {
			out.Keys[i].Data.Value = append([]byte(nil), v...)
		}
	}
	return out
}
