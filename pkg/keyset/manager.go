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
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// Manager builds and rotates keysets. It is the mutable companion of Handle:
// keys are added, promoted, disabled and destroyed through a Manager, and a
// validated immutable Handle is extracted once the keyset is in the desired
// state.
//
// Rotation keeps old enabled keys in the keyset so previously produced
// output stays consumable; dispatch is driven by the wire prefix, not by
// which key is currently primary.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	reg *registry.Registry
	ks  *types.Keyset
}

// NewManager creates a Manager over an empty keyset.
func NewManager(reg *registry.Registry) *Manager {
	return &Manager{
		reg: reg,
		ks:  &types.Keyset{},
	}
}

// ManagerFromHandle creates a Manager seeded with a copy of the handle's
// keyset, for rotating an existing keyset.
func ManagerFromHandle(reg *registry.Registry, h *Handle) *Manager {
	return &Manager{
		reg: reg,
		ks:  h.Keyset(),
	}
}

// Add generates a new enabled key from template and appends it to the
// keyset. The new key does not become primary. Returns the new key's id.
func (m *Manager) Add(template *types.Template) (uint32, error) {
	if template == nil {
		return 0, errors.New("keyset: template must be non-nil")
	}
	if !template.PrefixType.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrefixType, template.PrefixType)
	}

	keyData, err := m.reg.NewKeyData(template)
	if err != nil {
		return 0, err
	}

	id, err := m.newKeyID()
	if err != nil {
		return 0, err
	}
	m.ks.Keys = append(m.ks.Keys, types.Key{
		ID:         id,
		Status:     types.StatusEnabled,
		PrefixType: template.PrefixType,
		Data:       *keyData,
	})
	return id, nil
}

// Rotate generates a new enabled key from template and promotes it to
// primary. Existing keys keep their status. Returns the new key's id.
func (m *Manager) Rotate(template *types.Template) (uint32, error) {
	id, err := m.Add(template)
	metrics.RecordOperation(metrics.OpRotate, err)
	if err != nil {
		return 0, err
	}
	m.ks.PrimaryKeyID = id
	return id, nil
}

// SetPrimary promotes the key with the given id to primary. The key must
// exist and be enabled.
func (m *Manager) SetPrimary(id uint32) error {
	key := m.find(id)
	if key == nil {
		return fmt.Errorf("%w: %d", ErrKeyNotFound, id)
	}
	if key.Status != types.StatusEnabled {
		return fmt.Errorf("%w: key %d has status %s", ErrPrimaryNotEnabled, id, key.Status)
	}
	m.ks.PrimaryKeyID = id
	return nil
}

// Enable re-enables a disabled key. Destroyed keys cannot be enabled.
func (m *Manager) Enable(id uint32) error {
	key := m.find(id)
	if key == nil {
		return fmt.Errorf("%w: %d", ErrKeyNotFound, id)
	}
	if key.Status == types.StatusDestroyed {
		return fmt.Errorf("%w: %d", ErrKeyDestroyed, id)
	}
	key.Status = types.StatusEnabled
	return nil
}

// Disable marks a key disabled so it no longer participates in primitive
// construction. The primary key cannot be disabled; promote another key
// first.
func (m *Manager) Disable(id uint32) error {
	if id == m.ks.PrimaryKeyID {
		return fmt.Errorf("%w: disable %d", ErrPrimaryKey, id)
	}
	key := m.find(id)
	if key == nil {
		return fmt.Errorf("%w: %d", ErrKeyNotFound, id)
	}
	if key.Status == types.StatusDestroyed {
		return fmt.Errorf("%w: %d", ErrKeyDestroyed, id)
	}
	key.Status = types.StatusDisabled
	return nil
}

// Destroy erases a key's material and marks it destroyed. The key record and
// its id are retained so the id is never reused. The primary key cannot be
// destroyed.
func (m *Manager) Destroy(id uint32) error {
	if id == m.ks.PrimaryKeyID {
		return fmt.Errorf("%w: destroy %d", ErrPrimaryKey, id)
	}
	key := m.find(id)
	if key == nil {
		return fmt.Errorf("%w: %d", ErrKeyNotFound, id)
	}
	key.Data.Value = nil
	key.Status = types.StatusDestroyed
	return nil
}

// Handle validates the managed keyset and returns an immutable Handle over a
// copy of it. The Manager remains usable afterwards.
func (m *Manager) Handle() (*Handle, error) {
	return FromKeyset(m.ks)
}

// newKeyID draws random ids until one not already present in the keyset is
// found. Ids are uniform random uint32s, excluding zero to keep the zero
// value unambiguous in key records.
func (m *Manager) newKeyID() (uint32, error) {
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("failed to generate key id: %w", err)
		}
		id := binary.BigEndian.Uint32(buf[:])
		if id == 0 {
			continue
		}
		if m.find(id) == nil {
			return id, nil
		}
	}
}

func (m *Manager) find(id uint32) *types.Key {
	for i := range m.ks.Keys {
		if m.ks.Keys[i].ID == id {
			return &m.ks.Keys[i]
		}
	}
	return nil
}
