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

// Package testutil provides fake key managers and keyset builders shared by
// the package tests. The fake AEAD is deterministic and reversible so tests
// can assert exact dispatch behavior without real cryptography.
package testutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// DummyAEADTypeID is the default key type identifier of the dummy manager.
const DummyAEADTypeID = "go-keyset/dummy-aead"

// DummyAEAD is a fake types.AEAD. Encrypt prepends the Name; Decrypt strips
// it and rejects input that does not start with it, so differently named
// instances reject each other's output.
type DummyAEAD struct {
	Name string
}

// Encrypt prepends the dummy's name to the plaintext.
func (d *DummyAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	out := make([]byte, 0, len(d.Name)+len(plaintext))
	out = append(out, []byte(d.Name)...)
	return append(out, plaintext...), nil
}

// Decrypt strips the dummy's name, failing if it is absent.
func (d *DummyAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if !bytes.HasPrefix(ciphertext, []byte(d.Name)) {
		return nil, errors.New("testutil: dummy decryption failed")
	}
	return append([]byte(nil), ciphertext[len(d.Name):]...), nil
}

// DummyAEADKeyManager resolves DummyAEAD primitives. The primitive's Name is
// the serialized key material itself, so tests fully control dispatch
// outcomes through key values.
type DummyAEADKeyManager struct {
	// TypeIDValue is the key type this manager claims; DummyAEADTypeID
	// when empty.
	TypeIDValue string
}

// Primitive returns a DummyAEAD named after the serialized key material.
func (km *DummyAEADKeyManager) Primitive(serializedKey []byte) (any, error) {
	return &DummyAEAD{Name: string(serializedKey)}, nil
}

// TypeID returns the manager's claimed key type.
func (km *DummyAEADKeyManager) TypeID() string {
	if km.TypeIDValue == "" {
		return DummyAEADTypeID
	}
	return km.TypeIDValue
}

// Version returns 0.
func (km *DummyAEADKeyManager) Version() uint32 {
	return 0
}

// KeyFactory returns a factory whose generated material echoes the format.
func (km *DummyAEADKeyManager) KeyFactory() types.KeyFactory {
	return dummyKeyFactory{typeID: km.TypeID()}
}

// DoesSupport reports whether this manager handles typeID.
func (km *DummyAEADKeyManager) DoesSupport(typeID string) bool {
	return typeID == km.TypeID()
}

type dummyKeyFactory struct {
	typeID string
}

func (f dummyKeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	if serializedFormat == nil {
		return []byte("dummy-key"), nil
	}
	return append([]byte(nil), serializedFormat...), nil
}

func (f dummyKeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	material, err := f.NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	return &types.KeyData{
		TypeID: f.typeID,
		Value:  material,
		Kind:   types.MaterialSymmetric,
	}, nil
}

// FailingKeyManager fails every primitive instantiation, for exercising
// build-time error paths.
type FailingKeyManager struct {
	TypeIDValue string
}

// Primitive always fails.
func (km *FailingKeyManager) Primitive(serializedKey []byte) (any, error) {
	return nil, fmt.Errorf("testutil: primitive construction failed for %s", km.TypeIDValue)
}

// TypeID returns the manager's claimed key type.
func (km *FailingKeyManager) TypeID() string {
	return km.TypeIDValue
}

// Version returns 0.
func (km *FailingKeyManager) Version() uint32 {
	return 0
}

// KeyFactory returns a factory whose generated material echoes the format.
func (km *FailingKeyManager) KeyFactory() types.KeyFactory {
	return dummyKeyFactory{typeID: km.TypeIDValue}
}

// DoesSupport reports whether this manager handles typeID.
func (km *FailingKeyManager) DoesSupport(typeID string) bool {
	return typeID == km.TypeIDValue
}

// NewKey builds a key record with dummy material for tests.
func NewKey(id uint32, status types.KeyStatus, prefixType types.OutputPrefixType, material string) types.Key {
	return NewKeyWithType(id, status, prefixType, DummyAEADTypeID, material)
}

// NewKeyWithType builds a key record with the given type id and material.
func NewKeyWithType(id uint32, status types.KeyStatus, prefixType types.OutputPrefixType, typeID, material string) types.Key {
	return types.Key{
		ID:         id,
		Status:     status,
		PrefixType: prefixType,
		Data: types.KeyData{
			TypeID: typeID,
			Value:  []byte(material),
			Kind:   types.MaterialSymmetric,
		},
	}
}

// NewKeyset builds a keyset from keys with the given primary id.
func NewKeyset(primaryID uint32, keys ...types.Key) *types.Keyset {
	return &types.Keyset{
		PrimaryKeyID: primaryID,
		Keys:         keys,
	}
}
