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

package aead

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/types"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// ChaCha20Poly1305TypeID identifies ChaCha20-Poly1305 keys.
	ChaCha20Poly1305TypeID = "go-keyset/chacha20-poly1305"

	// XChaCha20Poly1305TypeID identifies XChaCha20-Poly1305 keys, which use
	// an extended 24-byte nonce suitable for random nonce generation.
	XChaCha20Poly1305TypeID = "go-keyset/xchacha20-poly1305"

	// chaChaVersion is the current ChaCha key record version.
	chaChaVersion = 0
)

// chaChaKey is the serialized key record shared by both ChaCha variants.
type chaChaKey struct {
	Version  uint32 `json:"version"`
	KeyValue []byte `json:"key_value"`
}

// ChaCha20Poly1305KeyManager generates ChaCha20-Poly1305 keys and
// instantiates types.AEAD primitives from them. The xVariant field selects
// XChaCha20-Poly1305 with its extended nonce.
type ChaCha20Poly1305KeyManager struct {
	xVariant bool
}

// NewChaCha20Poly1305KeyManager creates a ChaCha20-Poly1305 key manager.
func NewChaCha20Poly1305KeyManager() *ChaCha20Poly1305KeyManager {
	return &ChaCha20Poly1305KeyManager{}
}

// NewXChaCha20Poly1305KeyManager creates an XChaCha20-Poly1305 key manager.
func NewXChaCha20Poly1305KeyManager() *ChaCha20Poly1305KeyManager {
	return &ChaCha20Poly1305KeyManager{xVariant: true}
}

// Primitive constructs a types.AEAD backed by the serialized key material.
func (km *ChaCha20Poly1305KeyManager) Primitive(serializedKey []byte) (any, error) {
	var key chaChaKey
	if err := json.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyMaterial, err)
	}
	if key.Version > chaChaVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			types.ErrInvalidKeyMaterial, key.Version, chaChaVersion)
	}
	if len(key.KeyValue) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d",
			types.ErrInvalidKeyMaterial, chacha20poly1305.KeySize, len(key.KeyValue))
	}

	var (
		aead cipher.AEAD
		err  error
	)
	if km.xVariant {
		aead, err = chacha20poly1305.NewX(key.KeyValue)
	} else {
		aead, err = chacha20poly1305.New(key.KeyValue)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}
	return &chaCha{aead: aead}, nil
}

// TypeID returns the key type identifier for this manager's variant.
func (km *ChaCha20Poly1305KeyManager) TypeID() string {
	if km.xVariant {
		return XChaCha20Poly1305TypeID
	}
	return ChaCha20Poly1305TypeID
}

// Version returns the manager version.
func (km *ChaCha20Poly1305KeyManager) Version() uint32 {
	return chaChaVersion
}

// KeyFactory returns the key factory for this manager's variant.
func (km *ChaCha20Poly1305KeyManager) KeyFactory() types.KeyFactory {
	return chaChaKeyFactory{typeID: km.TypeID()}
}

// DoesSupport reports whether this manager handles typeID.
func (km *ChaCha20Poly1305KeyManager) DoesSupport(typeID string) bool {
	return typeID == km.TypeID()
}

type chaChaKeyFactory struct {
	typeID string
}

// NewKey generates a fresh 256-bit ChaCha key in serialized form. Both
// variants take no format parameters; serializedFormat may be empty.
func (chaChaKeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	if len(serializedFormat) > 0 {
		var format struct{}
		if err := json.Unmarshal(serializedFormat, &format); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyFormat, err)
		}
	}
	material := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate ChaCha key: %w", err)
	}
	return json.Marshal(chaChaKey{
		Version:  chaChaVersion,
		KeyValue: material,
	})
}

// NewKeyData generates a fresh ChaCha key wrapped in a KeyData record.
func (f chaChaKeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	serializedKey, err := f.NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	return &types.KeyData{
		TypeID: f.typeID,
		Value:  serializedKey,
		Kind:   types.MaterialSymmetric,
	}, nil
}

// chaCha is a types.AEAD over either ChaCha variant with a random nonce
// prepended to the ciphertext.
type chaCha struct {
	aead cipher.AEAD
}

// Encrypt seals plaintext with a fresh random nonce. Output layout is
// nonce || ciphertext+tag.
func (c *chaCha) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

// Decrypt opens nonce || ciphertext+tag produced by Encrypt.
func (c *chaCha) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < c.aead.NonceSize() {
		return nil, types.ErrAuthenticationFailed
	}
	nonce := ciphertext[:c.aead.NonceSize()]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext[c.aead.NonceSize():], associatedData)
	if err != nil {
		return nil, types.ErrAuthenticationFailed
	}
	return plaintext, nil
}
