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
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

const (
	// AESGCMTypeID identifies AES-GCM keys.
	AESGCMTypeID = "go-keyset/aes-gcm"

	// aesGCMVersion is the current AES-GCM key record version.
	aesGCMVersion = 0

	// aesGCMNonceSize is the standard 96-bit GCM nonce size.
	aesGCMNonceSize = 12
)

// aesGCMKey is the serialized AES-GCM key record.
type aesGCMKey struct {
	Version  uint32 `json:"version"`
	KeyValue []byte `json:"key_value"`
}

// aesGCMKeyFormat is the serialized generation parameters for AES-GCM keys.
type aesGCMKeyFormat struct {
	KeySize uint32 `json:"key_size"`
}

// AESGCMKeyManager generates AES-GCM keys and instantiates types.AEAD
// primitives from them. Supported key sizes are 16, 24 and 32 bytes.
type AESGCMKeyManager struct{}

// NewAESGCMKeyManager creates an AES-GCM key manager.
func NewAESGCMKeyManager() *AESGCMKeyManager {
	return &AESGCMKeyManager{}
}

// Primitive constructs a types.AEAD backed by the serialized key material.
func (km *AESGCMKeyManager) Primitive(serializedKey []byte) (any, error) {
	var key aesGCMKey
	if err := json.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyMaterial, err)
	}
	if key.Version > aesGCMVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			types.ErrInvalidKeyMaterial, key.Version, aesGCMVersion)
	}
	if err := validAESKeySize(uint32(len(key.KeyValue))); err != nil {
		return nil, err
	}
	return newAESGCM(key.KeyValue)
}

// TypeID returns the AES-GCM key type identifier.
func (km *AESGCMKeyManager) TypeID() string {
	return AESGCMTypeID
}

// Version returns the manager version.
func (km *AESGCMKeyManager) Version() uint32 {
	return aesGCMVersion
}

// KeyFactory returns the AES-GCM key factory.
func (km *AESGCMKeyManager) KeyFactory() types.KeyFactory {
	return aesGCMKeyFactory{}
}

// DoesSupport reports whether this manager handles typeID.
func (km *AESGCMKeyManager) DoesSupport(typeID string) bool {
	return typeID == AESGCMTypeID
}

type aesGCMKeyFactory struct{}

// NewKey generates a fresh AES-GCM key in serialized form.
func (aesGCMKeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	var format aesGCMKeyFormat
	if err := json.Unmarshal(serializedFormat, &format); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyFormat, err)
	}
	if err := validAESKeySize(format.KeySize); err != nil {
		return nil, err
	}
	material := make([]byte, format.KeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}
	return json.Marshal(aesGCMKey{
		Version:  aesGCMVersion,
		KeyValue: material,
	})
}

// NewKeyData generates a fresh AES-GCM key wrapped in a KeyData record.
func (f aesGCMKeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	serializedKey, err := f.NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	return &types.KeyData{
		TypeID: AESGCMTypeID,
		Value:  serializedKey,
		Kind:   types.MaterialSymmetric,
	}, nil
}

// aesGCM is a types.AEAD implementing AES-GCM with a random 96-bit nonce
// prepended to the ciphertext.
type aesGCM struct {
	aead cipher.AEAD
}

func newAESGCM(key []byte) (types.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &aesGCM{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce. Output layout is
// nonce || ciphertext+tag.
func (a *aesGCM) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := make([]byte, aesGCMNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return a.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

// Decrypt opens nonce || ciphertext+tag produced by Encrypt.
func (a *aesGCM) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < aesGCMNonceSize {
		return nil, types.ErrAuthenticationFailed
	}
	nonce := ciphertext[:aesGCMNonceSize]
	plaintext, err := a.aead.Open(nil, nonce, ciphertext[aesGCMNonceSize:], associatedData)
	if err != nil {
		return nil, types.ErrAuthenticationFailed
	}
	return plaintext, nil
}

func validAESKeySize(size uint32) error {
	switch size {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: invalid AES key size %d", types.ErrInvalidKeyFormat, size)
	}
}
