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
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"hash"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

const (
	// HMACTypeID identifies HMAC keys.
	HMACTypeID = "go-keyset/hmac"

	// hmacVersion is the current HMAC key record version.
	hmacVersion = 0

	// minHMACKeySize is the minimum accepted key size in bytes.
	minHMACKeySize = 16

	// minHMACTagSize is the minimum accepted tag size in bytes. Tags
	// shorter than 10 bytes are forgeable by brute force.
	minHMACTagSize = 10
)

// Supported hash names for HMAC keys.
const (
	HashSHA256 = "SHA256"
	HashSHA512 = "SHA512"
)

// hmacKey is the serialized HMAC key record.
type hmacKey struct {
	Version  uint32 `json:"version"`
	Hash     string `json:"hash"`
	TagSize  uint32 `json:"tag_size"`
	KeyValue []byte `json:"key_value"`
}

// hmacKeyFormat is the serialized generation parameters for HMAC keys.
type hmacKeyFormat struct {
	Hash    string `json:"hash"`
	TagSize uint32 `json:"tag_size"`
	KeySize uint32 `json:"key_size"`
}

// HMACKeyManager generates HMAC keys and instantiates types.MAC primitives
// from them. SHA-256 and SHA-512 are supported, with configurable key and
// tag sizes.
type HMACKeyManager struct{}

// NewHMACKeyManager creates an HMAC key manager.
func NewHMACKeyManager() *HMACKeyManager {
	return &HMACKeyManager{}
}

// Primitive constructs a types.MAC backed by the serialized key material.
func (km *HMACKeyManager) Primitive(serializedKey []byte) (any, error) {
	var key hmacKey
	if err := json.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyMaterial, err)
	}
	if key.Version > hmacVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			types.ErrInvalidKeyMaterial, key.Version, hmacVersion)
	}
	newHash, err := hashFactory(key.Hash)
	if err != nil {
		return nil, err
	}
	if err := validHMACSizes(key.Hash, key.TagSize, uint32(len(key.KeyValue))); err != nil {
		return nil, err
	}
	return &hmacMAC{
		newHash: newHash,
		key:     key.KeyValue,
		tagSize: int(key.TagSize),
	}, nil
}

// TypeID returns the HMAC key type identifier.
func (km *HMACKeyManager) TypeID() string {
	return HMACTypeID
}

// Version returns the manager version.
func (km *HMACKeyManager) Version() uint32 {
	return hmacVersion
}

// KeyFactory returns the HMAC key factory.
func (km *HMACKeyManager) KeyFactory() types.KeyFactory {
	return hmacKeyFactory{}
}

// DoesSupport reports whether this manager handles typeID.
func (km *HMACKeyManager) DoesSupport(typeID string) bool {
	return typeID == HMACTypeID
}

type hmacKeyFactory struct{}

// NewKey generates a fresh HMAC key in serialized form.
func (hmacKeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	var format hmacKeyFormat
	if err := json.Unmarshal(serializedFormat, &format); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyFormat, err)
	}
	if _, err := hashFactory(format.Hash); err != nil {
		return nil, err
	}
	if err := validHMACSizes(format.Hash, format.TagSize, format.KeySize); err != nil {
		return nil, err
	}
	material := make([]byte, format.KeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate HMAC key: %w", err)
	}
	return json.Marshal(hmacKey{
		Version:  hmacVersion,
		Hash:     format.Hash,
		TagSize:  format.TagSize,
		KeyValue: material,
	})
}

// NewKeyData generates a fresh HMAC key wrapped in a KeyData record.
func (f hmacKeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	serializedKey, err := f.NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	return &types.KeyData{
		TypeID: HMACTypeID,
		Value:  serializedKey,
		Kind:   types.MaterialSymmetric,
	}, nil
}

// hmacMAC is a types.MAC computing truncated HMAC tags.
type hmacMAC struct {
	newHash func() hash.Hash
	key     []byte
	tagSize int
}

// ComputeMAC computes the truncated HMAC tag over data.
func (h *hmacMAC) ComputeMAC(data []byte) ([]byte, error) {
	mac := hmac.New(h.newHash, h.key)
	mac.Write(data)
	return mac.Sum(nil)[:h.tagSize], nil
}

// VerifyMAC verifies tag against data in constant time.
func (h *hmacMAC) VerifyMAC(tag, data []byte) error {
	expected, err := h.ComputeMAC(data)
	if err != nil {
		return err
	}
	if !hmac.Equal(expected, tag) {
		return types.ErrAuthenticationFailed
	}
	return nil
}

func hashFactory(name string) (func() hash.Hash, error) {
	switch name {
	case HashSHA256:
		return sha256.New, nil
	case HashSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: unsupported hash %q", types.ErrInvalidKeyFormat, name)
	}
}

func validHMACSizes(hashName string, tagSize, keySize uint32) error {
	if keySize < minHMACKeySize {
		return fmt.Errorf("%w: key size %d below minimum %d", types.ErrInvalidKeyFormat, keySize, minHMACKeySize)
	}
	if tagSize < minHMACTagSize {
		return fmt.Errorf("%w: tag size %d below minimum %d", types.ErrInvalidKeyFormat, tagSize, minHMACTagSize)
	}
	var max uint32
	switch hashName {
	case HashSHA256:
		max = sha256.Size
	case HashSHA512:
		max = sha512.Size
	default:
		return fmt.Errorf("%w: unsupported hash %q", types.ErrInvalidKeyFormat, hashName)
	}
	if tagSize > max {
		return fmt.Errorf("%w: tag size %d exceeds %s digest size %d", types.ErrInvalidKeyFormat, tagSize, hashName, max)
	}
	return nil
}
