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
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

const (
	// ED25519SignerTypeID identifies Ed25519 private keys.
	ED25519SignerTypeID = "go-keyset/ed25519-signer"

	// ED25519VerifierTypeID identifies Ed25519 public keys.
	ED25519VerifierTypeID = "go-keyset/ed25519-verifier"

	// ed25519Version is the current Ed25519 key record version.
	ed25519Version = 0
)

// ed25519PrivateKey is the serialized Ed25519 private key record. The seed
// is stored rather than the expanded key; the public key is derived on use.
type ed25519PrivateKey struct {
	Version uint32 `json:"version"`
	Seed    []byte `json:"seed"`
}

// ed25519PublicKey is the serialized Ed25519 public key record.
type ed25519PublicKey struct {
	Version  uint32 `json:"version"`
	KeyValue []byte `json:"key_value"`
}

// ED25519SignerKeyManager generates Ed25519 key pairs and instantiates
// types.Signer primitives from the private half. It implements
// types.PrivateKeyManager: the corresponding public key data can be derived
// for distribution to verifiers.
type ED25519SignerKeyManager struct{}

// NewED25519SignerKeyManager creates an Ed25519 signer key manager.
func NewED25519SignerKeyManager() *ED25519SignerKeyManager {
	return &ED25519SignerKeyManager{}
}

// Primitive constructs a types.Signer backed by the serialized private key.
func (km *ED25519SignerKeyManager) Primitive(serializedKey []byte) (any, error) {
	key, err := decodePrivateKey(serializedKey)
	if err != nil {
		return nil, err
	}
	return &ed25519Signer{private: ed25519.NewKeyFromSeed(key.Seed)}, nil
}

// TypeID returns the Ed25519 private key type identifier.
func (km *ED25519SignerKeyManager) TypeID() string {
	return ED25519SignerTypeID
}

// Version returns the manager version.
func (km *ED25519SignerKeyManager) Version() uint32 {
	return ed25519Version
}

// KeyFactory returns the Ed25519 key factory.
func (km *ED25519SignerKeyManager) KeyFactory() types.KeyFactory {
	return ed25519KeyFactory{}
}

// DoesSupport reports whether this manager handles typeID.
func (km *ED25519SignerKeyManager) DoesSupport(typeID string) bool {
	return typeID == ED25519SignerTypeID
}

// PublicKeyData derives the public key record from serialized private key
// material, satisfying types.PrivateKeyManager.
func (km *ED25519SignerKeyManager) PublicKeyData(serializedPrivateKey []byte) (*types.KeyData, error) {
	key, err := decodePrivateKey(serializedPrivateKey)
	if err != nil {
		return nil, err
	}
	private := ed25519.NewKeyFromSeed(key.Seed)
	serializedPublic, err := json.Marshal(ed25519PublicKey{
		Version:  ed25519Version,
		KeyValue: private.Public().(ed25519.PublicKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}
	return &types.KeyData{
		TypeID: ED25519VerifierTypeID,
		Value:  serializedPublic,
		Kind:   types.MaterialAsymmetricPublic,
	}, nil
}

type ed25519KeyFactory struct{}

// NewKey generates a fresh Ed25519 private key in serialized form. Ed25519
// takes no format parameters; serializedFormat may be empty.
func (ed25519KeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	if len(serializedFormat) > 0 {
		var format struct{}
		if err := json.Unmarshal(serializedFormat, &format); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyFormat, err)
		}
	}
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to generate Ed25519 seed: %w", err)
	}
	return json.Marshal(ed25519PrivateKey{
		Version: ed25519Version,
		Seed:    seed,
	})
}

// NewKeyData generates a fresh Ed25519 private key wrapped in a KeyData
// record.
func (f ed25519KeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	serializedKey, err := f.NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	return &types.KeyData{
		TypeID: ED25519SignerTypeID,
		Value:  serializedKey,
		Kind:   types.MaterialAsymmetricPrivate,
	}, nil
}

// ED25519VerifierKeyManager instantiates types.Verifier primitives from
// Ed25519 public keys. Public keys are derived from private keysets, never
// generated directly, so the factory rejects generation requests.
type ED25519VerifierKeyManager struct{}

// NewED25519VerifierKeyManager creates an Ed25519 verifier key manager.
func NewED25519VerifierKeyManager() *ED25519VerifierKeyManager {
	return &ED25519VerifierKeyManager{}
}

// Primitive constructs a types.Verifier backed by the serialized public key.
func (km *ED25519VerifierKeyManager) Primitive(serializedKey []byte) (any, error) {
	var key ed25519PublicKey
	if err := json.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyMaterial, err)
	}
	if key.Version > ed25519Version {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			types.ErrInvalidKeyMaterial, key.Version, ed25519Version)
	}
	if len(key.KeyValue) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			types.ErrInvalidKeyMaterial, ed25519.PublicKeySize, len(key.KeyValue))
	}
	return &ed25519Verifier{public: ed25519.PublicKey(key.KeyValue)}, nil
}

// TypeID returns the Ed25519 public key type identifier.
func (km *ED25519VerifierKeyManager) TypeID() string {
	return ED25519VerifierTypeID
}

// Version returns the manager version.
func (km *ED25519VerifierKeyManager) Version() uint32 {
	return ed25519Version
}

// KeyFactory returns a factory that rejects all generation requests.
func (km *ED25519VerifierKeyManager) KeyFactory() types.KeyFactory {
	return noKeyFactory{}
}

// DoesSupport reports whether this manager handles typeID.
func (km *ED25519VerifierKeyManager) DoesSupport(typeID string) bool {
	return typeID == ED25519VerifierTypeID
}

// noKeyFactory rejects key generation. Verifier keys are derived from
// private keysets, not generated.
type noKeyFactory struct{}

func (noKeyFactory) NewKey(serializedFormat []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: verifier keys cannot be generated", types.ErrInvalidKeyFormat)
}

func (noKeyFactory) NewKeyData(serializedFormat []byte) (*types.KeyData, error) {
	return nil, fmt.Errorf("%w: verifier keys cannot be generated", types.ErrInvalidKeyFormat)
}

// ed25519Signer is a types.Signer over an Ed25519 private key.
type ed25519Signer struct {
	private ed25519.PrivateKey
}

// Sign computes the Ed25519 signature over data.
func (s *ed25519Signer) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.private, data), nil
}

// ed25519Verifier is a types.Verifier over an Ed25519 public key.
type ed25519Verifier struct {
	public ed25519.PublicKey
}

// Verify checks the Ed25519 signature over data.
func (v *ed25519Verifier) Verify(signature, data []byte) error {
	if !ed25519.Verify(v.public, data, signature) {
		return types.ErrAuthenticationFailed
	}
	return nil
}

func decodePrivateKey(serializedKey []byte) (*ed25519PrivateKey, error) {
	var key ed25519PrivateKey
	if err := json.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidKeyMaterial, err)
	}
	if key.Version > ed25519Version {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			types.ErrInvalidKeyMaterial, key.Version, ed25519Version)
	}
	if len(key.Seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d",
			types.ErrInvalidKeyMaterial, ed25519.SeedSize, len(key.Seed))
	}
	return &key, nil
}
