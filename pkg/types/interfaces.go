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

package types

// AEAD provides authenticated encryption with associated data. Implementations
// must authenticate the associated data but not include it in the ciphertext.
type AEAD interface {
	// Encrypt encrypts plaintext, binding associatedData to the ciphertext.
	Encrypt(plaintext, associatedData []byte) ([]byte, error)

	// Decrypt decrypts ciphertext, verifying the authentication tag and the
	// binding to associatedData before returning the plaintext.
	Decrypt(ciphertext, associatedData []byte) ([]byte, error)
}

// MAC computes and verifies message authentication codes.
type MAC interface {
	// ComputeMAC computes an authentication tag for data.
	ComputeMAC(data []byte) ([]byte, error)

	// VerifyMAC verifies that mac is a valid authentication tag for data.
	VerifyMAC(mac, data []byte) error
}

// Signer produces digital signatures with a private key.
type Signer interface {
	// Sign computes a signature over data.
	Sign(data []byte) ([]byte, error)
}

// Verifier verifies digital signatures with a public key.
type Verifier interface {
	// Verify checks that signature is valid for data.
	Verify(signature, data []byte) error
}

// KeyFactory generates new key material for one key type. Factories are
// grouped separately from their KeyManager because key generation is
// independent of the primitive the manager produces.
type KeyFactory interface {
	// NewKey generates fresh key material from the serialized, type-specific
	// format parameters and returns it in the manager's serialized key encoding.
	NewKey(serializedFormat []byte) ([]byte, error)

	// NewKeyData generates fresh key material and wraps it in a KeyData
	// record carrying the factory's type identifier.
	NewKeyData(serializedFormat []byte) (*KeyData, error)
}

// KeyManager understands keys of one specific type: it can instantiate the
// primitive backed by a supported key's material, and exposes a KeyFactory
// that generates new material of that type.
type KeyManager interface {
	// Primitive constructs the primitive instance backed by the given
	// serialized key material.
	Primitive(serializedKey []byte) (any, error)

	// TypeID returns the type identifier of keys handled by this manager.
	TypeID() string

	// Version returns the manager's version. Managers must accept keys
	// produced by all versions up to and including this one.
	Version() uint32

	// KeyFactory returns the factory that generates keys of this type.
	KeyFactory() KeyFactory

	// DoesSupport reports whether this manager handles the given key type.
	DoesSupport(typeID string) bool
}

// PrivateKeyManager is a KeyManager for asymmetric private keys that can
// additionally derive the corresponding public key data. Callers narrow a
// KeyManager to this interface explicitly; managers that do not implement it
// cannot serve public-key derivation.
type PrivateKeyManager interface {
	KeyManager

	// PublicKeyData extracts the public key from serialized private key
	// material and returns it as a KeyData record for the public key type.
	PublicKeyData(serializedPrivateKey []byte) (*KeyData, error)
}

// Catalogue is a named grouping of KeyManagers for one primitive family,
// registered with the registry as a unit.
type Catalogue interface {
	// Primitive returns the primitive family name, e.g. "aead" or "mac".
	Primitive() string

	// KeyManagers returns the managers this catalogue provides, keyed by
	// their type identifiers.
	KeyManagers() map[string]KeyManager
}
