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

// Package types defines the shared data model and capability contracts for
// go-keyset: key records, keysets, key templates, the status and output-prefix
// enumerations, and the interfaces implemented by key managers and by the
// cryptographic primitives they produce.
package types

import "strings"

// KeyStatus represents the lifecycle state of a key within a keyset.
type KeyStatus string

const (
	// StatusEnabled marks a key as active. Enabled keys participate in
	// primitive construction and consumption dispatch.
	StatusEnabled KeyStatus = "enabled"

	// StatusDisabled marks a key as temporarily inactive. Disabled keys
	// remain in the keyset but never appear in a built primitive set.
	StatusDisabled KeyStatus = "disabled"

	// StatusDestroyed marks a key whose material has been removed. The key
	// record is retained so its id is never reused.
	StatusDestroyed KeyStatus = "destroyed"

	// StatusUnknown is the zero value for unrecognized statuses.
	StatusUnknown KeyStatus = "unknown"
)

// String returns the string representation of the KeyStatus.
func (s KeyStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the recognized lifecycle states.
func (s KeyStatus) IsValid() bool {
	switch s {
	case StatusEnabled, StatusDisabled, StatusDestroyed:
		return true
	default:
		return false
	}
}

// ParseKeyStatus parses a string into a KeyStatus, returning StatusUnknown
// for unrecognized values. Parsing is case-insensitive and trims whitespace.
func ParseKeyStatus(s string) KeyStatus {
	switch KeyStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusEnabled:
		return StatusEnabled
	case StatusDisabled:
		return StatusDisabled
	case StatusDestroyed:
		return StatusDestroyed
	default:
		return StatusUnknown
	}
}

// OutputPrefixType determines the self-describing wire prefix prepended to a
// primitive's output. Non-raw prefixes are 5 bytes: a fixed tag byte followed
// by the big-endian key id, which lets consumption dispatch directly to the
// producing key. Raw output carries no prefix and requires a linear scan.
type OutputPrefixType string

const (
	// PrefixTypeTink is the standard 5-byte prefix (tag byte 0x01).
	PrefixTypeTink OutputPrefixType = "tink"

	// PrefixTypeLegacy is the 5-byte prefix with the legacy tag byte 0x00.
	PrefixTypeLegacy OutputPrefixType = "legacy"

	// PrefixTypeCrunchy is the 5-byte prefix with tag byte 0x00, retained
	// for interoperability with ciphertexts produced by older systems.
	PrefixTypeCrunchy OutputPrefixType = "crunchy"

	// PrefixTypeRaw produces output with no prefix at all.
	PrefixTypeRaw OutputPrefixType = "raw"

	// PrefixTypeUnknown is the zero value for unrecognized prefix types.
	PrefixTypeUnknown OutputPrefixType = "unknown"
)

// String returns the string representation of the OutputPrefixType.
func (p OutputPrefixType) String() string {
	return string(p)
}

// IsValid returns true if the prefix type is one of the recognized values.
func (p OutputPrefixType) IsValid() bool {
	switch p {
	case PrefixTypeTink, PrefixTypeLegacy, PrefixTypeCrunchy, PrefixTypeRaw:
		return true
	default:
		return false
	}
}

// ParseOutputPrefixType parses a string into an OutputPrefixType, returning
// PrefixTypeUnknown for unrecognized values.
func ParseOutputPrefixType(s string) OutputPrefixType {
	switch OutputPrefixType(strings.ToLower(strings.TrimSpace(s))) {
	case PrefixTypeTink:
		return PrefixTypeTink
	case PrefixTypeLegacy:
		return PrefixTypeLegacy
	case PrefixTypeCrunchy:
		return PrefixTypeCrunchy
	case PrefixTypeRaw:
		return PrefixTypeRaw
	default:
		return PrefixTypeUnknown
	}
}

// MaterialKind classifies the key material carried by a KeyData record.
type MaterialKind string

const (
	// MaterialSymmetric is secret symmetric key material.
	MaterialSymmetric MaterialKind = "symmetric"

	// MaterialAsymmetricPrivate is the private half of an asymmetric key pair.
	MaterialAsymmetricPrivate MaterialKind = "asymmetric-private"

	// MaterialAsymmetricPublic is the public half of an asymmetric key pair.
	MaterialAsymmetricPublic MaterialKind = "asymmetric-public"

	// MaterialRemote is a reference to key material held by an external
	// system; the value identifies the remote key rather than containing it.
	MaterialRemote MaterialKind = "remote"

	// MaterialUnknown is the zero value for unrecognized kinds.
	MaterialUnknown MaterialKind = "unknown"
)

// String returns the string representation of the MaterialKind.
func (m MaterialKind) String() string {
	return string(m)
}

// KeyData carries serialized key material together with the type identifier
// that selects the KeyManager able to interpret it. The encoding of Value is
// private to that manager.
type KeyData struct {
	// TypeID identifies the key type and selects the responsible KeyManager.
	TypeID string `json:"type_id"`

	// Value is the serialized key material.
	Value []byte `json:"value"`

	// Kind classifies the material (symmetric, private, public, remote).
	Kind MaterialKind `json:"kind"`
}

// Key is a single key record within a keyset.
type Key struct {
	// ID uniquely identifies the key within its keyset.
	ID uint32 `json:"id"`

	// Status is the key's lifecycle state.
	Status KeyStatus `json:"status"`

	// PrefixType determines the wire prefix for output produced by this key.
	PrefixType OutputPrefixType `json:"prefix_type"`

	// Data holds the key material and its type identifier.
	Data KeyData `json:"data"`
}

// Keyset is an ordered collection of keys with one designated primary. The
// order is significant: primitives are instantiated in keyset order so that
// consumption dispatch within a shared prefix bucket stays deterministic
// across rotations.
type Keyset struct {
	// PrimaryKeyID is the id of the key used for all production operations.
	PrimaryKeyID uint32 `json:"primary_key_id"`

	// Keys is the ordered key list.
	Keys []Key `json:"keys"`
}

// Template describes how to generate a new key: which key type, the
// type-specific serialized format parameters, and the output prefix the
// resulting key should use.
type Template struct {
	// TypeID selects the KeyManager that generates the key.
	TypeID string `json:"type_id"`

	// Format is the serialized, type-specific generation parameters.
	Format []byte `json:"format"`

	// PrefixType is the output prefix type assigned to generated keys.
	PrefixType OutputPrefixType `json:"prefix_type"`
}

// KeyInfo is material-free metadata about one key, safe to log and expose.
type KeyInfo struct {
	ID         uint32           `json:"id"`
	Status     KeyStatus        `json:"status"`
	PrefixType OutputPrefixType `json:"prefix_type"`
	TypeID     string           `json:"type_id"`
}

// KeysetInfo is material-free metadata about a keyset.
type KeysetInfo struct {
	PrimaryKeyID uint32    `json:"primary_key_id"`
	Keys         []KeyInfo `json:"keys"`
}
