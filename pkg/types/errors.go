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

import "errors"

var (
	// ErrAuthenticationFailed is the single generic error returned when a
	// consumption operation (decrypt, MAC verify, signature verify) rejects
	// its input. It deliberately carries no information about which key,
	// entry, or dispatch step failed; disclosing that would hand an attacker
	// a padding-oracle-style side channel.
	ErrAuthenticationFailed = errors.New("types: authentication failed")

	// ErrNoPrimaryKey is returned when a capability wrapper is constructed
	// over a primitive set that has no primary entry.
	ErrNoPrimaryKey = errors.New("types: keyset has no primary key")

	// ErrInvalidKeyFormat is returned by key factories when the serialized
	// format parameters are malformed or request unsupported parameters.
	ErrInvalidKeyFormat = errors.New("types: invalid key format")

	// ErrInvalidKeyMaterial is returned by key managers when serialized key
	// material cannot be decoded or fails the manager's sanity checks.
	ErrInvalidKeyMaterial = errors.New("types: invalid key material")
)
