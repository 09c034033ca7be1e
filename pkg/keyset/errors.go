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

import "errors"

var (
	// ErrEmptyKeyset is returned when a keyset contains no keys.
	ErrEmptyKeyset = errors.New("keyset: keyset must contain at least one key")

	// ErrDuplicateKeyID is returned when two keys in a keyset share an id.
	ErrDuplicateKeyID = errors.New("keyset: duplicate key id")

	// ErrMissingTypeID is returned when a key carries an empty type
	// identifier.
	ErrMissingTypeID = errors.New("keyset: key has empty type identifier")

	// ErrPrimaryNotFound is returned when the primary key id does not match
	// any key in the keyset.
	ErrPrimaryNotFound = errors.New("keyset: primary key id not found in keyset")

	// ErrPrimaryNotEnabled is returned when the primary key id references a
	// key whose status is not enabled.
	ErrPrimaryNotEnabled = errors.New("keyset: primary key is not enabled")

	// ErrKeyNotFound is returned by keyset manager operations that reference
	// an id with no matching key.
	ErrKeyNotFound = errors.New("keyset: key not found")

	// ErrPrimaryKey is returned when disabling or destroying the current
	// primary key. Promote another key first.
	ErrPrimaryKey = errors.New("keyset: operation not permitted on the primary key")

	// ErrKeyDestroyed is returned when enabling or promoting a key whose
	// material has been destroyed.
	ErrKeyDestroyed = errors.New("keyset: key material has been destroyed")

	// ErrInvalidPrefixType is returned when a template carries an
	// unrecognized output prefix type.
	ErrInvalidPrefixType = errors.New("keyset: invalid output prefix type")

	// ErrWrongPrimitiveType is returned when an instantiated primitive does
	// not implement the capability interface the caller requested.
	ErrWrongPrimitiveType = errors.New("keyset: primitive does not implement the requested capability")
)
