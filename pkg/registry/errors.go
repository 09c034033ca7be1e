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

package registry

import "errors"

var (
	// ErrNilKeyManager is returned when registering a nil key manager.
	ErrNilKeyManager = errors.New("registry: key manager must be non-nil")

	// ErrNilCatalogue is returned when registering a nil catalogue.
	ErrNilCatalogue = errors.New("registry: catalogue must be non-nil")

	// ErrEmptyTypeID is returned when a key type identifier is empty.
	ErrEmptyTypeID = errors.New("registry: key type identifier must be non-empty")

	// ErrKeyManagerConflict is returned when a key type is re-registered
	// with a different key manager implementation, or when re-registration
	// would re-enable key generation that was previously disabled. The
	// existing registration is left untouched.
	ErrKeyManagerConflict = errors.New("registry: key type already registered")

	// ErrCatalogueConflict is returned when a catalogue name is re-registered
	// with a different catalogue implementation.
	ErrCatalogueConflict = errors.New("registry: catalogue already registered")

	// ErrCatalogueNotFound is returned when no catalogue exists for a name.
	ErrCatalogueNotFound = errors.New("registry: catalogue not found")

	// ErrUnknownKeyType is returned when no key manager exists for a key
	// type identifier. This usually means the responsible configuration
	// entry point was never called.
	ErrUnknownKeyType = errors.New("registry: no key manager for key type")

	// ErrNewKeyDisallowed is returned when key generation has been disabled
	// for a key type.
	ErrNewKeyDisallowed = errors.New("registry: key generation not permitted for key type")

	// ErrWrongKeyManagerType is returned when an operation requires a
	// private key manager but the registered manager for the type does not
	// implement that capability.
	ErrWrongKeyManagerType = errors.New("registry: key manager is not a private key manager")
)
