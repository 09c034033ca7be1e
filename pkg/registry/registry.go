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

// Package registry provides the process-scoped lookup service that maps key
// type identifiers to KeyManagers and names to Catalogues. The registry is
// the only place a key type becomes usable: it is populated once at startup
// by the configuration entry points of each primitive family, and queried
// afterwards to generate keys and instantiate primitives.
//
// A Registry is an explicit object rather than package-level global state, so
// tests and multi-tenant hosts can run isolated registries side by side.
//
// Concurrency: registrations are serialized by a single coarse mutex and are
// monotonic (a key type, once registered, keeps its implementation for the
// process lifetime, and key generation may only be narrowed from allowed to
// disallowed, never widened back). Lookups run lock-free against an atomic
// mapping and may proceed concurrently with registrations; each individual
// lookup observes a complete pre- or post-registration entry, never a torn
// one.
package registry

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-keyset/pkg/logging"
	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// managerEntry pairs a key manager with its newKeyAllowed flag. Entries are
// stored as a unit so a concurrent lookup never observes the manager of one
// registration with the flag of another.
type managerEntry struct {
	manager       types.KeyManager
	newKeyAllowed bool
}

// Registry maps key type identifiers to KeyManagers and case-insensitive
// names to Catalogues. The two namespaces are independent.
type Registry struct {
	mu          sync.Mutex // serializes registrations
	keyManagers sync.Map   // typeID -> *managerEntry
	catalogues  sync.Map   // lowercase name -> types.Catalogue
	logger      *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration warnings.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger: logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterKeyManager registers manager under its type identifier with key
// generation allowed. See RegisterKeyManagerWithOptions.
func (r *Registry) RegisterKeyManager(typeID string, manager types.KeyManager) error {
	return r.RegisterKeyManagerWithOptions(typeID, manager, true)
}

// RegisterKeyManagerWithOptions registers manager under the exact type
// identifier typeID. If the type is already registered, the call succeeds
// as a no-op only when manager is the same implementation type as the
// existing one and newKeyAllowed does not re-enable generation that was
// previously disabled; otherwise it fails and the existing registration is
// left untouched. Narrowing newKeyAllowed from true to false is permitted.
func (r *Registry) RegisterKeyManagerWithOptions(typeID string, manager types.KeyManager, newKeyAllowed bool) error {
	if manager == nil {
		return ErrNilKeyManager
	}
	if typeID == "" {
		return ErrEmptyTypeID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.keyManagers.Load(typeID); ok {
		existing := v.(*managerEntry)
		if reflect.TypeOf(existing.manager) != reflect.TypeOf(manager) {
			r.logger.Warnf("registry: attempted overwrite of key manager for key type %s", typeID)
			return fmt.Errorf("%w: %s is registered with %T, cannot re-register with %T",
				ErrKeyManagerConflict, typeID, existing.manager, manager)
		}
		if !existing.newKeyAllowed && newKeyAllowed {
			r.logger.Warnf("registry: attempted to re-enable key generation for key type %s", typeID)
			return fmt.Errorf("%w: %s cannot re-enable key generation", ErrKeyManagerConflict, typeID)
		}
	}

	r.keyManagers.Store(typeID, &managerEntry{
		manager:       manager,
		newKeyAllowed: newKeyAllowed,
	})
	return nil
}

// AddCatalogue registers catalogue under the case-insensitive name. Adding a
// catalogue should be a one-time operation: re-registration with a different
// implementation type fails, re-registration with the same implementation is
// a no-op.
func (r *Registry) AddCatalogue(name string, catalogue types.Catalogue) error {
	if catalogue == nil {
		return ErrNilCatalogue
	}
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.catalogues.Load(key); ok {
		existing := v.(types.Catalogue)
		if reflect.TypeOf(existing) != reflect.TypeOf(catalogue) {
			r.logger.Warnf("registry: attempted overwrite of catalogue %s", name)
			return fmt.Errorf("%w: %s", ErrCatalogueConflict, name)
		}
	}

	r.catalogues.Store(key, catalogue)
	return nil
}

// GetCatalogue returns the catalogue registered under the case-insensitive
// name.
func (r *Registry) GetCatalogue(name string) (types.Catalogue, error) {
	v, ok := r.catalogues.Load(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogueNotFound, name)
	}
	return v.(types.Catalogue), nil
}

// GetKeyManager returns the key manager registered for the exact type
// identifier typeID.
func (r *Registry) GetKeyManager(typeID string) (types.KeyManager, error) {
	entry, err := r.entry(typeID)
	if err != nil {
		return nil, err
	}
	return entry.manager, nil
}

// NewKeyData generates fresh key material per the template and wraps it in a
// KeyData record. It fails if key generation is disabled for the template's
// key type.
func (r *Registry) NewKeyData(template *types.Template) (*types.KeyData, error) {
	entry, err := r.entry(template.TypeID)
	if err != nil {
		return nil, err
	}
	if !entry.newKeyAllowed {
		return nil, fmt.Errorf("%w: %s", ErrNewKeyDisallowed, template.TypeID)
	}
	kd, err := entry.manager.KeyFactory().NewKeyData(template.Format)
	if err != nil {
		return nil, err
	}
	metrics.RecordKeyGenerated(template.TypeID)
	return kd, nil
}

// NewKey generates fresh serialized key material per the template. It fails
// if key generation is disabled for the template's key type.
func (r *Registry) NewKey(template *types.Template) ([]byte, error) {
	return r.NewKeyFromFormat(template.TypeID, template.Format)
}

// NewKeyFromFormat generates fresh serialized key material for typeID from
// the serialized, type-specific format parameters.
func (r *Registry) NewKeyFromFormat(typeID string, serializedFormat []byte) ([]byte, error) {
	entry, err := r.entry(typeID)
	if err != nil {
		return nil, err
	}
	if !entry.newKeyAllowed {
		return nil, fmt.Errorf("%w: %s", ErrNewKeyDisallowed, typeID)
	}
	key, err := entry.manager.KeyFactory().NewKey(serializedFormat)
	if err != nil {
		return nil, err
	}
	metrics.RecordKeyGenerated(typeID)
	return key, nil
}

// PublicKeyData extracts the public key data from the serialized private key
// material of the given type. It fails with ErrWrongKeyManagerType if the
// registered manager cannot derive public keys.
func (r *Registry) PublicKeyData(typeID string, serializedPrivateKey []byte) (*types.KeyData, error) {
	manager, err := r.GetKeyManager(typeID)
	if err != nil {
		return nil, err
	}
	pm, ok := manager.(types.PrivateKeyManager)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWrongKeyManagerType, typeID)
	}
	return pm.PublicKeyData(serializedPrivateKey)
}

// Primitive instantiates the primitive backed by the given serialized key
// material, resolving the manager by type identifier.
func (r *Registry) Primitive(typeID string, serializedKey []byte) (any, error) {
	manager, err := r.GetKeyManager(typeID)
	if err != nil {
		return nil, err
	}
	return manager.Primitive(serializedKey)
}

// PrimitiveFromKeyData instantiates the primitive backed by a KeyData record.
func (r *Registry) PrimitiveFromKeyData(keyData *types.KeyData) (any, error) {
	if keyData == nil {
		return nil, fmt.Errorf("%w: nil key data", ErrEmptyTypeID)
	}
	return r.Primitive(keyData.TypeID, keyData.Value)
}

func (r *Registry) entry(typeID string) (*managerEntry, error) {
	if typeID == "" {
		return nil, ErrEmptyTypeID
	}
	v, ok := r.keyManagers.Load(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s, check the registry configuration", ErrUnknownKeyType, typeID)
	}
	return v.(*managerEntry), nil
}
