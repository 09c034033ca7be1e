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
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// CatalogueName is the name the signature catalogue registers under.
const CatalogueName = "keyset-signature"

// Catalogue groups the signature family's key managers.
type Catalogue struct{}

// Primitive returns the primitive family name.
func (c *Catalogue) Primitive() string {
	return "signature"
}

// KeyManagers returns the signature key managers keyed by type identifier.
func (c *Catalogue) KeyManagers() map[string]types.KeyManager {
	return map[string]types.KeyManager{
		ED25519SignerTypeID:   NewED25519SignerKeyManager(),
		ED25519VerifierTypeID: NewED25519VerifierKeyManager(),
	}
}

// Register installs the signature catalogue and its key managers into reg.
// It is idempotent and should be called once at startup before any signature
// keyset is used.
func Register(reg *registry.Registry) error {
	catalogue := &Catalogue{}
	if err := reg.AddCatalogue(CatalogueName, catalogue); err != nil {
		return err
	}
	for typeID, km := range catalogue.KeyManagers() {
		if err := reg.RegisterKeyManager(typeID, km); err != nil {
			return err
		}
	}
	return nil
}

// ED25519Template returns a template for an Ed25519 signing key with the
// standard tink output prefix.
func ED25519Template() *types.Template {
	return &types.Template{
		TypeID:     ED25519SignerTypeID,
		PrefixType: types.PrefixTypeTink,
	}
}

// ED25519RawTemplate returns a template for an Ed25519 signing key that
// produces unprefixed signatures.
func ED25519RawTemplate() *types.Template {
	return &types.Template{
		TypeID:     ED25519SignerTypeID,
		PrefixType: types.PrefixTypeRaw,
	}
}

// PublicHandle derives the verifier keyset for a private signing keyset:
// every key's public half replaces its private material, statuses, ids, the
// primary designation and prefix types carry over unchanged. The resulting
// handle contains no private material and is safe to distribute to
// verifiers.
func PublicHandle(reg *registry.Registry, private *keyset.Handle) (*keyset.Handle, error) {
	ks := private.Keyset()
	public := &types.Keyset{PrimaryKeyID: ks.PrimaryKeyID}
	for i := range ks.Keys {
		key := ks.Keys[i]
		if key.Status == types.StatusDestroyed {
			// No material left to derive from; a destroyed key cannot
			// verify anything either.
			continue
		}
		publicData, err := reg.PublicKeyData(key.Data.TypeID, key.Data.Value)
		if err != nil {
			return nil, err
		}
		key.Data = *publicData
		public.Keys = append(public.Keys, key)
	}
	return keyset.FromKeyset(public)
}
