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
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// CatalogueName is the name the AEAD catalogue registers under.
const CatalogueName = "keyset-aead"

// Catalogue groups the AEAD family's key managers.
type Catalogue struct{}

// Primitive returns the primitive family name.
func (c *Catalogue) Primitive() string {
	return "aead"
}

// KeyManagers returns the AEAD key managers keyed by type identifier.
func (c *Catalogue) KeyManagers() map[string]types.KeyManager {
	return map[string]types.KeyManager{
		AESGCMTypeID:            NewAESGCMKeyManager(),
		ChaCha20Poly1305TypeID:  NewChaCha20Poly1305KeyManager(),
		XChaCha20Poly1305TypeID: NewXChaCha20Poly1305KeyManager(),
	}
}

// Register installs the AEAD catalogue and its key managers into reg. It is
// idempotent and should be called once at startup before any AEAD keyset is
// used.
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
