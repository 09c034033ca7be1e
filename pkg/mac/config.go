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
	"encoding/json"

	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// CatalogueName is the name the MAC catalogue registers under.
const CatalogueName = "keyset-mac"

// Catalogue groups the MAC family's key managers.
type Catalogue struct{}

// Primitive returns the primitive family name.
func (c *Catalogue) Primitive() string {
	return "mac"
}

// KeyManagers returns the MAC key managers keyed by type identifier.
func (c *Catalogue) KeyManagers() map[string]types.KeyManager {
	return map[string]types.KeyManager{
		HMACTypeID: NewHMACKeyManager(),
	}
}

// Register installs the MAC catalogue and its key managers into reg. It is
// idempotent and should be called once at startup before any MAC keyset is
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

// HMACSHA256Template returns a template for a 256-bit HMAC-SHA256 key with a
// full 32-byte tag and the standard tink output prefix.
func HMACSHA256Template() *types.Template {
	return hmacTemplate(HashSHA256, 32, 32, types.PrefixTypeTink)
}

// HMACSHA256HalfSizeTagTemplate returns a template for a 256-bit HMAC-SHA256
// key with a 16-byte tag and the standard tink output prefix.
func HMACSHA256HalfSizeTagTemplate() *types.Template {
	return hmacTemplate(HashSHA256, 32, 16, types.PrefixTypeTink)
}

// HMACSHA512Template returns a template for a 512-bit HMAC-SHA512 key with a
// full 64-byte tag and the standard tink output prefix.
func HMACSHA512Template() *types.Template {
	return hmacTemplate(HashSHA512, 64, 64, types.PrefixTypeTink)
}

func hmacTemplate(hashName string, keySize, tagSize uint32, prefixType types.OutputPrefixType) *types.Template {
	format, _ := json.Marshal(hmacKeyFormat{
		Hash:    hashName,
		TagSize: tagSize,
		KeySize: keySize,
	})
	return &types.Template{
		TypeID:     HMACTypeID,
		Format:     format,
		PrefixType: prefixType,
	}
}
