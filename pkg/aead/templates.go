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
	"encoding/json"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// AES128GCMTemplate returns a template for a 128-bit AES-GCM key with the
// standard tink output prefix.
func AES128GCMTemplate() *types.Template {
	return aesGCMTemplate(16, types.PrefixTypeTink)
}

// AES256GCMTemplate returns a template for a 256-bit AES-GCM key with the
// standard tink output prefix.
func AES256GCMTemplate() *types.Template {
	return aesGCMTemplate(32, types.PrefixTypeTink)
}

// AES256GCMRawTemplate returns a template for a 256-bit AES-GCM key that
// produces unprefixed output, for interoperability with consumers that do
// not understand wire prefixes.
func AES256GCMRawTemplate() *types.Template {
	return aesGCMTemplate(32, types.PrefixTypeRaw)
}

// ChaCha20Poly1305Template returns a template for a ChaCha20-Poly1305 key
// with the standard tink output prefix.
func ChaCha20Poly1305Template() *types.Template {
	return &types.Template{
		TypeID:     ChaCha20Poly1305TypeID,
		PrefixType: types.PrefixTypeTink,
	}
}

// XChaCha20Poly1305Template returns a template for an XChaCha20-Poly1305 key
// with the standard tink output prefix.
func XChaCha20Poly1305Template() *types.Template {
	return &types.Template{
		TypeID:     XChaCha20Poly1305TypeID,
		PrefixType: types.PrefixTypeTink,
	}
}

func aesGCMTemplate(keySize uint32, prefixType types.OutputPrefixType) *types.Template {
	format, _ := json.Marshal(aesGCMKeyFormat{KeySize: keySize})
	return &types.Template{
		TypeID:     AESGCMTypeID,
		Format:     format,
		PrefixType: prefixType,
	}
}
