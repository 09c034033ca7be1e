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
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/prefix"
	"github.com/jeremyhahn/go-keyset/pkg/primitiveset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// wrappedAEAD dispatches AEAD operations over a frozen primitive set.
// Encryption always uses the primary entry and prepends its wire prefix;
// decryption routes by the ciphertext's prefix and falls back to a scan of
// the raw entries.
type wrappedAEAD struct {
	set *primitiveset.Set[types.AEAD]
}

// New builds a types.AEAD that encrypts with the primary key of handle's
// keyset and decrypts ciphertext produced under any enabled key.
func New(reg *registry.Registry, handle *keyset.Handle) (types.AEAD, error) {
	return NewWithKeyManager(reg, handle, nil)
}

// NewWithKeyManager is like New but resolves primitives for key types
// supported by custom through custom instead of the registry.
func NewWithKeyManager(reg *registry.Registry, handle *keyset.Handle, custom types.KeyManager) (types.AEAD, error) {
	set, err := keyset.PrimitivesWithKeyManager[types.AEAD](reg, handle, custom)
	if err != nil {
		return nil, err
	}
	if set.Primary() == nil {
		return nil, types.ErrNoPrimaryKey
	}
	return &wrappedAEAD{set: set}, nil
}

// Encrypt encrypts plaintext with the primary key's primitive and prepends
// the primary's wire prefix, so the ciphertext identifies its producing key.
func (w *wrappedAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	primary := w.set.Primary()
	ciphertext, err := primary.Primitive.Encrypt(plaintext, associatedData)
	metrics.RecordOperation(metrics.OpEncrypt, err)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(primary.Prefix)+len(ciphertext))
	out = append(out, primary.Prefix...)
	return append(out, ciphertext...), nil
}

// Decrypt decrypts ciphertext produced by any enabled key in the keyset.
//
// When the ciphertext is long enough to carry a wire prefix, the entries
// registered under that exact prefix are tried first, in insertion order,
// against the remaining bytes. Raw entries are then tried against the full
// ciphertext regardless, since raw output is indistinguishable from
// prefixed output by inspection. Rejection is a single generic error that
// discloses nothing about which candidate failed.
func (w *wrappedAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) >= prefix.NonRawSize {
		candidate := ciphertext[:prefix.NonRawSize]
		payload := ciphertext[prefix.NonRawSize:]
		for _, entry := range w.set.EntriesForPrefix(candidate) {
			if plaintext, err := entry.Primitive.Decrypt(payload, associatedData); err == nil {
				metrics.RecordOperation(metrics.OpDecrypt, nil)
				return plaintext, nil
			}
		}
	}

	rawEntries := w.set.RawEntries()
	if len(rawEntries) > 0 {
		metrics.RecordRawScan()
	}
	for _, entry := range rawEntries {
		if plaintext, err := entry.Primitive.Decrypt(ciphertext, associatedData); err == nil {
			metrics.RecordOperation(metrics.OpDecrypt, nil)
			return plaintext, nil
		}
	}

	metrics.RecordOperation(metrics.OpDecrypt, types.ErrAuthenticationFailed)
	return nil, types.ErrAuthenticationFailed
}
