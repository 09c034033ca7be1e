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

// Package aead provides the authenticated-encryption capability over a
// keyset: key managers for AES-GCM and (X)ChaCha20-Poly1305, key templates,
// and the prefix-dispatching wrapper that encrypts with the keyset's primary
// key and decrypts output produced under any key still enabled in the
// keyset.
//
// Register the package's key managers once at startup:
//
//	reg := registry.New()
//	if err := aead.Register(reg); err != nil {
//	    log.Fatal(err)
//	}
//
// Then build a keyset and encrypt:
//
//	handle, err := keyset.NewHandle(reg, aead.AES256GCMTemplate())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cipher, err := aead.New(reg, handle)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ciphertext, err := cipher.Encrypt(plaintext, associatedData)
//
// Ciphertext produced by the wrapper is self-describing: the primary key's
// wire prefix is prepended, so rotating the keyset never breaks decryption
// of previously produced ciphertext.
package aead
