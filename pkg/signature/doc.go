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

// Package signature provides the digital-signature capability over a keyset:
// Ed25519 key managers for the private and public halves, key templates, and
// the prefix-dispatching signer and verifier wrappers. The private key
// manager can derive the public keyset, so a signing service can hand
// verifiers a keyset that never contained private material.
//
//	reg := registry.New()
//	if err := signature.Register(reg); err != nil {
//	    log.Fatal(err)
//	}
//	private, err := keyset.NewHandle(reg, signature.ED25519Template())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	signer, err := signature.NewSigner(reg, private)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := signer.Sign(data)
package signature
