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

// Package mac provides the message-authentication capability over a keyset:
// HMAC key managers, key templates, and the prefix-dispatching wrapper that
// computes tags with the keyset's primary key and verifies tags produced
// under any key still enabled in the keyset.
//
//	reg := registry.New()
//	if err := mac.Register(reg); err != nil {
//	    log.Fatal(err)
//	}
//	handle, err := keyset.NewHandle(reg, mac.HMACSHA256Template())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := mac.New(reg, handle)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tag, err := m.ComputeMAC(data)
package mac
