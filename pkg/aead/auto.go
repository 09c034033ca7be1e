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
	"runtime"

	"github.com/jeremyhahn/go-keyset/pkg/types"
	"golang.org/x/sys/cpu"
)

// HasAESNI returns true if the CPU has hardware AES acceleration.
//
// Supported architectures:
//   - amd64: Checks X86.HasAES
//   - arm64: Checks ARM64.HasAES
//   - Other architectures return false
func HasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}

// OptimalTemplate returns the key template best suited to this host: a
// 256-bit AES-GCM key when the CPU has AES acceleration, and
// ChaCha20-Poly1305 otherwise, which outperforms AES in software and runs in
// constant time without special instructions.
func OptimalTemplate() *types.Template {
	if HasAESNI() {
		return AES256GCMTemplate()
	}
	return ChaCha20Poly1305Template()
}
