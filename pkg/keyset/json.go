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

package keyset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// WriteJSON serializes the handle's keyset, including key material, as JSON.
// The output contains cleartext secrets; callers are responsible for
// encrypting or access-controlling the destination.
func WriteJSON(w io.Writer, h *Handle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h.ks); err != nil {
		return fmt.Errorf("failed to encode keyset: %w", err)
	}
	return nil
}

// ReadJSON deserializes a JSON keyset and wraps it in a validated Handle.
func ReadJSON(r io.Reader) (*Handle, error) {
	var ks types.Keyset
	if err := json.NewDecoder(r).Decode(&ks); err != nil {
		return nil, fmt.Errorf("failed to decode keyset: %w", err)
	}
	return FromKeyset(&ks)
}
