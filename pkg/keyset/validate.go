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
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

// Validate checks the structural invariants of a keyset: it must be
// non-empty, key ids must be unique, every key must carry a type identifier,
// and the primary key id must reference an enabled key. This is the single
// choke point before any primitive is constructed; a primitive set is never
// built from a keyset that lacks a valid primary.
func Validate(ks *types.Keyset) error {
	if ks == nil || len(ks.Keys) == 0 {
		return ErrEmptyKeyset
	}

	seen := make(map[uint32]struct{}, len(ks.Keys))
	primaryFound := false
	for i := range ks.Keys {
		key := &ks.Keys[i]
		if _, dup := seen[key.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateKeyID, key.ID)
		}
		seen[key.ID] = struct{}{}

		if key.Data.TypeID == "" {
			return fmt.Errorf("%w: key %d", ErrMissingTypeID, key.ID)
		}

		if key.ID == ks.PrimaryKeyID {
			if key.Status != types.StatusEnabled {
				return fmt.Errorf("%w: key %d has status %s", ErrPrimaryNotEnabled, key.ID, key.Status)
			}
			primaryFound = true
		}
	}

	if !primaryFound {
		return fmt.Errorf("%w: %d", ErrPrimaryNotFound, ks.PrimaryKeyID)
	}
	return nil
}
