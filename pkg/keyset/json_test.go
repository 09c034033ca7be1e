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
	"bytes"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-keyset/internal/testutil"
	"github.com/jeremyhahn/go-keyset/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundtrip(t *testing.T) {
	h, err := FromKeyset(testutil.NewKeyset(2,
		testutil.NewKey(1, types.StatusDisabled, types.PrefixTypeRaw, "k1"),
		testutil.NewKey(2, types.StatusEnabled, types.PrefixTypeTink, "k2"),
	))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, h))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, h.Keyset(), got.Keyset())
}

func TestReadJSON_RejectsInvalidKeyset(t *testing.T) {
	// Well-formed JSON whose primary id matches no key.
	in := `{"primary_key_id": 7, "keys": [
		{"id": 1, "status": "enabled", "prefix_type": "tink",
		 "data": {"type_id": "go-keyset/dummy-aead", "value": "azE=", "kind": "symmetric"}}
	]}`
	_, err := ReadJSON(strings.NewReader(in))
	assert.ErrorIs(t, err, ErrPrimaryNotFound)
}

func TestReadJSON_MalformedInput(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	assert.ErrorContains(t, err, "failed to decode keyset")
}
