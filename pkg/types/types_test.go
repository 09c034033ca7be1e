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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStatus_String(t *testing.T) {
	tests := []struct {
		name string
		s    KeyStatus
		want string
	}{
		{"Enabled", StatusEnabled, "enabled"},
		{"Disabled", StatusDisabled, "disabled"},
		{"Destroyed", StatusDestroyed, "destroyed"},
		{"Unknown", StatusUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestKeyStatus_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		s     KeyStatus
		valid bool
	}{
		{"Enabled_Valid", StatusEnabled, true},
		{"Disabled_Valid", StatusDisabled, true},
		{"Destroyed_Valid", StatusDestroyed, true},
		{"Unknown_Invalid", StatusUnknown, false},
		{"Custom_Invalid", KeyStatus("custom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.s.IsValid())
		})
	}
}

func TestParseKeyStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want KeyStatus
	}{
		{"enabled", "enabled", StatusEnabled},
		{"disabled", "disabled", StatusDisabled},
		{"destroyed", "destroyed", StatusDestroyed},
		{"uppercase", "ENABLED", StatusEnabled},
		{"whitespace", "  disabled  ", StatusDisabled},
		{"unknown", "retired", StatusUnknown},
		{"empty", "", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeyStatus(tt.in))
		})
	}
}

func TestOutputPrefixType_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		p     OutputPrefixType
		valid bool
	}{
		{"Tink_Valid", PrefixTypeTink, true},
		{"Legacy_Valid", PrefixTypeLegacy, true},
		{"Crunchy_Valid", PrefixTypeCrunchy, true},
		{"Raw_Valid", PrefixTypeRaw, true},
		{"Unknown_Invalid", PrefixTypeUnknown, false},
		{"Custom_Invalid", OutputPrefixType("custom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.p.IsValid())
		})
	}
}

func TestParseOutputPrefixType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want OutputPrefixType
	}{
		{"tink", "tink", PrefixTypeTink},
		{"legacy", "legacy", PrefixTypeLegacy},
		{"crunchy", "crunchy", PrefixTypeCrunchy},
		{"raw", "raw", PrefixTypeRaw},
		{"mixed", "Tink", PrefixTypeTink},
		{"unknown", "invalid", PrefixTypeUnknown},
		{"empty", "", PrefixTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputPrefixType(tt.in))
		})
	}
}

func TestKeyset_JSONRoundTrip(t *testing.T) {
	ks := &Keyset{
		PrimaryKeyID: 42,
		Keys: []Key{
			{
				ID:         42,
				Status:     StatusEnabled,
				PrefixType: PrefixTypeTink,
				Data: KeyData{
					TypeID: "go-keyset/aes-gcm",
					Value:  []byte("material"),
					Kind:   MaterialSymmetric,
				},
			},
		},
	}

	raw, err := json.Marshal(ks)
	require.NoError(t, err)

	var decoded Keyset
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ks, &decoded)
}
