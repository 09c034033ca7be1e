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
	"testing"

	"github.com/jeremyhahn/go-keyset/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
)

func TestChaCha20Poly1305KeyManager_Variants(t *testing.T) {
	tests := []struct {
		name      string
		km        *ChaCha20Poly1305KeyManager
		typeID    string
		nonceSize int
	}{
		{"ChaCha20Poly1305", NewChaCha20Poly1305KeyManager(), ChaCha20Poly1305TypeID, chacha20poly1305.NonceSize},
		{"XChaCha20Poly1305", NewXChaCha20Poly1305KeyManager(), XChaCha20Poly1305TypeID, chacha20poly1305.NonceSizeX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typeID, tt.km.TypeID())
			assert.True(t, tt.km.DoesSupport(tt.typeID))
			assert.False(t, tt.km.DoesSupport("go-keyset/aes-gcm"))

			keyData, err := tt.km.KeyFactory().NewKeyData(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.typeID, keyData.TypeID)

			raw, err := tt.km.Primitive(keyData.Value)
			require.NoError(t, err)
			a, ok := raw.(types.AEAD)
			require.True(t, ok)

			ct, err := a.Encrypt([]byte("plaintext"), []byte("ad"))
			require.NoError(t, err)
			assert.Equal(t, tt.nonceSize+len("plaintext")+chacha20poly1305.Overhead, len(ct))

			pt, err := a.Decrypt(ct, []byte("ad"))
			require.NoError(t, err)
			assert.Equal(t, []byte("plaintext"), pt)

			// Wrong associated data fails generically.
			_, err = a.Decrypt(ct, nil)
			assert.ErrorIs(t, err, types.ErrAuthenticationFailed)
		})
	}
}

func TestChaCha20Poly1305KeyManager_RejectsBadMaterial(t *testing.T) {
	km := NewChaCha20Poly1305KeyManager()

	_, err := km.Primitive([]byte("{not json"))
	assert.ErrorIs(t, err, types.ErrInvalidKeyMaterial)

	serialized, err := json.Marshal(chaChaKey{Version: 0, KeyValue: make([]byte, 16)})
	require.NoError(t, err)
	_, err = km.Primitive(serialized)
	assert.ErrorIs(t, err, types.ErrInvalidKeyMaterial)

	serialized, err = json.Marshal(chaChaKey{Version: 7, KeyValue: make([]byte, chacha20poly1305.KeySize)})
	require.NoError(t, err)
	_, err = km.Primitive(serialized)
	assert.ErrorIs(t, err, types.ErrInvalidKeyMaterial)
}

func TestChaChaKeysAreDistinct(t *testing.T) {
	km := NewChaCha20Poly1305KeyManager()

	k1, err := km.KeyFactory().NewKey(nil)
	require.NoError(t, err)
	k2, err := km.KeyFactory().NewKey(nil)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestChaChaTemplates(t *testing.T) {
	assert.Equal(t, ChaCha20Poly1305TypeID, ChaCha20Poly1305Template().TypeID)
	assert.Equal(t, types.PrefixTypeTink, ChaCha20Poly1305Template().PrefixType)
	assert.Equal(t, XChaCha20Poly1305TypeID, XChaCha20Poly1305Template().TypeID)
	assert.Equal(t, types.PrefixTypeTink, XChaCha20Poly1305Template().PrefixType)
}
