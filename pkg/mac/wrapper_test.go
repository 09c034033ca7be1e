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

package mac

import (
	"testing"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMACRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, Register(reg))
	return reg
}

func TestWrappedMAC_ComputeAndVerify(t *testing.T) {
	reg := newMACRegistry(t)
	h, err := keyset.NewHandle(reg, HMACSHA256Template())
	require.NoError(t, err)

	m, err := New(reg, h)
	require.NoError(t, err)

	tag, err := m.ComputeMAC([]byte("data"))
	require.NoError(t, err)
	// 5-byte wire prefix plus the full 32-byte tag.
	assert.Len(t, tag, 5+32)
	assert.Equal(t, byte(0x01), tag[0])

	assert.NoError(t, m.VerifyMAC(tag, []byte("data")))
	assert.ErrorIs(t, m.VerifyMAC(tag, []byte("other")), types.ErrAuthenticationFailed)

	bad := append([]byte(nil), tag...)
	bad[2] ^= 0x40
	assert.ErrorIs(t, m.VerifyMAC(bad, []byte("data")), types.ErrAuthenticationFailed)
}

func TestWrappedMAC_RotationVerifiesOldTags(t *testing.T) {
	reg := newMACRegistry(t)

	mgr := keyset.NewManager(reg)
	_, err := mgr.Rotate(HMACSHA256Template())
	require.NoError(t, err)
	h1, err := mgr.Handle()
	require.NoError(t, err)

	m1, err := New(reg, h1)
	require.NoError(t, err)
	tag, err := m1.ComputeMAC([]byte("data"))
	require.NoError(t, err)

	_, err = mgr.Rotate(HMACSHA512Template())
	require.NoError(t, err)
	h2, err := mgr.Handle()
	require.NoError(t, err)

	m2, err := New(reg, h2)
	require.NoError(t, err)

	// The old key is still enabled, so its tags keep verifying; new tags
	// come from the new primary.
	assert.NoError(t, m2.VerifyMAC(tag, []byte("data")))
	tag2, err := m2.ComputeMAC([]byte("data"))
	require.NoError(t, err)
	assert.Len(t, tag2, 5+64)
	assert.NoError(t, m2.VerifyMAC(tag2, []byte("data")))
	assert.ErrorIs(t, m1.VerifyMAC(tag2, []byte("data")), types.ErrAuthenticationFailed)
}

func TestWrappedMAC_RawTagFallback(t *testing.T) {
	reg := newMACRegistry(t)

	mgr := keyset.NewManager(reg)
	_, err := mgr.Rotate(hmacTemplate(HashSHA256, 32, 32, types.PrefixTypeRaw))
	require.NoError(t, err)
	h, err := mgr.Handle()
	require.NoError(t, err)

	m, err := New(reg, h)
	require.NoError(t, err)

	tag, err := m.ComputeMAC([]byte("data"))
	require.NoError(t, err)
	// Raw primary tags carry no prefix.
	assert.Len(t, tag, 32)
	assert.NoError(t, m.VerifyMAC(tag, []byte("data")))
}

func TestWrappedMAC_ShortTag(t *testing.T) {
	reg := newMACRegistry(t)
	h, err := keyset.NewHandle(reg, HMACSHA256Template())
	require.NoError(t, err)
	m, err := New(reg, h)
	require.NoError(t, err)

	for _, tag := range [][]byte{nil, {}, {0x01, 0x02}} {
		assert.ErrorIs(t, m.VerifyMAC(tag, []byte("data")), types.ErrAuthenticationFailed)
	}
}

func TestMACRegister(t *testing.T) {
	reg := newMACRegistry(t)
	require.NoError(t, Register(reg))

	km, err := reg.GetKeyManager(HMACTypeID)
	require.NoError(t, err)
	assert.Equal(t, HMACTypeID, km.TypeID())

	catalogue, err := reg.GetCatalogue(CatalogueName)
	require.NoError(t, err)
	assert.Equal(t, "mac", catalogue.Primitive())
}
