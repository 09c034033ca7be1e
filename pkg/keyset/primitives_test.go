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
	"testing"

	"github.com/jeremyhahn/go-keyset/internal/testutil"
	"github.com/jeremyhahn/go-keyset/pkg/prefix"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives_PrimaryMapping(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(2,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
		testutil.NewKey(2, types.StatusEnabled, types.PrefixTypeTink, "k2"),
	))
	require.NoError(t, err)

	set, err := Primitives[types.AEAD](reg, h)
	require.NoError(t, err)

	primary := set.Primary()
	require.NotNil(t, primary)
	assert.Equal(t, uint32(2), primary.KeyID)
	assert.Equal(t, mustPrefix(t, types.PrefixTypeTink, 2), primary.Prefix)

	// The primary's primitive is the one built from the primary key's
	// material.
	ct, err := primary.Primitive.Encrypt([]byte("pt"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("k2pt"), ct)
}

func TestPrimitives_SkipsNonEnabledKeys(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(2,
		testutil.NewKey(1, types.StatusDisabled, types.PrefixTypeTink, "k1"),
		testutil.NewKey(2, types.StatusEnabled, types.PrefixTypeTink, "k2"),
		testutil.NewKey(3, types.StatusDestroyed, types.PrefixTypeRaw, "k3"),
	))
	require.NoError(t, err)

	set, err := Primitives[types.AEAD](reg, h)
	require.NoError(t, err)

	assert.Len(t, set.EntriesForPrefix(mustPrefix(t, types.PrefixTypeTink, 1)), 0)
	assert.Len(t, set.EntriesForPrefix(mustPrefix(t, types.PrefixTypeTink, 2)), 1)
	assert.Len(t, set.RawEntries(), 0)
}

func TestPrimitives_KeysetOrderWithinBucket(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeRaw, "k1"),
		testutil.NewKey(2, types.StatusEnabled, types.PrefixTypeRaw, "k2"),
		testutil.NewKey(3, types.StatusEnabled, types.PrefixTypeRaw, "k3"),
	))
	require.NoError(t, err)

	set, err := Primitives[types.AEAD](reg, h)
	require.NoError(t, err)

	raws := set.RawEntries()
	require.Len(t, raws, 3)
	assert.Equal(t, uint32(1), raws[0].KeyID)
	assert.Equal(t, uint32(2), raws[1].KeyID)
	assert.Equal(t, uint32(3), raws[2].KeyID)
}

func TestPrimitivesWithKeyManager_CustomPreferred(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
		testutil.NewKeyWithType(2, types.StatusEnabled, types.PrefixTypeTink, "go-keyset/other", "k2"),
	))
	require.NoError(t, err)

	// The custom manager claims the dummy type but renames its primitives,
	// making its output distinguishable from the registry path.
	custom := &renamingKeyManager{typeID: testutil.DummyAEADTypeID}

	set, err := PrimitivesWithKeyManager[types.AEAD](reg, h, custom)
	// Key 2's type is unregistered and unsupported by the custom manager.
	require.ErrorIs(t, err, registry.ErrUnknownKeyType)

	h, err = FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
	))
	require.NoError(t, err)
	set, err = PrimitivesWithKeyManager[types.AEAD](reg, h, custom)
	require.NoError(t, err)

	ct, err := set.Primary().Primitive.Encrypt([]byte("pt"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("custom-k1pt"), ct)
}

func TestPrimitives_WrongCapabilityInterface(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
	))
	require.NoError(t, err)

	// The dummy manager yields AEADs, not MACs.
	_, err = Primitives[types.MAC](reg, h)
	assert.ErrorIs(t, err, ErrWrongPrimitiveType)
}

func TestPrimitives_InstantiationFailure(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterKeyManager(testutil.DummyAEADTypeID, &testutil.FailingKeyManager{
		TypeIDValue: testutil.DummyAEADTypeID,
	}))
	h, err := FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
	))
	require.NoError(t, err)

	_, err = Primitives[types.AEAD](reg, h)
	assert.ErrorContains(t, err, "key 1")
}

func TestPrimitives_NilHandle(t *testing.T) {
	_, err := Primitives[types.AEAD](newTestRegistry(t), nil)
	assert.ErrorIs(t, err, ErrEmptyKeyset)
}

func TestPrimitives_ResultIsFrozen(t *testing.T) {
	reg := newTestRegistry(t)
	h, err := FromKeyset(testutil.NewKeyset(1,
		testutil.NewKey(1, types.StatusEnabled, types.PrefixTypeTink, "k1"),
	))
	require.NoError(t, err)

	set, err := Primitives[types.AEAD](reg, h)
	require.NoError(t, err)

	key := testutil.NewKey(5, types.StatusEnabled, types.PrefixTypeTink, "k5")
	_, err = set.Add(&testutil.DummyAEAD{Name: "k5"}, &key)
	assert.Error(t, err)
}

func mustPrefix(t *testing.T, prefixType types.OutputPrefixType, keyID uint32) []byte {
	t.Helper()
	p, err := prefix.Output(prefixType, keyID)
	require.NoError(t, err)
	return p
}

// renamingKeyManager resolves dummy AEADs whose names carry a custom- marker,
// so tests can tell the custom path from the registry path.
type renamingKeyManager struct {
	typeID string
}

func (km *renamingKeyManager) Primitive(serializedKey []byte) (any, error) {
	return &testutil.DummyAEAD{Name: "custom-" + string(serializedKey)}, nil
}

func (km *renamingKeyManager) TypeID() string { return km.typeID }

func (km *renamingKeyManager) Version() uint32 { return 0 }

func (km *renamingKeyManager) KeyFactory() types.KeyFactory {
	return (&testutil.DummyAEADKeyManager{TypeIDValue: km.typeID}).KeyFactory()
}

func (km *renamingKeyManager) DoesSupport(typeID string) bool {
	return typeID == km.typeID
}
