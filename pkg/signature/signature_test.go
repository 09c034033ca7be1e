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

package signature

import (
	"encoding/json"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/registry"
	"github.com/jeremyhahn/go-keyset/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignatureRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, Register(reg))
	return reg
}

func TestSignVerifyRoundtrip(t *testing.T) {
	reg := newSignatureRegistry(t)

	private, err := keyset.NewHandle(reg, ED25519Template())
	require.NoError(t, err)
	public, err := PublicHandle(reg, private)
	require.NoError(t, err)

	signer, err := NewSigner(reg, private)
	require.NoError(t, err)
	verifier, err := NewVerifier(reg, public)
	require.NoError(t, err)

	sig, err := signer.Sign([]byte("message"))
	require.NoError(t, err)
	// 5-byte wire prefix plus the Ed25519 signature.
	assert.Len(t, sig, 5+ed25519.SignatureSize)
	assert.Equal(t, byte(0x01), sig[0])

	assert.NoError(t, verifier.Verify(sig, []byte("message")))
	assert.ErrorIs(t, verifier.Verify(sig, []byte("other")), types.ErrAuthenticationFailed)

	// Tampering with either the prefix or the signature body fails.
	for _, i := range []int{0, 4, 5, len(sig) - 1} {
		bad := append([]byte(nil), sig...)
		bad[i] ^= 0x01
		assert.ErrorIs(t, verifier.Verify(bad, []byte("message")), types.ErrAuthenticationFailed, "flipped byte %d", i)
	}
}

func TestSignVerify_RawTemplate(t *testing.T) {
	reg := newSignatureRegistry(t)

	private, err := keyset.NewHandle(reg, ED25519RawTemplate())
	require.NoError(t, err)
	public, err := PublicHandle(reg, private)
	require.NoError(t, err)

	signer, err := NewSigner(reg, private)
	require.NoError(t, err)
	verifier, err := NewVerifier(reg, public)
	require.NoError(t, err)

	sig, err := signer.Sign([]byte("message"))
	require.NoError(t, err)
	// Raw signatures carry no prefix.
	assert.Len(t, sig, ed25519.SignatureSize)
	assert.NoError(t, verifier.Verify(sig, []byte("message")))
}

func TestVerifier_AcceptsRotatedKeys(t *testing.T) {
	reg := newSignatureRegistry(t)

	mgr := keyset.NewManager(reg)
	_, err := mgr.Rotate(ED25519Template())
	require.NoError(t, err)
	h1, err := mgr.Handle()
	require.NoError(t, err)

	signer1, err := NewSigner(reg, h1)
	require.NoError(t, err)
	sig1, err := signer1.Sign([]byte("message"))
	require.NoError(t, err)

	_, err = mgr.Rotate(ED25519Template())
	require.NoError(t, err)
	h2, err := mgr.Handle()
	require.NoError(t, err)

	public2, err := PublicHandle(reg, h2)
	require.NoError(t, err)
	verifier2, err := NewVerifier(reg, public2)
	require.NoError(t, err)

	// Signatures from before the rotation keep verifying; signatures from
	// the new primary do too.
	assert.NoError(t, verifier2.Verify(sig1, []byte("message")))

	signer2, err := NewSigner(reg, h2)
	require.NoError(t, err)
	sig2, err := signer2.Sign([]byte("message"))
	require.NoError(t, err)
	assert.NoError(t, verifier2.Verify(sig2, []byte("message")))
	assert.NotEqual(t, sig1[:5], sig2[:5])
}

func TestPublicHandle_PreservesStructure(t *testing.T) {
	reg := newSignatureRegistry(t)

	mgr := keyset.NewManager(reg)
	id1, err := mgr.Rotate(ED25519Template())
	require.NoError(t, err)
	id2, err := mgr.Add(ED25519RawTemplate())
	require.NoError(t, err)
	require.NoError(t, mgr.Disable(id2))
	private, err := mgr.Handle()
	require.NoError(t, err)

	public, err := PublicHandle(reg, private)
	require.NoError(t, err)

	info := public.Info()
	assert.Equal(t, id1, info.PrimaryKeyID)
	require.Len(t, info.Keys, 2)
	assert.Equal(t, types.StatusDisabled, info.Keys[1].Status)
	assert.Equal(t, types.PrefixTypeRaw, info.Keys[1].PrefixType)

	for _, key := range public.Keyset().Keys {
		assert.Equal(t, ED25519VerifierTypeID, key.Data.TypeID)
		assert.Equal(t, types.MaterialAsymmetricPublic, key.Data.Kind)
	}
}

func TestPublicHandle_SkipsDestroyedKeys(t *testing.T) {
	reg := newSignatureRegistry(t)

	mgr := keyset.NewManager(reg)
	_, err := mgr.Rotate(ED25519Template())
	require.NoError(t, err)
	id2, err := mgr.Add(ED25519Template())
	require.NoError(t, err)
	require.NoError(t, mgr.Destroy(id2))
	private, err := mgr.Handle()
	require.NoError(t, err)

	public, err := PublicHandle(reg, private)
	require.NoError(t, err)
	assert.Len(t, public.Keyset().Keys, 1)
}

func TestED25519SignerKeyManager_Material(t *testing.T) {
	km := NewED25519SignerKeyManager()

	keyData, err := km.KeyFactory().NewKeyData(nil)
	require.NoError(t, err)
	assert.Equal(t, ED25519SignerTypeID, keyData.TypeID)
	assert.Equal(t, types.MaterialAsymmetricPrivate, keyData.Kind)

	var key ed25519PrivateKey
	require.NoError(t, json.Unmarshal(keyData.Value, &key))
	assert.Len(t, key.Seed, ed25519.SeedSize)

	// Deriving twice from the same private material is deterministic.
	pub1, err := km.PublicKeyData(keyData.Value)
	require.NoError(t, err)
	pub2, err := km.PublicKeyData(keyData.Value)
	require.NoError(t, err)
	assert.Equal(t, pub1.Value, pub2.Value)
	assert.Equal(t, ED25519VerifierTypeID, pub1.TypeID)

	_, err = km.Primitive([]byte("{not json"))
	assert.ErrorIs(t, err, types.ErrInvalidKeyMaterial)

	short, err := json.Marshal(ed25519PrivateKey{Version: 0, Seed: make([]byte, 16)})
	require.NoError(t, err)
	_, err = km.Primitive(short)
	assert.ErrorIs(t, err, types.ErrInvalidKeyMaterial)
}

func TestED25519VerifierKeyManager_RejectsGeneration(t *testing.T) {
	km := NewED25519VerifierKeyManager()

	_, err := km.KeyFactory().NewKey(nil)
	assert.ErrorIs(t, err, types.ErrInvalidKeyFormat)
	_, err = km.KeyFactory().NewKeyData(nil)
	assert.ErrorIs(t, err, types.ErrInvalidKeyFormat)

	reg := newSignatureRegistry(t)
	_, err = keyset.NewHandle(reg, &types.Template{
		TypeID:     ED25519VerifierTypeID,
		PrefixType: types.PrefixTypeTink,
	})
	assert.Error(t, err)
}

func TestRegistryPublicKeyData_WrongManagerType(t *testing.T) {
	reg := newSignatureRegistry(t)

	km := NewED25519SignerKeyManager()
	keyData, err := km.KeyFactory().NewKeyData(nil)
	require.NoError(t, err)

	pub, err := reg.PublicKeyData(ED25519SignerTypeID, keyData.Value)
	require.NoError(t, err)

	// The verifier manager cannot derive public keys.
	_, err = reg.PublicKeyData(ED25519VerifierTypeID, pub.Value)
	assert.ErrorIs(t, err, registry.ErrWrongKeyManagerType)
}
