// keyutils_test.go: Test cases for key utilities.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/kryptos"
)

func TestRandomWordArray(t *testing.T) {
	for _, n := range []int{0, 1, 8, 31, 64} {
		w, err := kryptos.RandomWordArray(n)
		require.NoError(t, err)
		assert.Equal(t, n, w.SigBytes)
		assert.Len(t, w.Bytes(), n)
	}

	a, err := kryptos.RandomWordArray(32)
	require.NoError(t, err)
	b, err := kryptos.RandomWordArray(32)
	require.NoError(t, err)
	assert.False(t, a.Equal(b))

	_, err = kryptos.RandomWordArray(-1)
	assert.True(t, errors.Is(err, kryptos.ErrRandom))
}

func TestGenerateKeyAndIV(t *testing.T) {
	tests := []struct {
		algo    kryptos.CipherAlgorithm
		keySize int
		ivSize  int
	}{
		{kryptos.AES, 32, 16},
		{kryptos.DES, 8, 8},
		{kryptos.TripleDES, 24, 8},
		{kryptos.SM4, 16, 16},
		{kryptos.RC4, 32, 0},
		{kryptos.ChaCha20, 32, 12},
		{kryptos.ZUC, 16, 16},
	}
	for _, tt := range tests {
		t.Run(tt.algo.Name(), func(t *testing.T) {
			key, err := kryptos.GenerateKey(tt.algo)
			require.NoError(t, err)
			defer key.Zeroize()
			assert.Equal(t, tt.keySize, key.SigBytes)

			iv, err := kryptos.GenerateIV(tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.ivSize, iv.SigBytes)
		})
	}
}

func TestGeneratedKeyIsUsable(t *testing.T) {
	key, err := kryptos.GenerateKey(kryptos.AES)
	require.NoError(t, err)
	iv, err := kryptos.GenerateIV(kryptos.AES)
	require.NoError(t, err)

	cfg := &kryptos.CipherConfig{IV: iv}
	params, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromString("generated"), key, cfg)
	require.NoError(t, err)
	plain, err := kryptos.DecryptWithKey(kryptos.AES, params, key, cfg)
	require.NoError(t, err)
	assert.Equal(t, "generated", string(plain.Bytes()))
}

func TestZeroize(t *testing.T) {
	data := []byte("sensitive")
	kryptos.Zeroize(data)
	assert.Equal(t, make([]byte, len("sensitive")), data)

	kryptos.Zeroize(nil)
}

func TestGetKeyFingerprint(t *testing.T) {
	key := kryptos.WordArrayFromString("fingerprint me")
	sum := sha256.Sum256([]byte("fingerprint me"))

	fp := kryptos.GetKeyFingerprint(key)
	assert.Equal(t, hex.EncodeToString(sum[:8]), fp)
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, kryptos.GetKeyFingerprint(key.Clone()))

	other := kryptos.GetKeyFingerprint(kryptos.WordArrayFromString("fingerprint you"))
	assert.NotEqual(t, fp, other)

	assert.Empty(t, kryptos.GetKeyFingerprint(nil))
	assert.Empty(t, kryptos.GetKeyFingerprint(kryptos.NewWordArray(nil, 0)))
}

func BenchmarkGenerateKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		key, err := kryptos.GenerateKey(kryptos.AES)
		if err != nil {
			b.Fatal(err)
		}
		key.Zeroize()
	}
}
