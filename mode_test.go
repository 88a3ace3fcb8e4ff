// mode_test.go: Test cases for block modes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos_test

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/kryptos"
)

// NIST SP 800-38A, F.1 to F.5, AES-128.
const (
	nistKey       = "2b7e151628aed2a6abf7158809cf4f3c"
	nistIV        = "000102030405060708090a0b0c0d0e0f"
	nistCounter   = "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
	nistPlaintext = "6bc1bee22e409f96e93d7e117393172a" +
		"ae2d8a571e03ac9c9eb76fac45af8e51" +
		"30c81c46a35ce411e5fbc1191a0a52ef" +
		"f69f2445df4f9b17ad2b417be66c3710"
)

func TestModesNISTVectors(t *testing.T) {
	tests := []struct {
		mode kryptos.BlockMode
		iv   string
		want string
	}{
		{kryptos.ECB, "", "3ad77bb40d7a3660a89ecaf32466ef97f5d3d58503b9699de785895a96fdbaaf43b1cd7f598ece23881b00e3ed0306887b0c785e27e8ad3f8223207104725dd4"},
		{kryptos.CBC, nistIV, "7649abac8119b246cee98e9b12e9197d5086cb9b507219ee95db113a917678b273bed6b8e3c1743b7116e69e222295163ff1caa1681fac09120eca307586e1a7"},
		{kryptos.CFB, nistIV, "3b3fd92eb72dad20333449f8e83cfb4ac8a64537a0b3a93fcde3cdad9f1ce58b26751f67a3cbb140b1808cf187a4f4dfc04b05357c5d1c0eeac4c66f9ff7f2e6"},
		{kryptos.OFB, nistIV, "3b3fd92eb72dad20333449f8e83cfb4a7789508d16918f03f53c52dac54ed8259740051e9c5fecf64344f7a82260edcc304c6528f659c77866a510d9c1d6ae5e"},
		{kryptos.CTR, nistCounter, "874d6191b620e3261bef6864990db6ce9806f66b7970fdff8617187bb9fffdff5ae4df3edbd5d35e5b4f09020db03eab1e031dda2fbe03d1792170a0f3009cee"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.Name(), func(t *testing.T) {
			cfg := &kryptos.CipherConfig{Mode: tt.mode, Padding: kryptos.NoPadding}
			if tt.iv != "" {
				cfg.IV = mustHex(t, tt.iv)
			}
			key := mustHex(t, nistKey)

			params, err := kryptos.EncryptWithKey(kryptos.AES, mustHex(t, nistPlaintext), key, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Ciphertext.String())

			plain, err := kryptos.DecryptWithKey(kryptos.AES, params, key, cfg)
			require.NoError(t, err)
			assert.Equal(t, nistPlaintext, plain.String())
		})
	}
}

func TestCBCMatchesStdlib(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	iv := []byte("fedcba9876543210")
	plain := []byte(strings.Repeat("sixteen byte blk", 9))

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	want := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(want, plain)

	params, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromBytes(plain), kryptos.WordArrayFromBytes(key),
		&kryptos.CipherConfig{IV: kryptos.WordArrayFromBytes(iv), Padding: kryptos.NoPadding})
	require.NoError(t, err)
	assert.Equal(t, want, params.Ciphertext.Bytes())
}

func TestCTRMatchesStdlibWithPartialBlock(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0, 0, 0, 1}
	plain := []byte(strings.Repeat("counter mode ", 11)) // not block aligned

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	want := make([]byte, len(plain))
	cipher.NewCTR(block, iv).XORKeyStream(want, plain)

	params, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromBytes(plain), kryptos.WordArrayFromBytes(key),
		&kryptos.CipherConfig{IV: kryptos.WordArrayFromBytes(iv), Mode: kryptos.CTR, Padding: kryptos.NoPadding})
	require.NoError(t, err)
	assert.Equal(t, want, params.Ciphertext.Bytes())
}

func TestKeystreamModesRoundTripUnaligned(t *testing.T) {
	key := mustHex(t, nistKey)
	iv := mustHex(t, nistIV)
	msg := kryptos.WordArrayFromString("odd length message!")

	for _, mode := range []kryptos.BlockMode{kryptos.CFB, kryptos.OFB, kryptos.CTR} {
		t.Run(mode.Name(), func(t *testing.T) {
			cfg := &kryptos.CipherConfig{IV: iv, Mode: mode, Padding: kryptos.NoPadding}
			params, err := kryptos.EncryptWithKey(kryptos.AES, msg, key, cfg)
			require.NoError(t, err)
			assert.Equal(t, msg.SigBytes, params.Ciphertext.SigBytes)

			plain, err := kryptos.DecryptWithKey(kryptos.AES, params, key, cfg)
			require.NoError(t, err)
			assert.True(t, msg.Equal(plain))
		})
	}
}

func TestModesRequireIV(t *testing.T) {
	key := mustHex(t, nistKey)
	for _, mode := range []kryptos.BlockMode{kryptos.CBC, kryptos.CFB, kryptos.OFB, kryptos.CTR} {
		t.Run(mode.Name(), func(t *testing.T) {
			_, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromString("data"), key,
				&kryptos.CipherConfig{Mode: mode})
			assert.True(t, errors.Is(err, kryptos.ErrIVMissing), "got %v", err)
		})
	}
}

func TestECBIgnoresIV(t *testing.T) {
	key := mustHex(t, nistKey)
	msg := mustHex(t, nistPlaintext)

	a, err := kryptos.EncryptWithKey(kryptos.AES, msg, key, &kryptos.CipherConfig{Mode: kryptos.ECB})
	require.NoError(t, err)
	b, err := kryptos.EncryptWithKey(kryptos.AES, msg, key, &kryptos.CipherConfig{Mode: kryptos.ECB, IV: mustHex(t, nistIV)})
	require.NoError(t, err)
	assert.True(t, a.Ciphertext.Equal(b.Ciphertext))
}

func TestModeIVNotMutated(t *testing.T) {
	iv := mustHex(t, nistIV)
	before := iv.Clone()
	key := mustHex(t, nistKey)

	for _, mode := range []kryptos.BlockMode{kryptos.CBC, kryptos.CFB, kryptos.OFB, kryptos.CTR} {
		_, err := kryptos.EncryptWithKey(kryptos.AES, mustHex(t, nistPlaintext), key,
			&kryptos.CipherConfig{IV: iv, Mode: mode, Padding: kryptos.NoPadding})
		require.NoError(t, err)
		assert.True(t, before.Equal(iv), "%s modified the caller's IV", mode.Name())
	}
}

// xorPrimitive is a toy 2-word block primitive for driving modes directly.
type xorPrimitive struct{ key uint32 }

func (p xorPrimitive) BlockSize() int { return 2 }

func (p xorPrimitive) EncryptBlock(words []uint32, offset int) {
	words[offset] ^= p.key
	words[offset+1] ^= p.key
}

func (p xorPrimitive) DecryptBlock(words []uint32, offset int) { p.EncryptBlock(words, offset) }

func TestModeProcessorsDirect(t *testing.T) {
	prim := xorPrimitive{key: 0x0f0f0f0f}
	iv := []uint32{0x11111111, 0x22222222}

	enc := kryptos.CBC.CreateEncryptor(prim, iv)
	words := []uint32{1, 2, 3, 4}
	require.NoError(t, enc.ProcessBlock(words, 0))
	require.NoError(t, enc.ProcessBlock(words, 2))

	dec := kryptos.CBC.CreateDecryptor(prim, iv)
	require.NoError(t, dec.ProcessBlock(words, 0))
	require.NoError(t, dec.ProcessBlock(words, 2))
	assert.Equal(t, []uint32{1, 2, 3, 4}, words)

	// the IV is copied, not consumed from the caller
	assert.Equal(t, []uint32{0x11111111, 0x22222222}, iv)
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, "ECB", kryptos.ECB.Name())
	assert.Equal(t, "CBC", kryptos.CBC.Name())
	assert.Equal(t, "CFB", kryptos.CFB.Name())
	assert.Equal(t, "OFB", kryptos.OFB.Name())
	assert.Equal(t, "CTR", kryptos.CTR.Name())
}
