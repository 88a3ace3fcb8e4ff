// password_test.go: Test cases for password-based encryption and the password KDFs.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/kryptos"
)

// opensslEncrypt reproduces `openssl enc -aes-256-cbc -md md5 -S salt -a` with the stdlib.
func opensslEncrypt(t *testing.T, plain, password, salt []byte) string {
	t.Helper()
	keyIV := evpBytesToKey(password, salt, 48, 1)
	block, err := aes.NewCipher(keyIV[:32])
	require.NoError(t, err)

	padded := pkcs7(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, keyIV[32:]).CryptBlocks(out, padded)

	msg := append([]byte("Salted__"), salt...)
	return base64.StdEncoding.EncodeToString(append(msg, out...))
}

func TestEncryptWithPasswordMatchesOpenSSLPipeline(t *testing.T) {
	salt := []byte{0xa1, 0xb2, 0xc3, 0xd4, 0xe5, 0xf6, 0x07, 0x18}
	cfg := &kryptos.CipherConfig{Salt: kryptos.WordArrayFromBytes(salt)}

	params, err := kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("Message"),
		kryptos.WordArrayFromString("Secret Passphrase"), cfg)
	require.NoError(t, err)

	want := opensslEncrypt(t, []byte("Message"), []byte("Secret Passphrase"), salt)
	assert.Equal(t, want, params.String())

	keyIV := evpBytesToKey([]byte("Secret Passphrase"), salt, 48, 1)
	assert.Equal(t, keyIV[:32], params.Key.Bytes())
	assert.Equal(t, keyIV[32:], params.IV.Bytes())
	assert.Equal(t, salt, params.Salt.Bytes())
	assert.Equal(t, kryptos.CBC, params.Mode)
	assert.Equal(t, kryptos.Pkcs7, params.Padding)
	assert.Equal(t, 4, params.BlockSize)
}

func TestDecryptWithPasswordOpenSSLMessage(t *testing.T) {
	salt := []byte("8bytesal")
	msg := opensslEncrypt(t, []byte("interoperable plaintext"), []byte("pw"), salt)

	plain, err := kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(msg), kryptos.WordArrayFromString("pw"), nil)
	require.NoError(t, err)
	assert.Equal(t, "interoperable plaintext", string(plain.Bytes()))
}

func TestPasswordRoundTripRandomSalt(t *testing.T) {
	password := kryptos.WordArrayFromString("correct horse battery staple")
	msg := kryptos.WordArrayFromString("random salt every time")

	a, err := kryptos.EncryptWithPassword(kryptos.AES, msg, password, nil)
	require.NoError(t, err)
	b, err := kryptos.EncryptWithPassword(kryptos.AES, msg, password, nil)
	require.NoError(t, err)
	assert.Equal(t, kryptos.SaltSize, a.Salt.SigBytes)
	assert.False(t, a.Salt.Equal(b.Salt))
	assert.NotEqual(t, a.String(), b.String())

	for _, p := range []*kryptos.CipherParams{a, b} {
		plain, err := kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(p.String()), password, nil)
		require.NoError(t, err)
		assert.True(t, msg.Equal(plain))
	}
}

func TestPasswordNoSalt(t *testing.T) {
	password := kryptos.WordArrayFromString("pw")
	cfg := &kryptos.CipherConfig{Salt: kryptos.NewWordArray(nil, 0)}

	params, err := kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("no salt"), password, cfg)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix([]byte(params.String()), []byte("U2FsdGVk")))

	plain, err := kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(params.String()), password, nil)
	require.NoError(t, err)
	assert.Equal(t, "no salt", string(plain.Bytes()))
}

func TestPasswordExplicitIVIsIgnored(t *testing.T) {
	var got []kryptos.Diagnostic
	cfg := &kryptos.CipherConfig{
		IV:          mustHex(t, nistIV),
		Salt:        mustHex(t, "0102030405060708"),
		Diagnostics: func(d kryptos.Diagnostic) { got = append(got, d) },
	}
	params, err := kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("m"), kryptos.WordArrayFromString("pw"), cfg)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, kryptos.DiagIVIgnored, got[0].Code)
	assert.False(t, got[0].Time.IsZero())
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, kryptos.DiagIVIgnored, params.Diagnostics[0].Code)
	assert.NotEqual(t, nistIV, params.IV.String())

	// without an IV nothing is reported
	cfg.IV = nil
	got = nil
	params, err = kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("m"), kryptos.WordArrayFromString("pw"), cfg)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, params.Diagnostics)
}

func TestDecryptWithPasswordReportsIgnoredIV(t *testing.T) {
	password := kryptos.WordArrayFromString("pw")
	params, err := kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("decrypt side"), password,
		&kryptos.CipherConfig{Salt: mustHex(t, "0102030405060708")})
	require.NoError(t, err)

	var got []kryptos.Diagnostic
	cfg := &kryptos.CipherConfig{
		IV:          mustHex(t, nistIV),
		Diagnostics: func(d kryptos.Diagnostic) { got = append(got, d) },
	}
	plain, err := kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(params.String()), password, cfg)
	require.NoError(t, err)
	assert.Equal(t, "decrypt side", string(plain.Bytes()))
	require.Len(t, got, 1)
	assert.Equal(t, kryptos.DiagIVIgnored, got[0].Code)

	cfg.IV = nil
	got = nil
	_, err = kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(params.String()), password, cfg)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPasswordWrongPassword(t *testing.T) {
	params, err := kryptos.EncryptWithPassword(kryptos.AES, kryptos.WordArrayFromString("secret"),
		kryptos.WordArrayFromString("right"), &kryptos.CipherConfig{Salt: mustHex(t, "0001020304050607")})
	require.NoError(t, err)

	plain, err := kryptos.DecryptWithPassword(kryptos.AES, params, kryptos.WordArrayFromString("wrong"), nil)
	if err == nil {
		// a wrong key passes the padding check with probability about 1/256
		assert.NotEqual(t, "secret", string(plain.Bytes()))
		return
	}
	assert.True(t, errors.Is(err, kryptos.ErrInvalidPadding))
}

func TestPasswordKDFs(t *testing.T) {
	kdfs := []kryptos.PasswordKDF{
		kryptos.OpenSSLKDF,
		kryptos.OpenSSLPBKDF2,
		&kryptos.EvpPasswordKDF{Hasher: kryptos.SHA256, Iterations: 3},
		&kryptos.PBKDF2PasswordKDF{Iterations: 100},
		&kryptos.Argon2PasswordKDF{Params: kryptos.FastKDFParams()},
	}
	password := kryptos.WordArrayFromString("pw")
	msg := kryptos.WordArrayFromString("derived with several KDFs")

	for _, kdf := range kdfs {
		t.Run(kdf.Name(), func(t *testing.T) {
			cfg := &kryptos.CipherConfig{KDF: kdf}
			params, err := kryptos.EncryptWithPassword(kryptos.AES, msg, password, cfg)
			require.NoError(t, err)

			plain, err := kryptos.DecryptWithPassword(kryptos.AES, kryptos.Formatted(params.String()), password, cfg)
			require.NoError(t, err)
			assert.True(t, msg.Equal(plain))
		})
	}
}

func TestPBKDF2PasswordKDFMatchesPBKDF2(t *testing.T) {
	salt := mustHex(t, "0102030405060708")
	derived, err := kryptos.OpenSSLPBKDF2.Execute(kryptos.WordArrayFromString("pw"), 8, 4, salt)
	require.NoError(t, err)

	raw, err := kryptos.PBKDF2(kryptos.WordArrayFromString("pw"), salt,
		&kryptos.PBKDF2Params{KeySize: 12, Hasher: kryptos.SHA256, Iterations: 10000})
	require.NoError(t, err)

	assert.Equal(t, raw.Bytes()[:32], derived.Key.Bytes())
	assert.Equal(t, raw.Bytes()[32:], derived.IV.Bytes())
	assert.True(t, salt.Equal(derived.Salt))
}

func TestPasswordKDFExecuteGeneratesSalt(t *testing.T) {
	derived, err := kryptos.OpenSSLKDF.Execute(kryptos.WordArrayFromString("pw"), 8, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, kryptos.SaltSize, derived.Salt.SigBytes)
	assert.Equal(t, 32, derived.Key.SigBytes)
	assert.Equal(t, 16, derived.IV.SigBytes)
}

func TestPasswordKDFExecuteInvalidSizes(t *testing.T) {
	_, err := kryptos.OpenSSLKDF.Execute(kryptos.WordArrayFromString("pw"), 0, 4, nil)
	assert.True(t, errors.Is(err, kryptos.ErrInvalidKDFParams))
}

func TestArgon2PasswordKDFNeedsSalt(t *testing.T) {
	kdf := &kryptos.Argon2PasswordKDF{Params: kryptos.FastKDFParams()}
	_, err := kdf.Execute(kryptos.WordArrayFromString("pw"), 8, 4, kryptos.NewWordArray(nil, 0))
	assert.True(t, errors.Is(err, kryptos.ErrInvalidKDFParams))
}

func TestPasswordStreamCipher(t *testing.T) {
	password := kryptos.WordArrayFromString("pw")
	msg := kryptos.WordArrayFromString("RC4 has no IV")

	params, err := kryptos.EncryptWithPassword(kryptos.RC4, msg, password, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, params.IV.SigBytes)

	plain, err := kryptos.DecryptWithPassword(kryptos.RC4, kryptos.Formatted(params.String()), password, nil)
	require.NoError(t, err)
	assert.True(t, msg.Equal(plain))
}
