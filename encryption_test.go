// encryption_test.go: Test cases for the password string helpers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/kryptos"
)

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"Empty string", ""},
		{"Short string", "hello"},
		{"Exactly one block", "0123456789abcdef"},
		{"Unicode", "héllo wörld 🔐"},
		{"Long string", strings.Repeat("long plaintext ", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := kryptos.Encrypt(tt.plaintext, "passphrase")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ciphertext, "U2FsdGVkX1"))

			raw, err := base64.StdEncoding.DecodeString(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, 0, (len(raw)-16)%16)
			assert.Greater(t, len(raw)-16, len(tt.plaintext))

			plaintext, err := kryptos.Decrypt(ciphertext, "passphrase")
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestEncryptBytesBinary(t *testing.T) {
	data := []byte{0x00, 0xff, 0x80, 0x7f, 0x00, 0x01}
	ciphertext, err := kryptos.EncryptBytes(data, "pw")
	require.NoError(t, err)

	plain, err := kryptos.DecryptBytes(ciphertext, "pw")
	require.NoError(t, err)
	assert.Equal(t, data, plain)
}

func TestEncryptIsRandomized(t *testing.T) {
	a, err := kryptos.Encrypt("same input", "pw")
	require.NoError(t, err)
	b, err := kryptos.Encrypt("same input", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptOpenSSLCompatible(t *testing.T) {
	salt := []byte("fixedslt")
	msg := opensslEncrypt(t, []byte("from the openssl command line"), []byte("pw"), salt)

	plain, err := kryptos.Decrypt(msg, "pw")
	require.NoError(t, err)
	assert.Equal(t, "from the openssl command line", plain)
}

func TestDecryptBytesErrors(t *testing.T) {
	valid, err := kryptos.Encrypt("payload", "pw")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Invalid base64", "%%%", kryptos.ErrFormat},
		{"Truncated header", base64.StdEncoding.EncodeToString([]byte("Salted__abc")), kryptos.ErrCiphertextShort},
		{"Not block aligned", valid[:len(valid)-8], kryptos.ErrCiphertextNotAligned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kryptos.DecryptBytes(tt.input, "pw")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecryptRejectsInvalidUTF8(t *testing.T) {
	ciphertext, err := kryptos.EncryptBytes([]byte{0xff, 0xfe, 0xfd}, "pw")
	require.NoError(t, err)

	_, err = kryptos.Decrypt(ciphertext, "pw")
	assert.True(t, errors.Is(err, kryptos.ErrMalformedText))
}
