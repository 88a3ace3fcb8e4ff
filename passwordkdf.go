// passwordkdf.go: Password KDFs deriving a cipher key and IV for password-based encryption.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"fmt"
)

// SaltSize is the salt length in bytes generated for password-based encryption
// and carried by the OpenSSL header.
const SaltSize = 8

// DerivedParams is the output of a PasswordKDF.
type DerivedParams struct {
	Key  *WordArray
	IV   *WordArray
	Salt *WordArray
}

// PasswordKDF derives a cipher key and IV from a password.
//
// keySize and ivSize are in words. A nil salt asks the KDF to generate a
// random one of SaltSize bytes; an empty salt derives without salt.
type PasswordKDF interface {
	Name() string
	Execute(password *WordArray, keySize, ivSize int, salt *WordArray) (*DerivedParams, error)
}

// Built-in password KDFs.
var (
	// OpenSSLKDF is EVP_BytesToKey with MD5 and one iteration, as `openssl enc` uses by default.
	OpenSSLKDF PasswordKDF = &EvpPasswordKDF{Hasher: MD5, Iterations: 1}

	// OpenSSLPBKDF2 matches `openssl enc -pbkdf2`: HMAC-SHA256, 10000 iterations.
	OpenSSLPBKDF2 PasswordKDF = &PBKDF2PasswordKDF{Hasher: SHA256, Iterations: 10000}
)

// EvpPasswordKDF derives key and IV with EvpKDF. Zero fields fall back to MD5 and one iteration.
type EvpPasswordKDF struct {
	Hasher     *HashAlgorithm
	Iterations int
}

func (k *EvpPasswordKDF) Name() string { return "EvpKDF" }

// Execute implements PasswordKDF.
func (k *EvpPasswordKDF) Execute(password *WordArray, keySize, ivSize int, salt *WordArray) (*DerivedParams, error) {
	return executeKDF(keySize, ivSize, salt, func(salt *WordArray, total int) (*WordArray, error) {
		return EvpKDF(password, salt, &EvpKDFParams{KeySize: total, Hasher: k.Hasher, Iterations: k.Iterations})
	})
}

// PBKDF2PasswordKDF derives key and IV with PBKDF2. Zero fields fall back to
// HMAC-SHA256 and 10000 iterations.
type PBKDF2PasswordKDF struct {
	Hasher     *HashAlgorithm
	Iterations int
}

func (k *PBKDF2PasswordKDF) Name() string { return "PBKDF2" }

// Execute implements PasswordKDF.
func (k *PBKDF2PasswordKDF) Execute(password *WordArray, keySize, ivSize int, salt *WordArray) (*DerivedParams, error) {
	hasher := k.Hasher
	if hasher == nil {
		hasher = SHA256
	}
	iterations := k.Iterations
	if iterations == 0 {
		iterations = 10000
	}
	return executeKDF(keySize, ivSize, salt, func(salt *WordArray, total int) (*WordArray, error) {
		return PBKDF2(password, salt, &PBKDF2Params{KeySize: total, Hasher: hasher, Iterations: iterations})
	})
}

// Argon2PasswordKDF derives key and IV with Argon2id. Params nil means the
// Argon2 defaults. Argon2id needs a non-empty password and salt.
type Argon2PasswordKDF struct {
	Params *KDFParams
}

func (k *Argon2PasswordKDF) Name() string { return "Argon2id" }

// Execute implements PasswordKDF.
func (k *Argon2PasswordKDF) Execute(password *WordArray, keySize, ivSize int, salt *WordArray) (*DerivedParams, error) {
	return executeKDF(keySize, ivSize, salt, func(salt *WordArray, total int) (*WordArray, error) {
		key, err := DeriveKey(password.Bytes(), salt.Bytes(), total*4, k.Params)
		if err != nil {
			return nil, wrapError(ErrInvalidKDFParams, err, ErrCodeInvalidKDFParams, "argon2id derivation failed")
		}
		return WordArrayFromBytes(key), nil
	})
}

// executeKDF generates a salt when needed, derives keySize+ivSize words and splits them.
func executeKDF(keySize, ivSize int, salt *WordArray, derive func(salt *WordArray, total int) (*WordArray, error)) (*DerivedParams, error) {
	if keySize <= 0 || ivSize < 0 {
		return nil, newError(ErrInvalidKDFParams, ErrCodeInvalidKDFParams,
			fmt.Sprintf("invalid key size %d or IV size %d", keySize, ivSize))
	}
	if salt == nil {
		var err error
		salt, err = RandomWordArray(SaltSize)
		if err != nil {
			return nil, err
		}
	} else {
		salt = salt.Clone()
	}

	derived, err := derive(salt, keySize+ivSize)
	if err != nil {
		return nil, err
	}
	words := derived.wordsN(keySize + ivSize)
	derived.Zeroize()

	iv := NewWordArray(words[keySize:], ivSize*4)
	return &DerivedParams{
		Key:  NewWordArray(words[:keySize:keySize], keySize*4),
		IV:   iv,
		Salt: salt,
	}, nil
}
