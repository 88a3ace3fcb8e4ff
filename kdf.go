// kdf.go: Key derivation: EvpKDF, PBKDF2, Argon2id and HKDF.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"fmt"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/argon2"
)

// Default parameters for the word-array KDFs.
const (
	// DefaultKDFKeySize is the derived key size in words (128 bits).
	DefaultKDFKeySize = 4

	// DefaultKDFIterations is the iteration count of EvpKDF and PBKDF2.
	DefaultKDFIterations = 1
)

// Default Argon2 parameters for key derivation.
// These values provide a good balance between security and performance.
const (
	// DefaultTime is the default number of iterations for Argon2id.
	// Higher values increase security but also computation time.
	DefaultTime = 3

	// DefaultMemory is the default memory usage in MB for Argon2id.
	// Higher values increase security against memory-based attacks.
	DefaultMemory = 64

	// DefaultThreads is the default number of threads for Argon2id.
	// Should not exceed the number of CPU cores.
	DefaultThreads = 4
)

// EvpKDFParams configures EvpKDF.
//
// If a field is zero, the default is used: 4 words, MD5, one iteration.
// These defaults reproduce OpenSSL's EVP_BytesToKey as used by `openssl enc`.
type EvpKDFParams struct {
	// KeySize is the derived length in words.
	KeySize int `json:"key_size,omitempty"`

	// Hasher is the hash algorithm. If nil, MD5 is used.
	Hasher *HashAlgorithm `json:"-"`

	// Iterations is the number of hash rounds per block.
	Iterations int `json:"iterations,omitempty"`
}

// PBKDF2Params configures PBKDF2.
//
// If a field is zero, the default is used: 4 words, HMAC-SHA1, one iteration.
type PBKDF2Params struct {
	// KeySize is the derived length in words.
	KeySize int `json:"key_size,omitempty"`

	// Hasher is the HMAC hash algorithm. If nil, SHA1 is used.
	Hasher *HashAlgorithm `json:"-"`

	// Iterations is the PBKDF2 iteration count.
	Iterations int `json:"iterations,omitempty"`
}

// resolveKDF applies defaults and validates the shared KDF parameters.
func resolveKDF(keySize, iterations int, hasher, defHasher *HashAlgorithm) (int, int, *HashAlgorithm, error) {
	if keySize < 0 || iterations < 0 {
		return 0, 0, nil, newError(ErrInvalidKDFParams, ErrCodeInvalidKDFParams,
			fmt.Sprintf("key size %d and iterations %d must not be negative", keySize, iterations))
	}
	if keySize == 0 {
		keySize = DefaultKDFKeySize
	}
	if iterations == 0 {
		iterations = DefaultKDFIterations
	}
	if hasher == nil {
		hasher = defHasher
	}
	return keySize, iterations, hasher, nil
}

// EvpKDF derives a key from a password and salt the way OpenSSL's
// EVP_BytesToKey does.
//
// Each block is hash(previous block || password || salt) rehashed
// Iterations-1 more times; blocks are concatenated until KeySize words are
// available.
//
// Parameters:
//   - password: The password (may be empty)
//   - salt: The salt (nil for none)
//   - params: Optional parameters (nil for defaults)
//
// Returns:
//   - The derived key, exactly KeySize words
//   - ErrInvalidKDFParams for negative sizes or iteration counts
//
// Example:
//
//	key, err := kryptos.EvpKDF(kryptos.WordArrayFromString("secret"), salt,
//		&kryptos.EvpKDFParams{KeySize: 8 + 4})
func EvpKDF(password, salt *WordArray, params *EvpKDFParams) (*WordArray, error) {
	var p EvpKDFParams
	if params != nil {
		p = *params
	}
	keySize, iterations, algo, err := resolveKDF(p.KeySize, p.Iterations, p.Hasher, MD5)
	if err != nil {
		return nil, err
	}

	hasher := algo.NewHasher()
	derived := NewWordArray(nil, 0)
	var block *WordArray
	for derived.SigBytes < keySize*4 {
		if block != nil {
			hasher.Update(block)
		}
		block = hasher.Update(password).Finalize(salt)
		hasher.Reset()

		for i := 1; i < iterations; i++ {
			block = hasher.Finalize(block)
			hasher.Reset()
		}
		derived.Concat(block)
	}
	derived.SigBytes = keySize * 4
	return derived.Clamp(), nil
}

// PBKDF2 derives a key with PBKDF2 (RFC 8018) over HMAC.
//
// The HMAC key schedule is computed once and re-primed for every block and
// iteration.
//
// Parameters:
//   - password: The password (used as the HMAC key)
//   - salt: The salt
//   - params: Optional parameters (nil for defaults)
//
// Returns:
//   - The derived key, exactly KeySize words
//   - ErrInvalidKDFParams for negative sizes or iteration counts
//
// Example:
//
//	key, err := kryptos.PBKDF2(password, salt, &kryptos.PBKDF2Params{
//		KeySize:    8,
//		Hasher:     kryptos.SHA256,
//		Iterations: 10000,
//	})
func PBKDF2(password, salt *WordArray, params *PBKDF2Params) (*WordArray, error) {
	var p PBKDF2Params
	if params != nil {
		p = *params
	}
	keySize, iterations, algo, err := resolveKDF(p.KeySize, p.Iterations, p.Hasher, SHA1)
	if err != nil {
		return nil, err
	}

	mac := NewHMAC(algo, password)
	derived := NewWordArray(nil, 0)
	blockIndex := NewWordArray([]uint32{1}, 4)

	for derived.SigBytes < keySize*4 {
		block := mac.Update(salt).Finalize(blockIndex)
		mac.Reset()

		intermediate := block
		for i := 1; i < iterations; i++ {
			intermediate = mac.Finalize(intermediate)
			mac.Reset()
			for j := range block.Words {
				block.Words[j] ^= intermediate.Words[j]
			}
		}

		derived.Concat(block)
		blockIndex.Words[0]++
	}
	derived.SigBytes = keySize * 4
	return derived.Clamp(), nil
}

// KDFParams defines custom parameters for Argon2id key derivation.
//
// If a field is zero, the library's secure default will be used.
// This allows for flexible configuration while maintaining security.
//
// Example:
//
//	params := &kryptos.KDFParams{
//		Time:    4,    // 4 iterations
//		Memory:  128,  // 128 MB memory
//		Threads: 2,    // 2 threads
//	}
//	key, err := kryptos.DeriveKey(password, salt, 32, params)
type KDFParams struct {
	// Time is the number of iterations for Argon2id.
	// If zero, DefaultTime is used.
	Time uint32 `json:"time,omitempty" yaml:"time,omitempty"`

	// Memory is the memory usage in MB for Argon2id.
	// If zero, DefaultMemory is used.
	Memory uint32 `json:"memory,omitempty" yaml:"memory,omitempty"`

	// Threads is the number of threads for Argon2id.
	// If zero, DefaultThreads is used.
	Threads uint8 `json:"threads,omitempty" yaml:"threads,omitempty"`
}

// FastKDFParams returns Argon2id parameters optimized for speed.
//
// Suitable for tests and interactive tools where the threat model allows
// a reduced work factor.
//
// Parameters: Time=1, Memory=32MB, Threads=2
func FastKDFParams() *KDFParams {
	return &KDFParams{Time: 1, Memory: 32, Threads: 2}
}

// HighSecurityKDFParams returns Argon2id parameters for long-lived secrets.
//
// Parameters: Time=5, Memory=128MB, Threads=4
func HighSecurityKDFParams() *KDFParams {
	return &KDFParams{Time: 5, Memory: 128, Threads: 4}
}

// DeriveKey derives a key from a password and salt using Argon2id.
//
// Parameters:
//   - password: The password to derive the key from (cannot be empty)
//   - salt: The salt to use for key derivation (cannot be empty, should be random)
//   - keyLen: The desired length of the derived key in bytes (must be positive)
//   - params: Custom Argon2id parameters (nil to use secure defaults)
//
// Returns:
//   - The derived key as a byte slice
//   - An error if key derivation fails
//
// Example:
//
//	key, err := kryptos.DeriveKey([]byte("my-secure-password"), salt, 32, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// If params is nil, secure defaults are used (Time: 3, Memory: 64MB, Threads: 4).
func DeriveKey(password, salt []byte, keyLen int, params *KDFParams) ([]byte, error) {
	if len(password) == 0 {
		return nil, goerrors.New("EMPTY_PASSWORD", "password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, goerrors.New("EMPTY_SALT", "salt cannot be empty")
	}
	if keyLen <= 0 {
		return nil, goerrors.New("INVALID_KEYLEN", "key length must be positive")
	}

	time := uint32(DefaultTime)
	memory := uint32(DefaultMemory * 1024)
	threads := uint8(DefaultThreads)

	if params != nil {
		if params.Time > 0 {
			time = params.Time
		}
		if params.Memory > 0 {
			memory = params.Memory * 1024
		}
		if params.Threads > 0 {
			threads = params.Threads
		}
	}

	// gosec G115: keyLen is validated positive above
	key := argon2.IDKey(password, salt, time, memory, threads, uint32(keyLen)) // #nosec G115
	return key, nil
}

// DeriveKeyDefault derives a key using Argon2id with secure default parameters.
func DeriveKeyDefault(password, salt []byte, keyLen int) ([]byte, error) {
	return DeriveKey(password, salt, keyLen, nil)
}

// DeriveKeyHKDF derives a key using HKDF-SHA256 (RFC 5869).
//
// HKDF suits high-entropy input such as a random master key; use DeriveKey
// or PBKDF2 for passwords.
//
// Parameters:
//   - masterKey: The input keying material (IKM)
//   - salt: Optional salt value (nil means a zero-filled salt)
//   - info: Optional context info (can be nil)
//   - keyLen: Length of output key in bytes, at most 255*32
//
// Example:
//
//	subKey, err := kryptos.DeriveKeyHKDF(masterKey, nil, []byte("file-key-v1"), 32)
func DeriveKeyHKDF(masterKey, salt, info []byte, keyLen int) ([]byte, error) {
	if len(masterKey) == 0 {
		return nil, goerrors.New("INVALID_MASTER_KEY", "master key cannot be empty")
	}
	if keyLen <= 0 {
		return nil, goerrors.New("INVALID_KEYLEN", "key length must be positive")
	}
	hashLen := SHA256.NewHasher().Size()
	if keyLen > 255*hashLen {
		return nil, goerrors.New("INVALID_KEYLEN", "key length too large for HKDF-SHA256")
	}

	if salt == nil {
		saltBuf := getBuffer(hashLen)
		defer putBuffer(saltBuf)
		salt = (*saltBuf)[:hashLen]
		clearBuffer(salt)
	}

	prk := hkdfExtract(SHA256, WordArrayFromBytes(salt), WordArrayFromBytes(masterKey))
	okm := hkdfExpand(SHA256, prk, WordArrayFromBytes(info), keyLen)
	return okm, nil
}

// hkdfExtract computes PRK = HMAC(salt, IKM).
func hkdfExtract(algo *HashAlgorithm, salt, ikm *WordArray) *WordArray {
	return algo.HMAC(ikm, salt)
}

// hkdfExpand computes T(1) || T(2) || ... truncated to length bytes.
func hkdfExpand(algo *HashAlgorithm, prk, info *WordArray, length int) []byte {
	mac := NewHMAC(algo, prk)
	okm := getDynamicBuffer()
	defer func() {
		clearBuffer(okm[:cap(okm)])
		putDynamicBuffer(okm)
	}()

	var prev *WordArray
	for counter := byte(1); len(okm) < length; counter++ {
		mac.Reset()
		if prev != nil {
			mac.Update(prev)
		}
		mac.Update(info)
		prev = mac.Finalize(WordArrayFromBytes([]byte{counter}))
		okm = append(okm, prev.Bytes()...)
	}

	out := make([]byte, length)
	copy(out, okm)
	return out
}
