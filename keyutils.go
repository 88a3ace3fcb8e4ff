// keyutils.go: Key utilities for random generation, zeroization, and fingerprinting.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomWordArray returns nBytes bytes from the cryptographically secure
// random source.
//
// Parameters:
//   - nBytes: The number of random bytes (must not be negative)
//
// Returns:
//   - A WordArray with SigBytes == nBytes
//   - ErrRandom if the random source fails
//
// Example:
//
//	salt, err := kryptos.RandomWordArray(kryptos.SaltSize)
//	if err != nil {
//		log.Fatal(err)
//	}
func RandomWordArray(nBytes int) (*WordArray, error) {
	if nBytes < 0 {
		return nil, newError(ErrRandom, ErrCodeRandom, fmt.Sprintf("invalid random length %d", nBytes))
	}
	buf := make([]byte, nBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, wrapError(ErrRandom, err, ErrCodeRandom, "failed to read random bytes")
	}
	out := WordArrayFromBytes(buf)
	Zeroize(buf)
	return out, nil
}

// GenerateKey returns a random key of the algorithm's KeySize.
//
// Example:
//
//	key, err := kryptos.GenerateKey(kryptos.AES) // 32 bytes
func GenerateKey(algo CipherAlgorithm) (*WordArray, error) {
	return RandomWordArray(algo.KeySize() * 4)
}

// GenerateIV returns a random IV of the algorithm's IVSize.
// It returns an empty WordArray for algorithms without an IV.
func GenerateIV(algo CipherAlgorithm) (*WordArray, error) {
	return RandomWordArray(algo.IVSize() * 4)
}

// Zeroize securely wipes a byte slice from memory.
//
// This function overwrites all bytes in the slice with zeros to prevent
// sensitive data from remaining in memory after use.
//
// Note: This function modifies the original slice in place.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GetKeyFingerprint generates a short identifier for a key.
//
// The fingerprint is the first 8 bytes of the key's SHA-256 digest as 16 hex
// characters. It identifies keys in logs and CLI output without exposing
// them. An empty key yields an empty string.
//
// Example:
//
//	fmt.Println("Key fingerprint:", kryptos.GetKeyFingerprint(key)) // e.g. "a1b2c3d4e5f67890"
func GetKeyFingerprint(key *WordArray) string {
	if key == nil || key.SigBytes == 0 {
		return ""
	}
	digest := SHA256.Sum(key).Bytes()
	return fmt.Sprintf("%016x", digest[:8])
}
