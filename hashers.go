// hashers.go: Built-in hash algorithms.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"crypto/md5"  // #nosec G501 -- required for EVP_BytesToKey and OpenSSL interoperability
	"crypto/sha1" // #nosec G505 -- required for PBKDF2 interoperability
	stdsha256 "crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/emmansun/gmsm/sm3"
	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/ripemd160" // #nosec G507 -- legacy digest kept for interoperability
	"golang.org/x/crypto/sha3"
)

// Built-in hash algorithms.
var (
	MD5    = &HashAlgorithm{Name: "MD5", New: md5.New}
	SHA1   = &HashAlgorithm{Name: "SHA1", New: sha1.New}
	SHA224 = &HashAlgorithm{Name: "SHA224", New: stdsha256.New224}
	SHA256 = &HashAlgorithm{Name: "SHA256", New: sha256.New}
	SHA384 = &HashAlgorithm{Name: "SHA384", New: sha512.New384}
	SHA512 = &HashAlgorithm{Name: "SHA512", New: sha512.New}

	// SHA3 is the original Keccak-512 submission, not FIPS 202 SHA3-512.
	// It matches the digest other word-array toolkits publish as "SHA3".
	SHA3 = &HashAlgorithm{Name: "SHA3", New: sha3.NewLegacyKeccak512}

	SHA3_256 = &HashAlgorithm{Name: "SHA3-256", New: func() hash.Hash { return sha3.New256() }}
	SHA3_512 = &HashAlgorithm{Name: "SHA3-512", New: func() hash.Hash { return sha3.New512() }}

	RIPEMD160 = &HashAlgorithm{Name: "RIPEMD160", New: ripemd160.New}
	SM3       = &HashAlgorithm{Name: "SM3", New: sm3.New}
	BLAKE3    = &HashAlgorithm{Name: "BLAKE3", New: func() hash.Hash { return blake3Hash{blake3.New()} }}
)

// blake3Hash exposes the BLAKE3 hasher's native state copy to Hasher.Clone.
type blake3Hash struct {
	*blake3.Hasher
}

func (b blake3Hash) Clone() (hash.Hash, error) {
	return blake3Hash{b.Hasher.Clone()}, nil
}
