// registry.go: Lookup of algorithms, modes, paddings and KDFs by name.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"fmt"
	"sort"
	"strings"
)

var (
	hashRegistry = map[string]*HashAlgorithm{
		"md5": MD5, "sha1": SHA1, "sha224": SHA224, "sha256": SHA256,
		"sha384": SHA384, "sha512": SHA512, "sha3": SHA3, "keccak512": SHA3,
		"sha3-256": SHA3_256, "sha3-512": SHA3_512, "ripemd160": RIPEMD160,
		"sm3": SM3, "blake3": BLAKE3,
	}

	cipherRegistry = map[string]CipherAlgorithm{
		"aes": AES, "des": DES, "tripledes": TripleDES, "3des": TripleDES,
		"sm4": SM4, "blowfish": Blowfish, "rc4": RC4, "rc4drop": RC4Drop,
		"chacha20": ChaCha20, "zuc": ZUC,
	}

	modeRegistry = map[string]BlockMode{
		"ecb": ECB, "cbc": CBC, "ofb": OFB, "cfb": CFB, "ctr": CTR,
	}

	paddingRegistry = map[string]Padding{
		"pkcs7": Pkcs7, "ansix923": AnsiX923, "iso10126": Iso10126,
		"iso97971": Iso97971, "zeropadding": ZeroPadding, "zero": ZeroPadding,
		"nopadding": NoPadding, "none": NoPadding,
	}

	kdfRegistry = map[string]PasswordKDF{
		"evpkdf": OpenSSLKDF, "openssl": OpenSSLKDF,
		"pbkdf2": OpenSSLPBKDF2,
		"argon2id": &Argon2PasswordKDF{}, "argon2": &Argon2PasswordKDF{},
	}
)

func lookup[T any](kind string, registry map[string]T, name string) (T, error) {
	if v, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return v, nil
	}
	var zero T
	return zero, newError(ErrUnknownAlgorithm, ErrCodeUnknownAlgorithm,
		fmt.Sprintf("unknown %s %q; known: %s", kind, name, strings.Join(names(registry), ", ")))
}

func names[T any](registry map[string]T) []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupHash returns the hash algorithm with the given case-insensitive name.
func LookupHash(name string) (*HashAlgorithm, error) { return lookup("hash", hashRegistry, name) }

// LookupCipher returns the cipher algorithm with the given case-insensitive name.
func LookupCipher(name string) (CipherAlgorithm, error) { return lookup("cipher", cipherRegistry, name) }

// LookupMode returns the block mode with the given case-insensitive name.
func LookupMode(name string) (BlockMode, error) { return lookup("mode", modeRegistry, name) }

// LookupPadding returns the padding with the given case-insensitive name.
func LookupPadding(name string) (Padding, error) { return lookup("padding", paddingRegistry, name) }

// LookupKDF returns the password KDF with the given case-insensitive name.
func LookupKDF(name string) (PasswordKDF, error) { return lookup("kdf", kdfRegistry, name) }
