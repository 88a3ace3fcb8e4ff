// Package kryptos provides a word-oriented toolkit of hashes, HMAC, block and
// stream ciphers, block modes, paddings and key derivation, with encryption
// that interoperates with `openssl enc`.
//
// This package offers:
//   - WordArray: byte strings as big-endian 32-bit words with a significant-byte count
//   - Encoders: Hex, Base64, Base64URL, Latin1, Utf8 and Utf16 (big and little endian)
//   - Streaming hashers and HMAC over MD5, SHA-1, SHA-2, SHA-3/Keccak, RIPEMD-160, SM3 and BLAKE3
//   - Block ciphers AES, DES, TripleDES, SM4 and Blowfish with ECB, CBC, CFB, OFB and CTR
//   - Paddings Pkcs7, AnsiX923, Iso10126, Iso97971, ZeroPadding and NoPadding
//   - Stream ciphers RC4, RC4Drop, ChaCha20 and ZUC
//   - EvpKDF (OpenSSL EVP_BytesToKey), PBKDF2, Argon2id and HKDF
//   - Password-based encryption in the OpenSSL "Salted__" format, as strings or streams
//
// # Quick Start
//
// Password-based encryption compatible with `openssl enc -aes-256-cbc -md md5 -a`:
//
//	ciphertext, err := kryptos.Encrypt("sensitive data", "passphrase")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ciphertext) // U2FsdGVkX1...
//
//	plaintext, err := kryptos.Decrypt(ciphertext, "passphrase")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(plaintext) // sensitive data
//
// # Hashing and HMAC
//
//	digest := kryptos.SHA256.Sum(kryptos.WordArrayFromString("abc"))
//	fmt.Println(digest) // ba7816bf8f01cfea...
//
//	h := kryptos.SHA256.NewHasher()
//	h.UpdateString("part one, ")
//	h.UpdateString("part two")
//	fmt.Println(h.Finalize(nil))
//
//	tag := kryptos.SHA256.HMAC(kryptos.WordArrayFromString("message"), kryptos.WordArrayFromString("key"))
//
// Hasher and HMAC implement io.Writer, so files can be hashed with io.Copy.
//
// # Ciphers, Modes and Padding
//
// Every cipher operation takes an optional *CipherConfig. Zero fields mean
// the package defaults: CBC, Pkcs7, the OpenSSL formatter and the OpenSSL KDF.
//
//	key, _ := kryptos.Hex.Parse("000102030405060708090a0b0c0d0e0f")
//	iv, _ := kryptos.Hex.Parse("101112131415161718191a1b1c1d1e1f")
//
//	params, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromString("Message"), key,
//		&kryptos.CipherConfig{IV: iv, Mode: kryptos.CTR, Padding: kryptos.NoPadding})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(params.Ciphertext)
//
// For incremental input create a Cipher, call Process any number of times and
// Finalize once:
//
//	enc, _ := kryptos.CreateEncryptor(kryptos.AES, key, &kryptos.CipherConfig{IV: iv})
//	part1, _ := enc.Process(chunk1)
//	part2, _ := enc.Finalize(chunk2)
//
// # Key Derivation
//
//	key, err := kryptos.PBKDF2(kryptos.WordArrayFromString("password"), salt,
//		&kryptos.PBKDF2Params{KeySize: 8, Hasher: kryptos.SHA256, Iterations: 10000})
//
// Password-based encryption selects its KDF through CipherConfig.KDF:
// OpenSSLKDF (default), OpenSSLPBKDF2 or an Argon2PasswordKDF.
//
// # Streaming
//
// NewOpenSSLEncryptWriter and NewOpenSSLDecryptReader read and write the
// binary form of `openssl enc` without holding the message in memory.
//
// # Error Handling
//
// All functions return standard Go errors. Every error wraps one of the
// package sentinels, usable with errors.Is, together with a rich error from
// github.com/agilira/go-errors carrying a KRYPTOS_* code:
//
//	plain, err := kryptos.DecryptBytes(ciphertext, password)
//	if err != nil {
//		if errors.Is(err, kryptos.ErrInvalidPadding) {
//			// wrong password or corrupt data
//		} else if errors.Is(err, kryptos.ErrFormat) {
//			// not an OpenSSL message
//		}
//	}
//
// Advisory events, such as an explicit IV being ignored by password-based
// encryption, are never errors. They are sent to CipherConfig.Diagnostics and
// recorded on CipherParams.Diagnostics.
//
// # Security Considerations
//
// The OpenSSL format and the legacy modes carry no authentication: a wrong
// password is only detected through padding, and tampering is not detected
// at all. MD5, SHA-1, DES, RC4 and EvpKDF with one iteration are provided for
// interoperability with existing data. New designs should prefer PBKDF2 or
// Argon2id with many iterations and verify ciphertexts with an HMAC.
//
// Hashers, HMACs and Ciphers are not safe for concurrent use. Algorithm,
// mode, padding, formatter and KDF values are immutable and may be shared.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package kryptos
