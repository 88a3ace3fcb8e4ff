// encryption.go: Password-based string encryption compatible with `openssl enc -aes-256-cbc -a`.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// EncryptBytes encrypts plaintext with a password using AES-256-CBC.
//
// Key and IV are derived with OpenSSLKDF from the password and a random
// 8-byte salt. The result is the base64 OpenSSL format and can be decrypted
// with `openssl enc -d -aes-256-cbc -md md5 -a`.
//
// Parameters:
//   - plaintext: The byte slice to encrypt (can be empty)
//   - password: The password (can be empty, though it should not be)
//
// Returns:
//   - A base64-encoded "Salted__" message
//   - An error if the random source or the cipher fails
//
// Example:
//
//	ciphertext, err := kryptos.EncryptBytes([]byte("sensitive binary data"), "passphrase")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("Encrypted:", ciphertext) // U2FsdGVkX1...
func EncryptBytes(plaintext []byte, password string) (string, error) {
	params, err := EncryptWithPassword(AES, WordArrayFromBytes(plaintext), WordArrayFromString(password), nil)
	if err != nil {
		return "", err
	}
	defer params.Key.Zeroize()
	return params.Stringify(OpenSSL)
}

// DecryptBytes decrypts a message produced by EncryptBytes or by
// `openssl enc -aes-256-cbc -md md5 -a`.
//
// Parameters:
//   - encryptedText: The base64 OpenSSL message
//   - password: The password used for encryption
//
// Returns:
//   - The decrypted plaintext as a byte slice
//   - ErrFormat, ErrCiphertextShort, ErrCiphertextNotAligned or
//     ErrInvalidPadding when the message is corrupt or the password wrong
//
// A wrong password is detected only through the padding check and is
// occasionally accepted with garbage output; the format carries no MAC.
func DecryptBytes(encryptedText string, password string) ([]byte, error) {
	plain, err := DecryptWithPassword(AES, Formatted(encryptedText), WordArrayFromString(password), nil)
	if err != nil {
		return nil, err
	}
	return plain.Bytes(), nil
}

// Encrypt encrypts a string with a password. See EncryptBytes.
//
// Example:
//
//	ciphertext, err := kryptos.Encrypt("sensitive data", "passphrase")
func Encrypt(plaintext, password string) (string, error) {
	return EncryptBytes([]byte(plaintext), password)
}

// Decrypt decrypts a message produced by Encrypt. The plaintext must be valid UTF-8.
//
// Example:
//
//	plaintext, err := kryptos.Decrypt(ciphertext, "passphrase")
func Decrypt(encryptedText, password string) (string, error) {
	plain, err := DecryptWithPassword(AES, Formatted(encryptedText), WordArrayFromString(password), nil)
	if err != nil {
		return "", err
	}
	return plain.ToString(Utf8)
}
