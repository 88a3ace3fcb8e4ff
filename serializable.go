// serializable.go: One-shot key-based encryption producing CipherParams.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// Ciphertext is the input of a decryption: either *CipherParams or a
// Formatted string parsed with the configured Formatter.
type Ciphertext interface {
	cipherParams(f Formatter) (*CipherParams, error)
}

// Formatted is a serialized ciphertext, parsed at decryption time.
type Formatted string

func (s Formatted) cipherParams(f Formatter) (*CipherParams, error) {
	return f.Parse(string(s))
}

// EncryptWithKey encrypts message with an explicit key in one call.
//
// Parameters:
//   - algo: The cipher algorithm
//   - message: The plaintext
//   - key: The key
//   - cfg: Optional settings (nil for defaults: CBC, Pkcs7, OpenSSL format)
//
// Returns:
//   - CipherParams carrying the ciphertext, key, IV and the resolved settings
//   - An error if the cipher cannot be created or padding fails
//
// Example:
//
//	params, err := kryptos.EncryptWithKey(kryptos.AES, kryptos.WordArrayFromString("Message"), key,
//		&kryptos.CipherConfig{IV: iv})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(params) // base64 ciphertext
func EncryptWithKey(algo CipherAlgorithm, message, key *WordArray, cfg *CipherConfig) (*CipherParams, error) {
	enc, err := CreateEncryptor(algo, key, cfg)
	if err != nil {
		return nil, err
	}
	ciphertext, err := enc.Finalize(message)
	if err != nil {
		return nil, err
	}
	resolved := enc.Config()
	return &CipherParams{
		Ciphertext: ciphertext,
		Key:        key.Clone(),
		IV:         resolved.IV,
		Algorithm:  algo,
		Mode:       resolved.Mode,
		Padding:    resolved.Padding,
		BlockSize:  algo.BlockSize(),
		Formatter:  resolved.Format,
	}, nil
}

// DecryptWithKey decrypts ciphertext with an explicit key in one call.
//
// A Formatted ciphertext is parsed with cfg.Format (OpenSSL by default).
//
// Example:
//
//	plain, err := kryptos.DecryptWithKey(kryptos.AES, kryptos.Formatted(b64), key,
//		&kryptos.CipherConfig{IV: iv})
func DecryptWithKey(algo CipherAlgorithm, ciphertext Ciphertext, key *WordArray, cfg *CipherConfig) (*WordArray, error) {
	resolved := cfg.withDefaults()
	params, err := parseCiphertext(ciphertext, resolved.Format)
	if err != nil {
		return nil, err
	}
	dec, err := CreateDecryptor(algo, key, &resolved)
	if err != nil {
		return nil, err
	}
	return dec.Finalize(params.Ciphertext)
}

func parseCiphertext(ciphertext Ciphertext, f Formatter) (*CipherParams, error) {
	if ciphertext == nil {
		return nil, newError(ErrFormat, ErrCodeFormat, "ciphertext is nil")
	}
	params, err := ciphertext.cipherParams(f)
	if err != nil {
		return nil, err
	}
	if params == nil || params.Ciphertext == nil {
		return nil, newError(ErrFormat, ErrCodeFormat, "cipher params carry no ciphertext")
	}
	return params, nil
}
