// password.go: Password-based encryption compatible with `openssl enc`.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// EncryptWithPassword derives key and IV from password and encrypts message.
//
// The KDF (OpenSSLKDF by default) derives algo.KeySize()+algo.IVSize() words
// from the password and a salt. cfg.Salt fixes the salt; nil generates
// SaltSize random bytes and an empty salt derives without one, like
// `openssl enc -nosalt`. An IV in cfg is replaced by the derived IV and
// reported as a DiagIVIgnored diagnostic.
//
// Parameters:
//   - algo: The cipher algorithm
//   - message: The plaintext
//   - password: The password
//   - cfg: Optional settings (nil for defaults)
//
// Returns:
//   - CipherParams carrying ciphertext, derived key, IV and salt
//   - An error if derivation or encryption fails
//
// Example:
//
//	params, err := kryptos.EncryptWithPassword(kryptos.AES,
//		kryptos.WordArrayFromString("Message"), kryptos.WordArrayFromString("Secret Passphrase"), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(params) // U2FsdGVkX1...
func EncryptWithPassword(algo CipherAlgorithm, message, password *WordArray, cfg *CipherConfig) (*CipherParams, error) {
	resolved := cfg.withDefaults()

	diags := resolved.ignoreExplicitIV()

	derived, err := resolved.KDF.Execute(password, algo.KeySize(), algo.IVSize(), resolved.Salt)
	if err != nil {
		return nil, err
	}
	resolved.IV = derived.IV

	params, err := EncryptWithKey(algo, message, derived.Key, &resolved)
	if err != nil {
		return nil, err
	}
	params.Salt = derived.Salt
	params.Diagnostics = diags
	return params, nil
}

// DecryptWithPassword parses ciphertext, derives key and IV from password and
// the carried salt, and decrypts.
//
// A ciphertext without a salt header derives with an empty salt, matching
// `openssl enc -d -nosalt`. An IV in cfg is replaced by the derived IV and
// reported as a DiagIVIgnored diagnostic.
//
// Example:
//
//	plain, err := kryptos.DecryptWithPassword(kryptos.AES,
//		kryptos.Formatted("U2FsdGVkX1..."), kryptos.WordArrayFromString("Secret Passphrase"), nil)
func DecryptWithPassword(algo CipherAlgorithm, ciphertext Ciphertext, password *WordArray, cfg *CipherConfig) (*WordArray, error) {
	resolved := cfg.withDefaults()
	resolved.ignoreExplicitIV()
	params, err := parseCiphertext(ciphertext, resolved.Format)
	if err != nil {
		return nil, err
	}

	salt := params.Salt
	if salt == nil {
		salt = NewWordArray(nil, 0)
	}
	derived, err := resolved.KDF.Execute(password, algo.KeySize(), algo.IVSize(), salt)
	if err != nil {
		return nil, err
	}
	resolved.IV = derived.IV

	return DecryptWithKey(algo, params, derived.Key, &resolved)
}

// ignoreExplicitIV reports an explicit IV that password derivation will replace.
func (cfg *CipherConfig) ignoreExplicitIV() []Diagnostic {
	if cfg.IV == nil || cfg.IV.SigBytes == 0 {
		return nil
	}
	d := newDiagnostic(DiagIVIgnored, "explicit IV replaced by the password-derived IV")
	cfg.Diagnostics.emit(d)
	return []Diagnostic{d}
}
