// cipher.go: The Cipher engine, its configuration and the algorithm contract.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"fmt"
)

// Transform selects the direction of a Cipher.
type Transform int

const (
	// TransformEncrypt turns plaintext into ciphertext.
	TransformEncrypt Transform = iota + 1

	// TransformDecrypt turns ciphertext into plaintext.
	TransformDecrypt
)

func (t Transform) String() string {
	switch t {
	case TransformEncrypt:
		return "encrypt"
	case TransformDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Transform(%d)", int(t))
	}
}

// CipherAlgorithm is a block or stream cipher usable by Cipher.
//
// Sizes are in 32-bit words. KeySize and IVSize are the sizes password-based
// encryption derives; the primitive itself may accept other key lengths.
// Implementations are *BlockAlgorithm and *StreamAlgorithm.
type CipherAlgorithm interface {
	Name() string
	KeySize() int
	IVSize() int
	BlockSize() int

	newEngine(c *Cipher) (cipherEngine, error)
}

// cipherEngine is the algorithm-specific half of a Cipher.
type cipherEngine interface {
	blockProcessor
	finalize(c *Cipher) (*WordArray, error)
}

// Defaults used when a CipherConfig field is zero.
var (
	DefaultMode      = CBC
	DefaultPadding   = Pkcs7
	DefaultFormatter = OpenSSL
	DefaultKDF       = OpenSSLKDF
)

// CipherConfig carries the optional settings of every cipher operation.
//
// If a field is zero, the package default is used: CBC, Pkcs7, the OpenSSL
// formatter and the OpenSSL KDF. A nil *CipherConfig means all defaults.
// Operations never retain or mutate the caller's config; IV and Salt are
// cloned on use.
//
// Example:
//
//	cfg := &kryptos.CipherConfig{
//		IV:      iv,
//		Mode:    kryptos.CTR,
//		Padding: kryptos.NoPadding,
//	}
//	params, err := kryptos.EncryptWithKey(kryptos.AES, message, key, cfg)
type CipherConfig struct {
	// IV is the initialization vector. Ignored by ECB; replaced by the derived
	// IV in password-based encryption.
	IV *WordArray

	// Salt fixes the password-based salt. Nil means a fresh random salt; an
	// empty WordArray means no salt at all.
	Salt *WordArray

	// Mode is the block mode. Ignored by stream ciphers.
	Mode BlockMode

	// Padding is the block padding. Ignored by stream ciphers.
	Padding Padding

	// Format serializes and parses CipherParams.
	Format Formatter

	// KDF derives key and IV from a password.
	KDF PasswordKDF

	// Diagnostics receives advisory events.
	Diagnostics DiagnosticSink
}

// withDefaults returns a resolved copy of cfg.
func (cfg *CipherConfig) withDefaults() CipherConfig {
	var out CipherConfig
	if cfg != nil {
		out = *cfg
		out.IV = cfg.IV.Clone()
		out.Salt = cfg.Salt.Clone()
	}
	if out.Mode == nil {
		out.Mode = DefaultMode
	}
	if out.Padding == nil {
		out.Padding = DefaultPadding
	}
	if out.Format == nil {
		out.Format = DefaultFormatter
	}
	if out.KDF == nil {
		out.KDF = DefaultKDF
	}
	return out
}

// Cipher is a streaming encryptor or decryptor.
//
// Process may be called any number of times, followed by one Finalize. A
// Cipher is not safe for concurrent use and must be Reset before it is reused
// for another message with the same key and configuration. After an error the
// buffered input is intact but the mode state is not rolled back; Reset
// before continuing.
type Cipher struct {
	bufferedBlock
	algo      CipherAlgorithm
	transform Transform
	key       *WordArray
	cfg       CipherConfig
	engine    cipherEngine
}

// NewCipher creates a Cipher for algo in the given direction.
//
// Parameters:
//   - algo: The cipher algorithm (AES, TripleDES, RC4, ...)
//   - transform: TransformEncrypt or TransformDecrypt
//   - key: The key; its length must be accepted by the primitive
//   - cfg: Optional settings (nil for defaults)
//
// Returns:
//   - A ready Cipher
//   - ErrMissingKey, ErrInvalidTransform, ErrInvalidIV, ErrIVMissing or
//     ErrCipherInit when the configuration is unusable
//
// Example:
//
//	enc, err := kryptos.NewCipher(kryptos.AES, kryptos.TransformEncrypt, key, &kryptos.CipherConfig{IV: iv})
//	if err != nil {
//		log.Fatal(err)
//	}
//	part, _ := enc.Process(chunk1)
//	last, _ := enc.Finalize(chunk2)
func NewCipher(algo CipherAlgorithm, transform Transform, key *WordArray, cfg *CipherConfig) (*Cipher, error) {
	if algo == nil {
		return nil, newError(ErrUnknownAlgorithm, ErrCodeUnknownAlgorithm, "cipher algorithm is nil")
	}
	if transform != TransformEncrypt && transform != TransformDecrypt {
		return nil, newError(ErrInvalidTransform, ErrCodeInvalidTransform, fmt.Sprintf("unsupported transform %d", int(transform)))
	}
	if key == nil || key.SigBytes == 0 {
		return nil, newError(ErrMissingKey, ErrCodeMissingKey, algo.Name()+" requires a key")
	}
	c := &Cipher{
		algo:      algo,
		transform: transform,
		key:       key.Clone(),
		cfg:       cfg.withDefaults(),
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateEncryptor is shorthand for NewCipher with TransformEncrypt.
func CreateEncryptor(algo CipherAlgorithm, key *WordArray, cfg *CipherConfig) (*Cipher, error) {
	return NewCipher(algo, TransformEncrypt, key, cfg)
}

// CreateDecryptor is shorthand for NewCipher with TransformDecrypt.
func CreateDecryptor(algo CipherAlgorithm, key *WordArray, cfg *CipherConfig) (*Cipher, error) {
	return NewCipher(algo, TransformDecrypt, key, cfg)
}

// Reset discards buffered input and restarts the key schedule and mode from the configured IV.
func (c *Cipher) Reset() error {
	c.resetBuffer()
	c.blockSize = c.algo.BlockSize()
	c.minBufferSize = 0
	engine, err := c.algo.newEngine(c)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

// Process appends data and returns the output for every block that is ready.
func (c *Cipher) Process(data *WordArray) (*WordArray, error) {
	c.append(data)
	return c.process(c.engine, false)
}

// Finalize appends data, which may be nil, and returns the remaining output.
func (c *Cipher) Finalize(data *WordArray) (*WordArray, error) {
	if data != nil {
		c.append(data)
	}
	return c.engine.finalize(c)
}

// Algorithm returns the cipher algorithm.
func (c *Cipher) Algorithm() CipherAlgorithm { return c.algo }

// Transform returns the cipher direction.
func (c *Cipher) Transform() Transform { return c.transform }

// Config returns the resolved configuration.
func (c *Cipher) Config() CipherConfig { return c.cfg }

// ivBytes returns the configured IV truncated to n bytes, or nil when none is set.
func (c *Cipher) ivBytes(n int) ([]byte, error) {
	iv := c.cfg.IV
	if iv == nil || iv.SigBytes == 0 {
		return nil, nil
	}
	if iv.SigBytes < n {
		return nil, newError(ErrInvalidIV, ErrCodeInvalidIV,
			fmt.Sprintf("%s needs a %d-byte IV, got %d bytes", c.algo.Name(), n, iv.SigBytes))
	}
	return iv.Bytes()[:n], nil
}
