// streamcipher.go: Keystream cipher algorithms.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"crypto/cipher"
	"crypto/rc4" // #nosec G503 -- RC4 kept for interoperability
	"encoding/binary"

	"github.com/aead/chacha20/chacha"
	"github.com/emmansun/gmsm/zuc"
)

// StreamAlgorithm is a keystream cipher backed by a cipher.Stream.
//
// The engine processes one word per block: each word is XORed with the next
// four keystream bytes. Encryption and decryption are the same operation.
type StreamAlgorithm struct {
	name      string
	keySize   int
	ivSize    int
	drop      int
	newStream func(key, iv []byte) (cipher.Stream, error)
}

// NewStreamAlgorithm describes a stream cipher. Sizes are in words. drop is
// the number of keystream words discarded after key setup.
func NewStreamAlgorithm(name string, keySize, ivSize, drop int, newStream func(key, iv []byte) (cipher.Stream, error)) *StreamAlgorithm {
	return &StreamAlgorithm{name: name, keySize: keySize, ivSize: ivSize, drop: drop, newStream: newStream}
}

// Built-in stream ciphers.
var (
	RC4 = NewStreamAlgorithm("RC4", 8, 0, 0, newRC4)

	// RC4Drop discards the first 768 keystream bytes (RC4-drop[768]).
	RC4Drop = NewStreamAlgorithm("RC4Drop", 8, 0, 192, newRC4)

	// ChaCha20 uses the 12-byte IETF nonce and 20 rounds.
	ChaCha20 = NewStreamAlgorithm("ChaCha20", 8, 3, 0, func(key, iv []byte) (cipher.Stream, error) {
		return chacha.NewCipher(iv, key, 20)
	})

	// ZUC is the 128-bit ZUC keystream generator (EEA3 core).
	ZUC = NewStreamAlgorithm("ZUC", 4, 4, 0, func(key, iv []byte) (cipher.Stream, error) {
		return zuc.NewCipher(key, iv)
	})
)

func newRC4(key, _ []byte) (cipher.Stream, error) {
	return rc4.NewCipher(key)
}

func (a *StreamAlgorithm) Name() string   { return a.name }
func (a *StreamAlgorithm) KeySize() int   { return a.keySize }
func (a *StreamAlgorithm) IVSize() int    { return a.ivSize }
func (a *StreamAlgorithm) BlockSize() int { return 1 }

func (a *StreamAlgorithm) newEngine(c *Cipher) (cipherEngine, error) {
	var iv []byte
	if a.ivSize > 0 {
		var err error
		iv, err = c.ivBytes(a.ivSize * 4)
		if err != nil {
			return nil, err
		}
		if iv == nil {
			return nil, newError(ErrIVMissing, ErrCodeIVMissing, a.name+" requires an IV")
		}
	}
	stream, err := a.newStream(c.key.Bytes(), iv)
	if err != nil {
		return nil, wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create "+a.name+" cipher")
	}
	e := &streamEngine{stream: stream}
	for i := 0; i < a.drop; i++ {
		e.next()
	}
	return e, nil
}

// streamEngine XORs each word with one keystream word.
type streamEngine struct {
	stream cipher.Stream
	ks     [4]byte
}

// next returns the next keystream word.
func (e *streamEngine) next() uint32 {
	e.ks = [4]byte{}
	e.stream.XORKeyStream(e.ks[:], e.ks[:])
	return binary.BigEndian.Uint32(e.ks[:])
}

func (e *streamEngine) doProcessBlock(words []uint32, offset int) error {
	words[offset] ^= e.next()
	return nil
}

func (e *streamEngine) finalize(c *Cipher) (*WordArray, error) {
	return c.process(e, true)
}
