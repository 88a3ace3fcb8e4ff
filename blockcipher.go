// blockcipher.go: Block cipher algorithms and the block engine driving modes and padding.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" // #nosec G502 -- DES and TripleDES kept for interoperability
	"encoding/binary"
	"fmt"

	"github.com/emmansun/gmsm/sm4"
	"golang.org/x/crypto/blowfish"
)

// BlockAlgorithm is a block cipher backed by a cipher.Block.
type BlockAlgorithm struct {
	name      string
	keySize   int
	ivSize    int
	blockSize int
	newBlock  func(key []byte) (cipher.Block, error)
}

// NewBlockAlgorithm describes a block cipher. Sizes are in words; blockSize
// must match the block size of the cipher.Block returned by newBlock.
func NewBlockAlgorithm(name string, keySize, ivSize, blockSize int, newBlock func(key []byte) (cipher.Block, error)) *BlockAlgorithm {
	return &BlockAlgorithm{name: name, keySize: keySize, ivSize: ivSize, blockSize: blockSize, newBlock: newBlock}
}

// Built-in block ciphers.
var (
	// AES accepts 16, 24 or 32 byte keys and derives 32 byte keys from passwords.
	AES = NewBlockAlgorithm("AES", 8, 4, 4, aes.NewCipher)

	DES = NewBlockAlgorithm("DES", 2, 2, 2, des.NewCipher)

	// TripleDES accepts 24 byte keys, or 16 byte keys expanded to K1 K2 K1.
	TripleDES = NewBlockAlgorithm("TripleDES", 6, 2, 2, newTripleDES)

	SM4 = NewBlockAlgorithm("SM4", 4, 4, 4, func(key []byte) (cipher.Block, error) {
		return sm4.NewCipher(key)
	})

	Blowfish = NewBlockAlgorithm("Blowfish", 4, 2, 2, func(key []byte) (cipher.Block, error) {
		return blowfish.NewCipher(key)
	})
)

func newTripleDES(key []byte) (cipher.Block, error) {
	if len(key) == 16 {
		expanded := make([]byte, 24)
		copy(expanded, key)
		copy(expanded[16:], key[:8])
		return des.NewTripleDESCipher(expanded)
	}
	return des.NewTripleDESCipher(key)
}

func (a *BlockAlgorithm) Name() string   { return a.name }
func (a *BlockAlgorithm) KeySize() int   { return a.keySize }
func (a *BlockAlgorithm) IVSize() int    { return a.ivSize }
func (a *BlockAlgorithm) BlockSize() int { return a.blockSize }

func (a *BlockAlgorithm) newEngine(c *Cipher) (cipherEngine, error) {
	block, err := a.newBlock(c.key.Bytes())
	if err != nil {
		return nil, wrapError(ErrCipherInit, err, ErrCodeCipherInit, "failed to create "+a.name+" cipher")
	}
	if block.BlockSize() != a.blockSize*4 {
		return nil, newError(ErrCipherInit, ErrCodeCipherInit,
			fmt.Sprintf("%s primitive block size %d does not match %d words", a.name, block.BlockSize(), a.blockSize))
	}

	var iv []uint32
	ivBytes, err := c.ivBytes(a.blockSize * 4)
	if err != nil {
		return nil, err
	}
	if ivBytes != nil {
		iv = WordArrayFromBytes(ivBytes).Words
	}

	prim := newBlockPrimitive(block)
	e := &blockEngine{mode: c.cfg.Mode, padding: c.cfg.Padding}
	if c.transform == TransformEncrypt {
		e.proc = c.cfg.Mode.CreateEncryptor(prim, iv)
	} else {
		e.proc = c.cfg.Mode.CreateDecryptor(prim, iv)
		c.minBufferSize = 1
	}
	return e, nil
}

// blockEngine runs a mode processor over the buffer and applies padding at finalize.
type blockEngine struct {
	mode    BlockMode
	padding Padding
	proc    ModeProcessor
}

func (e *blockEngine) doProcessBlock(words []uint32, offset int) error {
	return e.proc.ProcessBlock(words, offset)
}

func (e *blockEngine) finalize(c *Cipher) (*WordArray, error) {
	if c.transform == TransformEncrypt {
		if err := e.padding.Pad(c.data, c.blockSize); err != nil {
			return nil, err
		}
		if err := e.checkAligned(c, "plaintext"); err != nil {
			return nil, err
		}
		return c.process(e, true)
	}

	if err := e.checkAligned(c, "ciphertext"); err != nil {
		return nil, err
	}
	out, err := c.process(e, true)
	if err != nil {
		return nil, err
	}
	if err := e.padding.Unpad(out, c.blockSize); err != nil {
		return nil, err
	}
	return out, nil
}

// checkAligned rejects a partial final block under modes that need whole blocks.
func (e *blockEngine) checkAligned(c *Cipher, what string) error {
	if _, ok := e.mode.(keystreamMode); ok {
		return nil
	}
	if c.data.SigBytes%(c.blockSize*4) != 0 {
		return newError(ErrCiphertextNotAligned, ErrCodeNotAligned,
			fmt.Sprintf("%s %s is not a multiple of %d bytes", e.mode.Name(), what, c.blockSize*4))
	}
	return nil
}

// blockPrimitive adapts a cipher.Block to word-oriented in-place transforms.
type blockPrimitive struct {
	block cipher.Block
	words int
	buf   []byte
}

func newBlockPrimitive(b cipher.Block) *blockPrimitive {
	return &blockPrimitive{block: b, words: b.BlockSize() / 4, buf: make([]byte, b.BlockSize())}
}

func (p *blockPrimitive) BlockSize() int { return p.words }

func (p *blockPrimitive) EncryptBlock(words []uint32, offset int) {
	p.load(words, offset)
	p.block.Encrypt(p.buf, p.buf)
	p.store(words, offset)
}

func (p *blockPrimitive) DecryptBlock(words []uint32, offset int) {
	p.load(words, offset)
	p.block.Decrypt(p.buf, p.buf)
	p.store(words, offset)
}

func (p *blockPrimitive) load(words []uint32, offset int) {
	for i := 0; i < p.words; i++ {
		binary.BigEndian.PutUint32(p.buf[i*4:], words[offset+i])
	}
}

func (p *blockPrimitive) store(words []uint32, offset int) {
	for i := 0; i < p.words; i++ {
		words[offset+i] = binary.BigEndian.Uint32(p.buf[i*4:])
	}
}
