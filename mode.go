// mode.go: Block cipher modes of operation working in place on words.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"fmt"
)

// BlockPrimitive is a keyed block transform operating in place on exactly
// BlockSize words starting at offset.
type BlockPrimitive interface {
	BlockSize() int
	EncryptBlock(words []uint32, offset int)
	DecryptBlock(words []uint32, offset int)
}

// ModeProcessor transforms one block in place. Processors carry chaining
// state and are owned by a single Cipher.
type ModeProcessor interface {
	ProcessBlock(words []uint32, offset int) error
}

// BlockMode creates per-message processors for one direction.
//
// iv is nil when the caller supplied none; modes that need it report
// ErrIVMissing on the first block. The IV is consumed by the first block
// only; later blocks chain from processor state.
type BlockMode interface {
	Name() string
	CreateEncryptor(p BlockPrimitive, iv []uint32) ModeProcessor
	CreateDecryptor(p BlockPrimitive, iv []uint32) ModeProcessor
}

// keystreamMode marks modes that turn the block cipher into a keystream
// generator, so a partial final block is legal.
type keystreamMode interface {
	keystream()
}

// Built-in modes.
var (
	// ECB encrypts each block independently and ignores the IV.
	ECB BlockMode = ecbMode{}

	// CBC chains each block with the previous ciphertext block.
	CBC BlockMode = cbcMode{}

	// OFB encrypts the previous keystream block; both directions share one processor.
	OFB BlockMode = ofbMode{}

	// CFB encrypts the previous ciphertext block to produce the keystream.
	CFB BlockMode = cfbMode{}

	// CTR encrypts a counter block whose last word increments per block, wrapping
	// without carry into the preceding words.
	CTR BlockMode = ctrMode{}
)

func copyIV(iv []uint32) []uint32 {
	if iv == nil {
		return nil
	}
	out := make([]uint32, len(iv))
	copy(out, iv)
	return out
}

func ivMissing(mode string) error {
	return newError(ErrIVMissing, ErrCodeIVMissing, fmt.Sprintf("%s mode requires an IV", mode))
}

// ECB

type ecbMode struct{}

func (ecbMode) Name() string { return "ECB" }

func (ecbMode) CreateEncryptor(p BlockPrimitive, _ []uint32) ModeProcessor {
	return &ecbProcessor{p: p, encrypt: true}
}

func (ecbMode) CreateDecryptor(p BlockPrimitive, _ []uint32) ModeProcessor {
	return &ecbProcessor{p: p}
}

type ecbProcessor struct {
	p       BlockPrimitive
	encrypt bool
}

func (e *ecbProcessor) ProcessBlock(words []uint32, offset int) error {
	if e.encrypt {
		e.p.EncryptBlock(words, offset)
	} else {
		e.p.DecryptBlock(words, offset)
	}
	return nil
}

// CBC

type cbcMode struct{}

func (cbcMode) Name() string { return "CBC" }

func (cbcMode) CreateEncryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &cbcProcessor{p: p, iv: copyIV(iv), encrypt: true}
}

func (cbcMode) CreateDecryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &cbcProcessor{p: p, iv: copyIV(iv)}
}

type cbcProcessor struct {
	p         BlockPrimitive
	iv        []uint32
	prevBlock []uint32
	encrypt   bool
}

// chain returns the block to XOR with: the IV for the first block, then the previous ciphertext.
func (c *cbcProcessor) chain() ([]uint32, error) {
	if c.iv != nil {
		block := c.iv
		c.iv = nil
		return block, nil
	}
	if c.prevBlock == nil {
		return nil, ivMissing("CBC")
	}
	return c.prevBlock, nil
}

func (c *cbcProcessor) ProcessBlock(words []uint32, offset int) error {
	bs := c.p.BlockSize()
	chain, err := c.chain()
	if err != nil {
		return err
	}
	if c.encrypt {
		for i := 0; i < bs; i++ {
			words[offset+i] ^= chain[i]
		}
		c.p.EncryptBlock(words, offset)
		c.prevBlock = append(c.prevBlock[:0], words[offset:offset+bs]...)
		return nil
	}

	thisBlock := make([]uint32, bs)
	copy(thisBlock, words[offset:offset+bs])
	c.p.DecryptBlock(words, offset)
	for i := 0; i < bs; i++ {
		words[offset+i] ^= chain[i]
	}
	c.prevBlock = thisBlock
	return nil
}

// OFB

type ofbMode struct{}

func (ofbMode) Name() string { return "OFB" }
func (ofbMode) keystream()   {}

func (ofbMode) CreateEncryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &ofbProcessor{p: p, iv: copyIV(iv)}
}

func (m ofbMode) CreateDecryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return m.CreateEncryptor(p, iv)
}

type ofbProcessor struct {
	p         BlockPrimitive
	iv        []uint32
	keystream []uint32
}

func (o *ofbProcessor) ProcessBlock(words []uint32, offset int) error {
	if o.iv != nil {
		o.keystream = o.iv
		o.iv = nil
	}
	if o.keystream == nil {
		return ivMissing("OFB")
	}
	o.p.EncryptBlock(o.keystream, 0)
	for i := 0; i < o.p.BlockSize(); i++ {
		words[offset+i] ^= o.keystream[i]
	}
	return nil
}

// CFB

type cfbMode struct{}

func (cfbMode) Name() string { return "CFB" }
func (cfbMode) keystream()   {}

func (cfbMode) CreateEncryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &cfbProcessor{p: p, iv: copyIV(iv), encrypt: true}
}

func (cfbMode) CreateDecryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &cfbProcessor{p: p, iv: copyIV(iv)}
}

type cfbProcessor struct {
	p         BlockPrimitive
	iv        []uint32
	prevBlock []uint32
	encrypt   bool
}

func (c *cfbProcessor) ProcessBlock(words []uint32, offset int) error {
	bs := c.p.BlockSize()
	var keystream []uint32
	switch {
	case c.iv != nil:
		keystream = c.iv
		c.iv = nil
	case c.prevBlock != nil:
		keystream = c.prevBlock
	default:
		return ivMissing("CFB")
	}

	var cipherBlock []uint32
	if !c.encrypt {
		cipherBlock = make([]uint32, bs)
		copy(cipherBlock, words[offset:offset+bs])
	}

	c.p.EncryptBlock(keystream, 0)
	for i := 0; i < bs; i++ {
		words[offset+i] ^= keystream[i]
	}

	if c.encrypt {
		cipherBlock = make([]uint32, bs)
		copy(cipherBlock, words[offset:offset+bs])
	}
	c.prevBlock = cipherBlock
	return nil
}

// CTR

type ctrMode struct{}

func (ctrMode) Name() string { return "CTR" }
func (ctrMode) keystream()   {}

func (ctrMode) CreateEncryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return &ctrProcessor{p: p, iv: copyIV(iv)}
}

func (m ctrMode) CreateDecryptor(p BlockPrimitive, iv []uint32) ModeProcessor {
	return m.CreateEncryptor(p, iv)
}

type ctrProcessor struct {
	p       BlockPrimitive
	iv      []uint32
	counter []uint32
}

func (c *ctrProcessor) ProcessBlock(words []uint32, offset int) error {
	if c.iv != nil {
		c.counter = c.iv
		c.iv = nil
	}
	if c.counter == nil {
		return ivMissing("CTR")
	}
	bs := c.p.BlockSize()
	keystream := make([]uint32, bs)
	copy(keystream, c.counter)
	c.p.EncryptBlock(keystream, 0)
	c.counter[bs-1]++
	for i := 0; i < bs; i++ {
		words[offset+i] ^= keystream[i]
	}
	return nil
}
