// hasher.go: Streaming hasher over the block engine, plus one-shot helpers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"hash"
)

// HashAlgorithm describes a hash primitive.
//
// New must return a freshly reset primitive. Writing whole blocks to it is the
// compression step and Sum applies the algorithm's length padding, so the
// hasher never needs to know the padding scheme.
//
// HashAlgorithm values are immutable and safe for concurrent use.
type HashAlgorithm struct {
	// Name is the canonical algorithm name, as accepted by LookupHash.
	Name string

	// New returns a new primitive instance.
	New func() hash.Hash
}

// NewHasher returns a freshly reset hasher for the algorithm.
func (a *HashAlgorithm) NewHasher() *Hasher {
	h := &Hasher{algo: a}
	h.Reset()
	return h
}

// Sum hashes message in one call.
//
// Example:
//
//	digest := kryptos.SHA256.Sum(kryptos.WordArrayFromString("abc"))
//	fmt.Println(digest) // ba7816bf...
func (a *HashAlgorithm) Sum(message *WordArray) *WordArray {
	return a.NewHasher().Finalize(message)
}

// HMAC computes the HMAC of message under key in one call.
func (a *HashAlgorithm) HMAC(message, key *WordArray) *WordArray {
	return NewHMAC(a, key).Finalize(message)
}

// Hasher is a streaming message digest.
//
// A Hasher moves from freshly reset, through any number of updates, to
// finalized. Updating a finalized hasher without calling Reset first gives an
// unspecified digest. A Hasher is not safe for concurrent use; Clone it to
// fork a computation.
type Hasher struct {
	bufferedBlock
	algo *HashAlgorithm
	h    hash.Hash
}

// Reset discards all input and restores the primitive's initial state.
func (h *Hasher) Reset() {
	h.resetBuffer()
	if h.h == nil {
		h.h = h.algo.New()
	} else {
		h.h.Reset()
	}
	h.blockSize = h.h.BlockSize() / 4
	h.minBufferSize = 0
}

// Update appends data and compresses every whole block. It returns h for chaining.
func (h *Hasher) Update(data *WordArray) *Hasher {
	h.append(data)
	// doProcessBlock never fails for hash primitives
	_, _ = h.process(h, false)
	return h
}

// UpdateString appends the UTF-8 bytes of s.
func (h *Hasher) UpdateString(s string) *Hasher {
	return h.Update(WordArrayFromString(s))
}

// Write implements io.Writer so a Hasher can sit behind io.Copy.
func (h *Hasher) Write(p []byte) (int, error) {
	h.Update(WordArrayFromBytes(p))
	return len(p), nil
}

// Finalize appends data, which may be nil, and returns the digest.
func (h *Hasher) Finalize(data *WordArray) *WordArray {
	if data != nil {
		h.Update(data)
	}
	if h.data.SigBytes > 0 {
		_, _ = h.h.Write(h.data.Bytes())
	}
	h.data = NewWordArray(nil, 0)
	return WordArrayFromBytes(h.h.Sum(nil))
}

// doProcessBlock feeds one whole block to the primitive.
func (h *Hasher) doProcessBlock(words []uint32, offset int) error {
	n := h.blockSize * 4
	buf := getBuffer(n)
	defer putBuffer(buf)
	block := (*buf)[:n]
	for i := 0; i < h.blockSize; i++ {
		binary.BigEndian.PutUint32(block[i*4:], words[offset+i])
	}
	_, err := h.h.Write(block)
	return err
}

// BlockSize returns the block size in words.
func (h *Hasher) BlockSize() int { return h.blockSize }

// Size returns the digest size in bytes.
func (h *Hasher) Size() int { return h.h.Size() }

// Len returns the number of bytes fed since the last Reset.
func (h *Hasher) Len() int { return h.nDataBytes }

// Algorithm returns the hasher's algorithm.
func (h *Hasher) Algorithm() *HashAlgorithm { return h.algo }

// cloner is implemented by primitives that can copy their own state.
type cloner interface {
	Clone() (hash.Hash, error)
}

// Clone returns an independent hasher with identical pending state.
//
// The primitive state is copied through a Clone method when the primitive has
// one, and through encoding.BinaryMarshaler otherwise. Primitives offering
// neither yield ErrCloneUnsupported.
func (h *Hasher) Clone() (*Hasher, error) {
	state, err := clonePrimitive(h.algo, h.h)
	if err != nil {
		return nil, err
	}
	return &Hasher{
		bufferedBlock: bufferedBlock{
			data:          h.data.Clone(),
			nDataBytes:    h.nDataBytes,
			blockSize:     h.blockSize,
			minBufferSize: h.minBufferSize,
		},
		algo: h.algo,
		h:    state,
	}, nil
}

func clonePrimitive(algo *HashAlgorithm, src hash.Hash) (hash.Hash, error) {
	if c, ok := src.(cloner); ok {
		return c.Clone()
	}
	m, ok := src.(encoding.BinaryMarshaler)
	if !ok {
		return nil, newError(ErrCloneUnsupported, ErrCodeCloneUnsupported,
			fmt.Sprintf("%s state cannot be exported", algo.Name))
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return nil, wrapError(ErrCloneUnsupported, err, ErrCodeCloneUnsupported, "failed to export hash state")
	}
	dst := algo.New()
	u, ok := dst.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, newError(ErrCloneUnsupported, ErrCodeCloneUnsupported,
			fmt.Sprintf("%s state cannot be imported", algo.Name))
	}
	if err := u.UnmarshalBinary(state); err != nil {
		return nil, wrapError(ErrCloneUnsupported, err, ErrCodeCloneUnsupported, "failed to import hash state")
	}
	return dst, nil
}
