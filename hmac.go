// hmac.go: Streaming HMAC built on Hasher.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// HMAC is a keyed message authentication code over any HashAlgorithm.
//
// The key schedule (inner and outer padded keys) is computed once in NewHMAC;
// Reset re-primes the inner hasher with it. Like Hasher, an HMAC is not safe
// for concurrent use and must be Reset after Finalize before it is reused.
//
// Example:
//
//	mac := kryptos.NewHMAC(kryptos.SHA256, kryptos.WordArrayFromString("key"))
//	mac.Update(kryptos.WordArrayFromString("part one, "))
//	tag := mac.Finalize(kryptos.WordArrayFromString("part two"))
type HMAC struct {
	hasher *Hasher
	iKey   *WordArray
	oKey   *WordArray
}

// NewHMAC returns an HMAC primed with key. The caller's key is not modified.
func NewHMAC(algo *HashAlgorithm, key *WordArray) *HMAC {
	hasher := algo.NewHasher()
	blockWords := hasher.BlockSize()
	blockBytes := blockWords * 4

	if key == nil {
		key = NewWordArray(nil, 0)
	}
	k := key.Clone()
	if k.SigBytes > blockBytes {
		k = hasher.Finalize(k)
		hasher.Reset()
	}
	k.Clamp()

	oKey := make([]uint32, blockWords)
	iKey := make([]uint32, blockWords)
	copy(oKey, k.Words)
	copy(iKey, k.Words)
	for i := 0; i < blockWords; i++ {
		oKey[i] ^= 0x5c5c5c5c
		iKey[i] ^= 0x36363636
	}
	k.Zeroize()

	m := &HMAC{
		hasher: hasher,
		iKey:   NewWordArray(iKey, blockBytes),
		oKey:   NewWordArray(oKey, blockBytes),
	}
	m.Reset()
	return m
}

// Reset discards any input and re-primes the inner hasher.
func (m *HMAC) Reset() {
	m.hasher.Reset()
	m.hasher.Update(m.iKey)
}

// Update appends message data. It returns m for chaining.
func (m *HMAC) Update(data *WordArray) *HMAC {
	m.hasher.Update(data)
	return m
}

// Write implements io.Writer.
func (m *HMAC) Write(p []byte) (int, error) {
	return m.hasher.Write(p)
}

// Finalize appends data, which may be nil, and returns the tag.
func (m *HMAC) Finalize(data *WordArray) *WordArray {
	inner := m.hasher.Finalize(data)
	m.hasher.Reset()
	return m.hasher.Finalize(m.oKey.Clone().Concat(inner))
}

// Clone returns an independent HMAC with identical pending state.
func (m *HMAC) Clone() (*HMAC, error) {
	h, err := m.hasher.Clone()
	if err != nil {
		return nil, err
	}
	return &HMAC{hasher: h, iKey: m.iKey, oKey: m.oKey}, nil
}

// Size returns the tag size in bytes.
func (m *HMAC) Size() int { return m.hasher.Size() }
