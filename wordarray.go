// wordarray.go: WordArray, the big-endian word buffer every algorithm operates on.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"encoding/hex"
)

// WordArray is a sequence of 32-bit big-endian words with an explicit count
// of significant bytes.
//
// Byte i of the array lives in Words[i/4] at bit offset 24-8*(i%4). Words may
// hold more bytes than SigBytes; the extra bytes are ignored by every
// operation and zeroed by Clamp. A WordArray is not safe for concurrent
// mutation.
//
// Example:
//
//	wa := kryptos.WordArrayFromString("hello")
//	fmt.Println(wa.SigBytes) // 5
//	fmt.Println(wa)          // 68656c6c6f
type WordArray struct {
	// Words holds the data, four bytes per word, most significant byte first.
	Words []uint32

	// SigBytes is the number of meaningful bytes, starting at the first byte of Words[0].
	SigBytes int
}

// NewWordArray wraps words in a WordArray.
//
// A negative sigBytes means "every byte of words is significant". The slice
// is used as is, not copied.
func NewWordArray(words []uint32, sigBytes int) *WordArray {
	if words == nil {
		words = []uint32{}
	}
	if sigBytes < 0 {
		sigBytes = len(words) * 4
	}
	return &WordArray{Words: words, SigBytes: sigBytes}
}

// WordArrayFromBytes copies b into a new WordArray.
func WordArrayFromBytes(b []byte) *WordArray {
	words := make([]uint32, (len(b)+3)/4)
	for i, c := range b {
		words[i>>2] |= uint32(c) << (24 - uint(i%4)*8)
	}
	return &WordArray{Words: words, SigBytes: len(b)}
}

// WordArrayFromString returns the UTF-8 bytes of s as a WordArray.
func WordArrayFromString(s string) *WordArray {
	return WordArrayFromBytes([]byte(s))
}

// word returns Words[i], or zero when i is past the end of the slice.
func (w *WordArray) word(i int) uint32 {
	if i < len(w.Words) {
		return w.Words[i]
	}
	return 0
}

// byteAt returns significant byte i.
func (w *WordArray) byteAt(i int) byte {
	return byte(w.word(i>>2) >> (24 - uint(i%4)*8))
}

// growWords makes sure Words has at least n entries.
func (w *WordArray) growWords(n int) {
	if n <= len(w.Words) {
		return
	}
	if n <= cap(w.Words) {
		old := len(w.Words)
		w.Words = w.Words[:n]
		for i := old; i < n; i++ {
			w.Words[i] = 0
		}
		return
	}
	grown := make([]uint32, n, n+n/2)
	copy(grown, w.Words)
	w.Words = grown
}

// Bytes returns a copy of the significant bytes.
func (w *WordArray) Bytes() []byte {
	out := make([]byte, w.SigBytes)
	for i := range out {
		out[i] = w.byteAt(i)
	}
	return out
}

// Concat appends the significant bytes of other to w and returns w.
//
// The receiver is clamped first so stale bytes past SigBytes never leak into
// the result. A nil other is a no-op.
func (w *WordArray) Concat(other *WordArray) *WordArray {
	w.Clamp()
	if other == nil || other.SigBytes == 0 {
		return w
	}

	thisSig := w.SigBytes
	thatSig := other.SigBytes
	w.growWords((thisSig + thatSig + 3) / 4)

	if thisSig%4 != 0 {
		for i := 0; i < thatSig; i++ {
			b := uint32(other.byteAt(i))
			pos := thisSig + i
			w.Words[pos>>2] |= b << (24 - uint(pos%4)*8)
		}
	} else {
		for j := 0; j < thatSig; j += 4 {
			w.Words[(thisSig+j)>>2] = other.word(j >> 2)
		}
	}
	w.SigBytes += thatSig
	return w
}

// Clamp zeroes the bytes past SigBytes in the last significant word and drops
// the words past it.
func (w *WordArray) Clamp() *WordArray {
	n := (w.SigBytes + 3) / 4
	w.growWords(n)
	if r := w.SigBytes % 4; r != 0 {
		w.Words[w.SigBytes>>2] &= 0xffffffff << (32 - uint(r)*8)
	}
	w.Words = w.Words[:n]
	return w
}

// Clone returns an independent copy of w.
func (w *WordArray) Clone() *WordArray {
	if w == nil {
		return nil
	}
	words := make([]uint32, len(w.Words))
	copy(words, w.Words)
	return &WordArray{Words: words, SigBytes: w.SigBytes}
}

// Equal reports whether w and other have the same significant bytes.
func (w *WordArray) Equal(other *WordArray) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.SigBytes != other.SigBytes {
		return false
	}
	for i := 0; i < w.SigBytes; i++ {
		if w.byteAt(i) != other.byteAt(i) {
			return false
		}
	}
	return true
}

// ToString renders w with enc, defaulting to Hex when enc is nil.
func (w *WordArray) ToString(enc Encoder) (string, error) {
	if enc == nil {
		enc = Hex
	}
	return enc.Stringify(w)
}

// String renders w as lowercase hexadecimal.
func (w *WordArray) String() string {
	if w == nil {
		return ""
	}
	return hex.EncodeToString(w.Bytes())
}

// Zeroize overwrites every word with zeros and resets SigBytes.
func (w *WordArray) Zeroize() {
	if w == nil {
		return
	}
	for i := range w.Words {
		w.Words[i] = 0
	}
	w.SigBytes = 0
}

// wordsN copies the words of w into a fresh slice of n words, zero-extended.
func (w *WordArray) wordsN(n int) []uint32 {
	out := make([]uint32, n)
	copy(out, w.Words)
	return out
}
