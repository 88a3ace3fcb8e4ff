// padding.go: Block padding schemes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Padding extends data to a whole number of blocks and removes that extension.
//
// blockSize is in words. Pad and Unpad mutate data in place. Unpad reports
// ErrInvalidPadding when the trailing bytes cannot be a pad produced by Pad.
type Padding interface {
	Name() string
	Pad(data *WordArray, blockSize int) error
	Unpad(data *WordArray, blockSize int) error
}

// Built-in paddings.
var (
	// Pkcs7 appends n bytes of value n (RFC 5652).
	Pkcs7 Padding = pkcs7Padding{}

	// AnsiX923 appends n-1 zero bytes followed by the byte n.
	AnsiX923 Padding = ansiX923Padding{}

	// Iso10126 appends n-1 random bytes followed by the byte n.
	Iso10126 Padding = iso10126Padding{}

	// Iso97971 appends 0x80 followed by zero bytes (ISO/IEC 9797-1 method 2).
	Iso97971 Padding = iso97971Padding{}

	// ZeroPadding appends zero bytes and adds nothing to block-aligned data.
	// Unpad strips every trailing zero byte, so plaintexts ending in zero bytes
	// do not round-trip.
	ZeroPadding Padding = zeroPadding{}

	// NoPadding leaves data untouched.
	NoPadding Padding = noPadding{}
)

// padLength returns the number of bytes needed to reach the next block boundary, 1..blockSize*4.
func padLength(data *WordArray, blockSize int) int {
	blockSizeBytes := blockSize * 4
	return blockSizeBytes - data.SigBytes%blockSizeBytes
}

// lastByte returns the final significant byte of data.
func lastByte(data *WordArray) int {
	return int(data.byteAt(data.SigBytes - 1))
}

// checkPadLength validates a pad length read from the data itself.
func checkPadLength(name string, data *WordArray, blockSize, n int) error {
	if data.SigBytes == 0 {
		return newError(ErrInvalidPadding, ErrCodeInvalidPadding, name+": no data to unpad")
	}
	if n == 0 || n > blockSize*4 || n > data.SigBytes {
		return newError(ErrInvalidPadding, ErrCodeInvalidPadding,
			fmt.Sprintf("%s: pad length %d out of range", name, n))
	}
	return nil
}

type pkcs7Padding struct{}

func (pkcs7Padding) Name() string { return "Pkcs7" }

func (pkcs7Padding) Pad(data *WordArray, blockSize int) error {
	n := padLength(data, blockSize)
	pad := make([]byte, n)
	for i := range pad {
		pad[i] = byte(n)
	}
	data.Concat(WordArrayFromBytes(pad))
	return nil
}

func (p pkcs7Padding) Unpad(data *WordArray, blockSize int) error {
	if data.SigBytes == 0 {
		return checkPadLength(p.Name(), data, blockSize, 0)
	}
	n := lastByte(data)
	if err := checkPadLength(p.Name(), data, blockSize, n); err != nil {
		return err
	}
	for i := data.SigBytes - n; i < data.SigBytes; i++ {
		if int(data.byteAt(i)) != n {
			return newError(ErrInvalidPadding, ErrCodeInvalidPadding, "Pkcs7: inconsistent pad bytes")
		}
	}
	data.SigBytes -= n
	return nil
}

type ansiX923Padding struct{}

func (ansiX923Padding) Name() string { return "AnsiX923" }

func (ansiX923Padding) Pad(data *WordArray, blockSize int) error {
	n := padLength(data, blockSize)
	pad := make([]byte, n)
	pad[n-1] = byte(n)
	data.Concat(WordArrayFromBytes(pad))
	return nil
}

func (p ansiX923Padding) Unpad(data *WordArray, blockSize int) error {
	return unpadByLastByte(p.Name(), data, blockSize)
}

type iso10126Padding struct{}

func (iso10126Padding) Name() string { return "Iso10126" }

func (iso10126Padding) Pad(data *WordArray, blockSize int) error {
	n := padLength(data, blockSize)
	pad := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, pad[:n-1]); err != nil {
		return wrapError(ErrRandom, err, ErrCodeRandom, "failed to generate padding bytes")
	}
	pad[n-1] = byte(n)
	data.Concat(WordArrayFromBytes(pad))
	return nil
}

func (p iso10126Padding) Unpad(data *WordArray, blockSize int) error {
	return unpadByLastByte(p.Name(), data, blockSize)
}

// unpadByLastByte removes as many bytes as the last byte says.
func unpadByLastByte(name string, data *WordArray, blockSize int) error {
	n := 0
	if data.SigBytes > 0 {
		n = lastByte(data)
	}
	if err := checkPadLength(name, data, blockSize, n); err != nil {
		return err
	}
	data.SigBytes -= n
	return nil
}

type iso97971Padding struct{}

func (iso97971Padding) Name() string { return "Iso97971" }

func (iso97971Padding) Pad(data *WordArray, blockSize int) error {
	data.Concat(WordArrayFromBytes([]byte{0x80}))
	return zeroPadding{}.Pad(data, blockSize)
}

func (iso97971Padding) Unpad(data *WordArray, blockSize int) error {
	if err := (zeroPadding{}).Unpad(data, blockSize); err != nil {
		return err
	}
	if data.SigBytes == 0 || lastByte(data) != 0x80 {
		return newError(ErrInvalidPadding, ErrCodeInvalidPadding, "Iso97971: missing 0x80 marker")
	}
	data.SigBytes--
	return nil
}

type zeroPadding struct{}

func (zeroPadding) Name() string { return "ZeroPadding" }

func (zeroPadding) Pad(data *WordArray, blockSize int) error {
	blockSizeBytes := blockSize * 4
	r := data.SigBytes % blockSizeBytes
	if r == 0 {
		data.Clamp()
		return nil
	}
	data.Concat(NewWordArray(make([]uint32, (blockSizeBytes-r+3)/4), blockSizeBytes-r))
	return nil
}

func (zeroPadding) Unpad(data *WordArray, _ int) error {
	i := data.SigBytes - 1
	for i >= 0 && data.byteAt(i) == 0 {
		i--
	}
	data.SigBytes = i + 1
	return nil
}

type noPadding struct{}

func (noPadding) Name() string { return "NoPadding" }

func (noPadding) Pad(*WordArray, int) error { return nil }

func (noPadding) Unpad(*WordArray, int) error { return nil }
