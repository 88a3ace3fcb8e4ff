// buffered_test.go: Test cases for the buffered block engine.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"errors"
	"testing"
)

// recorder counts blocks and increments every word it sees.
type recorder struct {
	offsets []int
	fail    error
}

func (r *recorder) doProcessBlock(words []uint32, offset int) error {
	if r.fail != nil {
		return r.fail
	}
	r.offsets = append(r.offsets, offset)
	for i := offset; i < offset+2; i++ {
		words[i]++
	}
	return nil
}

func newTestBuffer(blockSize, minBuffer int) *bufferedBlock {
	b := &bufferedBlock{blockSize: blockSize, minBufferSize: minBuffer}
	b.resetBuffer()
	return b
}

func TestBufferedProcessWholeBlocksOnly(t *testing.T) {
	b := newTestBuffer(2, 0)
	r := &recorder{}

	b.append(WordArrayFromBytes(make([]byte, 13)))
	out, err := b.process(r, false)
	if err != nil {
		t.Fatalf("process() error: %v", err)
	}
	if out.SigBytes != 8 {
		t.Errorf("Expected 8 processed bytes, got %d", out.SigBytes)
	}
	if b.data.SigBytes != 5 {
		t.Errorf("Expected 5 buffered bytes, got %d", b.data.SigBytes)
	}
	if b.nDataBytes != 13 {
		t.Errorf("Expected 13 counted bytes, got %d", b.nDataBytes)
	}
	if len(r.offsets) != 1 {
		t.Errorf("Expected one block, got %d", len(r.offsets))
	}
}

func TestBufferedProcessKeepsMinBuffer(t *testing.T) {
	b := newTestBuffer(2, 1)
	r := &recorder{}

	b.append(WordArrayFromBytes(make([]byte, 16)))
	out, err := b.process(r, false)
	if err != nil {
		t.Fatalf("process() error: %v", err)
	}
	if out.SigBytes != 8 || b.data.SigBytes != 8 {
		t.Errorf("Expected 8 processed and 8 held back, got %d and %d", out.SigBytes, b.data.SigBytes)
	}

	b = newTestBuffer(2, 1)
	b.append(WordArrayFromBytes(make([]byte, 5)))
	out, _ = b.process(r, false)
	if out.SigBytes != 0 {
		t.Errorf("Expected nothing ready below the minimum buffer, got %d bytes", out.SigBytes)
	}
}

func TestBufferedFlushPartialBlock(t *testing.T) {
	b := newTestBuffer(2, 1)
	r := &recorder{}

	b.append(WordArrayFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}))
	out, err := b.process(r, true)
	if err != nil {
		t.Fatalf("process() error: %v", err)
	}
	if out.SigBytes != 11 {
		t.Errorf("Expected 11 bytes, got %d", out.SigBytes)
	}
	if len(r.offsets) != 2 {
		t.Errorf("Expected two blocks, got %d", len(r.offsets))
	}
	if b.data.SigBytes != 0 {
		t.Errorf("Expected empty buffer after flush, got %d bytes", b.data.SigBytes)
	}
	// the second block saw zero-extended words
	if out.Words[3] != 1 {
		t.Errorf("Expected padding word to be processed as zero, got %#x", out.Words[3])
	}
}

func TestBufferedProcessSplitInvariance(t *testing.T) {
	input := make([]byte, 37)
	for i := range input {
		input[i] = byte(i * 7)
	}

	whole := newTestBuffer(4, 0)
	whole.append(WordArrayFromBytes(input))
	want, _ := whole.process(&recorder{}, true)

	for split := 0; split <= len(input); split++ {
		b := newTestBuffer(4, 0)
		got := NewWordArray(nil, 0)

		b.append(WordArrayFromBytes(input[:split]))
		out, _ := b.process(&recorder{}, false)
		got.Concat(out)
		b.append(WordArrayFromBytes(input[split:]))
		out, _ = b.process(&recorder{}, true)
		got.Concat(out)

		if !got.Equal(want) {
			t.Fatalf("split at %d: got %s, want %s", split, got, want)
		}
	}
}

func TestBufferedProcessError(t *testing.T) {
	b := newTestBuffer(2, 0)
	boom := errors.New("boom")

	b.append(WordArrayFromBytes(make([]byte, 8)))
	if _, err := b.process(&recorder{fail: boom}, false); !errors.Is(err, boom) {
		t.Errorf("Expected processor error, got %v", err)
	}
}

// failingAfter processes n blocks and then fails.
type failingAfter struct {
	n   int
	err error
}

func (f *failingAfter) doProcessBlock(words []uint32, offset int) error {
	if f.n == 0 {
		return f.err
	}
	f.n--
	words[offset] ^= 0xffffffff
	return nil
}

func TestBufferedProcessErrorLeavesBuffer(t *testing.T) {
	b := newTestBuffer(2, 0)
	input := WordArrayFromBytes([]byte("0123456789abcdefXYZ"))
	b.append(input)

	boom := errors.New("boom")
	if _, err := b.process(&failingAfter{n: 1, err: boom}, true); !errors.Is(err, boom) {
		t.Fatalf("Expected processor error, got %v", err)
	}
	if !b.data.Equal(input) {
		t.Fatalf("Buffer changed after a failed pass: got %s, want %s", b.data, input)
	}

	out, err := b.process(&recorder{}, true)
	if err != nil {
		t.Fatalf("process() error: %v", err)
	}
	if out.SigBytes != input.SigBytes {
		t.Errorf("Expected %d bytes after retry, got %d", input.SigBytes, out.SigBytes)
	}
}

func TestBufferedResetBuffer(t *testing.T) {
	b := newTestBuffer(2, 0)
	b.append(WordArrayFromString("data"))
	b.resetBuffer()
	if b.data.SigBytes != 0 || b.nDataBytes != 0 {
		t.Error("Expected resetBuffer to clear data and counter")
	}
}
