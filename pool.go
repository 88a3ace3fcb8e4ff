// pool.go: Scratch buffer pooling for block processing and streaming.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"sync"
)

// Pool tiers. blockBufferSize covers the largest hash block (SHA-512, 128
// bytes) and keystream-sized chunks; chunkBufferSize is one streaming read.
const (
	blockBufferSize = 256
	chunkBufferSize = DefaultChunkSize
)

var (
	blockBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, blockBufferSize)
			return &buf
		},
	}

	chunkBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, chunkBufferSize)
			return &buf
		},
	}

	// growable scratch for digests and derived key material
	dynamicBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 0, 256)
			return &buf
		},
	}
)

func init() {
	WarmupPools(4)
}

// getBuffer returns a buffer of length size, pooled when size fits a tier.
func getBuffer(size int) *[]byte {
	switch {
	case size <= blockBufferSize:
		buf := blockBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	case size <= chunkBufferSize:
		buf := chunkBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	default:
		buf := make([]byte, size)
		return &buf
	}
}

// clearBuffer zeroes buf.
func clearBuffer(buf []byte) {
	if len(buf) <= 64 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	// unrolled by 8 for cache-line sized strides
	i := 0
	for i < len(buf)-7 {
		buf[i] = 0
		buf[i+1] = 0
		buf[i+2] = 0
		buf[i+3] = 0
		buf[i+4] = 0
		buf[i+5] = 0
		buf[i+6] = 0
		buf[i+7] = 0
		i += 8
	}
	for i < len(buf) {
		buf[i] = 0
		i++
	}
}

// putBuffer zeroes buf and returns it to its tier. Odd-sized buffers are dropped.
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	if len(*buf) > 0 {
		clearBuffer(*buf)
	}

	switch cap(*buf) {
	case blockBufferSize:
		blockBufferPool.Put(buf)
	case chunkBufferSize:
		chunkBufferPool.Put(buf)
	}
}

// getDynamicBuffer returns an empty buffer with spare capacity.
func getDynamicBuffer() []byte {
	buf := dynamicBufferPool.Get().(*[]byte)
	return (*buf)[:0]
}

// putDynamicBuffer returns a dynamic buffer to the pool when its capacity is reasonable.
func putDynamicBuffer(buf []byte) {
	bufCap := cap(buf)
	if bufCap == 0 {
		return
	}
	if bufCap > 1024 {
		clearBuffer(buf[:bufCap])
	}
	if bufCap <= 4*1024 && bufCap >= 128 {
		dynamicBufferPool.Put(&buf)
	}
}

// WarmupPools pre-allocates count buffers in every tier to avoid cold-start allocations.
func WarmupPools(count int) {
	blocks := make([]*[]byte, count)
	chunks := make([]*[]byte, count)
	dynamic := make([][]byte, count)

	for i := 0; i < count; i++ {
		blocks[i] = getBuffer(blockBufferSize)
		chunks[i] = getBuffer(chunkBufferSize)
		dynamic[i] = getDynamicBuffer()
	}
	for i := 0; i < count; i++ {
		putBuffer(blocks[i])
		putBuffer(chunks[i])
		putDynamicBuffer(dynamic[i])
	}
}
