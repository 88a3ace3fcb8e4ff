// buffered.go: The streaming block engine shared by hashers and ciphers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// blockProcessor transforms one block of words in place, starting at offset.
type blockProcessor interface {
	doProcessBlock(words []uint32, offset int) error
}

// bufferedBlock accumulates input and hands whole blocks to a blockProcessor.
//
// blockSize is in words. minBufferSize is the number of whole blocks kept back
// when not flushing; block cipher decryption keeps one so the final block is
// still available for unpadding.
type bufferedBlock struct {
	data          *WordArray
	nDataBytes    int
	blockSize     int
	minBufferSize int
}

// resetBuffer empties the buffer and the byte counter.
func (b *bufferedBlock) resetBuffer() {
	b.data = NewWordArray(nil, 0)
	b.nDataBytes = 0
}

// append adds the significant bytes of data to the buffer.
func (b *bufferedBlock) append(data *WordArray) {
	if data == nil {
		return
	}
	if b.data == nil {
		b.data = NewWordArray(nil, 0)
	}
	b.data.Concat(data)
	b.nDataBytes += data.SigBytes
}

// process runs p over every ready block and returns the processed bytes.
//
// Without flush only whole blocks beyond minBufferSize are processed. With
// flush every buffered byte is processed; a partial last block is presented to
// p zero-extended to a whole block and only its real bytes are returned.
// If p fails the buffer is left as it was.
func (b *bufferedBlock) process(p blockProcessor, flush bool) (*WordArray, error) {
	if b.data == nil {
		b.data = NewWordArray(nil, 0)
	}
	data := b.data
	blockSizeBytes := b.blockSize * 4

	var nBlocksReady int
	if flush {
		nBlocksReady = (data.SigBytes + blockSizeBytes - 1) / blockSizeBytes
	} else {
		nBlocksReady = data.SigBytes/blockSizeBytes - b.minBufferSize
		if nBlocksReady < 0 {
			nBlocksReady = 0
		}
	}

	nWordsReady := nBlocksReady * b.blockSize
	nBytesReady := nWordsReady * 4
	if nBytesReady > data.SigBytes {
		nBytesReady = data.SigBytes
	}

	if nWordsReady == 0 {
		return NewWordArray(nil, 0), nil
	}

	// blocks are transformed in a copy; the buffer only advances on success
	data.Clamp()
	processed := make([]uint32, nWordsReady)
	copy(processed, data.Words)
	for offset := 0; offset < nWordsReady; offset += b.blockSize {
		if err := p.doProcessBlock(processed, offset); err != nil {
			return nil, err
		}
	}

	var remaining []uint32
	if nWordsReady < len(data.Words) {
		remaining = make([]uint32, len(data.Words)-nWordsReady)
		copy(remaining, data.Words[nWordsReady:])
	}
	b.data = &WordArray{Words: remaining, SigBytes: data.SigBytes - nBytesReady}

	return NewWordArray(processed, nBytesReady), nil
}
