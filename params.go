// params.go: CipherParams, the result of an encryption and the input of a decryption.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

// CipherParams bundles a ciphertext with the parameters that produced it.
//
// Only Ciphertext and Salt survive serialization; the other fields describe
// the local encryption and are zero after parsing.
type CipherParams struct {
	Ciphertext *WordArray
	Key        *WordArray
	IV         *WordArray
	Salt       *WordArray

	Algorithm CipherAlgorithm
	Mode      BlockMode
	Padding   Padding
	BlockSize int

	// Formatter is used by String. If nil, DefaultFormatter is used.
	Formatter Formatter

	// Diagnostics lists the advisory events raised while producing the params.
	Diagnostics []Diagnostic
}

// Stringify serializes p with f, falling back to p.Formatter and then DefaultFormatter.
func (p *CipherParams) Stringify(f Formatter) (string, error) {
	if f == nil {
		f = p.Formatter
	}
	if f == nil {
		f = DefaultFormatter
	}
	return f.Stringify(p)
}

// String serializes p with its formatter. Serialization errors yield an empty string.
func (p *CipherParams) String() string {
	s, err := p.Stringify(nil)
	if err != nil {
		return ""
	}
	return s
}

// cipherParams implements Ciphertext.
func (p *CipherParams) cipherParams(Formatter) (*CipherParams, error) {
	return p, nil
}
