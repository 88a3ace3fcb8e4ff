// format.go: The OpenSSL-compatible "Salted__" ciphertext format.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Formatter serializes CipherParams to text and back.
type Formatter interface {
	Stringify(p *CipherParams) (string, error)
	Parse(s string) (*CipherParams, error)
}

// OpenSSL is the format written by `openssl enc -a`:
// base64("Salted__" || 8-byte salt || ciphertext), or base64(ciphertext)
// when there is no salt.
var OpenSSL Formatter = openSSLFormatter{}

// opensslMagic is "Salted__" as two big-endian words.
var opensslMagic = [2]uint32{0x53616c74, 0x65645f5f}

// OpenSSLMagic is the ASCII header marking a salted OpenSSL ciphertext.
const OpenSSLMagic = "Salted__"

// opensslHeaderSize is the magic plus the salt, in bytes.
const opensslHeaderSize = len(OpenSSLMagic) + SaltSize

type openSSLFormatter struct{}

// Stringify writes the salted header when p has a non-empty salt.
func (openSSLFormatter) Stringify(p *CipherParams) (string, error) {
	if p == nil || p.Ciphertext == nil {
		return "", newError(ErrFormat, ErrCodeFormat, "cipher params carry no ciphertext")
	}
	out := p.Ciphertext.Clone()
	if p.Salt != nil && p.Salt.SigBytes > 0 {
		if p.Salt.SigBytes != SaltSize {
			return "", newError(ErrInvalidSalt, ErrCodeInvalidSalt,
				fmt.Sprintf("OpenSSL salt must be %d bytes, got %d", SaltSize, p.Salt.SigBytes))
		}
		out = NewWordArray([]uint32{opensslMagic[0], opensslMagic[1]}, 8).Concat(p.Salt).Concat(p.Ciphertext)
	}
	return Base64.Stringify(out)
}

// Parse decodes s, ignoring ASCII whitespace such as the line breaks of `openssl enc -a`.
func (openSSLFormatter) Parse(s string) (*CipherParams, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, wrapError(ErrFormat, err, ErrCodeFormat, "invalid base64 ciphertext")
	}
	return parseOpenSSLBytes(raw)
}

// parseOpenSSLBytes splits a binary OpenSSL message into salt and ciphertext.
func parseOpenSSLBytes(raw []byte) (*CipherParams, error) {
	if len(raw) >= len(OpenSSLMagic) && string(raw[:len(OpenSSLMagic)]) == OpenSSLMagic {
		if len(raw) < opensslHeaderSize {
			return nil, newError(ErrCiphertextShort, ErrCodeCiphertextShort,
				fmt.Sprintf("salted ciphertext is %d bytes, header needs %d", len(raw), opensslHeaderSize))
		}
		return &CipherParams{
			Salt:       WordArrayFromBytes(raw[len(OpenSSLMagic):opensslHeaderSize]),
			Ciphertext: WordArrayFromBytes(raw[opensslHeaderSize:]),
			Formatter:  OpenSSL,
		}, nil
	}
	return &CipherParams{Ciphertext: WordArrayFromBytes(raw), Formatter: OpenSSL}, nil
}
