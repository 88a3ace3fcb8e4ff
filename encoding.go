// encoding.go: Text encoders converting WordArrays to and from strings.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoder converts between a WordArray and its textual form.
//
// Encoders are stateless and safe for concurrent use.
type Encoder interface {
	// Stringify renders the significant bytes of w.
	Stringify(w *WordArray) (string, error)

	// Parse decodes s into a new WordArray.
	Parse(s string) (*WordArray, error)
}

// Built-in encoders.
var (
	// Hex renders lowercase hexadecimal and parses either case.
	Hex Encoder = hexEncoder{}

	// Base64 is the standard alphabet with padding. Parse accepts unpadded input.
	Base64 Encoder = base64Encoder{enc: base64.StdEncoding, raw: base64.RawStdEncoding}

	// Base64URL is the URL-safe alphabet with padding. Parse accepts unpadded input.
	Base64URL Encoder = base64Encoder{enc: base64.URLEncoding, raw: base64.RawURLEncoding}

	// Latin1 maps each byte to the code point of the same value.
	Latin1 Encoder = textEncoder{name: "Latin1", enc: charmap.ISO8859_1}

	// Utf8 validates UTF-8 on Stringify.
	Utf8 Encoder = utf8Encoder{}

	// Utf16 is big-endian UTF-16 without a byte order mark.
	Utf16 Encoder = textEncoder{name: "Utf16", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), unit: 2}

	// Utf16BE is an alias of Utf16.
	Utf16BE = Utf16

	// Utf16LE is little-endian UTF-16 without a byte order mark.
	Utf16LE Encoder = textEncoder{name: "Utf16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), unit: 2}
)

type hexEncoder struct{}

func (hexEncoder) Stringify(w *WordArray) (string, error) {
	return hex.EncodeToString(w.Bytes()), nil
}

func (hexEncoder) Parse(s string) (*WordArray, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(ErrMalformedText, err, ErrCodeMalformedText, "invalid hex string")
	}
	return WordArrayFromBytes(b), nil
}

type base64Encoder struct {
	enc *base64.Encoding
	raw *base64.Encoding
}

func (e base64Encoder) Stringify(w *WordArray) (string, error) {
	return e.enc.EncodeToString(w.Bytes()), nil
}

func (e base64Encoder) Parse(s string) (*WordArray, error) {
	b, err := e.raw.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, wrapError(ErrMalformedText, err, ErrCodeMalformedText, "invalid base64 string")
	}
	return WordArrayFromBytes(b), nil
}

type utf8Encoder struct{}

func (utf8Encoder) Stringify(w *WordArray) (string, error) {
	b := w.Bytes()
	if !utf8.Valid(b) {
		return "", newError(ErrMalformedText, ErrCodeMalformedText, "malformed UTF-8 data")
	}
	return string(b), nil
}

func (utf8Encoder) Parse(s string) (*WordArray, error) {
	return WordArrayFromString(s), nil
}

// textEncoder adapts an x/text encoding. unit is the code unit size in bytes.
type textEncoder struct {
	name string
	enc  encoding.Encoding
	unit int
}

func (e textEncoder) Stringify(w *WordArray) (string, error) {
	if e.unit > 1 && w.SigBytes%e.unit != 0 {
		return "", newError(ErrMalformedText, ErrCodeMalformedText,
			fmt.Sprintf("%s data length %d is not a multiple of %d", e.name, w.SigBytes, e.unit))
	}
	out, err := e.enc.NewDecoder().Bytes(w.Bytes())
	if err != nil {
		return "", wrapError(ErrMalformedText, err, ErrCodeMalformedText, "cannot decode "+e.name+" data")
	}
	return string(out), nil
}

func (e textEncoder) Parse(s string) (*WordArray, error) {
	out, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, wrapError(ErrMalformedText, err, ErrCodeMalformedText, "cannot encode string as "+e.name)
	}
	return WordArrayFromBytes(out), nil
}
