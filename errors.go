// errors.go: Sentinel errors and rich error codes shared by every kryptos component.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Public standard errors.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMissingKey is returned when a cipher is created without a key.
	ErrMissingKey = errors.New("kryptos: missing key")

	// ErrIVMissing is returned when a chaining mode has neither an IV nor a previous block.
	ErrIVMissing = errors.New("kryptos: IV is missing")

	// ErrInvalidIV is returned when the IV is shorter than the cipher block.
	ErrInvalidIV = errors.New("kryptos: invalid IV")

	// ErrCipherInit is returned when the underlying primitive rejects the key or IV.
	ErrCipherInit = errors.New("kryptos: cipher initialization error")

	// ErrInvalidTransform is returned when a cipher is used in the wrong direction.
	ErrInvalidTransform = errors.New("kryptos: invalid transform")

	// ErrUnknownAlgorithm is returned by the registry for names it does not know.
	ErrUnknownAlgorithm = errors.New("kryptos: unknown algorithm")

	// ErrInvalidKDFParams is returned for negative key sizes or iteration counts.
	ErrInvalidKDFParams = errors.New("kryptos: invalid KDF parameters")

	// ErrFormat is returned when a serialized ciphertext cannot be decoded.
	ErrFormat = errors.New("kryptos: format error")

	// ErrCiphertextShort is returned when a salted ciphertext is shorter than its header.
	ErrCiphertextShort = errors.New("kryptos: ciphertext too short")

	// ErrInvalidSalt is returned when a salt cannot be encoded in the OpenSSL header.
	ErrInvalidSalt = errors.New("kryptos: invalid salt")

	// ErrMalformedText is returned when bytes are not valid in the requested text encoding.
	ErrMalformedText = errors.New("kryptos: malformed text")

	// ErrInvalidPadding is returned when unpadding finds an impossible pad.
	ErrInvalidPadding = errors.New("kryptos: invalid padding")

	// ErrCiphertextNotAligned is returned when a block-mode ciphertext is not a whole number of blocks.
	ErrCiphertextNotAligned = errors.New("kryptos: ciphertext not block aligned")

	// ErrRandom is returned when the system random source fails.
	ErrRandom = errors.New("kryptos: random source failure")

	// ErrCloneUnsupported is returned when a hash primitive cannot export its state.
	ErrCloneUnsupported = errors.New("kryptos: clone unsupported")
)

// Error codes for rich error handling
const (
	ErrCodeMissingKey       = "KRYPTOS_MISSING_KEY"
	ErrCodeIVMissing        = "KRYPTOS_IV_MISSING"
	ErrCodeInvalidIV        = "KRYPTOS_INVALID_IV"
	ErrCodeCipherInit       = "KRYPTOS_CIPHER_INIT"
	ErrCodeInvalidTransform = "KRYPTOS_INVALID_TRANSFORM"
	ErrCodeUnknownAlgorithm = "KRYPTOS_UNKNOWN_ALGORITHM"
	ErrCodeInvalidKDFParams = "KRYPTOS_INVALID_KDF_PARAMS"
	ErrCodeFormat           = "KRYPTOS_FORMAT"
	ErrCodeCiphertextShort  = "KRYPTOS_CIPHERTEXT_SHORT"
	ErrCodeInvalidSalt      = "KRYPTOS_INVALID_SALT"
	ErrCodeMalformedText    = "KRYPTOS_MALFORMED_TEXT"
	ErrCodeInvalidPadding   = "KRYPTOS_INVALID_PADDING"
	ErrCodeNotAligned       = "KRYPTOS_CIPHERTEXT_NOT_ALIGNED"
	ErrCodeRandom           = "KRYPTOS_RANDOM"
	ErrCodeCloneUnsupported = "KRYPTOS_CLONE_UNSUPPORTED"
)

// newError pairs a sentinel with a coded go-errors value.
func newError(sentinel error, code goerrors.ErrorCode, msg string) error {
	richErr := goerrors.New(code, msg)
	return fmt.Errorf("%w: %w", sentinel, richErr)
}

// wrapError pairs a sentinel with a coded go-errors value wrapping cause.
func wrapError(sentinel error, cause error, code goerrors.ErrorCode, msg string) error {
	richErr := goerrors.Wrap(cause, code, msg)
	return fmt.Errorf("%w: %w", sentinel, richErr)
}
