// streaming.go: Streaming encryption/decryption over io.Writer and io.Reader.
//
// This module lets a Cipher sit in an io pipeline so large inputs never have
// to be held in memory, and reads and writes the binary form of the OpenSSL
// format (`openssl enc` without -a).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// DefaultChunkSize is the read size of streaming decryptors (4KB, one pooled buffer).
const DefaultChunkSize = 4 * 1024

// StreamingEncryptor encrypts everything written to it.
//
// Example usage:
//
//	enc, _ := kryptos.CreateEncryptor(kryptos.AES, key, &kryptos.CipherConfig{IV: iv})
//	w, _ := kryptos.NewEncryptWriter(output, enc)
//	io.Copy(w, input)
//	w.Close() // writes the padded final block
type StreamingEncryptor interface {
	// Write encrypts data and writes every completed block to the underlying writer.
	Write(data []byte) (int, error)

	// Close finalizes the cipher and writes the remaining output.
	// Must be called to ensure the final block is written.
	Close() error
}

// StreamingDecryptor returns the decryption of an underlying reader.
type StreamingDecryptor interface {
	// Read returns decrypted bytes. The final block is released, unpadded, at EOF.
	Read(data []byte) (int, error)

	// Close releases the decryptor's buffers. It does not close the source.
	Close() error
}

// streamingEncryptor implements StreamingEncryptor over a Cipher.
type streamingEncryptor struct {
	writer io.Writer
	cipher *Cipher
	closed bool
}

// streamingDecryptor implements StreamingDecryptor over a Cipher.
type streamingDecryptor struct {
	reader  io.Reader
	cipher  *Cipher
	chunk   *[]byte
	pending []byte
	done    bool
	closed  bool
}

// NewEncryptWriter wraps writer so that data written is encrypted by c.
//
// Parameters:
//   - writer: Destination for the ciphertext
//   - c: An encrypting Cipher; the writer owns it from now on
//
// Returns ErrInvalidTransform if c decrypts.
func NewEncryptWriter(writer io.Writer, c *Cipher) (StreamingEncryptor, error) {
	if c == nil || c.Transform() != TransformEncrypt {
		return nil, newError(ErrInvalidTransform, ErrCodeInvalidTransform, "encrypt writer needs an encrypting cipher")
	}
	return &streamingEncryptor{writer: writer, cipher: c}, nil
}

// NewDecryptReader wraps reader so that reads return the decryption by c.
//
// Returns ErrInvalidTransform if c encrypts.
func NewDecryptReader(reader io.Reader, c *Cipher) (StreamingDecryptor, error) {
	if c == nil || c.Transform() != TransformDecrypt {
		return nil, newError(ErrInvalidTransform, ErrCodeInvalidTransform, "decrypt reader needs a decrypting cipher")
	}
	return &streamingDecryptor{reader: reader, cipher: c, chunk: getBuffer(DefaultChunkSize)}, nil
}

// Write implements the Write method of StreamingEncryptor.
func (e *streamingEncryptor) Write(data []byte) (int, error) {
	if e.closed {
		return 0, goerrors.New("ENCRYPTOR_CLOSED", "cannot write to closed encryptor")
	}
	out, err := e.cipher.Process(WordArrayFromBytes(data))
	if err != nil {
		return 0, err
	}
	if err := e.emit(out); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Close implements the Close method of StreamingEncryptor.
func (e *streamingEncryptor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	out, err := e.cipher.Finalize(nil)
	if err != nil {
		return err
	}
	return e.emit(out)
}

func (e *streamingEncryptor) emit(out *WordArray) error {
	if out.SigBytes == 0 {
		return nil
	}
	if _, err := e.writer.Write(out.Bytes()); err != nil {
		return goerrors.Wrap(err, "CHUNK_WRITE_FAILED", "failed to write encrypted chunk")
	}
	return nil
}

// Read implements the Read method of StreamingDecryptor.
func (d *streamingDecryptor) Read(data []byte) (int, error) {
	if d.closed {
		return 0, goerrors.New("DECRYPTOR_CLOSED", "cannot read from closed decryptor")
	}

	for len(d.pending) == 0 {
		if d.done {
			return 0, io.EOF
		}
		if err := d.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(data, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}

// fill reads one chunk from the source and decrypts what is ready.
func (d *streamingDecryptor) fill() error {
	n, err := d.reader.Read(*d.chunk)
	if n > 0 {
		out, perr := d.cipher.Process(WordArrayFromBytes((*d.chunk)[:n]))
		if perr != nil {
			return perr
		}
		d.pending = append(d.pending, out.Bytes()...)
	}
	switch {
	case errors.Is(err, io.EOF):
		out, ferr := d.cipher.Finalize(nil)
		if ferr != nil {
			return ferr
		}
		d.pending = append(d.pending, out.Bytes()...)
		d.done = true
	case err != nil:
		return goerrors.Wrap(err, "CHUNK_READ_FAILED", "failed to read encrypted chunk")
	}
	return nil
}

// Close implements the Close method of StreamingDecryptor.
func (d *streamingDecryptor) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	putBuffer(d.chunk)
	d.chunk = nil
	d.pending = nil
	return nil
}

// NewOpenSSLEncryptWriter writes a binary OpenSSL message to writer: the
// "Salted__" header with the salt, then the ciphertext of everything written.
//
// Key and IV are derived from password with cfg.KDF (OpenSSLKDF by default)
// as in EncryptWithPassword. With cfg.Salt set to an empty WordArray no header
// is written, like `openssl enc -nosalt`.
//
// Example:
//
//	w, err := kryptos.NewOpenSSLEncryptWriter(file, kryptos.AES, password, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	io.Copy(w, input)
//	w.Close()
func NewOpenSSLEncryptWriter(writer io.Writer, algo CipherAlgorithm, password *WordArray, cfg *CipherConfig) (StreamingEncryptor, error) {
	resolved := cfg.withDefaults()
	resolved.ignoreExplicitIV()

	derived, err := resolved.KDF.Execute(password, algo.KeySize(), algo.IVSize(), resolved.Salt)
	if err != nil {
		return nil, err
	}
	resolved.IV = derived.IV

	c, err := CreateEncryptor(algo, derived.Key, &resolved)
	if err != nil {
		return nil, err
	}

	if derived.Salt.SigBytes > 0 {
		if derived.Salt.SigBytes != SaltSize {
			return nil, newError(ErrInvalidSalt, ErrCodeInvalidSalt,
				fmt.Sprintf("OpenSSL salt must be %d bytes, got %d", SaltSize, derived.Salt.SigBytes))
		}
		header := append([]byte(OpenSSLMagic), derived.Salt.Bytes()...)
		if _, err := writer.Write(header); err != nil {
			return nil, goerrors.Wrap(err, "HEADER_WRITE_FAILED", "failed to write OpenSSL header")
		}
	}
	return NewEncryptWriter(writer, c)
}

// NewOpenSSLDecryptReader reads a binary OpenSSL message from reader and
// returns its decryption.
//
// The salt is taken from the "Salted__" header; a stream without the header
// is decrypted with an empty salt. An IV in cfg is reported as DiagIVIgnored.
func NewOpenSSLDecryptReader(reader io.Reader, algo CipherAlgorithm, password *WordArray, cfg *CipherConfig) (StreamingDecryptor, error) {
	resolved := cfg.withDefaults()
	resolved.ignoreExplicitIV()

	head := make([]byte, opensslHeaderSize)
	n, err := io.ReadFull(reader, head)
	head = head[:n]
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	default:
		return nil, goerrors.Wrap(err, "HEADER_READ_FAILED", "failed to read OpenSSL header")
	}

	salt := NewWordArray(nil, 0)
	body := reader
	if bytes.HasPrefix(head, []byte(OpenSSLMagic)) {
		if n < opensslHeaderSize {
			return nil, newError(ErrCiphertextShort, ErrCodeCiphertextShort, "OpenSSL header truncated")
		}
		salt = WordArrayFromBytes(head[len(OpenSSLMagic):])
	} else {
		body = io.MultiReader(bytes.NewReader(head), reader)
	}

	derived, err := resolved.KDF.Execute(password, algo.KeySize(), algo.IVSize(), salt)
	if err != nil {
		return nil, err
	}
	resolved.IV = derived.IV

	c, err := CreateDecryptor(algo, derived.Key, &resolved)
	if err != nil {
		return nil, err
	}
	return NewDecryptReader(body, c)
}
