// config.go: YAML configuration for the kryptos command-line tool.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package config loads the defaults of the kryptos command from a YAML file
// and resolves them to library values.
package config

import (
	"fmt"
	"os"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/agilira/kryptos"
)

// Error codes for configuration failures.
const (
	ErrCodeRead    = "CONFIG_READ"
	ErrCodeParse   = "CONFIG_PARSE"
	ErrCodeInvalid = "CONFIG_INVALID"
)

// Config holds the tool defaults. Empty fields mean "library default".
//
// Example file:
//
//	cipher: aes
//	mode: cbc
//	padding: pkcs7
//	kdf: pbkdf2
//	digest: sha256
//	iterations: 100000
//	output: base64
type Config struct {
	Cipher     string `yaml:"cipher"`
	Mode       string `yaml:"mode"`
	Padding    string `yaml:"padding"`
	KDF        string `yaml:"kdf"`
	Digest     string `yaml:"digest"`
	Iterations int    `yaml:"iterations"`
	Output     string `yaml:"output"`

	// Argon2 tunes the argon2id KDF.
	Argon2 kryptos.KDFParams `yaml:"argon2"`
}

// Default returns the built-in configuration: AES-256-CBC, PKCS#7, EvpKDF
// with MD5, hex digests. It matches `openssl enc -aes-256-cbc -md md5`.
func Default() *Config {
	return &Config{
		Cipher:  "aes",
		Mode:    "cbc",
		Padding: "pkcs7",
		KDF:     "evpkdf",
		Output:  "hex",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeRead, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerrors.Wrap(err, ErrCodeParse, "failed to parse config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every name resolves and numbers are in range.
func (c *Config) Validate() error {
	if c.Iterations < 0 {
		return goerrors.New(ErrCodeInvalid, "iterations must not be negative")
	}
	switch strings.ToLower(c.Output) {
	case "", "hex", "base64":
	default:
		return goerrors.New(ErrCodeInvalid, "output must be hex or base64, got "+c.Output)
	}
	if _, err := c.Algorithm(); err != nil {
		return goerrors.Wrap(err, ErrCodeInvalid, fmt.Sprintf("invalid cipher %q", c.Cipher))
	}
	if _, err := c.Hash(); err != nil {
		return goerrors.Wrap(err, ErrCodeInvalid, fmt.Sprintf("invalid digest %q", c.Digest))
	}
	if _, err := c.CipherConfig(); err != nil {
		return goerrors.Wrap(err, ErrCodeInvalid, "invalid cipher settings: "+err.Error())
	}
	return nil
}

// Algorithm resolves the cipher name.
func (c *Config) Algorithm() (kryptos.CipherAlgorithm, error) {
	return kryptos.LookupCipher(orDefault(c.Cipher, "aes"))
}

// Hash resolves the digest name; empty means nil, letting each KDF pick its own.
func (c *Config) Hash() (*kryptos.HashAlgorithm, error) {
	if c.Digest == "" {
		return nil, nil
	}
	return kryptos.LookupHash(c.Digest)
}

// PasswordKDF builds the configured password KDF with the digest and iteration overrides.
func (c *Config) PasswordKDF() (kryptos.PasswordKDF, error) {
	digest, err := c.Hash()
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(orDefault(c.KDF, "evpkdf"))
	switch name {
	case "evpkdf", "openssl":
		return &kryptos.EvpPasswordKDF{Hasher: digest, Iterations: c.Iterations}, nil
	case "pbkdf2":
		return &kryptos.PBKDF2PasswordKDF{Hasher: digest, Iterations: c.Iterations}, nil
	case "argon2id", "argon2":
		params := c.Argon2
		return &kryptos.Argon2PasswordKDF{Params: &params}, nil
	}
	return kryptos.LookupKDF(name)
}

// CipherConfig resolves mode, padding and KDF into a library config.
func (c *Config) CipherConfig() (*kryptos.CipherConfig, error) {
	mode, err := kryptos.LookupMode(orDefault(c.Mode, "cbc"))
	if err != nil {
		return nil, err
	}
	padding, err := kryptos.LookupPadding(orDefault(c.Padding, "pkcs7"))
	if err != nil {
		return nil, err
	}
	kdf, err := c.PasswordKDF()
	if err != nil {
		return nil, err
	}
	return &kryptos.CipherConfig{Mode: mode, Padding: padding, KDF: kdf}, nil
}

// Encoder resolves the output encoding.
func (c *Config) Encoder() kryptos.Encoder {
	if strings.EqualFold(c.Output, "base64") {
		return kryptos.Base64
	}
	return kryptos.Hex
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
