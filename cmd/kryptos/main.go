// main.go: The kryptos command: hashing, HMAC, OpenSSL-compatible encryption and key derivation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"github.com/p7r0x7/vainpath"
	"github.com/spf13/pflag"

	"github.com/agilira/kryptos"
	"github.com/agilira/kryptos/internal/config"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `kryptos: hashes, HMACs and OpenSSL-compatible encryption.

Usage:
  kryptos hash [-a ALGO] [-b] [-s] [-|FILE|STRING...]
  kryptos hmac -k KEY [-a ALGO] [-b] [-s] [-|FILE|STRING...]
  kryptos enc  (-p PASS | -K HEX) [-c CIPHER] [-m MODE] [--padding P] [--binary] [--in F] [--out F]
  kryptos dec  (-p PASS | -K HEX) [-c CIPHER] [-m MODE] [--padding P] [--binary] [--in F] [--out F]
  kryptos kdf  -p PASS [-S SALT] [-c CIPHER] [--kdf NAME] [-d DIGEST] [-i N]

Every subcommand accepts --config FILE; flags override the file.
Run "kryptos COMMAND -h" for the options of a command.
`

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

var commands = map[string]func(*app, []string) int{
	"hash": (*app).hash,
	"hmac": (*app).hmac,
	"enc":  (*app).enc,
	"dec":  (*app).dec,
	"kdf":  (*app).kdf,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches args[0] to a subcommand and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.New(stderr, "kryptos: ", 0),
	}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	switch args[0] {
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.logger.Printf("unknown command %q; known: %s", args[0], strings.Join(commandNames(), ", "))
		return exitUsage
	}
	return cmd(a, args[1:])
}

func commandNames() []string {
	out := make([]string, 0, len(commands))
	for k := range commands {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// flagSet returns a FlagSet that reports to stderr and keeps declaration order.
func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.SortFlags = false
	fs.String("config", "", "YAML file with default settings")
	return fs
}

// parse parses args and returns the exit code to use when parsing ends the command.
func (a *app) parse(fs *pflag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

// settings loads --config and applies the flags the user set on top of it.
func (a *app) settings(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	override := func(flag string, dst *string) {
		if fs.Lookup(flag) != nil && fs.Changed(flag) {
			*dst, _ = fs.GetString(flag)
		}
	}
	override("cipher", &cfg.Cipher)
	override("mode", &cfg.Mode)
	override("padding", &cfg.Padding)
	override("kdf", &cfg.KDF)
	override("digest", &cfg.Digest)
	if fs.Lookup("iter") != nil && fs.Changed("iter") {
		cfg.Iterations, _ = fs.GetInt("iter")
	}
	if fs.Lookup("base64") != nil && fs.Changed("base64") {
		if b, _ := fs.GetBool("base64"); b {
			cfg.Output = "base64"
		} else {
			cfg.Output = "hex"
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fail logs err with its root cause and returns the failure exit code.
func (a *app) fail(err error) int {
	msg := err.Error()
	if cause := goerrors.RootCause(err); cause != err && !strings.Contains(msg, cause.Error()) {
		msg += ": " + cause.Error()
	}
	a.logger.Print(msg)
	return exitFail
}

// report prints a library diagnostic to stderr.
func (a *app) report(d kryptos.Diagnostic) {
	a.logger.Printf("%s: %s", d.Code, d.Message)
}

func (a *app) hash(args []string) int {
	fs := a.flagSet("hash")
	fs.StringP("digest", "a", "sha256", "hash algorithm")
	fs.BoolP("base64", "b", false, "print digests as base64 (default hex)")
	strs := fs.BoolP("string", "s", false, "hash the arguments themselves instead of files")
	if code, ok := a.parse(fs, args); !ok {
		return code
	}
	cfg, err := a.settings(fs)
	if err != nil {
		return a.fail(err)
	}
	algo, err := cfg.Hash()
	if err != nil {
		return a.fail(err)
	}
	if algo == nil {
		algo = kryptos.SHA256
	}
	return a.digestAll(fs.Args(), *strs, cfg.Encoder(), func() io.Writer { return algo.NewHasher() },
		func(w io.Writer) *kryptos.WordArray { return w.(*kryptos.Hasher).Finalize(nil) })
}

func (a *app) hmac(args []string) int {
	fs := a.flagSet("hmac")
	fs.StringP("digest", "a", "sha256", "hash algorithm")
	key := fs.StringP("key", "k", "", "HMAC key (UTF-8)")
	keyHex := fs.String("key-hex", "", "HMAC key as hex")
	fs.BoolP("base64", "b", false, "print tags as base64 (default hex)")
	strs := fs.BoolP("string", "s", false, "authenticate the arguments themselves instead of files")
	if code, ok := a.parse(fs, args); !ok {
		return code
	}
	cfg, err := a.settings(fs)
	if err != nil {
		return a.fail(err)
	}
	algo, err := cfg.Hash()
	if err != nil {
		return a.fail(err)
	}
	if algo == nil {
		algo = kryptos.SHA256
	}
	k, err := keyArg(*key, *keyHex)
	if err != nil {
		return a.fail(err)
	}
	if k == nil {
		a.logger.Print("hmac needs --key or --key-hex")
		return exitUsage
	}
	return a.digestAll(fs.Args(), *strs, cfg.Encoder(), func() io.Writer { return kryptos.NewHMAC(algo, k) },
		func(w io.Writer) *kryptos.WordArray { return w.(*kryptos.HMAC).Finalize(nil) })
}

// digestAll streams every target through a fresh writer from newSum and
// prints "digest  target" lines. A failing target is logged and skipped.
func (a *app) digestAll(targets []string, literal bool, enc kryptos.Encoder,
	newSum func() io.Writer, finish func(io.Writer) *kryptos.WordArray) int {
	if len(targets) == 0 {
		targets = []string{"-"}
	}
	code := exitOK
	for _, target := range targets {
		w := newSum()
		label := target
		switch {
		case literal:
			_, _ = io.WriteString(w, target)
			label = `"` + target + `"`
		case target == "-":
			if _, err := io.Copy(w, a.stdin); err != nil {
				a.logger.Printf("stdin: %v", err)
				code = exitFail
				continue
			}
		default:
			if err := copyFile(w, target); err != nil {
				a.logger.Printf("%s: %v", vainpath.Simplify(target), err)
				code = exitFail
				continue
			}
			label = vainpath.Simplify(target)
		}
		out, err := finish(w).ToString(enc)
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintf(a.stdout, "%s  %s\n", out, label)
	}
	return code
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is a command-line argument
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// cipherFlags registers the flags shared by enc and dec.
type cipherFlags struct {
	password *string
	keyHex   *string
	ivHex    *string
	saltHex  *string
	noSalt   *bool
	binary   *bool
	in       *string
	out      *string
}

func addCipherFlags(fs *pflag.FlagSet) *cipherFlags {
	f := &cipherFlags{
		password: fs.StringP("password", "p", "", "password; key and IV are derived from it"),
		keyHex:   fs.StringP("key", "K", "", "raw key as hex (disables password derivation)"),
		ivHex:    fs.String("iv", "", "IV as hex"),
		saltHex:  fs.StringP("salt", "S", "", "8-byte salt as hex (default random)"),
		noSalt:   fs.Bool("nosalt", false, "derive without salt and omit the Salted__ header"),
		binary:   fs.Bool("binary", false, "raw binary ciphertext instead of base64"),
		in:       fs.String("in", "-", "input file (- for stdin)"),
		out:      fs.String("out", "-", "output file (- for stdout)"),
	}
	fs.StringP("cipher", "c", "aes", "cipher algorithm")
	fs.StringP("mode", "m", "cbc", "block mode")
	fs.String("padding", "pkcs7", "block padding")
	fs.String("kdf", "evpkdf", "password KDF: evpkdf, pbkdf2 or argon2id")
	fs.StringP("digest", "d", "", "KDF digest (default per KDF)")
	fs.IntP("iter", "i", 0, "KDF iteration count (default per KDF)")
	return f
}

// resolve builds the algorithm and cipher configuration from settings and flags.
func (a *app) resolve(cfg *config.Config, f *cipherFlags) (kryptos.CipherAlgorithm, *kryptos.CipherConfig, error) {
	algo, err := cfg.Algorithm()
	if err != nil {
		return nil, nil, err
	}
	cc, err := cfg.CipherConfig()
	if err != nil {
		return nil, nil, err
	}
	cc.Diagnostics = a.report
	if *f.ivHex != "" {
		if cc.IV, err = kryptos.Hex.Parse(*f.ivHex); err != nil {
			return nil, nil, err
		}
	}
	switch {
	case *f.noSalt:
		cc.Salt = kryptos.NewWordArray(nil, 0)
	case *f.saltHex != "":
		if cc.Salt, err = kryptos.Hex.Parse(*f.saltHex); err != nil {
			return nil, nil, err
		}
	}
	return algo, cc, nil
}

func (a *app) enc(args []string) int {
	fs := a.flagSet("enc")
	f := addCipherFlags(fs)
	if code, ok := a.parse(fs, args); !ok {
		return code
	}
	return a.cipher(fs, f, kryptos.TransformEncrypt)
}

func (a *app) dec(args []string) int {
	fs := a.flagSet("dec")
	f := addCipherFlags(fs)
	if code, ok := a.parse(fs, args); !ok {
		return code
	}
	return a.cipher(fs, f, kryptos.TransformDecrypt)
}

func (a *app) cipher(fs *pflag.FlagSet, f *cipherFlags, t kryptos.Transform) int {
	cfg, err := a.settings(fs)
	if err != nil {
		return a.fail(err)
	}
	algo, cc, err := a.resolve(cfg, f)
	if err != nil {
		return a.fail(err)
	}
	key, err := keyArg("", *f.keyHex)
	if err != nil {
		return a.fail(err)
	}
	if key == nil && !fs.Changed("password") {
		a.logger.Printf("%s needs --password or --key", t)
		return exitUsage
	}

	in, err := a.open(*f.in)
	if err != nil {
		return a.fail(err)
	}
	defer in.Close()
	out, err := a.create(*f.out)
	if err != nil {
		return a.fail(err)
	}
	defer out.Close()

	password := kryptos.WordArrayFromString(*f.password)
	if *f.binary {
		err = a.cipherBinary(algo, cc, key, password, t, in, out)
	} else {
		err = a.cipherText(algo, cc, key, password, t, in, out)
	}
	if err != nil {
		return a.fail(err)
	}
	return exitOK
}

// cipherBinary streams raw ciphertext, with the Salted__ header when a password is used.
func (a *app) cipherBinary(algo kryptos.CipherAlgorithm, cc *kryptos.CipherConfig, key, password *kryptos.WordArray,
	t kryptos.Transform, in io.Reader, out io.Writer) error {
	if t == kryptos.TransformEncrypt {
		var w kryptos.StreamingEncryptor
		var err error
		if key != nil {
			var c *kryptos.Cipher
			if c, err = kryptos.CreateEncryptor(algo, key, cc); err == nil {
				w, err = kryptos.NewEncryptWriter(out, c)
			}
		} else {
			w, err = kryptos.NewOpenSSLEncryptWriter(out, algo, password, cc)
		}
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	}

	var r kryptos.StreamingDecryptor
	var err error
	if key != nil {
		var c *kryptos.Cipher
		if c, err = kryptos.CreateDecryptor(algo, key, cc); err == nil {
			r, err = kryptos.NewDecryptReader(in, c)
		}
	} else {
		r, err = kryptos.NewOpenSSLDecryptReader(in, algo, password, cc)
	}
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(out, r)
	return err
}

// cipherText handles the base64 OpenSSL format, one message per invocation.
func (a *app) cipherText(algo kryptos.CipherAlgorithm, cc *kryptos.CipherConfig, key, password *kryptos.WordArray,
	t kryptos.Transform, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	if t == kryptos.TransformEncrypt {
		var params *kryptos.CipherParams
		if key != nil {
			params, err = kryptos.EncryptWithKey(algo, kryptos.WordArrayFromBytes(data), key, cc)
		} else {
			params, err = kryptos.EncryptWithPassword(algo, kryptos.WordArrayFromBytes(data), password, cc)
		}
		if err != nil {
			return err
		}
		s, err := params.Stringify(cc.Format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, s)
		return err
	}

	ct := kryptos.Formatted(bytes.TrimSpace(data))
	var plain *kryptos.WordArray
	if key != nil {
		plain, err = kryptos.DecryptWithKey(algo, ct, key, cc)
	} else {
		plain, err = kryptos.DecryptWithPassword(algo, ct, password, cc)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(plain.Bytes())
	return err
}

func (a *app) kdf(args []string) int {
	fs := a.flagSet("kdf")
	password := fs.StringP("password", "p", "", "password")
	saltHex := fs.StringP("salt", "S", "", "8-byte salt as hex (default random)")
	noSalt := fs.Bool("nosalt", false, "derive without salt")
	fs.StringP("cipher", "c", "aes", "cipher whose key and IV sizes are derived")
	fs.String("kdf", "evpkdf", "password KDF: evpkdf, pbkdf2 or argon2id")
	fs.StringP("digest", "d", "", "KDF digest (default per KDF)")
	fs.IntP("iter", "i", 0, "KDF iteration count (default per KDF)")
	if code, ok := a.parse(fs, args); !ok {
		return code
	}
	cfg, err := a.settings(fs)
	if err != nil {
		return a.fail(err)
	}
	algo, err := cfg.Algorithm()
	if err != nil {
		return a.fail(err)
	}
	kdf, err := cfg.PasswordKDF()
	if err != nil {
		return a.fail(err)
	}

	var salt *kryptos.WordArray
	switch {
	case *noSalt:
		salt = kryptos.NewWordArray(nil, 0)
	case *saltHex != "":
		if salt, err = kryptos.Hex.Parse(*saltHex); err != nil {
			return a.fail(err)
		}
	}

	derived, err := kdf.Execute(kryptos.WordArrayFromString(*password), algo.KeySize(), algo.IVSize(), salt)
	if err != nil {
		return a.fail(err)
	}
	defer derived.Key.Zeroize()

	// same layout as `openssl enc -P`
	if derived.Salt.SigBytes > 0 {
		fmt.Fprintf(a.stdout, "salt=%s\n", strings.ToUpper(derived.Salt.String()))
	}
	fmt.Fprintf(a.stdout, "key=%s\n", strings.ToUpper(derived.Key.String()))
	if derived.IV.SigBytes > 0 {
		fmt.Fprintf(a.stdout, "iv =%s\n", strings.ToUpper(derived.IV.String()))
	}
	return exitOK
}

// keyArg returns the key given as UTF-8 text or hex, or nil when neither is set.
func keyArg(text, hexKey string) (*kryptos.WordArray, error) {
	switch {
	case hexKey != "":
		return kryptos.Hex.Parse(hexKey)
	case text != "":
		return kryptos.WordArrayFromString(text), nil
	}
	return nil, nil
}

func (a *app) open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(a.stdin), nil
	}
	return os.Open(path) // #nosec G304 -- path is a command-line argument
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (a *app) create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{a.stdout}, nil
	}
	return os.Create(path) // #nosec G304 -- path is a command-line argument
}
