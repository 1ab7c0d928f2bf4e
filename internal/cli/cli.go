// Package cli implements the sha512viz command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	sha512 "github.com/Giulio2002/reference_sha512"
	"github.com/Giulio2002/reference_sha512/internal/api"
	"github.com/Giulio2002/reference_sha512/internal/utils"
)

// Environment variables consulted before command line flags.
const (
	EnvAddr    = "SHA512VIZ_ADDR"
	EnvMaxBody = "SHA512VIZ_MAX_BODY"
	EnvCache   = "SHA512VIZ_CACHE"
	EnvDebug   = "SHA512VIZ_DEBUG"
)

// Aliases for the CLI commands for convenience.
var (
	aliasesServe = map[string]bool{"s": true, "serve": true, "--serve": true}
	aliasesSum   = map[string]bool{"sum": true, "--sum": true}
	aliasesPad   = map[string]bool{"p": true, "pad": true, "--pad": true}
	aliasesHelp  = map[string]bool{"h": true, "-h": true, "help": true, "--help": true}
)

// IO bundles the streams a command reads from and writes to.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// RunCLI dispatches argv (including the program name) to serve, sum or pad.
func RunCLI(ctx context.Context, argv []string, stdio IO) error {
	if len(argv) < 2 || aliasesHelp[argv[1]] {
		printHelp(stdio.Stdout)
		return nil
	}

	cmd, args := argv[1], argv[2:]
	switch {
	case aliasesServe[cmd]:
		cfg, err := serveConfig(args, os.Getenv)
		if err != nil {
			return err
		}
		return api.NewServer(cfg).ListenAndServe(ctx)

	case aliasesSum[cmd]:
		return sum(args, stdio)

	case aliasesPad[cmd]:
		if len(args) != 1 {
			return errors.New("usage: sha512viz pad TEXT")
		}
		return pad(args[0], stdio.Stdout)

	default:
		return fmt.Errorf("unknown command %q. Use --help", cmd)
	}
}

// serveConfig layers defaults, then environment, then flags.
func serveConfig(args []string, getenv func(string) string) (api.Config, error) {
	cfg := api.DefaultConfig()
	debug := false

	if v := getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvMaxBody); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s: invalid byte count %q", EnvMaxBody, v)
		}
		cfg.MaxBodyBytes = n
	}
	if v := getenv(EnvCache); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s: invalid cache size %q", EnvCache, v)
		}
		cfg.CacheSize = n
	}
	if v := getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		debug = b
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "maximum request body in bytes")
	fs.IntVar(&cfg.CacheSize, "cache", cfg.CacheSize, "number of cached responses, 0 disables")
	fs.IntVar(&cfg.CacheMaxMessage, "cache-max-message", cfg.CacheMaxMessage, "longest cached message in bytes")
	fs.BoolVar(&debug, "debug", debug, "log every request")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("serve: %w", err)
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, errors.New("serve: -max-body must be positive")
	}

	if debug {
		utils.GlobalLogLevel |= utils.LogLevelDebug | utils.LogLevelNotice
	}
	return cfg, nil
}

// sum prints "<hex>  <name>" per file, like sha512sum. No files reads stdin.
func sum(files []string, stdio IO) error {
	if len(files) == 0 {
		data, err := io.ReadAll(stdio.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		_, err = fmt.Fprintf(stdio.Stdout, "%s  -\n", sha512.Hex(data))
		return err
	}
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(stdio.Stdout, "%s  %s\n", sha512.Hex(data), name); err != nil {
			return err
		}
	}
	return nil
}

// pad prints the digest, the padded message one block per line and the
// distinct characters of text with their bits.
func pad(text string, w io.Writer) error {
	resp := api.NewHashResponse(text)

	var b strings.Builder
	fmt.Fprintf(&b, "digest: %s\n", resp.Hash)
	const blockBits = sha512.BlockSize * 8
	for i := 0; i < len(resp.PaddedBits); i += blockBits {
		fmt.Fprintf(&b, "block %d: %s\n", i/blockBits, resp.PaddedBits[i:i+blockBits])
	}
	for _, l := range api.UniqueLetters(resp.Letters) {
		fmt.Fprintf(&b, "%q %s\n", l.Char, l.Bits)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// printHelp prints CLI usage, environment, and examples.
func printHelp(w io.Writer) {
	fmt.Fprint(w, `sha512viz: SHA-512 digests and padding visualization

USAGE:
  sha512viz (s|serve|--serve) [-addr :5000] [-max-body N] [-cache N] [-cache-max-message N] [-debug]
  sha512viz (sum|--sum)       [FILE ...]
  sha512viz (p|pad|--pad)     TEXT
  sha512viz (h|-h|help|--help)

ENVIRONMENT:
  `+EnvAddr+`      listen address (flags take precedence)
  `+EnvMaxBody+`  maximum request body in bytes
  `+EnvCache+`     number of cached responses
  `+EnvDebug+`     log every request

EXAMPLES:
  sha512viz serve -addr 127.0.0.1:5000
  printf abc | sha512viz sum
  sha512viz pad "hello"
`)
}
