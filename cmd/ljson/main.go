// ljson converts documents between JSON and the binary codecs of the ljson
// value model, or dumps the decoded value.
//
// Usage:
//
//	ljson [flags] [file]
//
// The input is read from file, or stdin when file is absent or "-". The
// result is written to stdout.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/ljson"
	"github.com/unkn0wn-root/ljson/codec"
	zaplog "github.com/unkn0wn-root/ljson/log/zap"
)

const formatDump = "dump"

// usageError marks bad invocations, which exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (usageError) ExitCode() int   { return 2 }

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "ljson: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

type config struct {
	from           string
	to             string
	maxDepth       int
	maxDecodeDepth int
	strictKeys     bool
	maxInput       int64
	logLevel       string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config
	fs := pflag.NewFlagSet("ljson", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.from, "from", "json", "input format: json|msgpack|cbor|protobuf")
	fs.StringVar(&cfg.to, "to", "json", "output format: json|msgpack|cbor|protobuf|dump")
	fs.IntVar(&cfg.maxDepth, "max-depth", ljson.MaxEncodeDepth, "deepest table nesting accepted on encode")
	fs.IntVar(&cfg.maxDecodeDepth, "max-decode-depth", 0, "deepest nesting accepted on JSON decode (0 = parser limit)")
	fs.BoolVar(&cfg.strictKeys, "strict-keys", false, "fail when two keys normalize to the same JSON key")
	fs.Int64Var(&cfg.maxInput, "max-input", 64<<20, "largest input accepted, in bytes (0 = unlimited)")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "debug|info|warn|error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ljson [flags] [file]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError{err}
	}
	if fs.NArg() > 1 {
		return usageError{fmt.Errorf("unexpected argument: %s", fs.Arg(1))}
	}

	logger, err := newLogger(cfg.logLevel, stderr)
	if err != nil {
		return usageError{err}
	}
	defer func() { _ = logger.Sync() }()

	collision := ljson.CollisionOverwrite
	if cfg.strictKeys {
		collision = ljson.CollisionError
	}
	conv := ljson.New(ljson.Options{
		MaxDepth:       cfg.maxDepth,
		MaxDecodeDepth: cfg.maxDecodeDepth,
		KeyCollision:   collision,
		Logger:         zaplog.New(logger),
	})

	in, err := codecFor(cfg.from, conv, collision)
	if err != nil {
		return usageError{err}
	}
	var out codec.Codec[ljson.Value]
	if cfg.to != formatDump {
		if out, err = codecFor(cfg.to, conv, collision); err != nil {
			return usageError{err}
		}
	}

	data, err := readInput(fs.Arg(0), stdin, cfg.maxInput)
	if err != nil {
		return err
	}
	logger.Debug("read input", zap.Int("bytes", len(data)), zap.String("from", cfg.from))

	v, err := in.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.from, err)
	}

	if out == nil {
		_, err = fmt.Fprintln(stdout, v.String())
		return err
	}
	b, err := out.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", cfg.to, err)
	}
	if codec.FormatOf(out) == codec.FormatJSON {
		b = append(b, '\n')
	}
	logger.Debug("wrote output", zap.Int("bytes", len(b)), zap.String("to", cfg.to))
	_, err = stdout.Write(b)
	return err
}

func codecFor(name string, conv *ljson.Converter, collision ljson.KeyCollision) (codec.Codec[ljson.Value], error) {
	switch strings.ToLower(name) {
	case "json":
		return codec.JSON{Converter: conv}, nil
	case "msgpack":
		return codec.Msgpack{}, nil
	case "cbor":
		return codec.NewCBOR(true)
	case "protobuf":
		return codec.Protobuf{KeyCollision: collision}, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func readInput(path string, stdin io.Reader, max int64) ([]byte, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("input exceeds %d bytes", max)
	}
	return data, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
