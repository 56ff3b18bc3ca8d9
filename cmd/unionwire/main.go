package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/reoring/unionwire"
	"github.com/reoring/unionwire/codec"
	"github.com/reoring/unionwire/protocol"
	"github.com/reoring/unionwire/schemafile"
	"github.com/reoring/unionwire/variety"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// errUsage marks failures that exit with status 2.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, `unionwire CLI

Usage:
  unionwire fields [--schema file.yaml --struct Name]
  unionwire encode [--schema --struct] [--protocol binary|compact|json] [--scheme standard|tuple] [--format json|yaml|cbor] [--hex] [--in file] [--out file]
  unionwire decode [--schema --struct] [--protocol ...] [--scheme ...] [--format json|yaml|cbor|diag|text] [--hex] [--in file] [--out file]

Without --schema the built-in TestingUnions table is used.`)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "fields":
		err = fieldsCmd(args[1:], stdout, stderr)
	case "encode":
		err = encodeCmd(ctx, args[1:], stdin, stdout, stderr)
	case "decode":
		err = decodeCmd(ctx, args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

// options are the flags shared by every subcommand.
type options struct {
	schema   string
	structNm string
	proto    string
	scheme   string
	format   string
	in       string
	out      string
	hexIO    bool
	maxMsg   int32
	verbose  bool
}

func newFlagSet(name string, o *options, stderr io.Writer, wire bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.schema, "schema", "", "YAML schema file declaring the union")
	fs.StringVar(&o.structNm, "struct", "", "union name within --schema (default: the first document)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logs")
	if wire {
		fs.StringVar(&o.proto, "protocol", protocol.NameBinary, "thrift protocol: "+strings.Join(protocol.Names(), "|"))
		fs.StringVar(&o.scheme, "scheme", unionwire.SchemeStandard, "wire scheme: standard|tuple")
		fs.StringVar(&o.in, "in", "", "input file (default: stdin)")
		fs.StringVar(&o.out, "out", "", "output file (default: stdout)")
		fs.BoolVar(&o.hexIO, "hex", false, "encoded bytes are hex text")
		fs.Int32Var(&o.maxMsg, "max-message-size", 0, "maximum thrift message size in bytes (0: thrift default)")
	}
	return fs
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func fieldsCmd(args []string, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet("fields", &o, stderr, false)
	if err := parse(fs, args); err != nil {
		return err
	}
	log := newLogger(stderr, o.verbose)
	t, err := loadTable(o, log)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", t.Name())
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tREQUIREMENT\tTYPEDEF")
	for _, d := range t.Fields() {
		typ := d.Kind.String()
		if d.Kind == unionwire.KindMap {
			typ = "map<" + d.Key.String() + "," + d.Elem.String() + ">"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, typ, d.Requirement, d.Typedef)
	}
	return tw.Flush()
}

func encodeCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet("encode", &o, stderr, true)
	fs.StringVar(&o.format, "format", "json", "input natural form: json|yaml|cbor")
	if err := parse(fs, args); err != nil {
		return err
	}
	log := newLogger(stderr, o.verbose)
	c, err := newCodec(o, log)
	if err != nil {
		return err
	}
	input, err := readInput(o.in, stdin)
	if err != nil {
		log.Error("reading input", "error", err)
		return err
	}
	u := unionwire.New(c.Table())
	switch o.format {
	case "json":
		err = u.UnmarshalJSON(input)
	case "yaml":
		err = yaml.Unmarshal(input, u)
	case "cbor":
		err = u.UnmarshalCBOR(input)
	default:
		log.Error("unknown input format", "format", o.format)
		return errUsage
	}
	if err != nil {
		log.Error("parsing natural form", "format", o.format, "error", err)
		return err
	}
	b, err := c.Encode(ctx, u)
	if err != nil {
		log.Error("encoding", "union", u.String(), "error", err)
		return err
	}
	log.Debug("encoded", "union", u.String(), "protocol", o.proto, "scheme", o.scheme, "bytes", len(b))
	if o.hexIO {
		b = []byte(hex.EncodeToString(b) + "\n")
	}
	return writeOutput(o.out, stdout, b, log)
}

func decodeCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet("decode", &o, stderr, true)
	fs.StringVar(&o.format, "format", "json", "output natural form: json|yaml|cbor|diag|text")
	if err := parse(fs, args); err != nil {
		return err
	}
	log := newLogger(stderr, o.verbose)
	c, err := newCodec(o, log)
	if err != nil {
		return err
	}
	input, err := readInput(o.in, stdin)
	if err != nil {
		log.Error("reading input", "error", err)
		return err
	}
	if o.hexIO {
		if input, err = hex.DecodeString(string(bytes.TrimSpace(input))); err != nil {
			log.Error("decoding hex input", "error", err)
			return err
		}
	}
	u, err := c.Decode(ctx, input)
	if err != nil {
		log.Error("decoding", "bytes", len(input), "error", err)
		return err
	}
	log.Debug("decoded", "union", u.String())
	var out []byte
	switch o.format {
	case "json":
		out, err = u.MarshalJSON()
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(u)
	case "cbor":
		out, err = u.MarshalCBOR()
	case "diag":
		var d string
		d, err = u.DiagnoseCBOR()
		out = []byte(d + "\n")
	case "text":
		out = []byte(u.String() + "\n")
	default:
		log.Error("unknown output format", "format", o.format)
		return errUsage
	}
	if err != nil {
		log.Error("rendering", "format", o.format, "error", err)
		return err
	}
	return writeOutput(o.out, stdout, out, log)
}

func loadTable(o options, log *slog.Logger) (*unionwire.Table, error) {
	if o.schema == "" {
		if o.structNm != "" && o.structNm != variety.TestingUnionsTable.Name() {
			log.Error("--struct requires --schema", "struct", o.structNm)
			return nil, errUsage
		}
		return variety.TestingUnionsTable, nil
	}
	tables, err := schemafile.LoadFile(o.schema)
	if err != nil {
		log.Error("loading schema", "file", o.schema, "error", err)
		return nil, err
	}
	if o.structNm == "" {
		return tables[0], nil
	}
	t, ok := schemafile.Find(tables, o.structNm)
	if !ok {
		log.Error("struct not found in schema", "file", o.schema, "struct", o.structNm)
		return nil, errUsage
	}
	return t, nil
}

func newCodec(o options, log *slog.Logger) (*codec.Codec, error) {
	t, err := loadTable(o, log)
	if err != nil {
		return nil, err
	}
	var d protocol.Driver
	switch o.proto {
	case protocol.NameBinary:
		d = protocol.Binary(protocol.Configuration(o.maxMsg))
	case protocol.NameCompact:
		d = protocol.Compact(protocol.Configuration(o.maxMsg))
	default:
		var ok bool
		if d, ok = protocol.Lookup(o.proto); !ok {
			log.Error("unknown protocol", "protocol", o.proto, "known", protocol.Names())
			return nil, errUsage
		}
	}
	s, ok := unionwire.SchemeByName(o.scheme)
	if !ok {
		log.Error("unknown scheme", "scheme", o.scheme)
		return nil, errUsage
	}
	c, err := codec.New(t, codec.Opt{Driver: d, Scheme: s})
	if err != nil {
		log.Error("unsupported protocol and scheme", "protocol", d.Name(), "scheme", s.Name(), "error", err)
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	log.Debug("codec", "struct", t.Name(), "protocol", d.Name(), "scheme", s.Name())
	return c, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, b []byte, log *slog.Logger) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Error("writing output", "file", path, "error", err)
		return err
	}
	return nil
}
