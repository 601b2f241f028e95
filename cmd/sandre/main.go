// Command sandre converts, inspects and checks SANDRE Hydrometrie bulletins
// on the command line.
//
// Usage:
//
//	sandre convert -in bulletin.xml -out bulletin_v2.xml -version 2 [-strip-ns] [-indent 2]
//	sandre inspect -in bulletin.xml [-format json|yaml|dump]
//	sandre check   -in bulletin.xml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

// checkClock pins the decode time so that repeated decodes of a 1.1
// bulletin close archived events at the same instant.
var checkClock = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const usage = `usage: sandre <command> [flags]

commands:
  convert   re-encode a bulletin to another schema version
  inspect   print a decoded bulletin
  check     verify that a bulletin survives decode/encode round trips
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "convert":
		err = runConvert(args[1:], stdout, stderr)
	case "inspect":
		err = runInspect(args[1:], stdout, stderr)
	case "check":
		err = runCheck(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		if kind := sandre.Kind(err); kind != "other" {
			fmt.Fprintf(stderr, "kind: %s\n", kind)
		}
		return 1
	}
}

var errUsage = errors.New("usage")

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runConvert(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("convert", stderr)
	in := fs.String("in", "", "input bulletin (- for stdin)")
	out := fs.String("out", "-", "output file (- for stdout)")
	version := fs.String("version", "2", "target schema version (1.1 or 2)")
	strip := fs.Bool("strip-ns", false, "remove SANDRE namespace declarations before decoding")
	indent := fs.Int("indent", codec.DefaultIndent, "indentation width, 0 for compact output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}

	target, err := sandre.ParseVersion(*version)
	if err != nil {
		return err
	}
	data, err := readInput(*in)
	if err != nil {
		return err
	}
	if *strip {
		if data, err = codec.StripNamespace(data); err != nil {
			return err
		}
	}

	encoded, doc, err := codec.New(codec.WithIndent(*indent)).Convert(data, target)
	if err != nil {
		return err
	}

	if *out == "-" {
		_, err = stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "converted %s (%s) to %s (%s)\n", *in, doc.Scenario.Version, *out, target)
	return nil
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("inspect", stderr)
	in := fs.String("in", "", "input bulletin (- for stdin)")
	format := fs.String("format", "json", "output format: json, yaml or dump")
	full := fs.Bool("full", false, "print the whole document instead of a summary (json and yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}

	data, err := readInput(*in)
	if err != nil {
		return err
	}
	doc, err := codec.New().Decode(data)
	if err != nil {
		return err
	}

	var v any = doc.Summarize()
	if *full {
		v = doc
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "dump":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(stdout, doc)
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

// phase tracks pass/fail for one round-trip target.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("check", stderr)
	in := fs.String("in", "", "input bulletin (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}

	data, err := readInput(*in)
	if err != nil {
		return err
	}
	c := codec.New(codec.WithClock(clockwork.NewFakeClockAt(checkClock)))
	doc, err := c.Decode(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: version %s, %d thresholds, %d simulations\n",
		*in, doc.Scenario.Version, len(doc.Thresholds), len(doc.Simulations))

	phases := make([]*phase, 0, len(sandre.Versions))
	for _, v := range sandre.Versions {
		phases = append(phases, checkVersion(c, doc, v))
	}

	failed := 0
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			failed++
		}
		fmt.Fprintf(stdout, "  %-28s %s\n", p.name, status)
	}
	for _, p := range phases {
		for i, e := range p.errors {
			fmt.Fprintf(stdout, "\n--- %s [%d] ---\n%s\n", p.name, i+1, e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d round trips failed", failed, len(phases))
	}
	return nil
}

// checkVersion encodes doc in v and decodes it back. The result must be
// stable under a second round trip, and must equal doc when v is the
// version doc was read from.
func checkVersion(c *codec.Codec, doc *domain.Document, v sandre.Version) *phase {
	p := &phase{name: "round trip via " + v.String()}

	once, err := roundTrip(c, doc, v)
	if err != nil {
		p.errorf("first round trip: %v", err)
		return p
	}
	twice, err := roundTrip(c, once, v)
	if err != nil {
		p.errorf("second round trip: %v", err)
		return p
	}

	ignoreVersion := cmpopts.IgnoreFields(domain.Scenario{}, "Version")
	if diff := cmp.Diff(once, twice, ignoreVersion); diff != "" {
		p.errorf("not a fixed point (-once +twice):\n%s", diff)
	}
	if v == doc.Scenario.Version {
		if diff := cmp.Diff(doc, once, ignoreVersion); diff != "" {
			p.errorf("document changed (-decoded +round trip):\n%s", diff)
		}
	}
	return p
}

func roundTrip(c *codec.Codec, doc *domain.Document, v sandre.Version) (*domain.Document, error) {
	data, err := c.Encode(doc, v)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}
