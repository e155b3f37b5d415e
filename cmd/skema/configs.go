package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/ir"
)

type MainConfig struct {
	V bool `cli:"name=v aliases=verbose desc='debug logging to stderr'"`
	Y bool `cli:"name=y aliases=yaml desc='print documents as yaml'"`

	Color bool   `cli:"name=color desc='force colored output'"`
	Lang  string `cli:"name=lang desc='issue message language: en or ja'"`

	Main *cli.Command

	log *zap.Logger
}

// setupLogger installs the process-wide logger the libraries default to.
func (cfg *MainConfig) setupLogger() error {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	if cfg.V {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zc.Development = true
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	cfg.log = logger
	if cfg.Lang != "" {
		i18n.SetLanguage(cfg.Lang)
	}
	return nil
}

func (cfg *MainConfig) logger() *zap.Logger {
	if cfg.log == nil {
		return zap.L()
	}
	return cfg.log
}

func (cfg *MainConfig) outFormat() ir.Format {
	if cfg.Y {
		return ir.FormatYAML
	}
	return ir.FormatJSON
}

// colored reports whether w should receive ANSI colors.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// readInput reads a file, or cc.In for "-".
func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// loadDoc decodes the schema document at path, choosing the format from
// the extension.
func (cfg *MainConfig) loadDoc(cc *cli.Context, path string) (*ir.RootSchema, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	doc, err := ir.Decode(d, ir.FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if n := ir.EnsureIDs(doc); n > 0 {
		cfg.logger().Debug("assigned missing ids", zap.String("path", path), zap.Int("count", n))
	}
	if ce := cfg.logger().Check(zap.DebugLevel, "loaded document"); ce != nil {
		ce.Write(zap.String("path", path), zap.String("tree", spew.Sdump(doc)))
	}
	return doc, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, doc *ir.RootSchema) error {
	d, err := ir.Encode(doc, cfg.outFormat())
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

type EmitConfig struct {
	*MainConfig
	Out        string `cli:"name=o desc='output file (default stdout)'"`
	SchemaName string `cli:"name=name desc='name of the exported schema constant'"`
	TypeName   string `cli:"name=type desc='name of the exported inferred type'"`

	Emit *cli.Command
}

type SchemaConfig struct {
	*MainConfig
	Title  string `cli:"name=title desc='document title'"`
	Strict bool   `cli:"name=strict desc='forbid properties outside each object shape'"`

	Schema *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Data     string `cli:"name=data desc='json document to validate (- for stdin)'"`
	Unknown  string `cli:"name=unknown desc='unknown key policy: strip, strict or passthrough'"`
	FailFast bool   `cli:"name=failfast desc='stop at the first issue'"`

	Check *cli.Command
}

type LintConfig struct {
	*MainConfig

	Lint *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Against    string `cli:"name=against desc='previously generated zod source'"`
	SchemaName string `cli:"name=name desc='name of the exported schema constant'"`
	TypeName   string `cli:"name=type desc='name of the exported inferred type'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch string `cli:"name=p desc='json patch file'"`

	PatchCmd *cli.Command
}

type ImportConfig struct {
	*MainConfig

	Import *cli.Command
}

type NormalizeConfig struct {
	*MainConfig

	Normalize *cli.Command
}
