package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/reoring/skema/ir"
)

func lint(cfg *LintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lint.Parse(cc, args)
	if err != nil {
		cfg.Lint.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: lint requires at least 1 document", cli.ErrUsage)
	}
	pal := newPalette(cfg.colored(cc.Out))
	failed := false
	for _, arg := range args {
		doc, err := cfg.loadDoc(cc, arg)
		if err != nil {
			return err
		}
		diags := ir.Lint(doc)
		writeDiagnostics(cc.Out, arg, diags, pal)
		failed = failed || ir.HasErrors(diags)
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
