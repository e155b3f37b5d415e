package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: diff requires 1 document, got %v", cli.ErrUsage, args)
	}
	if cfg.Against == "" {
		return fmt.Errorf("%w: -against is required", cli.ErrUsage)
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	have, err := readInput(cc, cfg.Against)
	if err != nil {
		return err
	}
	want := emitSource(doc, cfg.SchemaName, cfg.TypeName)
	if writeDrift(cc.Out, lineDiff(string(have), want), newPalette(cfg.colored(cc.Out))) {
		return cli.ExitCodeErr(1)
	}
	return nil
}
