package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/reoring/skema/ir"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.PatchCmd.Parse(cc, args)
	if err != nil {
		cfg.PatchCmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: patch requires 1 document, got %v", cli.ErrUsage, args)
	}
	if cfg.Patch == "" {
		return fmt.Errorf("%w: -p is required", cli.ErrUsage)
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	p, err := readInput(cc, cfg.Patch)
	if err != nil {
		return err
	}
	out, err := ir.ApplyPatch(doc, p)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[0], err)
	}
	return cfg.writeDoc(cc.Out, out)
}
