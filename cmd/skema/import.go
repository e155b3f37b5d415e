package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/reoring/skema/ir"
	"github.com/reoring/skema/jsonschema"
)

func importSchema(cfg *ImportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Import.Parse(cc, args)
	if err != nil {
		cfg.Import.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: import requires 1 json schema, got %v", cli.ErrUsage, args)
	}
	d, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	out, err := jsonschema.ToRoot(d, ir.FormatOf(args[0]))
	if err != nil {
		return fmt.Errorf("error importing %s: %w", args[0], err)
	}
	log := cfg.logger().Sugar()
	for _, w := range out.Warnings {
		log.Warnw("approximated", "file", args[0], "detail", w)
	}
	log.Debugw("imported json schema", "file", args[0], "fields", len(out.Root.Fields), "unknown", out.Unknown.String())
	return cfg.writeDoc(cc.Out, out.Root)
}
