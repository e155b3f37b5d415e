package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/reoring/skema/jsonschema"
)

func jsonSchema(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		cfg.Schema.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: jsonschema requires 1 document, got %v", cli.ErrUsage, args)
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	var opts []jsonschema.Option
	if cfg.Title != "" {
		opts = append(opts, jsonschema.WithTitle(cfg.Title))
	}
	if cfg.Strict {
		opts = append(opts, jsonschema.WithStrict())
	}
	s, err := jsonschema.FromRoot(doc, opts...)
	if err != nil {
		return fmt.Errorf("error exporting %s: %w", args[0], err)
	}
	d, err := jsonschema.Marshal(s)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
