package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/reoring/skema/codegen"
	"github.com/reoring/skema/ir"
)

func emit(cfg *EmitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Emit.Parse(cc, args)
	if err != nil {
		cfg.Emit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: emit requires 1 document, got %v", cli.ErrUsage, args)
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	code := emitSource(doc, cfg.SchemaName, cfg.TypeName)
	if cfg.Out == "" || cfg.Out == "-" {
		_, err := fmt.Fprint(cc.Out, code)
		return err
	}
	if err := os.WriteFile(cfg.Out, []byte(code), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", cfg.Out, err)
	}
	cfg.logger().Sugar().Debugw("wrote zod source", "path", cfg.Out, "fields", len(doc.Fields))
	return nil
}

// emitSource renders doc as a source file, ending in a newline.
func emitSource(doc *ir.RootSchema, schemaName, typeName string) string {
	var opts []codegen.Option
	if schemaName != "" {
		opts = append(opts, codegen.WithSchemaName(schemaName))
	}
	if typeName != "" {
		opts = append(opts, codegen.WithTypeName(typeName))
	}
	return codegen.Emit(doc, opts...) + "\n"
}
