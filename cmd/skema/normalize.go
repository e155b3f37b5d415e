package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/reoring/skema/builder"
	"github.com/reoring/skema/importer"
	"github.com/reoring/skema/ir"
)

func normalize(cfg *NormalizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Normalize.Parse(cc, args)
	if err != nil {
		cfg.Normalize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: normalize requires 1 document, got %v", cli.ErrUsage, args)
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	return cfg.writeDoc(cc.Out, normalized(context.Background(), doc, cfg.logger()))
}

// normalized builds doc and imports the validator back. Constructs the
// builder replaces with fallbacks come back in their degraded form.
func normalized(ctx context.Context, doc *ir.RootSchema, log *zap.Logger) *ir.RootSchema {
	s := builder.Build(doc, builder.WithLogger(log))
	return importer.ImportRoot(ctx, s, importer.WithLogger(log))
}
