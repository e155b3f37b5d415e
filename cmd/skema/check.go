package main

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/builder"
	"github.com/reoring/skema/ir"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: check requires 1 document, got %v", cli.ErrUsage, args)
	}
	if cfg.Data == "" {
		return fmt.Errorf("%w: -data is required", cli.ErrUsage)
	}
	if cfg.Data == "-" && args[0] == "-" {
		return fmt.Errorf("%w: document and data cannot both be read from stdin", cli.ErrUsage)
	}
	policy := skema.UnknownStrip
	if cfg.Unknown != "" {
		p, ok := skema.ParseUnknownPolicy(cfg.Unknown)
		if !ok {
			return fmt.Errorf("%w: unknown policy %q", cli.ErrUsage, cfg.Unknown)
		}
		policy = p
	}
	doc, err := cfg.loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	data, err := readInput(cc, cfg.Data)
	if err != nil {
		return err
	}
	ok, err := checkData(context.Background(), cc.Out, doc, data, checkOpts{
		policy:   policy,
		failFast: cfg.FailFast,
		pal:      newPalette(cfg.colored(cc.Out)),
		log:      cfg.logger(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}

type checkOpts struct {
	policy   skema.UnknownPolicy
	failFast bool
	pal      *palette
	log      *zap.Logger
}

// checkData validates data against doc. On success the parsed value, with
// defaults applied and unknown keys handled, is written to w; otherwise the
// issues are. The error is reserved for failures other than validation.
func checkData(ctx context.Context, w io.Writer, doc *ir.RootSchema, data []byte, o checkOpts) (bool, error) {
	s := builder.Build(doc, builder.WithUnknownPolicy(o.policy), builder.WithLogger(o.log))
	v, err := skema.ParseJSON[any](ctx, s, data, skema.ParseOpt{FailFast: o.failFast})
	if err != nil {
		iss, ok := skema.AsIssues(err)
		if !ok {
			return false, err
		}
		writeIssues(w, iss, o.pal, "")
		return false, nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return false, fmt.Errorf("error encoding result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return true, err
}
