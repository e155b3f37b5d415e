package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

const description = `skema works with schema documents: the editable tree of fields
that builds into a validator and emits Zod source.

Documents are JSON or YAML, chosen by file extension; "-" reads JSON from
standard input.`

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "skema").
		WithSynopsis("skema [-v] [-y] command [opts] <doc>").
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return skemaMain(cfg, cc, args)
		}).
		WithSubs(
			EmitCommand(cfg),
			SchemaCommand(cfg),
			CheckCommand(cfg),
			LintCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			ImportCommand(cfg),
			NormalizeCommand(cfg))
}

func skemaMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setupLogger(); err != nil {
		return err
	}
	defer cfg.log.Sync()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func EmitCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EmitConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("emit").
		WithAliases("e").
		WithSynopsis("emit [-o out.ts] [-name n] [-type T] <doc>").
		WithDescription("generate Zod source from a schema document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return emit(cfg, cc, args)
		})
	cfg.Emit = cmd
	return cmd
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("jsonschema").
		WithAliases("js").
		WithSynopsis("jsonschema [-title t] [-strict] <doc>").
		WithDescription("export a schema document as JSON Schema (draft 2020-12)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonSchema(cfg, cc, args)
		})
	cfg.Schema = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check -data <file.json> [-unknown policy] [-failfast] <doc>").
		WithDescription("validate a JSON document against a schema document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func LintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LintConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("lint").
		WithSynopsis("lint <doc>...").
		WithDescription("report semantic problems in schema documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return lint(cfg, cc, args)
		})
	cfg.Lint = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff -against <file.ts> <doc>").
		WithDescription("compare generated Zod source with a checked-in copy").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch -p <patch.json> <doc>").
		WithDescription("apply an RFC 6902 JSON Patch to a schema document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.PatchCmd = cmd
	return cmd
}

func ImportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ImportConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("import").
		WithAliases("i").
		WithSynopsis("import <schema.json|crd.yaml>").
		WithDescription("convert a JSON Schema or Kubernetes CRD into a schema document").
		WithRun(func(cc *cli.Context, args []string) error {
			return importSchema(cfg, cc, args)
		})
	cfg.Import = cmd
	return cmd
}

func NormalizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NormalizeConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("normalize").
		WithAliases("n").
		WithSynopsis("normalize <doc>").
		WithDescription("rebuild a document through the validator and import it back").
		WithRun(func(cc *cli.Context, args []string) error {
			return normalize(cfg, cc, args)
		})
	cfg.Normalize = cmd
	return cmd
}
