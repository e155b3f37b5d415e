package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/ir"
)

type palette struct {
	err, warn, path, add, del func(format string, a ...any) string
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow),
		path: mk(color.FgCyan),
		add:  mk(color.FgGreen),
		del:  mk(color.FgRed),
	}
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// writeIssues prints one issue per line. The branches of a failed union
// follow it, indented.
func writeIssues(w io.Writer, iss skema.Issues, pal *palette, indent string) {
	for _, it := range iss {
		fmt.Fprintf(w, "%s%s %s: %s\n", indent, pal.path("%s", displayPath(it.Path)), pal.err("%s", it.Code), it.Message)
		if it.Code != skema.CodeInvalidUnion {
			continue
		}
		options, _ := it.Params["options"].([]skema.Issues)
		for i, o := range options {
			fmt.Fprintf(w, "%s  option %d:\n", indent, i+1)
			writeIssues(w, o, pal, indent+"    ")
		}
	}
}

func writeDiagnostics(w io.Writer, file string, diags []ir.Diagnostic, pal *palette) {
	for _, d := range diags {
		sev := pal.warn("%s", d.Severity)
		if d.Severity == ir.SeverityError {
			sev = pal.err("%s", d.Severity)
		}
		fmt.Fprintf(w, "%s: %s %s at %s: %s\n", file, sev, d.Code, pal.path("%s", displayPath(d.Path)), d.Message)
	}
}

// lineDiff compares two texts line by line.
func lineDiff(old, new string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeDrift prints the changed lines of diffs and reports whether there
// were any.
func writeDrift(w io.Writer, diffs []diffmatchpatch.Diff, pal *palette) bool {
	drift := false
	for _, d := range diffs {
		var mark func(string, ...any) string
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			mark, prefix = pal.add, "+"
		case diffmatchpatch.DiffDelete:
			mark, prefix = pal.del, "-"
		default:
			continue
		}
		drift = true
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, mark("%s %s", prefix, strings.TrimSuffix(line, "\n")), "\n")
		}
	}
	return drift
}
