// Command amldump parses a raw AML blob (a DSDT/SSDT table body, stripped
// of its ACPI table header) and prints the resulting term tree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rosgo/bringup/aml"
	"github.com/rosgo/bringup/config"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		configFile  = flag.String("config", "", "Path to config file (default: platform config dir)")
		outputFile  = flag.String("out", "", "Write dump to this file instead of stdout")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("amldump %s (%s)\n", Version, Commit)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: amldump [flags] <aml-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "amldump: %v\n", err)
		os.Exit(1)
	}

	blob, err := os.ReadFile(flag.Arg(0)) // #nosec G304 -- path is an explicit CLI argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "amldump: reading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	if cfg.Dump.Format != "text" {
		fmt.Fprintf(os.Stderr, "amldump: unsupported dump format %q (only \"text\" is implemented)\n", cfg.Dump.Format)
		os.Exit(1)
	}

	table, err := aml.Parse(blob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "amldump: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile) // #nosec G304 -- path is an explicit CLI argument
		if err != nil {
			fmt.Fprintf(os.Stderr, "amldump: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	dumpTerms(out, table.Terms, 0)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func dumpTerms(out *os.File, terms []aml.TermObj, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	for _, term := range terms {
		switch term.Kind {
		case aml.TermObjObj:
			dumpObj(out, term.Obj, indent, depth)
		case aml.TermObjStatement:
			fmt.Fprintf(out, "%sStatement(kind=%d)\n", indent, term.Statement.Kind)
			dumpStatementBody(out, term.Statement, depth)
		case aml.TermObjExpr:
			fmt.Fprintf(out, "%sExpr(kind=%d)\n", indent, term.Expr.Kind)
		}
	}
}

func dumpObj(out *os.File, obj aml.Obj, indent string, depth int) {
	switch obj.Kind {
	case aml.ObjNameSpaceModObj:
		switch obj.NSMod.Kind {
		case aml.NameSpaceModObjName:
			fmt.Fprintf(out, "%sName %s\n", indent, nameStringOf(obj.NSMod.Name.Name))
		case aml.NameSpaceModObjScope:
			fmt.Fprintf(out, "%sScope %s\n", indent, nameStringOf(obj.NSMod.Scope.Name))
			dumpTerms(out, obj.NSMod.Scope.Terms, depth+1)
		case aml.NameSpaceModObjAlias:
			fmt.Fprintf(out, "%sAlias %s -> %s\n", indent,
				nameStringOf(obj.NSMod.Alias.Alias), nameStringOf(obj.NSMod.Alias.Source))
		}
	case aml.ObjNamedObj:
		switch obj.NamedObj.Kind {
		case aml.NamedObjMethod:
			m := obj.NamedObj.Method
			fmt.Fprintf(out, "%sMethod %s (args=%d)\n", indent, nameStringOf(m.Name), m.Flags.ArgCount)
			dumpTerms(out, m.Terms, depth+1)
		case aml.NamedObjDevice:
			d := obj.NamedObj.Device
			fmt.Fprintf(out, "%sDevice %s\n", indent, nameStringOf(d.Name))
			dumpTerms(out, d.Terms, depth+1)
		default:
			fmt.Fprintf(out, "%sNamedObj(kind=%d)\n", indent, obj.NamedObj.Kind)
		}
	}
}

func dumpStatementBody(out *os.File, stmt aml.Statement, depth int) {
	if stmt.Kind != aml.StatementIfElse {
		return
	}
	indent := ""
	for i := 0; i < depth+1; i++ {
		indent += "  "
	}
	fmt.Fprintf(out, "%sIf:\n", indent)
	dumpTerms(out, stmt.IfElse.Terms, depth+2)
	if stmt.IfElse.Else != nil {
		fmt.Fprintf(out, "%sElse:\n", indent)
		dumpTerms(out, stmt.IfElse.Else.Terms, depth+2)
	}
}

func nameStringOf(ns aml.NameString) string {
	prefix := ""
	if ns.Absolute {
		prefix = "\\"
	}
	for i := 0; i < ns.Prefix; i++ {
		prefix += "^"
	}

	switch ns.Path.Kind {
	case aml.NamePathNameSeg:
		return prefix + ns.Path.Seg.String()
	case aml.NamePathDual:
		return prefix + ns.Path.Dual.First.String() + "." + ns.Path.Dual.Second.String()
	case aml.NamePathMulti:
		s := prefix
		for i, seg := range ns.Path.Multi.Segments {
			if i > 0 {
				s += "."
			}
			s += seg.String()
		}
		return s
	default:
		return prefix
	}
}
