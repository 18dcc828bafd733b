package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"

	linkvalidate "github.com/reoring/linkvalidate"
	"github.com/reoring/linkvalidate/i18n"
)

func main() {
	fs := flag.NewFlagSet("linkvalidate", flag.ExitOnError)
	var (
		schemaPath string
		format     string
		lang       string
	)
	fs.StringVar(&schemaPath, "schema", "", "schema file (.json or .yaml/.yml)")
	fs.StringVar(&format, "format", "auto", "schema format: auto|rules|jsonschema")
	fs.StringVar(&lang, "lang", "en", "message language: en|ja")
	fs.Usage = usage(fs)
	_ = fs.Parse(os.Args[1:])

	if schemaPath == "" || fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	var opts []linkvalidate.CompileOption
	switch format {
	case "auto":
	case "rules":
		opts = append(opts, linkvalidate.WithFormat(linkvalidate.FormatRules))
	case "jsonschema":
		opts = append(opts, linkvalidate.WithFormat(linkvalidate.FormatJSONSchema))
	default:
		fatalf("unknown -format %q", format)
	}

	v, diag, err := compileFile(schemaPath, opts)
	if err != nil {
		fatalf("compile %s: %v", schemaPath, err)
	}
	for _, w := range diag.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	ctx := context.Background()
	failed := false
	for _, dataPath := range fs.Args() {
		data, err := loadValue(dataPath)
		if err != nil {
			fatalf("read %s: %v", dataPath, err)
		}
		res := v.Validate(ctx, data)
		out, err := gojson.MarshalIndent(res, "", "  ")
		if err != nil {
			fatalf("render %s: %v", dataPath, err)
		}
		fmt.Printf("%s: %s\n", dataPath, out)
		if !res.Valid {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func compileFile(path string, opts []linkvalidate.CompileOption) (*linkvalidate.Validator, linkvalidate.Diag, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if isYAMLPath(path) {
		return linkvalidate.CompileYAML(b, opts...)
	}
	return linkvalidate.CompileJSON(b, opts...)
}

func loadValue(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAMLPath(path) {
		return linkvalidate.DecodeYAML(b)
	}
	var v any
	dec := gojson.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "linkvalidate - compile a schema and validate data files against it\n\nUsage:\n  linkvalidate -schema schema.json [-format auto|rules|jsonschema] [-lang en|ja] data.json [more...]\n\nExit codes: 0 all valid, 1 validation failed, 2 usage error.")
		fs.PrintDefaults()
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, "linkvalidate: "+f+"\n", a...)
	os.Exit(2)
}
