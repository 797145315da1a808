package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielpatrickdp/utility-advisor/internal/codegen"
	"github.com/danielpatrickdp/utility-advisor/internal/schema"
)

// #region main

func main() {
	schemaPath := flag.String("schema", "", "path to the suggestion schema YAML")
	outPath := flag.String("out", "", "output .go file (stdout when empty)")
	pkgName := flag.String("package", "", "target package name (overrides the schema's package directive)")
	flag.Parse()

	if *schemaPath == "" {
		fmt.Fprintln(os.Stderr, "usage: advisorgen --schema path/to/schema.yaml [--out file.go] [--package name]")
		os.Exit(2)
	}

	s, err := schema.Load(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "advisorgen: %v\n", err)
		os.Exit(2)
	}

	src, err := codegen.Generate(s, codegen.Options{
		PackageName: *pkgName,
		Source:      filepath.Base(*schemaPath),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "advisorgen: %v\n", err)
		os.Exit(2)
	}

	if *outPath == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*outPath, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "advisorgen: write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
}

// #endregion main
