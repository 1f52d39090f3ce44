// anchorscan resolves every configured anchor for a template and prints the
// draw coordinates it finds, for tuning anchor offsets against a new or
// revised template.
//
// Usage:
//
//	anchorscan -template agreement.pdf [options]
//
// Required flags:
//
//	-template string  Template filename (looked up in -templates dir)
//
// Options:
//
//	-templates string Directory holding the template PDFs (default "GreenWatt-documents")
//	-registry string  YAML file with anchor overrides to apply
//	-field string     Only resolve this field
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/greenwatt/intake/pkg/anchor"
	"github.com/greenwatt/intake/pkg/pdffill"
)

func main() {
	templateFile := flag.String("template", "", "Template filename to scan")
	templatesDir := flag.String("templates", "GreenWatt-documents", "Directory holding template PDFs")
	registryPath := flag.String("registry", "", "YAML anchor overrides to apply before scanning")
	onlyField := flag.String("field", "", "Only resolve this field")
	flag.Parse()

	if *templateFile == "" {
		fmt.Println("Error: Must provide -template filename")
		os.Exit(1)
	}

	registry := anchor.NewRegistry()
	if *registryPath != "" {
		overrides, err := anchor.LoadOverrides(*registryPath)
		if err != nil {
			fmt.Printf("Error loading overrides: %v\n", err)
			os.Exit(1)
		}
		registry.ApplyOverrides(overrides)
	}

	anchors, ok := registry.ForTemplate(*templateFile)
	if !ok {
		fmt.Printf("No anchor configuration for template %s\n", *templateFile)
		fmt.Println("Known templates:")
		for _, name := range registry.Templates() {
			fmt.Printf("  %s\n", name)
		}
		os.Exit(1)
	}

	doc, err := pdffill.OpenDocument(filepath.Join(*templatesDir, *templateFile))
	if err != nil {
		fmt.Printf("Error opening template: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(anchors))
	for name := range anchors {
		if *onlyField != "" && name != *onlyField {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Template: %s (%d pages)\n", *templateFile, doc.PageCount())
	misses := 0
	for _, name := range names {
		desc := anchors[name]
		if desc.Fixed {
			fmt.Printf("  %-28s page %d at (%.1f, %.1f) [fixed]\n", name, desc.Page+1, desc.X, desc.Y)
			continue
		}
		pl, err := doc.FindAnchor(desc)
		if err != nil {
			fmt.Printf("  %-28s MISS: %v\n", name, err)
			misses++
			continue
		}
		fmt.Printf("  %-28s page %d at (%.1f, %.1f) anchor %q +(%.0f, %.0f)\n",
			name, pl.Page+1, pl.X+desc.DX, pl.Y+desc.DY, desc.Anchor, desc.DX, desc.DY)
	}
	if misses > 0 {
		fmt.Printf("%d of %d anchors not found\n", misses, len(names))
		os.Exit(1)
	}
}
