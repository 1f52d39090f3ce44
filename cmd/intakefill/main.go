// intakefill generates the agreement documents for an intake submission.
//
// It reads a submission payload (and optionally the OCR fields extracted
// from the customer's utility bill) from JSON files, fills the matching
// templates, and prints the path of every generated document.
//
// Usage:
//
//	intakefill --submission submission.json [options]
//
// With --all the full document set is generated: the power of attorney,
// the developer's subscription agreement, and the agency agreement.
// Without it, --template names the single template to fill.
//
// Every flag can also be set through the environment with the GREENWATT_
// prefix, e.g. GREENWATT_TEMPLATES=/srv/templates.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/greenwatt/intake/pkg/anchor"
	"github.com/greenwatt/intake/pkg/intake"
	"github.com/greenwatt/intake/pkg/pdffill"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := pdffill.DefaultConfig()

	viper.SetEnvPrefix("GREENWATT")
	viper.AutomaticEnv()
	viper.SetDefault("templates", defaults.TemplatesDir)
	viper.SetDefault("fonts", defaults.FontDir)
	viper.SetDefault("temp", defaults.TempDir)

	pflag.String("templates", defaults.TemplatesDir, "Directory holding the template PDFs")
	pflag.String("fonts", defaults.FontDir, "Directory holding the signature font")
	pflag.String("temp", defaults.TempDir, "Directory for generated documents and scratch files")
	pflag.String("registry", "", "YAML file with anchor overrides")
	pflag.String("template", "", "Single template filename to fill")
	pflag.String("submission", "", "JSON file with the submission payload (required)")
	pflag.String("ocr", "", "JSON file with OCR-extracted bill fields")
	pflag.String("run-tag", "", "Suffix for output filenames (defaults to the submission id)")
	pflag.Bool("all", false, "Generate the full document set for the submission")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return err
	}

	submissionPath := viper.GetString("submission")
	if submissionPath == "" {
		return fmt.Errorf("must provide --submission payload")
	}
	if !viper.GetBool("all") && viper.GetString("template") == "" {
		return fmt.Errorf("must provide --template or --all")
	}

	var sub intake.Submission
	if err := loadJSON(submissionPath, &sub); err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}
	var ocr intake.OCRFields
	if path := viper.GetString("ocr"); path != "" {
		if err := loadJSON(path, &ocr); err != nil {
			return fmt.Errorf("failed to load OCR fields: %w", err)
		}
	}

	registry := anchor.NewRegistry()
	if path := viper.GetString("registry"); path != "" {
		overrides, err := anchor.LoadOverrides(path)
		if err != nil {
			return fmt.Errorf("failed to load anchor overrides: %w", err)
		}
		registry.ApplyOverrides(overrides)
	}

	cfg := defaults
	cfg.TemplatesDir = viper.GetString("templates")
	cfg.FontDir = viper.GetString("fonts")
	cfg.TempDir = viper.GetString("temp")
	cfg.Logger = os.Stderr

	proc := intake.NewProcessor(cfg, registry, intake.DefaultCatalog())
	runTag := viper.GetString("run-tag")

	var results []intake.Result
	if viper.GetBool("all") {
		rs, err := proc.ProcessSubmission(&sub, ocr, runTag)
		if err != nil {
			return err
		}
		results = rs
	} else {
		r, err := proc.ProcessTemplate(&sub, ocr, viper.GetString("template"), runTag)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	fmt.Printf("Submission %s", sub.SubmissionID)
	if sub.POAID != "" {
		fmt.Printf(" (POA %s)", sub.POAID)
	}
	fmt.Println()
	for _, r := range results {
		fmt.Printf("  %s -> %s\n", r.Template, r.OutputPath)
	}
	return nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
