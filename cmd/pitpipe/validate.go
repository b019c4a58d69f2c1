package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/survey"
)

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	input := fs.String("input", "", "processed persons CSV to validate")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "validate: --input is required")
		fs.Usage()
		os.Exit(2)
	}

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	t, err := frame.ReadFile(*input, cfg.Format)
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	findings := survey.Validate(t)
	if len(findings) == 0 {
		fmt.Println("all values valid")
		return
	}

	total := 0
	for _, col := range survey.ValidatedColumns(findings) {
		for _, f := range findings[col] {
			fmt.Printf("row %-5d %-25s %q\n", f.Row, col, f.Value)
			total++
		}
	}
	fmt.Printf("\n%d invalid value(s)\n", total)
	os.Exit(1)
}
