package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opencoc/pitpipe/pkg/frame"
)

func cmdDetect(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	input := fs.String("input", "", "survey CSV file to inspect")
	delimiter := fs.String("delimiter", "", "field delimiter override")
	encoding := fs.String("encoding", "", "input encoding override (e.g. latin-1)")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "detect: --input is required")
		fs.Usage()
		os.Exit(2)
	}

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)
	if *delimiter != "" {
		cfg.Format.Delimiter = *delimiter
	}
	if *encoding != "" {
		cfg.Format.Encoding = *encoding
	}

	raw, err := frame.ReadFile(*input, cfg.Format)
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	reg := loadRegions(cfg, logger)
	det := reg.Detect(raw.Columns())

	fmt.Printf("%-12s %s\n", "region:", det.Region.Name)
	fmt.Printf("%-12s %.2f\n", "confidence:", det.Confidence)
	if det.Fallback {
		fmt.Printf("%-12s no signature reached the threshold, universal rules apply\n", "fallback:")
	}
}
