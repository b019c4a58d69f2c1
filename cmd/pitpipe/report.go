package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/report"
)

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	es := fs.String("es", "", "processed persons CSV for Sheltered_ES")
	th := fs.String("th", "", "processed persons CSV for Sheltered_TH")
	unsheltered := fs.String("unsheltered", "", "processed persons CSV for Unsheltered")
	outDir := fs.String("output-dir", "reports", "directory for the report tables")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	inputs := map[string]string{
		"Sheltered_ES": *es,
		"Sheltered_TH": *th,
		"Unsheltered":  *unsheltered,
	}
	sources := make(map[string]*frame.Table)
	for col, path := range inputs {
		if path == "" {
			continue
		}
		t, err := frame.ReadFile(path, cfg.Format)
		if err != nil {
			logger.Error("read persons file", "source", col, "path", path, "error", err)
			os.Exit(1)
		}
		sources[col] = t
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "report: at least one of --es, --th, --unsheltered is required")
		fs.Usage()
		os.Exit(2)
	}

	gen := &report.Generator{Logger: logger}
	all := gen.Generate(sources)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output dir", "error", err)
		os.Exit(1)
	}
	written := 0
	for _, family := range report.Families {
		for name, rep := range all[family] {
			path := filepath.Join(*outDir, fileName(family)+"_"+fileName(name)+".csv")
			if err := rep.Table().WriteFile(path); err != nil {
				logger.Error("write report", "path", path, "error", err)
				os.Exit(1)
			}
			written++
		}
	}
	logger.Info("reports written", "count", written, "output_dir", *outDir)
}

// fileName flattens a report name into a safe file name fragment.
func fileName(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
