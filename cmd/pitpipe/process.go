package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencoc/pitpipe/pkg/dedupe"
	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/runstore"
	"github.com/opencoc/pitpipe/pkg/survey"
)

func cmdProcess(args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	input := fs.String("input", "", "survey CSV file to process")
	source := fs.String("source", "", "source label (e.g. Sheltered_ES); defaults to the file name")
	regionName := fs.String("region", "", "force a region by name instead of auto-detecting")
	outDir := fs.String("output-dir", "out", "directory for the derived tables")
	delimiter := fs.String("delimiter", "", "field delimiter override")
	encoding := fs.String("encoding", "", "input encoding override (e.g. latin-1)")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "process: --input is required")
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

	src := *source
	if src == "" {
		src = strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	}

	reg := loadRegions(cfg, logger)
	store := openRuns(cfg, logger)
	defer store.Close()

	runID, err := store.Begin(src)
	if err != nil {
		logger.Error("record run", "error", err)
		os.Exit(1)
	}

	fail := func(msg string, err error) {
		logger.Error(msg, "error", err)
		if ferr := store.Fail(runID, err.Error()); ferr != nil {
			logger.Error("record failure", "error", ferr)
		}
		os.Exit(1)
	}

	raw, err := frame.ReadFile(*input, cfg.Format)
	if err != nil {
		fail("read input", err)
	}

	pipe := &survey.Pipeline{Registry: reg, Logger: logger}
	res, err := pipe.Process(raw, src, *regionName)
	if err != nil {
		fail("process", err)
	}

	det := &dedupe.Detector{
		Region:  res.Detection.Region.Name,
		Workers: cfg.Workers,
		Logger:  logger,
	}
	anns, mode, err := det.Detect(context.Background(), res.Persons)
	if err != nil {
		fail("duplicate detection", err)
	}
	dupes := dedupe.Summarize(anns)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fail("create output dir", err)
	}
	outputs := map[string]*frame.Table{
		src + "_persons.csv":    dedupe.Annotate(res.Persons, anns),
		src + "_households.csv": res.Summary,
		src + "_review.csv":     dedupe.ReviewTable(res.Persons, anns),
	}
	for name, t := range outputs {
		if err := t.WriteFile(filepath.Join(*outDir, name)); err != nil {
			fail("write "+name, err)
		}
	}

	err = store.Finish(runID, runstore.Run{
		Region:     res.Detection.Region.ID,
		Confidence: res.Detection.Confidence,
		NameMode:   mode.String(),
		Households: res.Summary.NumRows(),
		Persons:    res.Persons.NumRows(),
		Likely:     dupes.Likely,
		Somewhat:   dupes.Somewhat,
		Possible:   dupes.Possible,
		NoName:     dupes.NoName,
	})
	if err != nil {
		logger.Error("record run result", "error", err)
	}

	logger.Info("processed",
		"run", runID,
		"source", src,
		"region", res.Detection.Region.Name,
		"confidence", res.Detection.Confidence,
		"households", res.Summary.NumRows(),
		"persons", res.Persons.NumRows(),
		"flagged_duplicates", dupes.Flagged,
		"output_dir", *outDir)
}
