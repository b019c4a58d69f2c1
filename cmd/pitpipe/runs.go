package main

import (
	"flag"
	"fmt"
	"time"
)

func cmdRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	limit := fs.Int("limit", 20, "maximum number of runs to show")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	store := openRuns(cfg, logger)
	defer store.Close()

	runs, err := store.List(*limit)
	if err != nil {
		logger.Error("list runs", "error", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}

	for _, r := range runs {
		started := time.Unix(r.StartedAt, 0).Format(time.RFC3339)
		fmt.Printf("%s  %s  %-10s  %-20s  region=%s(%.2f)  persons=%d  households=%d  flagged=%d\n",
			r.ID, started, r.Status, r.Source, r.Region, r.Confidence,
			r.Persons, r.Households, r.Likely+r.Somewhat+r.Possible)
	}
}
