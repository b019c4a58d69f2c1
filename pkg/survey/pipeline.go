package survey

import (
	"fmt"
	"log/slog"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/region"
)

// Pipeline runs the normalize → count → classify → flatten → derive
// sequence against the loaded region definitions.
type Pipeline struct {
	Registry *region.Registry
	Logger   *slog.Logger
}

// Result carries everything derived from one upload. The stages after
// it (duplicate detection, report aggregation) consume these tables and
// the detection metadata; no state flows between stages any other way.
type Result struct {
	Source     string
	Detection  region.Detection
	Raw        *frame.Table
	Households *frame.Table
	Persons    *frame.Table
	Summary    *frame.Table
}

// Process runs the full derivation pipeline on one raw upload.
// regionName forces a region; leave it empty to auto-detect from the
// header (falling back to the Universal rules below the confidence
// threshold).
func (p *Pipeline) Process(raw *frame.Table, source, regionName string) (*Result, error) {
	res := &Result{Source: source, Raw: raw.Clone()}

	if regionName != "" {
		reg, ok := p.Registry.ByName(regionName)
		if !ok {
			return nil, fmt.Errorf("unknown region %q", regionName)
		}
		res.Detection = region.Detection{Region: reg, Confidence: 1}
	} else {
		res.Detection = p.Registry.Detect(raw.Columns())
		if res.Detection.Fallback {
			p.Logger.Warn("low confidence region detection, using universal rules",
				"source", source, "confidence", res.Detection.Confidence)
		} else {
			p.Logger.Info("region detected",
				"source", source,
				"region", res.Detection.Region.Name,
				"confidence", res.Detection.Confidence)
		}
	}

	households, err := p.Registry.Mapping().Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", source, err)
	}
	region.SynthesizeNameFields(households)
	CountAgeGroups(households)
	if err := ClassifyHouseholdType(households); err != nil {
		return nil, fmt.Errorf("classify households for %s: %w", source, err)
	}
	res.Households = households

	persons := Flatten(households)
	FlagChronicallyHomeless(persons, p.Logger)
	if err := AddAgeGroup(persons); err != nil {
		return nil, fmt.Errorf("bucket ages for %s: %w", source, err)
	}
	if err := ProcessRace(persons); err != nil {
		return nil, fmt.Errorf("categorize race for %s: %w", source, err)
	}
	ProcessSex(persons)
	ProcessGender(persons)
	StandardizeConditions(persons)
	persons.AddColumn(ColSource, source)
	res.Persons = persons

	summary, err := Summarize(persons)
	if err != nil {
		return nil, fmt.Errorf("summarize households for %s: %w", source, err)
	}
	res.Summary = summary

	p.Logger.Info("source processed",
		"source", source,
		"households", households.NumRows(),
		"persons", persons.NumRows())
	return res, nil
}
