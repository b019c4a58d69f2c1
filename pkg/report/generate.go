package report

import (
	"log/slog"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/survey"
)

// Report family names, used as the first key of Generate's result.
const (
	FamilyTotals         = "HDX_Totals"
	FamilyVeterans       = "HDX_Veterans"
	FamilyYouth          = "HDX_Youth"
	FamilySubpopulations = "HDX_Subpopulations"
	FamilySummary        = "PIT Summary"
)

// Families lists the report families in presentation order.
var Families = []string{FamilyTotals, FamilyVeterans, FamilyYouth, FamilySubpopulations, FamilySummary}

// Generator assembles the report set from per-source person tables.
type Generator struct {
	Logger *slog.Logger
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func filterEq(t *frame.Table, col, val string) *frame.Table {
	return t.Filter(func(r int) bool { return t.Get(r, col) == val })
}

// Generate builds every report family from the given person tables,
// keyed by source column name (Sheltered_ES, Sheltered_TH,
// Unsheltered). Missing or empty sources leave their column at 0.
// The result is keyed by family, then report name.
func (g *Generator) Generate(sources map[string]*frame.Table) map[string]map[string]*Report {
	log := g.logger()

	out := make(map[string]map[string]*Report, len(Families))
	for _, f := range Families {
		out[f] = make(map[string]*Report)
	}

	populate := func(family, name string, tmpl []cell, t *frame.Table, col, filterCol, filterVal string) {
		rep, ok := out[family][name]
		if !ok {
			rep = newReport(tmpl)
			out[family][name] = rep
		}
		rep.populate(Summarize(t, filterCol, filterVal, log), tmpl, col)
	}

	for _, col := range SourceColumns {
		persons := sources[col]
		if persons == nil || persons.NumRows() == 0 {
			log.Info("no data for source", "source", col)
			continue
		}

		withChildren := filterEq(persons, "household_type", survey.HouseholdWithChildren)
		withoutChildren := filterEq(persons, "household_type", survey.HouseholdWithoutChildren)
		onlyChildren := filterEq(persons, "household_type", survey.HouseholdWithOnlyChildren)

		populate(FamilyTotals, "Households with at Least One Adult and One Child",
			totalWithChildren, withChildren, col, "", "")
		populate(FamilyTotals, "Households without Children",
			totalWithoutChildren, withoutChildren, col, "", "")
		populate(FamilyTotals, "Households with Only Children (under age 18)",
			totalOnlyChildren, onlyChildren, col, "", "")
		populate(FamilyTotals, "Total Households and Persons",
			totalWithChildren, persons, col, "", "")

		populate(FamilyVeterans, "Veteran Households with at Least One Adult and One Child",
			vetWithChildren, withChildren, col, "vet", "Yes")
		populate(FamilyVeterans, "Veteran Households without Children",
			vetWithoutChildren, withoutChildren, col, "vet", "Yes")
		populate(FamilyVeterans, "Veteran Total Households and Persons",
			vetWithChildren, persons, col, "vet", "Yes")

		unaccompanied := persons
		if persons.HasColumn("count_child_hh") {
			unaccompanied = persons.Filter(func(r int) bool {
				return atoi(persons.Get(r, "count_child_hh")) == 0
			})
		}
		populate(FamilyYouth, "Unaccompanied Youth Households",
			youthUnaccompanied, unaccompanied, col, "youth", "Yes")

		parenting := withChildren
		if withChildren.HasColumn(survey.ColMemberType) {
			parenting = filterEq(withChildren, survey.ColMemberType, "Adult")
		}
		populate(FamilyYouth, "Parenting Youth Households",
			youthParenting, parenting, col, "youth", "Yes")

		adultsAndYouth := persons
		if persons.HasColumn("age_group") {
			adultsAndYouth = persons.Filter(func(r int) bool {
				g := persons.Get(r, "age_group")
				return g == "adult" || g == "youth"
			})
		}
		populate(FamilySubpopulations, "Homeless Subpopulations",
			subpopulationIndex, adultsAndYouth, col, "", "")

		populate(FamilySummary, "PIT Summary",
			pitSummary, persons, col, "", "")
	}

	for _, reports := range out {
		for _, rep := range reports {
			rep.finalize()
		}
	}
	return out
}
