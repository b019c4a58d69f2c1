package report

// RowKey identifies one report row by its (category, subcategory)
// labels, exactly as they appear in the exported table.
type RowKey struct {
	Category    string
	Subcategory string
}

// cell binds a template row to the statistic key that fills it. A
// template is an ordered []cell; its row order is the export order.
type cell struct {
	row  RowKey
	stat string
}

func concat(groups ...[]cell) []cell {
	var out []cell
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func sexCells(cat string) []cell {
	return []cell{
		{RowKey{cat, "Female"}, "Female"},
		{RowKey{cat, "Male"}, "Male"},
	}
}

// genderCells emits one row per gender category followed by the
// "Includes" rows counting multi-select respondents per identity.
func genderCells(cat string) []cell {
	var out []cell
	for _, g := range genderCategories {
		out = append(out, cell{RowKey{cat, g.Label}, g.Key})
	}
	for _, g := range genderCategories {
		if g.Label == "More Than One Gender" {
			continue
		}
		out = append(out, cell{RowKey{cat, "      Includes " + g.Label}, "Includes_" + g.Key})
	}
	return out
}

func raceCells(cat string) []cell {
	var out []cell
	for _, r := range raceCategories {
		out = append(out, cell{RowKey{cat, r.Label}, r.Key})
	}
	return out
}

func chCells(withHouseholds bool) []cell {
	var out []cell
	if withHouseholds {
		out = append(out, cell{RowKey{"Chronically Homeless", "Total number of households"}, "CH_Total_number_of_households"})
	}
	return append(out, cell{RowKey{"Chronically Homeless", "Total number of persons"}, "CH_Total_number_of_persons"})
}

func adultBandCells() []cell {
	return []cell{
		{RowKey{"      Number of adults (age 25 to 34)", ""}, "Number_of_adults_25-34"},
		{RowKey{"      Number of adults (age 35 to 44)", ""}, "Number_of_adults_35-44"},
		{RowKey{"      Number of adults (age 45 to 54)", ""}, "Number_of_adults_45-54"},
		{RowKey{"      Number of adults (age 55 to 64)", ""}, "Number_of_adults_55-64"},
		{RowKey{"      Number of adults (age 65 or older)", ""}, "Number_of_adults_65+"},
	}
}

var totalWithChildren = concat(
	[]cell{
		{RowKey{"Total number of households", ""}, "Total_number_of_households"},
		{RowKey{"Total number of persons (adults & children)", ""}, "Total_number_of_persons"},
		{RowKey{"      Number of children (under age 18)", ""}, "Number_of_children"},
		{RowKey{"      Number of young (age 18 to 24)", ""}, "Number_of_young_adults"},
	},
	adultBandCells(),
	sexCells("Sex (adults and children)"),
	genderCells("Gender (adults and children)"),
	raceCells("Race and Ethnicity (adults and children)"),
	chCells(true),
)

var totalWithoutChildren = concat(
	[]cell{
		{RowKey{"Total number of households", ""}, "Total_number_of_households"},
		{RowKey{"Total number of persons", ""}, "Total_number_of_persons"},
		{RowKey{"      Number of young (age 18 to 24)", ""}, "Number_of_young_adults"},
	},
	adultBandCells(),
	sexCells("Sex"),
	genderCells("Gender"),
	raceCells("Race and Ethnicity"),
	chCells(false),
)

var totalOnlyChildren = concat(
	[]cell{
		{RowKey{"Total number of households", ""}, "Total_number_of_households"},
		{RowKey{"Number of children (persons under age 18)", ""}, "Total_number_of_persons"},
	},
	sexCells("Sex"),
	genderCells("Gender"),
	raceCells("Race and Ethnicity"),
	chCells(false),
)

func vetTemplate(withHouseholds bool) []cell {
	return concat(
		[]cell{
			{RowKey{"Total number of households", ""}, "Total_number_of_households"},
			{RowKey{"Total number of persons", ""}, "Total_number_of_persons"},
			{RowKey{"Total number of veterans", ""}, "Total number of veterans"},
		},
		sexCells("Sex (veterans only)"),
		genderCells("Gender (veterans only)"),
		raceCells("Race and Ethnicity (veterans only)"),
		chCells(withHouseholds),
	)
}

var (
	vetWithChildren    = vetTemplate(true)
	vetWithoutChildren = vetTemplate(false)
)

var youthUnaccompanied = concat(
	[]cell{
		{RowKey{"Total number of unaccompanied youth households", ""}, "Total_number_of_households"},
		{RowKey{"Total number of unaccompanied youth", ""}, "Total_number_of_persons"},
		{RowKey{"      Number of unaccompanied youth (under age 18)", ""}, "Number_of_children"},
		{RowKey{"      Number of unaccompanied youth (age 18 to 24)", ""}, "Number_of_young_adults"},
	},
	sexCells("Sex (unaccompanied youth)"),
	genderCells("Gender (unaccompanied youth)"),
	raceCells("Race and Ethnicity (unaccompanied youth)"),
	chCells(false),
)

var youthParenting = concat(
	[]cell{
		{RowKey{"Total number of parenting youth household", ""}, "Total_number_of_households"},
		{RowKey{"Total number of persons in parenting youth households", ""}, "Total_number_of_persons"},
		{RowKey{"Total Parenting Youth (youth parents only)", ""}, "Total_Parenting_Youth"},
		{RowKey{"Total Children in Parenting Youth Households", ""}, "Number_of_children"},
		{RowKey{"   Number of parenting youth under age 18", ""}, "Number_of_parenting_youth_under_age_18"},
		{RowKey{"      Children in households with parenting youth under age 18", ""}, "Children_with_parenting_youth_under_18"},
		{RowKey{"   Number of parenting youth age 18 to 24", ""}, "Number_of_young_adults"},
		{RowKey{"      Children in households with parenting youth age 18 to 24", ""}, "Children_with_parenting_youth_18_24"},
	},
	sexCells("Sex (youth parents only)"),
	genderCells("Gender (youth parents only)"),
	raceCells("Race and Ethnicity (youth parents only)"),
	chCells(true),
)

var subpopulationIndex = []cell{
	{RowKey{"Adults with a Serious Mental Illness", ""}, "Adults_with_a_Serious_Mental_Illness"},
	{RowKey{"Adults with a Substance Use Disorder", ""}, "Adults_with_a_Substance_Use_Disorder"},
	{RowKey{"Adults with HIV/AIDS", ""}, "Adults_with_a_HIV_AIDS"},
	{RowKey{"Victims of Domestic Violence (fleeing)", ""}, "Victims_of_Domestic_Violence_(fleeing)"},
}

// Summary-only subcategory labels for the condition block; they differ
// from the chronic_condition values the keys are derived from.
func conditionSummaryCells(cat, keyPrefix string) []cell {
	rows := []category{
		{"Physical Disability", "Physical_Condition"},
		{"Developmental Condition", "Developmental_Condition"},
		{"Mental Health", "Serious_Mental_Illness"},
		{"Chronic Substance Abuse", "Substance_Use_Disorder"},
		{"HIV_AIDS", "HIV_AIDS"},
		{"Other Chronic Health Conditions", "other_Condition"},
	}
	var out []cell
	for _, r := range rows {
		out = append(out, cell{RowKey{cat, r.Label}, keyPrefix + "_with_a_" + r.Key})
	}
	return out
}

func historyCells(cat, keyPrefix string) []cell {
	return []cell{
		{RowKey{cat, "First Time Homeless"}, keyPrefix + "_First_Time_Homeless"},
		{RowKey{cat, "Length of Time Homeless(Less than one month)"}, keyPrefix + "_Less_than_One_Month"},
		{RowKey{cat, "Length of Time Homeless(One to three months)"}, keyPrefix + "_One_to_Three_Months"},
		{RowKey{cat, "Length of Time Homeless(Three months to one year)"}, keyPrefix + "_Three_Months_to_One_Year"},
		{RowKey{cat, "Length of Time Homeless(One year or more)"}, keyPrefix + "_One_Year_or_More"},
	}
}

var pitSummary = concat(
	[]cell{
		{RowKey{"Total number of households", ""}, "Total_number_of_households"},
		{RowKey{"Total number of households", "Households with at Least One Adult and One Child"}, "Households_with_Child"},
		{RowKey{"Total number of households", "      2 members"}, "Households_2_members"},
		{RowKey{"Total number of households", "      3 members"}, "Households_3_members"},
		{RowKey{"Total number of households", "      4 members"}, "Households_4_members"},
		{RowKey{"Total number of households", "      5+ members"}, "Households_5+_members"},
		{RowKey{"Total number of households", "Households without Children"}, "Households_without_Children"},
		{RowKey{"Total number of households", "Households with Only Children"}, "Households_with_Only_Children"},
		{RowKey{"Total number of persons", ""}, "Total_number_of_persons"},
		{RowKey{"Total number of persons", "Number of children (under age 18)"}, "Number_of_children"},
		{RowKey{"Total number of persons", "Number of young adults (age 18 to 24)"}, "Number_of_young_adults"},
		{RowKey{"Total number of persons", "Adults (25-34)"}, "Number_of_adults_25-34"},
		{RowKey{"Total number of persons", "Adults (35-44)"}, "Number_of_adults_35-44"},
		{RowKey{"Total number of persons", "Adults (45-54)"}, "Number_of_adults_45-54"},
		{RowKey{"Total number of persons", "Adults (55-64)"}, "Number_of_adults_55-64"},
		{RowKey{"Total number of persons", "Adults (65+)"}, "Number_of_adults_65+"},
		{RowKey{"Total number of persons", "Unreported Age"}, "Unreported_Age"},
	},
	sexCells("Sex (adults and children)"),
	genderCells("Gender (adults and children)"),
	raceCells("Race and Ethnicity (adults and children)"),
	[]cell{
		{RowKey{"Subpopulations", "Chronically homeless HOUSEHOLDS"}, "CH_Total_number_of_households"},
		{RowKey{"Subpopulations", "Chronically homeless persons"}, "CH_Total_number_of_persons"},
		{RowKey{"Subpopulations", "Veterans"}, "Total number of veterans"},
		{RowKey{"Subpopulations", "DV households"}, "Victims_of_Domestic_Violence_(Household)"},
		{RowKey{"Subpopulations", "DV survivors"}, "Victims_of_Domestic_Violence_(fleeing)"},
		{RowKey{"Subpopulations", "Unaccompanied youth households"}, "Total_Unaccompanied_Youth_hh"},
		{RowKey{"Subpopulations", "Parenting youth households"}, "Total_Parenting_Youth_hh"},
	},
	conditionSummaryCells("Chronic Health Conditions (Adults)", "Adults"),
	conditionSummaryCells("Chronic Health Conditions (Children)", "childs"),
	historyCells("History of Homelessness", "History"),
	historyCells("History of Homelessness (HHs)", "History_HHs"),
)
