package report

import "github.com/opencoc/pitpipe/pkg/survey"

// category pairs a cell value as it appears in the person table with
// the statistic key it is counted under.
type category struct {
	Label string
	Key   string
}

// ageRanges are the adult bands reported individually; Under 18 and
// 18-24 are carried by the children/young-adult counts instead.
var ageRanges = []string{"25-34", "35-44", "45-54", "55-64", "65+"}

var sexCategories = []category{
	{"Female", "Female"},
	{"Male", "Male"},
}

var genderCategories = []category{
	{"Woman (Girl if child)", "Woman_Girl"},
	{"Man (Boy if child)", "Man_Boy"},
	{"Culturally Specific Identity", "Culturally_Specific_Identity"},
	{"Transgender", "Transgender"},
	{"Non-Binary", "Non_Binary"},
	{"Questioning", "Questioning"},
	{"Different Identity", "Different_Identity"},
	{"More Than One Gender", "More_Than_One_Gender"},
}

var raceCategories = []category{
	{"Indigenous (American Indian/Alaska Native/Indigenous)", "Indigenous"},
	{"Indigenous (American Indian/Alaska Native/Indigenous) & Hispanic/Latina/e/o", "Indigenous_Hispanic"},
	{"Asian/Asian American", "Asian"},
	{"Asian/Asian American & Hispanic/Latina/e/o", "Asian_Hispanic"},
	{"Black/African American/African", "Black"},
	{"Black/African American/African & Hispanic/Latina/e/o", "Black_Hispanic"},
	{"Hispanic/Latina/e/o", "Hispanic"},
	{"Middle Eastern/North African", "Middle_Eastern_North_African"},
	{"Middle Eastern/North African & Hispanic/Latina/e/o", "Middle_Eastern_North_African_Hispanic"},
	{"Native Hawaiian/Pacific Islander", "Native_Hawaiian"},
	{"Native Hawaiian/Pacific Islander & Hispanic/Latina/e/o", "Native_Hawaiian_Hispanic"},
	{"White", "White"},
	{"White & Hispanic/Latina/e/o", "White_Hispanic"},
	{"Multi-Racial & Hispanic/Latina/e/o", "Multi_Racial_Hispanic"},
	{"Multi-Racial (not Hispanic/Latina/e/o)", "Multi_Racial_Non_Hispanic"},
}

// conditionCategories match the standardized chronic_condition values;
// counts are split into Adults_with_a_<key> and childs_with_a_<key>.
var conditionCategories = []category{
	{"Mental Health", "Serious_Mental_Illness"},
	{"Substance Use Disorder (Alcohol, Drugs, or Both)", "Substance_Use_Disorder"},
	{"Physical Condition", "Physical_Condition"},
	{"HIV/AIDS", "HIV_AIDS"},
	{"Developmental Condition", "Developmental_Condition"},
	{"Other Chronic Health Condition", "other_Condition"},
}

var householdCategories = []category{
	{survey.HouseholdWithChildren, "Households_with_Child"},
	{survey.HouseholdWithoutChildren, "Households_without_Children"},
	{survey.HouseholdWithOnlyChildren, "Households_with_Only_Children"},
}
