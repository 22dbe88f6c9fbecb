package patterns

// Rule names. Refinement writes back under these same keys, so they must
// stay stable across releases.
const (
	RuleFIRNo           = "fir_no"
	RuleDateTime        = "date_time"
	RuleDistrict        = "district"
	RulePoliceStation   = "police_station"
	RuleYear            = "year"
	RuleComplainantName = "complainant_name"
	RuleFatherName      = "father_name"
	RuleDOB             = "dob"
	RuleMobile          = "mobile"
	RuleUID             = "uid"
	RuleAddress         = "address"
	RuleAccusedName     = "accused_name"
	RuleDay             = "day"
	RuleDate            = "date"
	RuleTime            = "time"
	RuleTimePeriod      = "time_period"
	RuleActsSections    = "acts_sections"
	RuleSectionFallback = "section_fallback"
	RuleDirection       = "direction"
	RuleDistance        = "distance"
	RuleBeatNo          = "beat_no"
	RulePlaceAddress    = "place_address"
	RuleOfficerName     = "officer_name"
	RuleRank            = "rank"
	RuleOfficerNo       = "officer_no"
	RuleContents        = "contents"
	RuleInfoWritten     = "info_written"
	RuleInfoOral        = "info_oral"
)

// baseline is the shipped rule bank for scanned FIR forms. Labels are
// matched case-insensitively (Latin tokens); spans run non-greedily from a
// label to the next boundary label or end of text.
func baseline() map[string]Rule {
	rules := []Rule{
		mustCompile(RuleFIRNo, `(?i)FIR.*?(\d{4})`, ScopeDocument, Validation{}),
		mustCompile(RuleDateTime, `(\d{2}/\d{2}/\d{4})\s*(\d{2}:\d{2})`, ScopeDocument, Validation{}),
		mustCompile(RuleDistrict, `(?i)District.*?:(.*?)(?:\s*Police|\s*Station|\s*Year|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 50, StripPunct: true}),
		mustCompile(RulePoliceStation, `(?i)(?:P\.S\.|Police Station).*?:(.*?)(?:\s*Year|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 50, StripPunct: true}),
		mustCompile(RuleYear, `(\d{4})`, ScopeDocument, Validation{MinNum: 2000, MaxNum: 2030}),
		mustCompile(RuleComplainantName, `(?i)Name.*?:(.*?)(?:\s*Father|\s*DOB|\s*Date|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 100}),
		mustCompile(RuleFatherName, `(?i)(?:Father|Husband).*?Name.*?:(.*?)(?:\s*DOB|\s*Date|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 100}),
		mustCompile(RuleDOB, `(?i)(?:DOB|Birth).*?(\d{4})`, ScopeDocument, Validation{MinNum: 1900, MaxNum: 2010}),
		mustCompile(RuleMobile, `(\d{10})`, ScopeDocument, Validation{}),
		mustCompile(RuleUID, `(\d{12})`, ScopeDocument, Validation{}),
		mustCompile(RuleAddress, `(?i)Address.*?:(.*?)(?:\s*Phone|\s*Mobile|\s*$)`, ScopeDocument,
			Validation{MinLen: 5, MaxLen: 200}),
		mustCompile(RuleAccusedName, `(?i)(?:Accused|आरोपी).*?(?:Name|नाव).*?:(.*?)(?:Alias|उपनाव|$)`, ScopeDocument,
			Validation{MinLen: 1, MaxLen: 100}),
		mustCompile(RuleDay, `(?i)Day.*?:(.*?)(?:\s*Date|\s*$)`, ScopeDocument, Validation{MinLen: 2, MaxLen: 20}),
		mustCompile(RuleDate, `(\d{2}/\d{2}/\d{4})`, ScopeDocument, Validation{}),
		mustCompile(RuleTime, `(\d{2}:\d{2})`, ScopeDocument, Validation{}),
		mustCompile(RuleTimePeriod, `(?i)Time.*?Period.*?:(.*?)(?:\s*Time|\s*$)`, ScopeDocument,
			Validation{MinLen: 1, MaxLen: 50}),
		mustCompile(RuleActsSections, `(?i)(?:Section|BNS).*?(\d+)`, ScopeDocument, Validation{}),
		mustCompile(RuleSectionFallback, `\b(\d{2,3})\b`, ScopeDocument, Validation{MinNum: 100, MaxNum: 511}),
		mustCompile(RuleDirection, `(?i)Direction.*?:(.*?)(?:\s*Distance|\s*Beat|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 100}),
		mustCompile(RuleDistance, `(?i)Distance.*?:(.*?)(?:\s*Beat|\s*Address|\s*$)`, ScopeDocument,
			Validation{MinLen: 1, MaxLen: 50}),
		mustCompile(RuleBeatNo, `(?i)Beat.*?:(.*?)(?:\s*Address|\s*$)`, ScopeDocument,
			Validation{MinLen: 0, MaxLen: 20}),
		mustCompile(RulePlaceAddress, `(?i)Address.*?:(.*?)(?:\s*District|\s*State|\s*$)`, ScopeDocument,
			Validation{MinLen: 5, MaxLen: 200}),
		mustCompile(RuleOfficerName, `(?i)(?:Officer|Name).*?:(.*?)(?:\s*Rank|\s*$)`, ScopeDocument,
			Validation{MinLen: 2, MaxLen: 100}),
		mustCompile(RuleRank, `(?i)Rank.*?:(.*?)(?:\s*No|\s*$)`, ScopeDocument, Validation{MinLen: 2, MaxLen: 50}),
		mustCompile(RuleOfficerNo, `(?i)No.*?:(.*?)(?:\s*$)`, ScopeDocument, Validation{MinLen: 0, MaxLen: 20}),
		mustCompile(RuleContents, `(?is)(?:First\s*Information\s*Contents|प्रथम\s*खबर\s*अंतर्गत).*?:(.*?)(?:Action\s*Taken|$)`,
			ScopeDocument, Validation{}),
		mustCompile(RuleInfoWritten, `लिखित|Written`, ScopeDocument, Validation{}),
		mustCompile(RuleInfoOral, `मौखिक|Oral`, ScopeDocument, Validation{}),
	}
	out := make(map[string]Rule, len(rules))
	for _, r := range rules {
		out[r.Name] = r
	}
	return out
}
