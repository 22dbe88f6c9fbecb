package normalize

// correction is one literal substring replacement for a known OCR misread.
type correction struct {
	From string
	To   string
}

// corrections is the ordered misread table, built up from reviewed FIR scans.
// Entries are applied in order; addCorrections keeps last-write-wins when the
// same misread is listed twice. This table fixes garbled tokens only; field
// semantics live in the pattern bank, not here.
var corrections = buildCorrections([]correction{
	{"Fste@", "District"},
	{"((aRT", "Police Station"},
	{"Sot)", "Station"},
	{"staTst", "Station"},
	{"AeT@oat", "Monday"},
	{"2X", "2 hours"},
	{"STfeT", "Street"},
	{"3fex)", "Street"},
	{"TTA,", "Street"},
	{"1 Tee aA.", "1 km approx"},
	{"{81", "House No"},
	{"Stel", "Street"},
	{"HAN,", "Hanuman"},
	{"caleit", "Colony"},
	{"Stec,,", "Street"},
	{"VoSITENs,,", "Vishnu Nagar"},
	{"ailurst,", "Ailur"},
	{"SMT", "Street"},
	{"Orel", "Shri"},
	{"galetaR", "Gautam"},
	{"6971", "1997"},
	{"ASAT", "Street"},
	{"dash)", "District"},
	{"Ariédt", "Address"},
	{"fAreatearan)", "Father/Husband"},
	{"Saal", "Shri"},
	{"Fel", "Shri"},
	{"SAeaa,", "Shri"},
	{"Welk", "Shri"},
	{"sear", "Shri"},
	{"ara)", "Name"},
	{"feat:", "Date"},
	{"3itet", "Street"},
	{"create:", "District"},
	{"Rear", "Present"},
	{"Ze.", "No."},
	{"det", "Present"},
	{"PATTON", "Present"},
	{"feet", "Address"},
	{"Pwr", "Present"},
	{"faerard", "Address"},
	{"HR", "House"},
	{"Aelaeael", "Address"},
	{"Tat", "Street"},
	{"TAT", "Street"},
	{"caret", "Street"},
	{"attests", "Address"},
	{"Yael", "Street"},
	{"3a", "No"},
	{"ed", "No"},
	{"3teTstscla", "Address"},
	{"let", "No"},
	{"USAT", "Present"},
	{"WEN", "Address"},
	{"seer", "Shri"},
	{"HAT", "Street"},
	{"att", "Street"},
	{"Hace", "House"},
	{"FeV", "No"},
	{"Als", "No"},
	{"cared", "Street"},
	{"Taweg", "Street"},
	{"SN.UeT.UE.HoAA", "S.No."},
	{"IL", "Shri"},
	{"SOTA", "Shri"},
	{"THA", "Street"},
	{"Mee", "Street"},
	{"SA", "Street"},
	{"GOR", "Street"},
	{"Use", "No"},
	{"TAR", "Street"},
	{"ah", "No"},
	{"fate", "Street"},
	{"act", "No"},
	{"fe,", "No"},
	{"Ure", "Present"},
	{"AT", "No"},
	{"Udit", "Shri"},
	{"Tale", "Shri"},
	{"aired", "Shri"},
	{"ale", "Shri"},
	{"Aaell", "Shri"},
	{"asa)", "Name"},
	{"He", "No"},
})

// buildCorrections dedupes the raw table: a misread listed more than once
// keeps its first position but takes the last replacement.
func buildCorrections(raw []correction) []correction {
	pos := make(map[string]int, len(raw))
	out := make([]correction, 0, len(raw))
	for _, c := range raw {
		if i, ok := pos[c.From]; ok {
			out[i].To = c.To
			continue
		}
		pos[c.From] = len(out)
		out = append(out, c)
	}
	return out
}
