package constants

// RefineStatus is the canonical status returned by a pattern refinement run.
type RefineStatus string

// Stable values (returned to API clients, do not rename).
const (
	RefineStatusSuccess          RefineStatus = "success"
	RefineStatusInsufficientData RefineStatus = "insufficient_data"
	RefineStatusError            RefineStatus = "error"
)

// MinTrainingSamples is the minimum sample count required before a
// refinement run is attempted.
const MinTrainingSamples = 5

// TypeOfInformation values observed on FIR forms (bilingual).
const (
	InfoWritten = "लिखित" // written complaint
	InfoOral    = "मौखिक" // oral complaint
)

// DefaultNationality pre-fills the complainant nationality on the skeleton.
const DefaultNationality = "भारत"

// DefaultActName is the act recorded against extracted section numbers.
const DefaultActName = "भारतीय न्याय संहिता (बी एन एस), 2023"

// AddressTypePresent tags the single address entry extracted for the
// complainant.
const AddressTypePresent = "Present Address"
