package entity

import "github.com/firdocs/fir-extract/constants"

// FIRRecord is the structured result of extracting one FIR document.
// Every key is always present: consumers (review UI forms) address field
// paths directly, so NewFIRRecord pre-fills the whole skeleton with empty
// strings, empty lists and zeroes and extraction only overwrites what it
// finds.
type FIRRecord struct {
	FIR                       FIRInfo          `json:"FIR"`
	ComplainantInformant      Complainant      `json:"ComplainantInformant"`
	AccusedDetails            []Accused        `json:"AccusedDetails"`
	PropertyOfInterest        []Property       `json:"PropertyOfInterest"`
	TotalValueOfPropertyInRs  string           `json:"TotalValueOfPropertyInRs"`
	InquestUDBCaseNo          []string         `json:"Inquest_UDB_CaseNo"`
	FirstInformationContents  string           `json:"FirstInformationContents"`
	ActionTaken               ActionTaken      `json:"ActionTaken"`
	ComplainantSignature      Signature        `json:"ComplainantSignature"`
	DateTimeOfDispatchToCourt string           `json:"DateTimeOfDispatchToCourt"`
	AccusedPhysicalDetails    []PhysicalDetail `json:"AccusedPhysicalDetails"`
}

// FIRInfo groups the core registration fields of the FIR form.
type FIRInfo struct {
	District            string       `json:"District"`
	PoliceStation       string       `json:"PoliceStation"`
	Year                int          `json:"Year"`
	FIRNo               string       `json:"FIRNo"`
	DateTimeOfFIR       string       `json:"DateTimeOfFIR"`
	ActsSections        []ActSection `json:"ActsSections"`
	OccurrenceOfOffence Occurrence   `json:"OccurrenceOfOffence"`
	InfoReceivedAtPS    InfoReceived `json:"InfoReceivedAtPS"`
	GeneralDiaryRef     GeneralDiary `json:"GeneralDiaryReference"`
	TypeOfInformation   string       `json:"TypeOfInformation"`
	PlaceOfOccurrence   Place        `json:"PlaceOfOccurrence"`
}

type ActSection struct {
	Act     string `json:"Act"`
	Section string `json:"Section"`
}

type Occurrence struct {
	Day        string `json:"Day"`
	DateFrom   string `json:"DateFrom"`
	DateTo     string `json:"DateTo"`
	TimePeriod string `json:"TimePeriod"`
	TimeFrom   string `json:"TimeFrom"`
	TimeTo     string `json:"TimeTo"`
}

type InfoReceived struct {
	Date string `json:"Date"`
	Time string `json:"Time"`
}

type GeneralDiary struct {
	EntryNo  string `json:"EntryNo"`
	DateTime string `json:"DateTime"`
}

type Place struct {
	DirectionDistanceFromPS DirectionDistance `json:"DirectionDistanceFromPS"`
	BeatNo                  string            `json:"BeatNo"`
	Address                 string            `json:"Address"`
	DistrictState           string            `json:"DistrictState"`
}

type DirectionDistance struct {
	Direction string `json:"Direction"`
	Distance  string `json:"Distance"`
}

// Complainant holds the complainant/informant block of the form.
type Complainant struct {
	Name                string    `json:"Name"`
	FatherOrHusbandName string    `json:"FatherOrHusbandName"`
	DOBYearOfBirth      string    `json:"DOB_YearOfBirth"`
	Nationality         string    `json:"Nationality"`
	UIDNo               string    `json:"UIDNo"`
	PassportNo          string    `json:"PassportNo"`
	IDDetails           []string  `json:"IDDetails"`
	Occupation          string    `json:"Occupation"`
	Addresses           []Address `json:"Addresses"`
	PhoneNumber         string    `json:"PhoneNumber"`
}

type Address struct {
	Type    string `json:"Type"`
	Address string `json:"Address"`
}

type Accused struct {
	Name           string `json:"Name"`
	Alias          string `json:"Alias"`
	RelativeName   string `json:"RelativeName"`
	PresentAddress string `json:"PresentAddress"`
}

type Property struct {
	Description      string `json:"Description"`
	EstimatedValueRs string `json:"EstimatedValueRs"`
}

type PhysicalDetail struct {
	Description string `json:"Description"`
}

type ActionTaken struct {
	RegisteredCaseInvestigation Officer `json:"RegisteredCaseInvestigation"`
	DirectedNameOfIO            string  `json:"DirectedNameOfIO"`
	DirectedRank                string  `json:"DirectedRank"`
	DirectedNo                  string  `json:"DirectedNo"`
	RefusedInvestigationDueTo   string  `json:"RefusedInvestigationDueTo"`
	TransferredPS               string  `json:"TransferredPS"`
	TransferredDistrict         string  `json:"TransferredDistrict"`
	ROAC                        string  `json:"ROAC"`
}

type Officer struct {
	OfficerName string `json:"OfficerName"`
	Rank        string `json:"Rank"`
	No          string `json:"No"`
}

type Signature struct {
	Name string `json:"Name"`
	Rank string `json:"Rank"`
	No   string `json:"No"`
}

// NewFIRRecord returns the fully keyed default skeleton. Slices are
// allocated empty (not nil) so the record serializes with [] rather than
// null at every level.
func NewFIRRecord() *FIRRecord {
	return &FIRRecord{
		FIR: FIRInfo{
			ActsSections: []ActSection{},
		},
		ComplainantInformant: Complainant{
			Nationality: constants.DefaultNationality,
			IDDetails:   []string{},
			Addresses:   []Address{},
		},
		AccusedDetails:         []Accused{},
		PropertyOfInterest:     []Property{},
		InquestUDBCaseNo:       []string{},
		AccusedPhysicalDetails: []PhysicalDetail{},
	}
}
