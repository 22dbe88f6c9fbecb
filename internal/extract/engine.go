// Package extract turns normalized OCR fragments into a structured FIR
// record by running the named rule bank against the document text. The
// engine owns no state beyond the pattern store snapshot it reads: Extract
// is a pure function of (fragments, current rules).
package extract

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/firdocs/fir-extract/constants"
	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/normalize"
	"github.com/firdocs/fir-extract/internal/patterns"
)

type Engine struct {
	store  *patterns.Store
	logger *slog.Logger
}

func NewEngine(store *patterns.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// Extract populates a full FIR record skeleton from normalized fragments.
// Each field group runs in isolation: a failure inside one group is logged
// and leaves that group at its defaults, it never aborts the call. Extract
// itself never fails; worst case it returns the untouched skeleton.
func (e *Engine) Extract(fragments []entity.Fragment) *entity.FIRRecord {
	rec := entity.NewFIRRecord()
	fullText := normalize.FullText(fragments)

	e.group("fir_info", func() { e.extractFIRInfo(rec, fullText) })
	e.group("complainant", func() { e.extractComplainant(rec, fullText) })
	e.group("accused", func() { e.extractAccused(rec, fragments, fullText) })
	e.group("occurrence", func() { e.extractOccurrence(rec, fullText) })
	e.group("acts_sections", func() { e.extractActsSections(rec, fullText) })
	e.group("place", func() { e.extractPlace(rec, fullText) })
	e.group("action_taken", func() { e.extractActionTaken(rec, fullText) })
	e.group("contents", func() { e.extractContents(rec, fullText) })

	return rec
}

// group runs one field-group routine, converting any panic into a logged
// failure for that group only.
func (e *Engine) group(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.group_failed", "group", name, "error", fmt.Sprint(r))
		}
	}()
	fn()
}

// find evaluates the named rule against text, returning the validated
// capture. A missing rule behaves like a non-match.
func (e *Engine) find(name, text string) (string, bool) {
	r, ok := e.store.Get(name)
	if !ok {
		return "", false
	}
	return r.Find(text)
}

func (e *Engine) findAll(name, text string) []string {
	r, ok := e.store.Get(name)
	if !ok {
		return nil
	}
	return r.FindAll(text)
}

func (e *Engine) matches(name, text string) bool {
	r, ok := e.store.Get(name)
	return ok && r.Matches(text)
}

func (e *Engine) extractFIRInfo(rec *entity.FIRRecord, fullText string) {
	if v, ok := e.find(patterns.RuleFIRNo, fullText); ok {
		rec.FIR.FIRNo = v
	}
	if r, ok := e.store.Get(patterns.RuleDateTime); ok {
		if m, ok := r.FindSubmatch(fullText); ok && len(m) >= 3 {
			rec.FIR.DateTimeOfFIR = m[1] + " " + m[2]
		}
	}
	if v, ok := e.find(patterns.RuleDistrict, fullText); ok {
		rec.FIR.District = v
	}
	if v, ok := e.find(patterns.RulePoliceStation, fullText); ok {
		rec.FIR.PoliceStation = v
	}
	// First 4-digit run inside the plausible year range wins.
	if years := e.findAll(patterns.RuleYear, fullText); len(years) > 0 {
		if y, err := strconv.Atoi(years[0]); err == nil {
			rec.FIR.Year = y
		}
	}
	// Written takes priority over oral when both tokens appear.
	switch {
	case e.matches(patterns.RuleInfoWritten, fullText):
		rec.FIR.TypeOfInformation = constants.InfoWritten
	case e.matches(patterns.RuleInfoOral, fullText):
		rec.FIR.TypeOfInformation = constants.InfoOral
	}
}

func (e *Engine) extractComplainant(rec *entity.FIRRecord, fullText string) {
	c := &rec.ComplainantInformant
	if v, ok := e.find(patterns.RuleComplainantName, fullText); ok {
		c.Name = v
	}
	if v, ok := e.find(patterns.RuleFatherName, fullText); ok {
		c.FatherOrHusbandName = v
	}
	if v, ok := e.find(patterns.RuleDOB, fullText); ok {
		c.DOBYearOfBirth = v
	}
	if v, ok := e.find(patterns.RuleMobile, fullText); ok {
		c.PhoneNumber = v
	}
	if v, ok := e.find(patterns.RuleUID, fullText); ok {
		c.UIDNo = v
	}
	if v, ok := e.find(patterns.RuleAddress, fullText); ok {
		c.Addresses = []entity.Address{{Type: constants.AddressTypePresent, Address: v}}
	}
}

// extractAccused runs both accused passes. The block pass walks fragments in
// reading order; the label pass matches the anchored pattern on full text.
// The two can yield the same person twice, see AccusedFromLabels.
func (e *Engine) extractAccused(rec *entity.FIRRecord, fragments []entity.Fragment, fullText string) {
	rec.AccusedDetails = append(rec.AccusedDetails, AccusedBlocks(fragments)...)
	rec.AccusedDetails = append(rec.AccusedDetails, e.AccusedFromLabels(fullText)...)
}

// AccusedBlocks scans fragments sequentially. A fragment mentioning
// "Accused" (or its Hindi equivalent) opens a new block, pushing the
// previous one when it got a name. Within an open block the first
// non-trivial fragment that is not itself a "Name" label becomes the name.
func AccusedBlocks(fragments []entity.Fragment) []entity.Accused {
	var list []entity.Accused
	var cur *entity.Accused
	for _, f := range fragments {
		text := f.Text
		switch {
		case strings.Contains(text, "Accused") || strings.Contains(text, "आरोपी"):
			if cur != nil && cur.Name != "" {
				list = append(list, *cur)
			}
			cur = &entity.Accused{}
		case cur != nil:
			if strings.Contains(text, "Name") || strings.Contains(text, "नाव") {
				continue
			}
			if cur.Name == "" && len([]rune(text)) > 3 {
				cur.Name = text
			}
		}
	}
	if cur != nil && cur.Name != "" {
		list = append(list, *cur)
	}
	return list
}

// AccusedFromLabels extracts accused names via the label-anchored rule on
// full text. It runs independently of AccusedBlocks and the results are not
// deduplicated against it: reviewed ground truth shows both passes feeding
// the same list, so collapsing them here would change observed output.
func (e *Engine) AccusedFromLabels(fullText string) []entity.Accused {
	var list []entity.Accused
	for _, name := range e.findAll(patterns.RuleAccusedName, fullText) {
		list = append(list, entity.Accused{Name: name})
	}
	return list
}

// extractOccurrence assigns dates and times by textual order of appearance:
// first occurrence is From, second is To. The form does not label them
// reliably enough to do better.
func (e *Engine) extractOccurrence(rec *entity.FIRRecord, fullText string) {
	o := &rec.FIR.OccurrenceOfOffence
	if v, ok := e.find(patterns.RuleDay, fullText); ok {
		o.Day = v
	}
	dates := e.findAll(patterns.RuleDate, fullText)
	if len(dates) >= 1 {
		o.DateFrom = dates[0]
	}
	if len(dates) >= 2 {
		o.DateTo = dates[1]
	}
	if v, ok := e.find(patterns.RuleTimePeriod, fullText); ok {
		o.TimePeriod = v
	}
	times := e.findAll(patterns.RuleTime, fullText)
	if len(times) >= 1 {
		o.TimeFrom = times[0]
	}
	if len(times) >= 2 {
		o.TimeTo = times[1]
	}
}

func (e *Engine) extractActsSections(rec *entity.FIRRecord, fullText string) {
	for _, sec := range e.findAll(patterns.RuleActsSections, fullText) {
		rec.FIR.ActsSections = append(rec.FIR.ActsSections, entity.ActSection{
			Act:     constants.DefaultActName,
			Section: sec,
		})
	}
	if len(rec.FIR.ActsSections) > 0 {
		return
	}
	// Fallback: first standalone 2-3 digit number in the plausible section
	// range. Single result, deliberately not exhaustive.
	if nums := e.findAll(patterns.RuleSectionFallback, fullText); len(nums) > 0 {
		rec.FIR.ActsSections = append(rec.FIR.ActsSections, entity.ActSection{
			Act:     constants.DefaultActName,
			Section: nums[0],
		})
	}
}

func (e *Engine) extractPlace(rec *entity.FIRRecord, fullText string) {
	p := &rec.FIR.PlaceOfOccurrence
	if v, ok := e.find(patterns.RuleDirection, fullText); ok {
		p.DirectionDistanceFromPS.Direction = v
	}
	if v, ok := e.find(patterns.RuleDistance, fullText); ok {
		p.DirectionDistanceFromPS.Distance = v
	}
	if v, ok := e.find(patterns.RuleBeatNo, fullText); ok {
		p.BeatNo = v
	}
	if v, ok := e.find(patterns.RulePlaceAddress, fullText); ok {
		p.Address = v
	}
}

func (e *Engine) extractActionTaken(rec *entity.FIRRecord, fullText string) {
	a := &rec.ActionTaken.RegisteredCaseInvestigation
	if v, ok := e.find(patterns.RuleOfficerName, fullText); ok {
		a.OfficerName = v
	}
	if v, ok := e.find(patterns.RuleRank, fullText); ok {
		a.Rank = v
	}
	if v, ok := e.find(patterns.RuleOfficerNo, fullText); ok {
		a.No = v
	}
}

func (e *Engine) extractContents(rec *entity.FIRRecord, fullText string) {
	if v, ok := e.find(patterns.RuleContents, fullText); ok && v != "" {
		rec.FirstInformationContents = v
	}
}
