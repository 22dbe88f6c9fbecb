package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildGroundTruthSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Submitted corrections are validated against it before a
// training sample is persisted, so a malformed correction never poisons the
// refinement loop.
func BuildGroundTruthSchema() map[string]any {
	str := func() map[string]any { return map[string]any{"type": "string"} }
	strArr := func() map[string]any {
		return map[string]any{"type": "array", "items": str()}
	}

	firProps := map[string]any{
		"District":      str(),
		"PoliceStation": str(),
		"Year":          map[string]any{"type": "integer", "minimum": 0},
		"FIRNo":         str(),
		"DateTimeOfFIR": str(),
		"ActsSections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"Act":     str(),
					"Section": str(),
				},
			},
		},
		"TypeOfInformation": str(),
	}

	complainantProps := map[string]any{
		"Name":                str(),
		"FatherOrHusbandName": str(),
		"DOB_YearOfBirth":     str(),
		"Nationality":         str(),
		"UIDNo":               str(),
		"PassportNo":          str(),
		"IDDetails":           strArr(),
		"Occupation":          str(),
		"PhoneNumber":         str(),
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"FIR": map[string]any{
				"type":       "object",
				"properties": firProps,
				"required":   []string{"District", "PoliceStation", "FIRNo"},
			},
			"ComplainantInformant": map[string]any{
				"type":       "object",
				"properties": complainantProps,
			},
			"AccusedDetails": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"Name":           str(),
						"Alias":          str(),
						"RelativeName":   str(),
						"PresentAddress": str(),
					},
				},
			},
			"FirstInformationContents": str(),
		},
		"required": []string{"FIR"},
	}
}

// ValidateGroundTruth validates raw corrected-record JSON against the
// ground-truth schema.
func ValidateGroundTruth(data []byte) error {
	b, err := json.Marshal(BuildGroundTruthSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("ground_truth.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("ground_truth.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
