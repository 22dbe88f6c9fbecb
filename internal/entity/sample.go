package entity

import "encoding/json"

// TrainingSample is one reviewer-confirmed correction: the raw OCR output as
// it was submitted, plus the hand-corrected record. Immutable once stored;
// FileID is the identity, a re-submit for the same id overwrites.
type TrainingSample struct {
	FileID      string          `json:"file_id"`
	OCRData     json.RawMessage `json:"ocr_data"`
	GroundTruth FIRRecord       `json:"ground_truth"`
}
