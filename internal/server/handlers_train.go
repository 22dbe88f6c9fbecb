package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/firdocs/fir-extract/internal/entity"
)

// sampleRequest mirrors the review UI's correction payload.
type sampleRequest struct {
	FileID        string          `json:"file_id"`
	OCRData       json.RawMessage `json:"ocr_data"`
	CorrectedData json.RawMessage `json:"corrected_data"`
}

// handleSaveSample validates a reviewer correction and persists it as a
// training sample. Persistence failures surface as request errors: a lost
// sample would silently starve the refinement loop.
func (s *Server) handleSaveSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, "file_id is required")
		return
	}
	if len(req.CorrectedData) == 0 {
		writeError(w, http.StatusBadRequest, "corrected_data is required")
		return
	}
	if err := entity.ValidateGroundTruth(req.CorrectedData); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("corrected_data invalid: %v", err))
		return
	}

	var gt entity.FIRRecord
	if err := json.Unmarshal(req.CorrectedData, &gt); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("corrected_data does not decode: %v", err))
		return
	}

	sample := &entity.TrainingSample{
		FileID:      req.FileID,
		OCRData:     req.OCRData,
		GroundTruth: gt,
	}
	if err := s.samples.Save(r.Context(), sample); err != nil {
		s.logger.Error("train.save_failed", "file_id", req.FileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save training sample")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "training sample saved"})
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.samples.List(r.Context())
	if err != nil {
		s.logger.Error("train.list_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load training samples")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

func (s *Server) handleRetrain(w http.ResponseWriter, r *http.Request) {
	result := s.refiner.Refine(r.Context())
	writeJSON(w, http.StatusOK, result)
}
