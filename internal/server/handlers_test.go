package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firdocs/fir-extract/internal/common"
	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/extract"
	"github.com/firdocs/fir-extract/internal/normalize"
	"github.com/firdocs/fir-extract/internal/patterns"
	"github.com/firdocs/fir-extract/internal/refine"
	"github.com/firdocs/fir-extract/internal/repository"
)

type stubOCR struct {
	pages entity.PageFragments
	err   error
}

func (s *stubOCR) ProcessPDF(_ context.Context, _ string) (entity.PageFragments, error) {
	return s.pages, s.err
}

func (s *stubOCR) ProcessImage(_ context.Context, _ string) (entity.PageFragments, error) {
	return s.pages, s.err
}

func newTestServer(t *testing.T, ocr DocumentOCR) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &common.Config{
		Server: common.ServerConfig{
			Addr:         ":0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Storage: common.StorageConfig{
			UploadDir:   filepath.Join(dir, "uploads"),
			TrainingDir: filepath.Join(dir, "training"),
			SampleStore: "file",
		},
		Extract: common.ExtractConfig{ConfidenceThreshold: 0.3},
	}
	samples, err := repository.NewFSSampleRepository(cfg.Storage.TrainingDir, nil)
	require.NoError(t, err)

	store := patterns.NewStore("", nil)
	engine := extract.NewEngine(store, nil)
	normalizer := normalize.New(cfg.Extract.ConfidenceThreshold, nil)
	refiner := refine.NewService(samples, store, nil)

	return New(cfg, nil, ocr, normalizer, engine, samples, refiner)
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleUpload_ExtractsFields(t *testing.T) {
	ocr := &stubOCR{pages: entity.PageFragments{
		1: {
			{Text: "FIR No. : 2021", Confidence: 0.95},
			{Text: "District : Pune Police Station : Hinjewadi", Confidence: 0.9},
		},
	}}
	srv := newTestServer(t, ocr)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, uploadRequest(t, "scan.pdf", []byte("%PDF-1.4 test")))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		FileID          string               `json:"file_id"`
		Filename        string               `json:"filename"`
		TextData        entity.PageFragments `json:"text_data"`
		ExtractedFields entity.FIRRecord     `json:"extracted_fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	_, err := uuid.Parse(body.FileID)
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", body.Filename)
	assert.Equal(t, "2021", body.ExtractedFields.FIR.FIRNo)
	assert.Equal(t, "Pune", body.ExtractedFields.FIR.District)
	assert.Len(t, body.TextData[1], 2)

	// The PDF landed on disk under the returned id.
	saved := filepath.Join(srv.cfg.Storage.UploadDir, body.FileID+".pdf")
	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), b)
}

func TestHandleUpload_OCRFailureStillReturnsSkeleton(t *testing.T) {
	srv := newTestServer(t, &stubOCR{err: errors.New("tesseract missing")})

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, uploadRequest(t, "scan.pdf", []byte("%PDF-1.4")))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		ExtractedFields entity.FIRRecord `json:"extracted_fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "", body.ExtractedFields.FIR.FIRNo)
	assert.NotNil(t, body.ExtractedFields.AccusedDetails)
}

func TestHandleUpload_ImageGoesThroughOCR(t *testing.T) {
	ocr := &stubOCR{pages: entity.PageFragments{
		1: {
			{Text: "FIR No. : 2021", Confidence: 0.95},
			{Text: "District : Pune", Confidence: 0.9},
		},
	}}
	srv := newTestServer(t, ocr)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, uploadRequest(t, "scan.png", []byte("\x89PNG test")))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		FileID          string           `json:"file_id"`
		ExtractedFields entity.FIRRecord `json:"extracted_fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "2021", body.ExtractedFields.FIR.FIRNo)
	assert.Equal(t, "Pune", body.ExtractedFields.FIR.District)

	// Stored with the original extension and retrievable afterwards.
	saved := filepath.Join(srv.cfg.Storage.UploadDir, body.FileID+".png")
	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG test"), b)

	rr = httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/file/"+body.FileID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []byte("\x89PNG test"), rr.Body.Bytes())
}

func TestHandleUpload_RejectsUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	for _, name := range []string{"scan.exe", "scan"} {
		rr := httptest.NewRecorder()
		srv.routes().ServeHTTP(rr, uploadRequest(t, name, []byte("not a document")))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "filename %q", name)
	}
}

func TestHandleUpload_MissingFileField(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetFile(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	handler := srv.routes()

	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/file/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/file/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("serves stored pdf", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, os.MkdirAll(srv.cfg.Storage.UploadDir, 0o755))
		path := filepath.Join(srv.cfg.Storage.UploadDir, id+".pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stored"), 0o644))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/file/"+id, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		b, err := io.ReadAll(rr.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 stored"), b)
	})
}

func TestHandleSaveSample(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	handler := srv.routes()

	gt := entity.NewFIRRecord()
	gt.FIR.District = "Pune"
	corrected, err := json.Marshal(gt)
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]any{
		"file_id":        "abc-123",
		"ocr_data":       map[string]any{"1": []any{}},
		"corrected_data": json.RawMessage(corrected),
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/train/sample", bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/train/samples", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var listed struct {
		Samples []entity.TrainingSample `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed.Samples, 1)
	assert.Equal(t, "abc-123", listed.Samples[0].FileID)
	assert.Equal(t, "Pune", listed.Samples[0].GroundTruth.FIR.District)
}

func TestHandleSaveSample_Invalid(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	handler := srv.routes()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{broken"},
		{"missing file_id", `{"corrected_data": {"FIR": {"District":"","PoliceStation":"","FIRNo":""}}}`},
		{"missing corrected_data", `{"file_id": "abc"}`},
		{"schema violation", `{"file_id": "abc", "corrected_data": {"FIR": 5}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/train/sample", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandleRetrain_InsufficientData(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/train/retrain", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res refine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "insufficient_data", string(res.Status))
	assert.Equal(t, 0, res.SamplesUsed)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubOCR{})
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/upload", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
