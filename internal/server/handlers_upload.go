package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/firdocs/fir-extract/constants"
	"github.com/firdocs/fir-extract/internal/entity"
)

const maxUploadBytes = 50 << 20 // 50 MB

// handleUpload stores the document, runs the OCR collaborators and extracts
// the structured record from page 1. A failing OCR chain degrades to an empty
// text map and a skeleton record; only storage failures fail the request.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, "unsupported file extension")
		return
	}
	format := constants.MapExtToFormat(ext)

	fileID := uuid.NewString()
	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		s.logger.Error("upload.mkdir_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storing upload failed")
		return
	}
	dst := filepath.Join(s.cfg.Storage.UploadDir, fileID+"."+ext)
	out, err := os.Create(dst)
	if err != nil {
		s.logger.Error("upload.create_failed", "path", dst, "error", err)
		writeError(w, http.StatusInternalServerError, "storing upload failed")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		s.logger.Error("upload.write_failed", "path", dst, "error", err)
		writeError(w, http.StatusInternalServerError, "storing upload failed")
		return
	}
	if err := out.Close(); err != nil {
		s.logger.Error("upload.close_failed", "path", dst, "error", err)
		writeError(w, http.StatusInternalServerError, "storing upload failed")
		return
	}

	// OCR is best-effort: a broken scan still yields a skeleton record the
	// reviewer can fill in by hand.
	var pages entity.PageFragments
	if format == constants.FormatPDF {
		pages, err = s.ocr.ProcessPDF(r.Context(), dst)
	} else {
		pages, err = s.ocr.ProcessImage(r.Context(), dst)
	}
	if err != nil {
		s.logger.Warn("upload.ocr_failed", "file_id", fileID, "error", err)
		pages = entity.PageFragments{}
	}

	normalized := s.normalizer.Normalize(pages[1])
	record := s.engine.Extract(normalized)

	s.logger.Info("upload.extracted",
		"file_id", fileID,
		"filename", header.Filename,
		"pages", len(pages),
		"page1_fragments", len(pages[1]),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"file_id":          fileID,
		"filename":         header.Filename,
		"text_data":        pages,
		"extracted_fields": record,
	})
}

// handleGetFile serves a previously uploaded document. The stored extension
// is not part of the id, so try the allowed ones in turn; ServeFile picks
// the content type from the extension.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}
	for _, ext := range []string{"pdf", "png", "jpg", "jpeg"} {
		path := filepath.Join(s.cfg.Storage.UploadDir, id+"."+ext)
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}
	writeError(w, http.StatusNotFound, "file not found")
}
