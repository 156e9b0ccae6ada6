package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"datalens/adapters/ingest"
	"datalens/internal/errors"
	"datalens/internal/logging"
)

var (
	uploadLog  = logging.For("Upload")
	analyseLog = logging.For("Analyse")
	serverLog  = logging.For("Server")
)

// invalidFormatMessage is the client-visible text for any table-level
// ingestion failure.
const invalidFormatMessage = "Please upload the file in a correct format"

var allowedExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
}

// handleUpload accepts a multipart file, enforcing the extension allowlist
// and the byte ceiling before anything touches the engine.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file part in request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No file selected")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest,
			"Unsupported file type. Please upload CSV, TSV, XLS, or XLSX.")
		return
	}

	name := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(header.Filename))
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		uploadLog.Errorf("Failed to create %s: %v", path, err)
		respondError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		respondError(w, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit")
		return
	}

	s.setCurrentFile(path)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"filename": filepath.Base(header.Filename),
	})
}

// handleAnalyse profiles the last accepted upload. Ingestion failures map
// to a valid=false result; a successful profile is wrapped verbatim.
func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	path := s.getCurrentFile()
	if path == "" {
		respondError(w, http.StatusBadRequest,
			"No file uploaded yet. Please upload a file first.")
		return
	}
	if _, err := os.Stat(path); err != nil {
		respondError(w, http.StatusBadRequest,
			"No file uploaded yet. Please upload a file first.")
		return
	}

	tbl, err := ingest.NewReader(path).Read()
	if err != nil {
		analyseLog.Warnf("Ingestion failed (%s): %v", errors.GetCode(err), err)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"ok": true,
			"result": map[string]interface{}{
				"valid":   false,
				"message": invalidFormatMessage,
			},
		})
		return
	}

	result := s.analyzer.Profile(tbl)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"result": result,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		serverLog.Errorf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"ok":    false,
		"error": message,
	})
}
