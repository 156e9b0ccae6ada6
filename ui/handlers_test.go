package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
	}
	server, err := NewServer(cfg)
	require.NoError(t, err)
	return server
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, server *Server, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestUploadThenAnalyse(t *testing.T) {
	server := newTestServer(t)

	rec := doUpload(t, server, "people.csv",
		"id,salary,status\n1,50000,Active\n2,61000,Inactive\n3,47500,Active\n4,52000,Pending\n")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, "people.csv", payload["filename"])

	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyse", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload = decode(t, rec)
	assert.Equal(t, true, payload["ok"])
	result, ok := payload["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, result["valid"])
	assert.Equal(t, float64(4), result["rows"])
	assert.Equal(t, float64(3), result["columns"])
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	server := newTestServer(t)

	rec := doUpload(t, server, "notes.txt", "hello")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, false, payload["ok"])
}

func TestUpload_NoFilePart(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString("x"))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyse_BeforeUpload(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyse", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, false, payload["ok"])
}

func TestAnalyse_CorruptFileMapsToInvalidResult(t *testing.T) {
	server := newTestServer(t)

	rec := doUpload(t, server, "broken.xlsx", "not really a workbook")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyse", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	result, ok := payload["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, result["valid"])
	assert.Equal(t, invalidFormatMessage, result["message"])
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}
