package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/config"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// stubCompleter satisfies llm.Completer with a canned response and records
// what the handler asked for.
type stubCompleter struct {
	content    string
	err        error
	lastPrompt models.PromptPair
	lastOpts   models.CompletionOptions
}

func (s *stubCompleter) Complete(ctx context.Context, prompt models.PromptPair, opts models.CompletionOptions) (string, error) {
	s.lastPrompt = prompt
	s.lastOpts = opts
	return s.content, s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.MaxSize = 10 << 20
	cfg.LLM.MaxTokens = 4096
	cfg.LLM.StructuredTemp = 0.2
	cfg.LLM.ProseTemp = 0.7
	cfg.LLM.Timeout = 30 * time.Second
	return cfg
}

// postAnalyzeForm performs a multipart POST against the analyze handler.
func postAnalyzeForm(t *testing.T, completer *stubCompleter, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AnalyzeResumeHandler(testConfig(), completer)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// buildDocx assembles a minimal OOXML document in memory, one paragraph per
// entry.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(body.String())); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize zip: %v", err)
	}
	return buf.Bytes()
}

// postAnalyzeUpload performs a multipart POST carrying a document upload,
// buffered through tempDir so tests can check cleanup.
func postAnalyzeUpload(t *testing.T, completer *stubCompleter, tempDir string, fileName string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(fileData); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	cfg := testConfig()
	cfg.Upload.TempDir = tempDir

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AnalyzeResumeHandler(cfg, completer)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func assertTempDirEmpty(t *testing.T, tempDir string) {
	t.Helper()

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir still holds %d file(s) after the request", len(entries))
	}
}

const validAnalysisJSON = `{"score": 85, "strengths": ["clear metrics"], "weaknesses": ["no summary"], "recommendations": ["add a summary"], "formattingFeedback": "clean", "overallAssessment": "solid"}`

func TestAnalyzeFileUpload(t *testing.T) {
	tempDir := t.TempDir()
	stub := &stubCompleter{content: validAnalysisJSON}
	doc := buildDocx(t, "Jane Doe", "Senior Engineer at Acme")

	rec := postAnalyzeUpload(t, stub, tempDir, "resume.docx", doc)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if !strings.Contains(resp.ExtractedText, "Jane Doe") {
		t.Errorf("extractedText missing document content: %q", resp.ExtractedText)
	}
	// The extracted text, not the raw bytes, feeds the prompt
	if !strings.Contains(stub.lastPrompt.User, "Senior Engineer at Acme") {
		t.Errorf("prompt missing extracted text: %q", stub.lastPrompt.User)
	}

	assertTempDirEmpty(t, tempDir)
}

func TestAnalyzeFileUploadCleansUpOnUpstreamFailure(t *testing.T) {
	tempDir := t.TempDir()
	stub := &stubCompleter{err: utils.NewUpstreamError("provider unavailable", nil)}
	doc := buildDocx(t, "Jane Doe")

	rec := postAnalyzeUpload(t, stub, tempDir, "resume.docx", doc)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	assertTempDirEmpty(t, tempDir)
}

func TestAnalyzeFileUploadMalformedDocument(t *testing.T) {
	tempDir := t.TempDir()
	stub := &stubCompleter{content: validAnalysisJSON}

	rec := postAnalyzeUpload(t, stub, tempDir, "broken.pdf", []byte("%PDF-1.7\nnot a real pdf"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	assertTempDirEmpty(t, tempDir)
}

func TestAnalyzeResumeDataStructured(t *testing.T) {
	stub := &stubCompleter{content: validAnalysisJSON}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData": `{"name": "Jane Doe", "skills": ["Go"]}`,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Kind != models.KindAnalyze {
		t.Errorf("Kind = %q, want analyze", resp.Kind)
	}

	analysis, ok := resp.Analysis.(map[string]interface{})
	if !ok {
		t.Fatalf("Analysis is %T, want object", resp.Analysis)
	}
	if analysis["score"] != float64(85) {
		t.Errorf("score = %v, want 85", analysis["score"])
	}
	if resp.ExtractedText == "" {
		t.Error("extractedText should carry the normalized input")
	}

	// Structured analysis runs at low temperature with JSON mode on
	if !stub.lastOpts.JSONMode {
		t.Error("structured kind should request JSON mode")
	}
	if stub.lastOpts.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", stub.lastOpts.Temperature)
	}
}

func TestAnalyzeFreeFormKind(t *testing.T) {
	stub := &stubCompleter{content: "Here is a detailed written report on the resume."}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData":   `{"name": "Jane Doe"}`,
		"analysisType": "detailed",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	text, ok := resp.Analysis.(string)
	if !ok {
		t.Fatalf("free-form analysis is %T, want string", resp.Analysis)
	}
	if text != stub.content {
		t.Errorf("analysis = %q", text)
	}
	if stub.lastOpts.JSONMode {
		t.Error("free-form kind should not request JSON mode")
	}
	if stub.lastOpts.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", stub.lastOpts.Temperature)
	}
}

func TestAnalyzeUnknownType(t *testing.T) {
	stub := &stubCompleter{content: validAnalysisJSON}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData":   `{"name": "Jane Doe"}`,
		"analysisType": "sentiment",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("error responses must not report success")
	}
}

func TestAnalyzeNoInput(t *testing.T) {
	stub := &stubCompleter{content: validAnalysisJSON}

	rec := postAnalyzeForm(t, stub, map[string]string{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeInvalidResumeDataJSON(t *testing.T) {
	stub := &stubCompleter{content: validAnalysisJSON}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData": "not json at all",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	stub := &stubCompleter{err: utils.NewUpstreamError("provider unavailable", nil)}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData": `{"name": "Jane Doe"}`,
	})

	// Analysis has no fallback: upstream failures surface to the caller.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("error responses must not report success")
	}
}

func TestAnalyzeMalformedStructuredResponse(t *testing.T) {
	stub := &stubCompleter{content: "the resume looks fine to me"}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData": `{"name": "Jane Doe"}`,
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestAnalyzeJobMatchWithoutJobDescription(t *testing.T) {
	stub := &stubCompleter{content: "match report"}

	rec := postAnalyzeForm(t, stub, map[string]string{
		"resumeData":   `{"name": "Jane Doe"}`,
		"analysisType": "job-match",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
