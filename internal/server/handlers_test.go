package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajathpai/avatar-backend/internal/analysis"
	"github.com/rajathpai/avatar-backend/internal/chat"
	"github.com/rajathpai/avatar-backend/internal/config"
	"github.com/rajathpai/avatar-backend/internal/document"
	"github.com/rajathpai/avatar-backend/internal/llm"
)

// stubLLM implements llm.Client for handler tests.
type stubLLM struct {
	calls    int
	turns    []chat.Turn
	response string
	err      error
	frames   []llm.Frame
}

func (m *stubLLM) Complete(_ context.Context, turns []chat.Turn) (string, error) {
	m.calls++
	m.turns = turns
	return m.response, m.err
}

func (m *stubLLM) CompleteStream(_ context.Context, turns []chat.Turn, onFrame func(llm.Frame) error) error {
	m.calls++
	m.turns = turns
	for _, f := range m.frames {
		if err := onFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (m *stubLLM) Close() error { return nil }

func newTestServer(stub *stubLLM, streaming bool) *Server {
	cfg := config.Defaults()
	cfg.APIKey = "test-key"
	cfg.StreamChat = streaming

	profile := &document.Profile{
		SubjectName: "Rajath",
		ResumeText:  "Engineer. Django, Go, AI. 2016 - 2024.",
		Summary:     "AI engineer.",
	}
	return New(cfg, profile, stub)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func getPath(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat_Blocking(t *testing.T) {
	stub := &stubLLM{response: "Hello John!"}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/chat", ChatRequest{
		Message:        "Tell me about yourself",
		History:        []chat.Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
		VisitorName:    "John",
		VisitorCompany: "Macquarie",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello John!", resp.Response)

	// system + 2 history + new message
	require.Len(t, stub.turns, 4)
	assert.Equal(t, chat.RoleSystem, stub.turns[0].Role)
	assert.Contains(t, stub.turns[0].Content, "The visitor is from Macquarie.")
	assert.Equal(t, "Tell me about yourself", stub.turns[3].Content)
}

func TestHandleChat_MissingMessage(t *testing.T) {
	stub := &stubLLM{}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/chat", ChatRequest{Message: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.calls)
}

func TestHandleChat_DefaultsVisitorContext(t *testing.T) {
	stub := &stubLLM{response: "Hi!"}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/chat", ChatRequest{Message: "hi"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, stub.turns[0].Content, "speaking with Guest from Unknown")
	assert.NotContains(t, stub.turns[0].Content, "The visitor is from")
}

func TestHandleChat_UpstreamError(t *testing.T) {
	stub := &stubLLM{err: &llm.UpstreamError{Message: "quota exceeded"}}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/chat", ChatRequest{Message: "hi"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}

func TestHandleChat_Streaming(t *testing.T) {
	stub := &stubLLM{frames: []llm.Frame{
		{Chunk: "Hel"},
		{Chunk: "lo"},
		{Done: true, FullResponse: "Hello"},
	}}
	s := newTestServer(stub, true)

	rec := postJSON(t, s, "/api/chat", ChatRequest{Message: "hi"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := strings.Split(strings.TrimSpace(rec.Body.String()), "\n\n")
	require.Len(t, events, 3)
	assert.Equal(t, `data: {"chunk":"Hel","done":false}`, events[0])
	assert.Equal(t, `data: {"chunk":"lo","done":false}`, events[1])
	assert.Equal(t, `data: {"chunk":"","done":true,"full_response":"Hello"}`, events[2])
}

func TestHandleCompanyFit_ShortCircuit(t *testing.T) {
	stub := &stubLLM{response: "should not appear"}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/analyze-company-fit", CompanyFitRequest{CompanyName: "unknown"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, analysis.CompanyFitGuidance, resp.Analysis)
	assert.Zero(t, stub.calls)
}

func TestHandleCompanyFit_Analysis(t *testing.T) {
	stub := &stubLLM{response: "Strong fit."}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/analyze-company-fit", CompanyFitRequest{CompanyName: "Acme"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Strong fit.", resp.Analysis)
	assert.Equal(t, 1, stub.calls)
}

func TestHandleJobMatch_ShortCircuit(t *testing.T) {
	stub := &stubLLM{}
	s := newTestServer(stub, false)

	rec := postJSON(t, s, "/api/analyze-job", JobAnalysisRequest{JobDescription: "  "})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, analysis.JobMatchGuidance, resp.Analysis)
	assert.Zero(t, stub.calls)
}

func TestHandleStats(t *testing.T) {
	s := newTestServer(&stubLLM{}, false)

	rec := getPath(s, "/api/stats")

	require.Equal(t, http.StatusOK, rec.Code)

	var stats analysis.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 8, stats.YearsExperience)
	assert.GreaterOrEqual(t, stats.ProjectsCount, 5)
}

func TestHandleProjects_FallbackOnBadOutput(t *testing.T) {
	stub := &stubLLM{response: "not json"}
	s := newTestServer(stub, false)

	rec := getPath(s, "/api/projects")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProjectsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, analysis.DefaultProjects(), resp.Projects)
}

func TestHandleCompanyColor(t *testing.T) {
	s := newTestServer(&stubLLM{}, false)

	rec := getPath(s, "/api/company-color?company=Tesla%20Motors")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#E82127")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&stubLLM{}, false)

	rec := getPath(s, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
