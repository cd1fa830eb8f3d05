package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/rajathpai/avatar-backend/internal/analysis"
	"github.com/rajathpai/avatar-backend/internal/chat"
)

// ChatRequest is the body for POST /api/chat. History is the full prior
// conversation, replayed by the client on every request.
type ChatRequest struct {
	Message        string      `json:"message" validate:"required"`
	History        []chat.Turn `json:"history"`
	VisitorName    string      `json:"visitor_name"`
	VisitorCompany string      `json:"visitor_company"`
}

// ChatResponse is the blocking-mode response for POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// CompanyFitRequest is the body for POST /api/analyze-company-fit.
type CompanyFitRequest struct {
	CompanyName string `json:"company_name"`
	VisitorName string `json:"visitor_name"`
}

// JobAnalysisRequest is the body for POST /api/analyze-job.
type JobAnalysisRequest struct {
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
}

// AnalysisResponse wraps the text of an analysis result.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// ProjectsResponse wraps the extracted project list.
type ProjectsResponse struct {
	Projects []analysis.Project `json:"projects"`
}

// handleChat relays one conversation turn to the completion service. The
// response is a single JSON object, or an SSE frame stream when the server
// runs in streaming mode.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	if strings.TrimSpace(req.VisitorName) == "" {
		req.VisitorName = chat.DefaultVisitorName
	}
	if strings.TrimSpace(req.VisitorCompany) == "" {
		req.VisitorCompany = chat.DefaultVisitorCompany
	}

	systemPrompt := chat.BuildSystemPrompt(
		s.profile.SubjectName, s.profile.ResumeText, s.profile.Summary,
		req.VisitorName, req.VisitorCompany,
	)
	turns := chat.BuildMessages(systemPrompt, req.History, req.Message)

	if s.cfg.StreamChat {
		s.streamChat(w, r, turns)
		return
	}

	text, err := s.llm.Complete(r.Context(), turns)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ChatResponse{Response: text})
}

// streamChat forwards completion frames to the client as SSE. A consumer
// disconnect mid-stream abandons the relay silently; upstream failures are
// already folded into the terminal frame by the relay.
func (s *Server) streamChat(w http.ResponseWriter, r *http.Request, turns []chat.Turn) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.llm.CompleteStream(r.Context(), turns, sse.WriteFrame); err != nil {
		log.Printf("Chat stream ended early: %v", err)
	}
}

// handleCompanyFit analyzes why the subject fits the visitor's company.
func (s *Server) handleCompanyFit(w http.ResponseWriter, r *http.Request) {
	var req CompanyFitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := analysis.CompanyFit(r.Context(), s.llm, s.profile, req.CompanyName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalysisResponse{Analysis: result})
}

// handleJobMatch analyzes the subject against a pasted job description.
func (s *Server) handleJobMatch(w http.ResponseWriter, r *http.Request) {
	var req JobAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := analysis.JobMatch(r.Context(), s.llm, s.profile, req.JobDescription, req.CompanyName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalysisResponse{Analysis: result})
}

// handleStats returns locally computed resume stats; no completion call.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, analysis.ComputeStats(s.profile))
}

// handleProjects returns the extracted (or default) project list.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects := analysis.Projects(r.Context(), s.llm, s.profile)
	s.jsonResponse(w, http.StatusOK, ProjectsResponse{Projects: projects})
}

// handleCompanyColor returns the brand color used to theme the widget.
func (s *Server) handleCompanyColor(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	s.jsonResponse(w, http.StatusOK, map[string]string{"color": analysis.CompanyColor(company)})
}
