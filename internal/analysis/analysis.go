// Package analysis implements the one-shot resume analysis endpoints:
// company fit, job-description match, project extraction and local stats.
package analysis

import (
	"context"
	"strings"

	"github.com/rajathpai/avatar-backend/internal/chat"
	"github.com/rajathpai/avatar-backend/internal/document"
	"github.com/rajathpai/avatar-backend/internal/llm"
	"github.com/rajathpai/avatar-backend/internal/prompts"
)

// Guidance strings returned instead of calling the completion service when a
// required field is missing. They go back with HTTP 200; a missing field is
// user guidance, not an error.
const (
	CompanyFitGuidance = "Please enter your company name to see a personalized analysis."
	JobMatchGuidance   = "⚠️ Please paste a job description to analyze."
)

// CompanyFit analyzes why the subject fits the given company. Empty or
// sentinel company names short-circuit with CompanyFitGuidance.
func CompanyFit(ctx context.Context, client llm.Client, profile *document.Profile, companyName string) (string, error) {
	trimmed := strings.TrimSpace(companyName)
	if trimmed == "" || strings.EqualFold(trimmed, chat.DefaultVisitorCompany) {
		return CompanyFitGuidance, nil
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "company-fit"), map[string]string{
		"Subject":     profile.SubjectName,
		"ResumeText":  profile.ResumeText,
		"CompanyName": trimmed,
	})

	return client.Complete(ctx, []chat.Turn{{Role: chat.RoleUser, Content: prompt}})
}

// JobMatch analyzes how well the subject matches a job description. A blank
// description short-circuits with JobMatchGuidance.
func JobMatch(ctx context.Context, client llm.Client, profile *document.Profile, jobDescription, companyName string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return JobMatchGuidance, nil
	}
	if strings.TrimSpace(companyName) == "" {
		companyName = chat.DefaultVisitorCompany
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "job-match"), map[string]string{
		"Subject":        profile.SubjectName,
		"ResumeText":     profile.ResumeText,
		"JobDescription": jobDescription,
		"CompanyName":    companyName,
	})

	return client.Complete(ctx, []chat.Turn{{Role: chat.RoleUser, Content: prompt}})
}
