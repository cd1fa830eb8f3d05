// Package chat builds the persona system prompt and the ordered turn list
// sent to the completion service. Everything here is pure: no I/O, no state.
package chat

import (
	"strings"

	"github.com/rajathpai/avatar-backend/internal/prompts"
)

// Roles for conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Sentinel values for an anonymous visitor who skipped the intro form.
const (
	DefaultVisitorName    = "Guest"
	DefaultVisitorCompany = "Unknown"
)

// Turn is one role-tagged message in a conversation. History is owned by the
// client and replayed in full on every request; the server keeps no session state.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildSystemPrompt renders the persona instruction embedding the resume text,
// the profile summary and the visitor context. The company-personalization
// clause is included only when the visitor's company is known, i.e. non-empty
// and not the "Unknown" sentinel (case-insensitive).
func BuildSystemPrompt(subject, resumeText, summary, visitorName, visitorCompany string) string {
	companyContext := ""
	if visitorCompany != "" && !strings.EqualFold(visitorCompany, DefaultVisitorCompany) {
		companyContext = prompts.Format(prompts.MustGet("chat.json", "company-context"), map[string]string{
			"Subject":        subject,
			"VisitorCompany": visitorCompany,
		})
	}

	summarySection := ""
	if strings.TrimSpace(summary) != "" {
		summarySection = prompts.Format(prompts.MustGet("chat.json", "summary-section"), map[string]string{
			"Summary": summary,
		})
	}

	return prompts.Format(prompts.MustGet("chat.json", "persona"), map[string]string{
		"Subject":        subject,
		"VisitorName":    visitorName,
		"VisitorCompany": visitorCompany,
		"ResumeText":     resumeText,
		"SummarySection": summarySection,
		"CompanyContext": companyContext,
	})
}

// BuildMessages assembles the outbound turn sequence: the system prompt first,
// the history replayed in order, the new user message last. History turns with
// a role other than user or assistant are dropped.
func BuildMessages(systemPrompt string, history []Turn, message string) []Turn {
	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: RoleSystem, Content: systemPrompt})

	for _, t := range history {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			continue
		}
		turns = append(turns, t)
	}

	return append(turns, Turn{Role: RoleUser, Content: message})
}
