package analysis

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rajathpai/avatar-backend/internal/chat"
	"github.com/rajathpai/avatar-backend/internal/document"
	"github.com/rajathpai/avatar-backend/internal/llm"
	"github.com/rajathpai/avatar-backend/internal/prompts"
)

// Project is one portfolio entry extracted from the resume.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

//go:embed projects_schema.json
var projectsSchema []byte

// Projects extracts the subject's notable projects via the completion service.
// Any failure along the way (upstream error, schema violation, malformed JSON)
// is logged and replaced with the fixed default list; the caller always gets
// something to render.
func Projects(ctx context.Context, client llm.Client, profile *document.Profile) []Project {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "projects"), map[string]string{
		"Subject":    profile.SubjectName,
		"ResumeText": profile.ResumeText,
	})

	text, err := client.Complete(ctx, []chat.Turn{{Role: chat.RoleUser, Content: prompt}})
	if err != nil {
		log.Printf("Project extraction failed, using defaults: %v", err)
		return DefaultProjects()
	}

	projects, err := parseProjects(llm.CleanJSONBlock(text))
	if err != nil {
		log.Printf("Project extraction returned unusable JSON, using defaults: %v", err)
		return DefaultProjects()
	}
	return projects
}

// parseProjects validates the model output against the embedded JSON Schema
// before unmarshaling it.
func parseProjects(jsonText string) ([]Project, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(projectsSchema),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("schema violations: %v", result.Errors())
	}

	var payload struct {
		Projects []Project `json:"projects"`
	}
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse projects JSON: %w", err)
	}
	if len(payload.Projects) == 0 {
		return nil, fmt.Errorf("no projects in response")
	}

	return payload.Projects, nil
}

// DefaultProjects is the fixed fallback list shown when extraction fails.
func DefaultProjects() []Project {
	return []Project{
		{
			Name:         "AI Avatar Chatbot",
			Description:  "Personal-branding chatbot that answers career questions grounded in a resume.",
			Technologies: []string{"Go", "Gemini API", "Server-Sent Events"},
		},
		{
			Name:         "Django REST Platform",
			Description:  "Production REST backend serving authenticated business workflows.",
			Technologies: []string{"Python", "Django", "PostgreSQL"},
		},
		{
			Name:         "Document Intelligence Pipeline",
			Description:  "Pipeline extracting structured insights from unstructured documents with LLMs.",
			Technologies: []string{"Python", "LLMs", "PDF processing"},
		},
	}
}
