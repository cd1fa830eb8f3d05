package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rajathpai/avatar-backend/internal/document"
)

// Stats summarizes the resume with purely local text analysis. No completion
// call is made; everything is derived from the cached resume text.
type Stats struct {
	YearsExperience int `json:"years_experience"`
	ProjectsCount   int `json:"projects_count"`
	SkillsCount     int `json:"skills_count"`
	Certifications  int `json:"certifications"`
}

// Presentation floors. Low computed values are clamped up to these so a sparse
// resume (or a failed PDF extraction) does not render an empty-looking profile.
// These are display minimums, not measurements.
const (
	minYearsExperience = 2
	minProjectsCount   = 5
	minSkillsCount     = 8

	// maxYearSpan caps the year-range heuristic; resumes citing very old
	// dates (e.g. a 1998 publication) would otherwise report absurd spans.
	maxYearSpan = 40
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// skillKeywords is the fixed vocabulary counted for skills_count. Presence is
// what matters, not frequency.
var skillKeywords = []string{
	"python", "django", "go", "java", "javascript", "typescript", "react",
	"sql", "postgresql", "mongodb", "redis", "docker", "kubernetes",
	"aws", "gcp", "azure", "rest", "graphql", "git", "linux",
	"machine learning", "deep learning", "llm", "nlp", "tensorflow", "pytorch",
}

// ComputeStats derives headline numbers from the resume text and clamps low
// results up to the presentation floors.
func ComputeStats(profile *document.Profile) Stats {
	text := strings.ToLower(profile.ResumeText)

	stats := Stats{
		YearsExperience: yearSpan(profile.ResumeText),
		ProjectsCount:   strings.Count(text, "project"),
		SkillsCount:     countSkills(text),
		Certifications:  strings.Count(text, "certif"),
	}

	if stats.YearsExperience < minYearsExperience {
		stats.YearsExperience = minYearsExperience
	}
	if stats.ProjectsCount < minProjectsCount {
		stats.ProjectsCount = minProjectsCount
	}
	if stats.SkillsCount < minSkillsCount {
		stats.SkillsCount = minSkillsCount
	}

	return stats
}

// yearSpan estimates years of experience as the spread between the earliest
// and latest four-digit year mentioned in the resume.
func yearSpan(text string) int {
	matches := yearPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0
	}

	minYear, maxYear := 0, 0
	for _, m := range matches {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	span := maxYear - minYear
	if span > maxYearSpan {
		span = maxYearSpan
	}
	return span
}

func countSkills(lowerText string) int {
	count := 0
	for _, keyword := range skillKeywords {
		if strings.Contains(lowerText, keyword) {
			count++
		}
	}
	return count
}
