// Package document loads the subject's resume PDF and profile summary once at
// startup. The result is immutable for the process lifetime and safe for
// unsynchronized concurrent reads.
package document

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

// Profile holds the extracted resume text and profile summary for the subject
// the avatar speaks as.
type Profile struct {
	SubjectName string
	ResumeText  string
	Summary     string
}

// Loader reads the resume and summary files exactly once. Subsequent Load
// calls return the cached Profile without touching the filesystem again.
type Loader struct {
	subjectName string
	resumePath  string
	summaryPath string

	once    sync.Once
	profile *Profile
}

// NewLoader creates a loader for the given subject and file paths.
func NewLoader(subjectName, resumePath, summaryPath string) *Loader {
	return &Loader{
		subjectName: subjectName,
		resumePath:  resumePath,
		summaryPath: summaryPath,
	}
}

// Load extracts the resume text and reads the summary file. Any failure
// (missing file, unparseable PDF) is logged and degrades to empty text;
// Load never returns an error and never re-reads the files.
func (l *Loader) Load() *Profile {
	l.once.Do(func() {
		l.profile = &Profile{
			SubjectName: l.subjectName,
			ResumeText:  extractPDFText(l.resumePath),
			Summary:     readSummary(l.summaryPath),
		}
	})
	return l.profile
}

// extractPDFText concatenates the plain text of every page in the PDF.
func extractPDFText(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("Could not read resume PDF %s: %v", path, err)
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Could not extract text from page %d of %s: %v", i, path, err)
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func readSummary(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Could not read summary file %s: %v", path, err)
		return ""
	}
	return string(data)
}
