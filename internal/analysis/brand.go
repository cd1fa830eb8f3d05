package analysis

import "strings"

// DefaultBrandColor is returned when the company is not in the known set.
const DefaultBrandColor = "#4285F4"

// companyColors maps known company names to their brand color, used by the
// frontend to theme the chat widget for the visitor's company.
var companyColors = map[string]string{
	"google":    "#4285F4",
	"amazon":    "#FF9900",
	"microsoft": "#00A4EF",
	"apple":     "#000000",
	"meta":      "#0A66C2",
	"tesla":     "#E82127",
	"macquarie": "#000000",
	"cisco":     "#00BCEB",
	"dell":      "#007DB8",
	"jp morgan": "#117DBA",
}

// CompanyColor returns the brand color for a company if known. Matching is
// case-insensitive substring, so "Google Cloud" maps to the Google color.
func CompanyColor(companyName string) string {
	lower := strings.ToLower(companyName)
	for key, color := range companyColors {
		if strings.Contains(lower, key) {
			return color
		}
	}
	return DefaultBrandColor
}
