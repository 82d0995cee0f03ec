package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"flowcase/internal/domain"
	"flowcase/internal/extractor"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row (5 columns, fixed order).
var Columns = []string{
	"Requirement Location (as per document)",
	"Integration Flow Summary",
	"Related Modules/Functions/Systems",
	"Test Scenario (Integration)",
	"Main/Alternate/Exception Flow",
}

// Writer wraps csv.Writer for exporting scenarios as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 5-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteScenarios converts a batch of scenarios to CSV rows and writes them.
func (w *Writer) WriteScenarios(scenarios []domain.Scenario) error {
	for i := range scenarios {
		if err := w.csv.Write(ScenarioToRow(&scenarios[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// ScenarioToRow converts a single scenario to a 5-element string slice, with
// modules joined by ", ".
func ScenarioToRow(s *domain.Scenario) []string {
	return []string{
		s.RequirementLocation,
		s.FlowSummary,
		extractor.JoinModules(s.Modules),
		s.TestScenario,
		string(s.FlowType),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_document_name}_{YYYY-MM-DD}.csv
func BuildFilename(documentName string) string {
	sanitized := SanitizeFilename(documentName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
