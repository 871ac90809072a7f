package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tabletalk/tabletalk/internal/dataset"
	"github.com/tabletalk/tabletalk/internal/gemini"
)

// MaxSampleRows bounds how much of the dataset is embedded in one request.
// The sample is representative context, never the full dataset.
const MaxSampleRows = 10

// ValidationError reports input that must not be submitted to the service.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Reason }

// Builder derives a bounded, schema-aware request from a question and a
// dataset, and declares the two-field response contract the decoder relies on.
type Builder struct {
	sampleRows      int
	temperature     float64
	maxOutputTokens int
}

// NewBuilder clamps sampleRows into [1, MaxSampleRows]; zero selects the cap.
func NewBuilder(sampleRows int, temperature float64, maxOutputTokens int) *Builder {
	if sampleRows <= 0 || sampleRows > MaxSampleRows {
		sampleRows = MaxSampleRows
	}
	return &Builder{
		sampleRows:      sampleRows,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}
}

// Build produces the request for one exchange. It refuses an empty or
// whitespace-only question and a dataset with zero rows; the caller must not
// submit anything in that case.
func (b *Builder) Build(question string, ds *dataset.Dataset) (gemini.GenerateRequest, error) {
	if strings.TrimSpace(question) == "" {
		return gemini.GenerateRequest{}, &ValidationError{Reason: "question is empty"}
	}
	if ds == nil || len(ds.Rows) == 0 {
		return gemini.GenerateRequest{}, &ValidationError{Reason: "dataset has no rows"}
	}
	n := b.sampleRows
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}

	var sb strings.Builder
	sb.WriteString("You are a data analyst. Answer the question using only the dataset sample below.\n\n")
	sb.WriteString("[QUESTION]\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\n[COLUMNS]\n")
	sb.WriteString(strings.Join(ds.Columns, ", "))
	sb.WriteString("\n\n[COLUMN PROFILE]\n")
	for _, p := range ds.Profile(n) {
		fmt.Fprintf(&sb, "- %s: numeric %d, text %d, empty %d\n", p.Name, p.Numeric, p.Text, p.Empty)
	}
	fmt.Fprintf(&sb, "\n[SAMPLE ROWS] (first %d of %d)\n", n, len(ds.Rows))
	for _, row := range ds.Rows[:n] {
		sb.WriteString(encodeRow(ds.Columns, row))
		sb.WriteByte('\n')
	}
	sb.WriteString("\nRespond with a single JSON object with exactly two fields: ")
	sb.WriteString(`"analysis_text" (string, required) and "chart_svg" (a complete SVG document as a string, or null when no chart is useful). No prose outside the JSON object.`)

	temp := b.temperature
	return gemini.GenerateRequest{
		Contents: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: sb.String()}}}},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:      &temp,
			MaxOutputTokens:  b.maxOutputTokens,
			ResponseMIMEType: "application/json",
			ResponseSchema:   ResponseContract(),
		},
	}, nil
}

// ResponseContract declares the two-field object the decoder relies on.
// chart_svg is declared as a plain string; replies still carry null for it
// when no chart is produced, so the decoder must not assume non-null.
func ResponseContract() *gemini.Schema {
	return &gemini.Schema{
		Type: "OBJECT",
		Properties: map[string]*gemini.Schema{
			"analysis_text": {Type: "STRING"},
			"chart_svg":     {Type: "STRING"},
		},
		Required: []string{"analysis_text"},
	}
}

// encodeRow serializes one row as a JSON object with keys in schema order
// (map marshaling would sort them alphabetically).
func encodeRow(columns []string, row dataset.Row) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		k, _ := json.Marshal(name)
		v, _ := json.Marshal(row[name])
		sb.Write(k)
		sb.WriteByte(':')
		sb.Write(v)
	}
	sb.WriteByte('}')
	return sb.String()
}
