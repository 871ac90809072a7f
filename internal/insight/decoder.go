package insight

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tabletalk/tabletalk/internal/gemini"
)

// Result is the decoded outcome of one inference exchange. ChartSVG is nil
// when the service returned null or omitted the field; it is never coerced
// to an empty string.
type Result struct {
	AnalysisText string
	ChartSVG     *string
}

// DecodeError reports a reply that could not be interpreted. Raw carries the
// offending text for diagnosis and is deliberately kept out of the
// user-facing message.
type DecodeError struct {
	Reason string
	Raw    string
}

func (e *DecodeError) Error() string { return e.Reason }

// Decode extracts the two-field analysis object from a raw service reply:
// first candidate, first content part, fences stripped, then field-by-field
// presence checks. It fails with a *DecodeError, never a panic or a raw
// parse error.
func Decode(raw *gemini.GenerateResponse) (*Result, error) {
	text, ok := firstCandidateText(raw)
	if !ok {
		return nil, &DecodeError{Reason: "no usable response"}
	}
	body := stripFences(text)
	if !gjson.Valid(body) {
		return nil, &DecodeError{Reason: "unparseable AI response", Raw: text}
	}
	parsed := gjson.Parse(body)
	analysis := parsed.Get("analysis_text")
	if analysis.Type != gjson.String {
		return nil, &DecodeError{Reason: "unparseable AI response", Raw: text}
	}
	res := &Result{AnalysisText: analysis.String()}
	if chart := parsed.Get("chart_svg"); chart.Type == gjson.String {
		svg := chart.String()
		res.ChartSVG = &svg
	}
	return res, nil
}

func firstCandidateText(raw *gemini.GenerateResponse) (string, bool) {
	if raw == nil || len(raw.Candidates) == 0 {
		return "", false
	}
	parts := raw.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}

// stripFences removes the markdown code-fence wrapper the service sometimes
// emits around its JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
