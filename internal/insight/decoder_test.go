package insight

import (
	"errors"
	"testing"

	"github.com/tabletalk/tabletalk/internal/gemini"
)

func replyWith(text string) *gemini.GenerateResponse {
	return &gemini.GenerateResponse{
		Candidates: []gemini.Candidate{{Content: gemini.Content{Parts: []gemini.Part{{Text: text}}}}},
	}
}

func TestDecodeFencedAndUnfencedAgree(t *testing.T) {
	fenced := "```json\n{\"analysis_text\":\"x\",\"chart_svg\":null}\n```"
	bare := `{"analysis_text":"x","chart_svg":null}`

	for _, text := range []string{fenced, bare} {
		res, err := Decode(replyWith(text))
		if err != nil {
			t.Fatalf("Decode(%q): %v", text, err)
		}
		if res.AnalysisText != "x" {
			t.Fatalf("analysis = %q", res.AnalysisText)
		}
		if res.ChartSVG != nil {
			t.Fatalf("chart = %q, want absent", *res.ChartSVG)
		}
	}
}

func TestDecodeBareFenceWithPadding(t *testing.T) {
	res, err := Decode(replyWith("  ```\n {\"analysis_text\":\"padded\"} \n```  "))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.AnalysisText != "padded" {
		t.Fatalf("analysis = %q", res.AnalysisText)
	}
}

func TestDecodePreservesChart(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"></svg>`
	res, err := Decode(replyWith(`{"analysis_text":"with chart","chart_svg":"<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.ChartSVG == nil || *res.ChartSVG != svg {
		t.Fatalf("chart = %v, want %q", res.ChartSVG, svg)
	}
}

func TestDecodeOmittedChartIsAbsent(t *testing.T) {
	res, err := Decode(replyWith(`{"analysis_text":"no chart field"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.ChartSVG != nil {
		t.Fatalf("chart = %q, want absent", *res.ChartSVG)
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(replyWith("```json\n{\"analysis_text\": \n```"))
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %T, want *DecodeError", err)
	}
	if decErr.Reason != "unparseable AI response" {
		t.Fatalf("reason = %q", decErr.Reason)
	}
	if decErr.Raw == "" {
		t.Fatalf("offending raw text not captured")
	}
}

func TestDecodeMissingAnalysisText(t *testing.T) {
	for _, text := range []string{`{"chart_svg":null}`, `{"analysis_text":42}`, `"just a string"`} {
		_, err := Decode(replyWith(text))
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("Decode(%q) error = %T, want *DecodeError", text, err)
		}
		if decErr.Reason != "unparseable AI response" {
			t.Fatalf("reason = %q", decErr.Reason)
		}
	}
}

func TestDecodeNoUsableResponse(t *testing.T) {
	cases := []*gemini.GenerateResponse{
		nil,
		{},
		{Candidates: []gemini.Candidate{{}}},
		{Candidates: []gemini.Candidate{{Content: gemini.Content{Parts: []gemini.Part{{Text: ""}}}}}},
	}
	for i, raw := range cases {
		_, err := Decode(raw)
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("case %d: error = %T, want *DecodeError", i, err)
		}
		if decErr.Reason != "no usable response" {
			t.Fatalf("case %d: reason = %q", i, decErr.Reason)
		}
	}
}

func TestDecodeErrorMessagesDiffer(t *testing.T) {
	_, missing := Decode(&gemini.GenerateResponse{})
	_, garbled := Decode(replyWith("not json at all {"))
	if missing.Error() == garbled.Error() {
		t.Fatalf("expected distinct messages, both = %q", missing.Error())
	}
}
