package dataset

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseWellFormed(t *testing.T) {
	raw := "region,revenue\nEast,100\nWest,200\nNorth,50\n"
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !equalStrings(ds.Columns, []string{"region", "revenue"}) {
		t.Fatalf("columns = %#v", ds.Columns)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(ds.Rows))
	}
	if ds.Rows[0]["region"] != "East" || ds.Rows[0]["revenue"] != "100" {
		t.Fatalf("first row = %#v", ds.Rows[0])
	}
	if ds.Rows[2]["region"] != "North" {
		t.Fatalf("last row = %#v", ds.Rows[2])
	}
}

func TestParseTrimsFieldsAndSkipsBlankLines(t *testing.T) {
	raw := "\n  \n region , revenue \n East , 100 \n\nWest,200\n  \n"
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !equalStrings(ds.Columns, []string{"region", "revenue"}) {
		t.Fatalf("columns = %#v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}
	if ds.Rows[0]["region"] != "East" || ds.Rows[0]["revenue"] != "100" {
		t.Fatalf("first row not trimmed: %#v", ds.Rows[0])
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	raw := "region,revenue\r\nEast,100\r\n"
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.Rows[0]["revenue"] != "100" {
		t.Fatalf("crlf row = %#v", ds.Rows[0])
	}
}

func TestParseDropsMismatchedRows(t *testing.T) {
	raw := strings.Join([]string{
		"a,b,c",
		"1,2,3",
		"too,few",
		"way,too,many,fields",
		"4,5,6",
	}, "\n")
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (mismatched lines dropped)", len(ds.Rows))
	}
	if ds.Rows[1]["a"] != "4" || ds.Rows[1]["c"] != "6" {
		t.Fatalf("surviving row = %#v", ds.Rows[1])
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "   \n \t \n"} {
		ds, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if len(ds.Columns) != 0 || len(ds.Rows) != 0 {
			t.Fatalf("Parse(%q) = %#v, want empty dataset", raw, ds)
		}
	}
}

func TestParseHeaderOnly(t *testing.T) {
	ds, err := Parse("region,revenue\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ds.Columns) != 2 || len(ds.Rows) != 0 {
		t.Fatalf("header-only dataset = %#v", ds)
	}
	if !ds.Empty() {
		t.Fatalf("Empty() = false for header-only dataset")
	}
}

func TestParseRejectsDuplicateHeader(t *testing.T) {
	_, err := Parse("region,region\nEast,West\n")
	if err == nil {
		t.Fatalf("expected error for duplicate header")
	}
	var dup *DuplicateColumnError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T, want *DuplicateColumnError", err)
	}
	if dup.Name != "region" {
		t.Fatalf("duplicate name = %q", dup.Name)
	}
}

func TestHead(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,name\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "%d,row%d\n", i, i)
	}
	ds, err := Parse(sb.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	head := ds.Head(3)
	if len(head) != 3 {
		t.Fatalf("head len = %d, want 3", len(head))
	}
	if !equalStrings(head[0], []string{"0", "row0"}) {
		t.Fatalf("head[0] = %#v", head[0])
	}
	if got := ds.Head(100); len(got) != 5 {
		t.Fatalf("oversized head len = %d, want 5", len(got))
	}
}

func TestProfile(t *testing.T) {
	raw := "name,score,note\nalice,10,hi\nbob,20,\ncarol,x,there\n"
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prof := ds.Profile(0)
	if len(prof) != 3 {
		t.Fatalf("profile len = %d", len(prof))
	}
	score := prof[1]
	if score.Name != "score" || score.Numeric != 2 || score.Text != 1 || score.Empty != 0 {
		t.Fatalf("score profile = %+v", score)
	}
	note := prof[2]
	if note.Text != 2 || note.Empty != 1 {
		t.Fatalf("note profile = %+v", note)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
