package cli

import (
	"strings"
	"testing"
)

func TestRenderTableContainsCells(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Ledger",
		Headers: []string{"Month", "Revenue", "Net"},
		Rows: [][]string{
			{"1", "1,000.00", "-5,200.00"},
			{"---"},
			{"TOTAL", "1,000.00", "-5,200.00"},
		},
	})

	for _, want := range []string{"Ledger", "Month", "Revenue", "1,000.00", "-5,200.00", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable output missing %q", want)
		}
	}
	for _, corner := range []string{"╭", "╮", "╰", "╯"} {
		if !strings.Contains(out, corner) {
			t.Errorf("RenderTable output missing corner %q", corner)
		}
	}
}

func TestRenderTableSeparatorRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "y"}, {"---"}, {"z", "w"}},
	})

	// header rule + separator row: at least two ├ rules
	if strings.Count(out, "├") < 2 {
		t.Errorf("expected a separator rule for the --- row, got:\n%s", out)
	}
	if strings.Contains(out, "---") {
		t.Errorf("--- marker leaked into rendered output:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("empty table rendered %q, want empty string", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	out := RenderSparkline([]float64{0, 1, 2, 3})
	runes := []rune(out)
	if len(runes) != 4 {
		t.Fatalf("sparkline length = %d, want 4", len(runes))
	}
	if runes[0] != '▁' {
		t.Errorf("minimum rendered as %q, want ▁", runes[0])
	}
	if runes[3] != '█' {
		t.Errorf("maximum rendered as %q, want █", runes[3])
	}
}

func TestRenderSparklineNegatives(t *testing.T) {
	out := RenderSparkline([]float64{-100, 0, 100})
	runes := []rune(out)
	if len(runes) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(runes))
	}
	if runes[0] != '▁' || runes[2] != '█' {
		t.Errorf("negative series rendered %q, want lowest then highest block", out)
	}
}

func TestRenderSparklineFlat(t *testing.T) {
	out := RenderSparkline([]float64{5, 5, 5})
	runes := []rune(out)
	if len(runes) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(runes))
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			t.Errorf("flat series rendered unevenly: %q", out)
		}
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render empty string")
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar(50, 100, 10); len([]rune(got)) != 5 {
		t.Errorf("half bar = %q, want 5 cells", got)
	}
	if got := RenderHorizontalBar(-50, 100, 10); len([]rune(got)) != 5 {
		t.Errorf("negative half bar = %q, want 5 cells", got)
	}
	if got := RenderHorizontalBar(1, 1000, 10); len([]rune(got)) != 1 {
		t.Errorf("tiny nonzero value = %q, want 1 cell", got)
	}
	if got := RenderHorizontalBar(0, 100, 10); got != "" {
		t.Errorf("zero value = %q, want empty", got)
	}
	if got := RenderHorizontalBar(50, 0, 10); got != "" {
		t.Errorf("zero max = %q, want empty", got)
	}
}
