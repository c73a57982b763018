package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPrinterStats(t *testing.T) {
	tests := []struct {
		name  string
		stats layoutStats
		want  []string
	}{
		{"fresh", layoutStats{tables: 3, edges: 1}, []string{"3 tables", "1 edge", iconFresh}},
		{"cached", layoutStats{tables: 1, edges: 0, cached: true}, []string{"1 table", "0 edges", iconCached}},
		{"timed", layoutStats{tables: 2, edges: 2, elapsed: 1234 * time.Microsecond}, []string{"2 edges", "1ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer{w: &buf}.stats(tt.stats)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("stats() = %q, want %q", buf.String(), s)
				}
			}
		})
	}
}

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}
	p.success("Layout complete")
	p.warning("%d foreign keys dropped", 2)
	p.file("shop.frame.json")
	p.keyValue("engine", "native")

	got := buf.String()
	for _, s := range []string{iconSuccess + " Layout complete", "2 foreign keys dropped", iconArrow, "shop.frame.json", "engine", "native"} {
		if !strings.Contains(got, s) {
			t.Errorf("output = %q, want %q", got, s)
		}
	}
	if n := strings.Count(got, "\n"); n != 4 {
		t.Errorf("output has %d lines, want 4", n)
	}
}
