package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{45 * time.Second, "0:45"},
		{3*time.Minute + 45*time.Second, "3:45"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-time.Second, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"a very long track title", 10, "a very ..."},
		{"abc", 2, "ab"},
	}
	for _, tc := range cases {
		if got := TruncateString(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	bar := FormatProgress(30*time.Second, time.Minute, 10)
	if len([]rune(bar)) != 10 {
		t.Errorf("len = %d, want 10", len([]rune(bar)))
	}
	if !strings.HasPrefix(bar, "━━━━━") {
		t.Errorf("bar = %q, want half filled", bar)
	}

	empty := FormatProgress(0, 0, 4)
	if empty != "────" {
		t.Errorf("empty bar = %q", empty)
	}
}

func TestTable(t *testing.T) {
	var sb strings.Builder
	tbl := NewTableWriter(&sb, "NAME", "COUNT")
	tbl.Row("one", "1")
	tbl.Row("two", "2")
	tbl.Flush()

	out := sb.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "two") {
		t.Errorf("table output = %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("line count = %d, want 3", lines)
	}
}
