package ui

import (
	"strings"
	"testing"
)

func TestSymbols(t *testing.T) {
	if got := Success("saved"); got != "✓ saved" {
		t.Errorf("Success = %q", got)
	}
	if got := Errorf("bad %s", "input"); got != "✗ bad input" {
		t.Errorf("Errorf = %q", got)
	}
	if got := Error("failed"); got != "✗ failed" {
		t.Errorf("Error = %q", got)
	}
	if got := Warning("careful"); got != "⚠ careful" {
		t.Errorf("Warning = %q", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "error", "errors"); got != "(1 error)" {
		t.Errorf("got %q", got)
	}
	if got := Count(3, "error", "errors"); got != "(3 errors)" {
		t.Errorf("got %q", got)
	}
}

func TestSetAccent(t *testing.T) {
	orig := AccentColor()
	defer SetAccent(orig)

	SetAccent("#FF0000")
	if AccentColor() != "#FF0000" {
		t.Errorf("AccentColor = %q", AccentColor())
	}

	SetAccent("not-a-color")
	if AccentColor() != "#FF0000" {
		t.Errorf("invalid accent should be ignored, got %q", AccentColor())
	}

	SetAccent("212")
	if AccentColor() != "212" {
		t.Errorf("ANSI accent rejected, got %q", AccentColor())
	}
}

func TestTableAlignment(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("prj-1", "alpha", "active")
	tbl.AddRow("prj-22", "beta", "archived")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	// Second column starts at the same offset on both lines.
	if strings.Index(lines[0], "alpha") != strings.Index(lines[1], "beta") {
		t.Errorf("columns misaligned:\n%s", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# loom project\n\nManage projects.", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "loom project") {
		t.Errorf("output missing heading:\n%s", out)
	}
	if strings.Count(out, "\n\n\n") != 0 && !strings.HasSuffix(out, "\n") {
		t.Errorf("trailing newlines not normalized")
	}
}
