package main

import (
	"strings"
	"testing"
)

func TestRenderTableKeepsHeaderCase(t *testing.T) {
	out := renderTable([]column{
		{header: "Run"},
		{header: "Linked", align: alignRight},
	}, [][]string{{"3f2a9c1e", "12"}, {"short"}})

	for _, want := range []string{"Run", "Linked", "3f2a9c1e", "12", "short"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "LINKED") {
		t.Fatalf("header was upper-cased:\n%s", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without columns")
	}
}
