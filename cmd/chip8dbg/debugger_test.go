package main

import (
	"fmt"
	"testing"
)

func TestLogLinesKeepsMostRecent(t *testing.T) {
	l := &logLines{max: 3}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(l, "line %d\n", i)
	}
	got := l.last(10)
	if len(got) != 3 {
		t.Fatalf("len=%d want 3", len(got))
	}
	if got[0] != "line 2" || got[2] != "line 4" {
		t.Fatalf("unexpected lines: %q", got)
	}
	if got := l.last(1); len(got) != 1 || got[0] != "line 4" {
		t.Fatalf("last(1)=%q", got)
	}
}

func TestLogLinesSplitsMultiline(t *testing.T) {
	l := &logLines{max: 10}
	fmt.Fprint(l, "a\nb\n")
	if got := l.last(10); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %q", got)
	}
}
