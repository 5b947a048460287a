package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cubes/record"
)

const example = `Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
Game 2: 1 blue, 2 green; 3 green, 4 blue, 1 red; 1 green, 1 blue
Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green; 5 green, 1 red
Game 4: 1 green, 3 red, 6 blue; 3 green, 6 red; 3 green, 15 blue, 14 red
Game 5: 6 red, 1 blue, 3 green; 2 blue, 1 red, 2 green
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSolve(t *testing.T) {
	path := writeInput(t, example)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"part 1", []string{"solve", path}, "8\n"},
		{"part 2", []string{"solve", "--part", "2", path}, "2286\n"},
		{"part 1 parallel", []string{"solve", "--workers", "3", path}, "8\n"},
		{"part 2 parallel", []string{"solve", "--part", "2", "--workers", "3", path}, "2286\n"},
		{"bigger bag", []string{"solve", "--red", "20", "--blue", "15", path}, "15\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveStdin(t *testing.T) {
	got, err := run(t, example, "solve", "--part", "2", "-")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "2286\n" {
		t.Errorf("output = %q, want %q", got, "2286\n")
	}
}

func TestSolveMalformed(t *testing.T) {
	path := writeInput(t, "Game X: 3 blue\n")
	_, err := run(t, "", "solve", path)
	var perr *record.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *record.ParseError", err)
	}
	if perr.Pos.Filename != path {
		t.Errorf("Filename = %q, want %q", perr.Pos.Filename, path)
	}
}

func TestSolveUnknownPart(t *testing.T) {
	path := writeInput(t, example)
	if _, err := run(t, "", "solve", "--part", "3", path); err == nil {
		t.Error("expected error for part 3")
	}
}

func TestSolveUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cubes.yaml")
	if err := os.WriteFile(cfgPath, []byte("bag: {red: 20, green: 13, blue: 15}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeInput(t, example)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "solve", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "15\n" {
		t.Errorf("output = %q, want %q", out.String(), "15\n")
	}
}

func TestParseText(t *testing.T) {
	path := writeInput(t, "Game 4: 1 green, 3 red, 6 blue; 3 green, 6 red\n")
	got, err := run(t, "", "parse", "--format", "text", path)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "Game 4: 3 red, 1 green, 6 blue; 6 red, 3 green\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseJSON(t *testing.T) {
	path := writeInput(t, example)
	got, err := run(t, "", "parse", path)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{`"feasibleSum": 8`, `"powerSum": 2286`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestGrammar(t *testing.T) {
	got, err := run(t, "", "grammar", "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got != "record.ebnf: ok\n" {
		t.Errorf("check output = %q", got)
	}

	got, err = run(t, "", "grammar", "print")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if got != record.GrammarSource {
		t.Errorf("print output differs from embedded grammar")
	}

	bad := filepath.Join(t.TempDir(), "bad.ebnf")
	if err := os.WriteFile(bad, []byte("Start = missing .\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "grammar", "check", "--start", "Start", bad); err == nil {
		t.Error("expected verification failure")
	}
	if _, err := run(t, "", "grammar", "check", bad); err != nil {
		t.Errorf("syntax-only check failed: %v", err)
	}
}
