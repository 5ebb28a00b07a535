package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSwiftFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

// execute runs the command line with colors off and returns its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "swiftast v"+Version) || !strings.Contains(out, "Go Version:") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTokens(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", "let x = 1 // one\n")

	out, _, err := execute(t, "tokens", filename)
	if err != nil {
		t.Fatalf("tokens: %v\n%s", err, out)
	}
	for _, want := range []string{"POSITION", "Keyword(declaration)", `"let"`, "1:1-1:4", "DecimalIntLit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "LineComment") {
		t.Errorf("trivia printed without --all:\n%s", out)
	}

	out, _, err = execute(t, "tokens", "--all", filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "LineComment") || !strings.Contains(out, "Space") {
		t.Errorf("--all output missing trivia:\n%s", out)
	}
}

func TestTokensInvalid(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", `let s = "abc`)

	out, _, err := execute(t, "tokens", filename)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(out, "Errors:") || !strings.Contains(out, "unterminated string literal") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParseText(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", "foo(x: 1)\n")

	out, errOut, err := execute(t, "parse", filename)
	if err != nil {
		t.Fatalf("parse: %v\nstderr:\n%s", err, errOut)
	}
	if errOut != "" {
		t.Errorf("unexpected stderr:\n%s", errOut)
	}
	if !strings.Contains(out, "CallExpr 1:1-1:10") || !strings.Contains(out, `Label: "x"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParseJSON(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", "let x = 1\n")

	out, _, err := execute(t, "parse", "--format", "json", filename)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Node  string `json:"node"`
		Stmts []struct {
			Node string `json:"node"`
		} `json:"stmts"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Node != "File" || len(got.Stmts) != 1 || got.Stmts[0].Node != "ConstantDecl" {
		t.Errorf("got %+v", got)
	}

	if _, _, err := execute(t, "parse", "--format", "xml", filename); err == nil {
		t.Error("parse accepted --format xml")
	}
}

func TestParseDiagnostics(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", "import foo import bar\n")

	out, errOut, err := execute(t, "parse", filename)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	want := filename + ":1:12: error: Statements must be separated by line breaks or semicolons.\n" +
		"    import foo import bar\n" +
		"               ^\n"
	if errOut != want {
		t.Errorf("stderr:\n%q\nwant:\n%q", errOut, want)
	}
	if !strings.Contains(out, "ImportDecl") {
		t.Errorf("tree not printed:\n%s", out)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeTempSwiftFile(t, dir, "good.swift", "print(1)\n")
	bad := writeTempSwiftFile(t, dir, "bad.swift", "final enum E {}\n")
	writeTempSwiftFile(t, dir, "notes.txt", "not swift at all {\n")

	out, _, err := execute(t, "check", dir)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(out, bad+":1:1: error: 'final' modifier cannot be applied to this declaration.") {
		t.Errorf("diagnostic missing:\n%s", out)
	}
	if !strings.Contains(out, "FAIL 1 of 2 files failed, 1 diagnostics") {
		t.Errorf("summary missing:\n%s", out)
	}

	good := filepath.Join(dir, "good.swift")
	out, _, err = execute(t, "check", good)
	if err != nil {
		t.Fatalf("check good.swift: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok 1 files") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, _, err := execute(t, "check", filepath.Join(dir, "missing.swift")); err == nil {
		t.Error("check accepted a missing file")
	}
}

func TestCheckWithConfig(t *testing.T) {
	dir := t.TempDir()
	filename := writeTempSwiftFile(t, dir, "ops.swift", "let x = a <> b\n")
	cfg := writeTempSwiftFile(t, dir, "swiftast.toml", `
jobs = 2

[operators]
"<>" = "ComparisonPrecedence"
`)

	if _, _, err := execute(t, "check", filename); !errors.Is(err, errDiagnostics) {
		t.Errorf("without config: err = %v, want errDiagnostics", err)
	}
	out, _, err := execute(t, "--config", cfg, "check", filename)
	if err != nil {
		t.Fatalf("with config: %v\n%s", err, out)
	}

	bad := writeTempSwiftFile(t, dir, "bad.toml", "jobs = \n")
	if _, _, err := execute(t, "--config", bad, "check", filename); err == nil {
		t.Error("malformed config accepted")
	}
}

func TestDoctor(t *testing.T) {
	dir := t.TempDir()
	good := writeTempSwiftFile(t, dir, "good.yaml", "format: text\n")
	out, _, err := execute(t, "--config", good, "doctor")
	if !strings.Contains(out, "Go:") || !strings.Contains(out, "Config:  "+good) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if err != nil && !strings.Contains(out, "need Go") {
		t.Errorf("doctor failed without a Go version problem: %v\n%s", err, out)
	}

	bad := writeTempSwiftFile(t, dir, "bad.yaml", "format: xml\nrequires: \">= 99.0.0\"\n")
	out, _, err = execute(t, "--config", bad, "doctor")
	if !errors.Is(err, errDiagnostics) {
		t.Errorf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(out, "unknown output format") || !strings.Contains(out, "does not satisfy") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCheckGoVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"go1.24.0", true},
		{"go1.24rc1", true},
		{"go1.23.3", false},
		{"go1.30", true},
		{"devel go1.25-abcdef", true},
		{"go1.21.0", false},
		{"1.23", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if err := checkGoVersion(tt.version); (err == nil) != tt.ok {
				t.Errorf("checkGoVersion(%q) = %v, want ok=%v", tt.version, err, tt.ok)
			}
		})
	}
}

func TestRunExitCode(t *testing.T) {
	filename := writeTempSwiftFile(t, t.TempDir(), "input.swift", "let a = 1\n")
	if code := run([]string{"--no-color", "check", filename}); code != 0 {
		t.Errorf("check exit = %d, want 0", code)
	}
	if code := run([]string{"no-such-command"}); code != 1 {
		t.Errorf("unknown command exit = %d, want 1", code)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb", `"a\nb"`},
		{"\t\r", `"\t\r"`},
		{`"q"`, `"\"q\""`},
		{`\`, `"\\"`},
	}
	for _, tt := range tests {
		if got := formatLiteral(tt.in); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := []byte("one\r\ntwo\nthree")
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := sourceLine(src, tt.n); got != tt.want {
			t.Errorf("sourceLine(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
