package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/export"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("BITSCTL_LOG_BYPASS", "true")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunParts(t *testing.T) {
	cases := []struct {
		args []string
		in   string
		want string
	}{
		{args: []string{"1"}, in: "8A004A801A8002F478\n", want: "The solution to part 1 is \"16\"\n"},
		{args: []string{"bits.versions"}, in: "A0016C880162017C3686B18A3D4780\n", want: "The solution to part 1 is \"31\"\n"},
		{args: []string{"2"}, in: "9C0141080250320F1802104A08\n", want: "The solution to part 2 is \"1\"\n"},
		{args: []string{"bits.eval"}, in: "04005AC33890", want: "The solution to part 2 is \"54\"\n"},
		{args: nil, in: "C0015000016115A2E0802F182340\n", want: "The solution to part 1 is \"23\"\n"},
	}
	for _, tc := range cases {
		code, out, errOut := runCLI(t, tc.in, tc.args...)
		if code != 0 {
			t.Fatalf("args %v: exit %d, stderr %q", tc.args, code, errOut)
		}
		if out != tc.want {
			t.Fatalf("args %v: stdout %q, want %q", tc.args, out, tc.want)
		}
	}
}

func TestRunInputFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(input, []byte("880086C3E88112\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfgPath := filepath.Join(dir, "bitsctl.toml")
	cfg := "part = 2\ninput = \"" + filepath.ToSlash(input) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, out, errOut := runCLI(t, "", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "The solution to part 2 is \"7\"\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}

	code, out, _ = runCLI(t, "D2FE28\n", "-c", cfgPath, "-i", "-", "1")
	if code != 0 || out != "The solution to part 1 is \"6\"\n" {
		t.Fatalf("flag overrides failed: exit %d, stdout %q", code, out)
	}
}

func TestRunDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"D2FE\n":   "unexpected end",
		"D2FG28\n": "invalid hex digit",
		"\n":       "no input line",
	}
	for in, want := range cases {
		code, out, errOut := runCLI(t, in, "2")
		if code != 1 {
			t.Fatalf("input %q: exit %d, want 1", in, code)
		}
		if out != "" {
			t.Fatalf("input %q: unexpected stdout %q", in, out)
		}
		if !strings.Contains(errOut, want) {
			t.Fatalf("input %q: stderr %q missing %q", in, errOut, want)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"3"},
		{"1", "2"},
		{"--format", "xml", "dump"},
		{"--max-depth", "-1", "1"},
		{"--bogus"},
	} {
		if code, _, _ := runCLI(t, "D2FE28", args...); code != 2 {
			t.Fatalf("args %v: exit %d, want 2", args, code)
		}
	}
	if code, _, _ := runCLI(t, "", "--help"); code != 0 {
		t.Fatalf("help should exit 0, got %d", code)
	}
}

func TestRunDepthLimit(t *testing.T) {
	code, _, errOut := runCLI(t, "8A004A801A8002F478", "--max-depth", "2", "1")
	if code != 1 || !strings.Contains(errOut, "too deep") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI(t, "", "list")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "1\tbits.versions") || !strings.HasPrefix(lines[1], "2\tbits.eval") {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestRunDumpFormats(t *testing.T) {
	code, out, errOut := runCLI(t, "C200B40A82\n", "dump")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "expr:        (v6:+ v6:1 v2:2)") {
		t.Fatalf("unexpected text dump: %q", out)
	}

	code, out, _ = runCLI(t, "C200B40A82\n", "-f", "yaml", "dump")
	if code != 0 || !strings.Contains(out, "kind: sum") {
		t.Fatalf("unexpected yaml dump (exit %d): %q", code, out)
	}

	code, out, _ = runCLI(t, "C200B40A82\n", "--format=cbor", "dump")
	if code != 0 {
		t.Fatalf("cbor dump exit %d", code)
	}
	doc, err := export.UnmarshalCBOR([]byte(out))
	if err != nil {
		t.Fatalf("decode cbor dump: %v", err)
	}
	if doc.Value != "3" || doc.VersionSum != 14 {
		t.Fatalf("unexpected cbor document: %+v", doc)
	}
}

func TestRunWritesMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitsctl.prom")
	code, _, errOut := runCLI(t, "C200B40A82\n", "--metrics-file", path, "2")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), "bitsctl_solve_duration_seconds") {
		t.Fatalf("metrics file missing solve histogram:\n%s", data)
	}
}

func TestShippedConfigLoads(t *testing.T) {
	code, out, errOut := runCLI(t, "D2FE28\n", "--config", "config.toml")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "The solution to part 1 is \"6\"\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}
