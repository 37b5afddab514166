package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/seqkit/definition"
)

const testdata = "../../definition/testdata/"

func execute(t *testing.T, args ...string) (ExitCode, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunValues(t *testing.T) {
	code, out, stderr := execute(t, "run", testdata+"pipelines/first-even-squares.yaml")
	if code != exitCodeSuccess {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if diff := cmp.Diff("0\n4\n16\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunJSON(t *testing.T) {
	code, out, stderr := execute(t, "run", "-o", "json", testdata+"pipelines/nested/countdown.json")
	if code != exitCodeSuccess {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var res definition.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if diff := cmp.Diff([]float64{5, 4, 3, 2, 1}, res.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if res.Pipeline != "countdown" {
		t.Errorf("unexpected pipeline %q", res.Pipeline)
	}
}

func TestRunTruncated(t *testing.T) {
	code, out, stderr := execute(t, "run", "--max-elements", "2", testdata+"pipelines/nested/countdown.json")
	if code != exitCodeSuccess {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if out != "5\n4\n" {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(stderr, "truncated at 2 elements") {
		t.Errorf("expected truncation notice, got %q", stderr)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"run", testdata + "does-not-exist.yaml"}, "no such file"},
		{"unbounded", []string{"run", testdata + "invalid/unbounded.yaml"}, "infinite"},
		{"pull cap", []string{"run", "--max-pulls", "1000", "--timeout", "0", testdata + "runaway/starved.yaml"}, "pulled 1000 source elements"},
		{"unknown output", []string{"run", "-o", "xml", testdata + "pipelines/first-even-squares.yaml"}, "unknown output format"},
		{"no args", []string{"run"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, tt.args...)
			if code != exitCodeError {
				t.Fatalf("expected exit %d, got %d", exitCodeError, code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q does not contain %q", stderr, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	code, out, _ := execute(t, "validate",
		testdata+"pipelines/first-even-squares.yaml",
		testdata+"pipelines/small-numbers.yml",
	)
	if code != exitCodeSuccess {
		t.Fatalf("expected success, got %d: %s", code, out)
	}
	if strings.Count(out, "ok   ") != 2 {
		t.Errorf("expected two ok lines, got %q", out)
	}
}

func TestValidateReportsEveryFailure(t *testing.T) {
	code, out, stderr := execute(t, "validate",
		testdata+"pipelines/first-even-squares.yaml",
		testdata+"invalid/unknown-func.yaml",
		testdata+"broken/typo.yaml",
	)
	if code != exitCodeError {
		t.Fatalf("expected failure, got %d", code)
	}
	if strings.Count(out, "FAIL ") != 2 {
		t.Errorf("expected two FAIL lines, got %q", out)
	}
	if !strings.Contains(stderr, "2 of 3 definitions invalid") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestFuncs(t *testing.T) {
	code, out, _ := execute(t, "funcs")
	if code != exitCodeSuccess {
		t.Fatalf("exit %d", code)
	}
	for _, f := range definition.DefaultRegistry().Funcs() {
		if !strings.Contains(out, f.Name) {
			t.Errorf("funcs output missing %q", f.Name)
		}
	}
	if !strings.Contains(out, "Description") {
		t.Errorf("expected table header, got %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := execute(t, "--version")
	if code != exitCodeSuccess {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out, "seqctl version ") {
		t.Errorf("unexpected version output %q", out)
	}
}
