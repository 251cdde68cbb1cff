package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLines(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	sys := writeLines(t, dir, "sys.txt", "The cat is on the mat.", "There is a dog here.")
	ref1 := writeLines(t, dir, "ref1.txt", "The cat sat on the mat.", "A dog is here.")
	ref2 := writeLines(t, dir, "ref2.txt", "There is a cat on the mat.", "There is a dog in here.")
	tsv := writeLines(t, dir, "refs.tsv",
		"The cat sat on the mat.\tThere is a cat on the mat.",
		"A dog is here.\tThere is a dog in here.")
	short := writeLines(t, dir, "short.txt", "one line")
	profile := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(profile, []byte("metrics: [chrf]\ntest_set: wmt14\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bleuLine := "BLEU+case.mixed+numrefs.2+smooth.exp+tok.13a+version.1.4.2 = 55.1 100.0/72.7/44.4/28.6 (BP = 1.000 ratio = 1.083 hyp_len = 13 ref_len = 12)\n"

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:    "two reference files",
			args:    []string{"-i", sys, ref1, ref2},
			wantOut: bleuLine,
		},
		{
			name:    "tab separated references",
			args:    []string{"-i", sys, "-nr", "2", tsv},
			wantOut: bleuLine,
		},
		{
			name:    "score only",
			args:    []string{"-i", sys, "-b", "-w", "2", ref1, ref2},
			wantOut: "55.13\n",
		},
		{
			name:    "chrF short signature",
			args:    []string{"-i", sys, "-m", "chrf", "-short", "-w", "3", ref1},
			wantOut: "chrF2+c.mixed+n.6+#.1+s.False+v.1.4.2 = 0.543\n",
		},
		{
			name:    "profile with flag override",
			args:    []string{"-i", sys, "-config", profile, "-chrf-beta", "1", "-w", "3", ref1},
			wantOut: "chrF1+case.mixed+numchars.6+numrefs.1+space.False+test.wmt14+version.1.4.2 = ",
		},
		{
			name:    "version",
			args:    []string{"-V"},
			wantOut: "1.4.2\n",
		},
		{
			name:     "misaligned reference",
			args:     []string{"-i", sys, short},
			wantCode: 1,
			wantErr:  "reference stream 0 has 1 segments, system has 2",
		},
		{
			name:     "unknown tokenizer",
			args:     []string{"-i", sys, "-tok", "moses", ref1},
			wantCode: 1,
			wantErr:  "unknown tokenizer",
		},
		{
			name:     "no references",
			args:     []string{"-i", sys},
			wantCode: 2,
			wantErr:  "at least one reference file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if tt.wantOut != "" && !strings.HasPrefix(stdout.String(), tt.wantOut) {
				t.Errorf("stdout =\n%q\nwant prefix\n%q", stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRun_SentenceLevelLines(t *testing.T) {
	dir := t.TempDir()
	sys := writeLines(t, dir, "sys.txt", "a b c", "d e f", "g h i")
	ref := writeLines(t, dir, "ref.txt", "a b c", "x y z", "g h i")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-i", sys, "-sl", "-b", "-w", "0", "-q", ref}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}
	if got, want := stdout.String(), "100\n0\n100\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRun_SentenceLevelSignature(t *testing.T) {
	dir := t.TempDir()
	sys := writeLines(t, dir, "sys.txt", "the cat sat")
	ref := writeLines(t, dir, "ref.txt", "the dog sat")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-i", sys, "-sl", "-q", ref}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}
	want := "BLEU+case.mixed+numrefs.1+smooth.floor+tok.13a+version.1.4.2 = "
	if got := stdout.String(); !strings.HasPrefix(got, want) {
		t.Errorf("stdout = %q, want prefix %q", got, want)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" BLEU, chrf ,,")
	if len(got) != 2 || got[0] != "bleu" || got[1] != "chrf" {
		t.Errorf("splitList() = %q", got)
	}
}
