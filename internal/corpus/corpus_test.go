package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeGzip(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := "The cat sat on the mat.\n\nA dog is here.\r\n"
	want := []string{"The cat sat on the mat.", "", "A dog is here.\r"}

	tests := []struct {
		name string
		path string
	}{
		{"plain", writeFile(t, "ref.txt", content)},
		{"gzip", writeGzip(t, "ref.txt.gz", content)},
		{"gzip without extension", writeGzip(t, "ref.bin", content)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %q, want %q", got, want)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got: %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	got, err := Load(writeFile(t, "empty.txt", ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %q, want no lines", got)
	}
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	got, err := ReadLines(strings.NewReader(long + "\nshort\n"))
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if len(got) != 2 || len(got[0]) != len(long) {
		t.Errorf("ReadLines() returned %d lines", len(got))
	}
}

func TestReadLines_CarriageReturn(t *testing.T) {
	got, err := ReadLines(strings.NewReader("a\r\n\r\nb\rc"))
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if want := []string{"a\r", "\r", "b\rc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadLines() = %q, want %q", got, want)
	}
}

func TestSplitReferences(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		numRefs int
		want    [][]string
		wantErr bool
	}{
		{
			name:    "two references",
			lines:   []string{"a b\tc d", "e\tf \t"},
			numRefs: 2,
			want:    [][]string{{"a b", "e"}, {"c d", "f"}},
		},
		{
			name:    "trailing separator characters",
			lines:   []string{"a\tb\x1c\x1f", "c\td\r"},
			numRefs: 2,
			want:    [][]string{{"a", "c"}, {"b", "d"}},
		},
		{
			name:    "extra field",
			lines:   []string{"a\tb\tc"},
			numRefs: 2,
			wantErr: true,
		},
		{
			name:    "missing field",
			lines:   []string{"a\tb", "c"},
			numRefs: 2,
			wantErr: true,
		},
		{
			name:    "no references",
			lines:   []string{"a"},
			numRefs: 0,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitReferences(tt.lines, tt.numRefs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitReferences() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrFieldCount) {
					t.Errorf("expected ErrFieldCount, got: %v", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitReferences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitReferences_ReportsLine(t *testing.T) {
	_, err := SplitReferences([]string{"a\tb", "a\tb", "c"}, 2)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name line 3: %v", err)
	}
}

func TestLoadReferences(t *testing.T) {
	a := writeFile(t, "a.txt", "a1\na2\n")
	b := writeGzip(t, "b.txt.gz", "b1\nb2\n")

	got, err := LoadReferences([]string{a, b}, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"a1", "a2"}, {"b1", "b2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadReferences() = %q, want %q", got, want)
	}

	tsv := writeFile(t, "refs.tsv", "a1\tb1\na2\tb2\n")
	got, err = LoadReferences([]string{tsv}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadReferences(tsv) = %q, want %q", got, want)
	}

	if _, err := LoadReferences([]string{a, b}, 2); !errors.Is(err, ErrFieldCount) {
		t.Errorf("expected ErrFieldCount, got: %v", err)
	}
}
