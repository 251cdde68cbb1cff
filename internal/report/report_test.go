package report

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	sacrebleu "github.com/jamesainslie/go-sacrebleu"
)

var (
	sys  = []string{"The cat is on the mat.", "There is a dog here."}
	refs = [][]string{
		{"The cat sat on the mat.", "A dog is here."},
		{"There is a cat on the mat.", "There is a dog in here."},
	}
)

func entries(t *testing.T) []Entry {
	t.Helper()
	quiet := sacrebleu.WithLogger(slog.New(slog.DiscardHandler))

	bleu, err := sacrebleu.NewBLEU(quiet)
	if err != nil {
		t.Fatal(err)
	}
	chrf, err := sacrebleu.NewChrF(quiet)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bleu.Corpus(sys, refs)
	if err != nil {
		t.Fatal(err)
	}
	c, err := chrf.Corpus(sys, refs[0])
	if err != nil {
		t.Fatal(err)
	}
	return []Entry{
		{Result: b, Signature: bleu.Signature(2, sacrebleu.Metadata{})},
		{Result: c, Signature: chrf.Signature(1, sacrebleu.Metadata{})},
	}
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "verbose",
			opts: Options{Width: 1},
			want: []string{
				"BLEU+case.mixed+numrefs.2+smooth.exp+tok.13a+version.1.4.2 = 55.1 100.0/72.7/44.4/28.6 (BP = 1.000 ratio = 1.083 hyp_len = 13 ref_len = 12)",
				"chrF2+case.mixed+numchars.6+numrefs.1+space.False+version.1.4.2 = 0.5",
			},
		},
		{
			name: "short",
			opts: Options{Width: 3, Short: true},
			want: []string{
				"BLEU+c.mixed+#.2+s.exp+tok.13a+v.1.4.2 = 55.127 100.0/72.7/44.4/28.6 (BP = 1.000 ratio = 1.083 hyp_len = 13 ref_len = 12)",
				"chrF2+c.mixed+n.6+#.1+s.False+v.1.4.2 = 0.543",
			},
		},
		{
			name: "score only",
			opts: Options{Width: 2, ScoreOnly: true},
			want: []string{"55.13", "0.54"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, Text, entries(t), tt.opts); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines, want %d:\n%s", len(got), len(tt.want), buf.String())
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d =\n%q\nwant\n%q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLine_NoSignature(t *testing.T) {
	c := sacrebleu.ChrF{Score: 0.25, Beta: 2}
	if got := Line(Entry{Result: c}, Options{Width: 2}); got != "chrF2 = 0.25" {
		t.Errorf("Line() = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, entries(t), Options{Width: 2, Short: true}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var doc structpb.Struct
	if err := protojson.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	results := doc.GetFields()["results"].GetListValue().GetValues()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	bleu := results[0].GetStructValue().GetFields()
	if got := bleu["name"].GetStringValue(); got != "BLEU" {
		t.Errorf("name = %q", got)
	}
	if got := bleu["score"].GetNumberValue(); got < 55.12 || got > 55.13 {
		t.Errorf("score = %v", got)
	}
	if got := bleu["signature"].GetStringValue(); got != "c.mixed+#.2+s.exp+tok.13a+v.1.4.2" {
		t.Errorf("signature = %q", got)
	}
	counts := bleu["counts"].GetListValue().GetValues()
	if len(counts) != 4 || counts[0].GetNumberValue() != 13 {
		t.Errorf("counts = %v", counts)
	}
	if got := bleu["ref_len"].GetNumberValue(); got != 12 {
		t.Errorf("ref_len = %v", got)
	}

	chrf := results[1].GetStructValue().GetFields()
	if got := chrf["name"].GetStringValue(); got != "chrF2" {
		t.Errorf("name = %q", got)
	}
	if got := chrf["order"].GetNumberValue(); got != 6 {
		t.Errorf("order = %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"text": Text, "json": JSON} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got: %v", err)
	}
	if err := Write(&bytes.Buffer{}, Format(9), nil, Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got: %v", err)
	}
}
