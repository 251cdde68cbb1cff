// Package corpus reads plain-text segment streams, one segment per line,
// from plain or gzip-compressed files.
package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/jamesainslie/go-sacrebleu/tokenizer"
)

// MaxLineSize bounds the length of a single segment.
const MaxLineSize = 16 << 20

// ErrFieldCount indicates a tab-separated reference line with the wrong
// number of fields.
var ErrFieldCount = errors.New("corpus: wrong number of reference fields")

var gzipMagic = []byte{0x1f, 0x8b}

// NewScanner returns a line scanner sized for long segments. Lines end at
// '\n' only; a carriage return before it stays part of the segment.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)
	sc.Split(scanLF)
	return sc
}

func scanLF(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Open opens path for reading, transparently decompressing gzip data.
// The path "-" reads from stdin.
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open corpus: %w", err)
		}
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip corpus %s: %w", path, err)
		}
		return &gzipFile{Reader: zr, file: f}, nil
	}

	return &plainFile{Reader: br, file: f}, nil
}

type plainFile struct {
	*bufio.Reader
	file *os.File
}

func (p *plainFile) Close() error {
	if p.file == os.Stdin {
		return nil
	}
	return p.file.Close()
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	errs := []error{g.Reader.Close()}
	if g.file != os.Stdin {
		errs = append(errs, g.file.Close())
	}
	return errors.Join(errs...)
}

// ReadLines reads every line of r without the trailing '\n'.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return lines, nil
}

// Load reads all segments from path (see Open).
func Load(path string) ([]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	lines, err := ReadLines(rc)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return lines, nil
}

// SplitReferences splits tab-separated lines into numRefs parallel reference
// streams. Every line must carry exactly numRefs fields.
func SplitReferences(lines []string, numRefs int) ([][]string, error) {
	if numRefs < 1 {
		return nil, fmt.Errorf("%w: need at least one reference, got %d", ErrFieldCount, numRefs)
	}

	streams := make([][]string, numRefs)
	for i := range streams {
		streams[i] = make([]string, 0, len(lines))
	}
	for lineno, line := range lines {
		fields := strings.Split(strings.TrimRightFunc(line, tokenizer.IsSpace), "\t")
		if len(fields) != numRefs {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, found %d",
				ErrFieldCount, lineno+1, numRefs, len(fields))
		}
		for i, f := range fields {
			streams[i] = append(streams[i], f)
		}
	}
	return streams, nil
}

// LoadReferences reads one reference stream per path. With numRefs > 1 a
// single path holding tab-separated references is expected instead.
func LoadReferences(paths []string, numRefs int) ([][]string, error) {
	if numRefs > 1 {
		if len(paths) != 1 {
			return nil, fmt.Errorf("%w: %d tab-separated references need exactly one file, got %d",
				ErrFieldCount, numRefs, len(paths))
		}
		lines, err := Load(paths[0])
		if err != nil {
			return nil, err
		}
		return SplitReferences(lines, numRefs)
	}

	refs := make([][]string, 0, len(paths))
	for _, p := range paths {
		lines, err := Load(p)
		if err != nil {
			return nil, err
		}
		refs = append(refs, lines)
	}
	return refs, nil
}
