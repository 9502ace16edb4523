// Package variantio parses the line-oriented sample-variant TSV format that
// feeds internal/sample.Reader. It is modeled directly on the teacher's
// internal/vcf.Parser: buffered line reading, transparent gzip detection by
// magic bytes, and a ParseError carrying the offending line number.
package variantio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/msilver727/pharmcat/internal/sample"
)

// TSVReader reads SampleRecords from a "chrom\tpos\tref\talt\tgt" file,
// one call per line, with an optional header line starting with "#".
// Supports plain and gzip-compressed input.
type TSVReader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewTSVReader opens path ("-" for stdin) and prepares it for reading.
func NewTSVReader(path string) (*TSVReader, error) {
	if path == "-" {
		return NewTSVReaderFrom(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}

	p := &TSVReader{file: file}

	magic := make([]byte, 2)
	if _, err := io.ReadFull(file, magic); err != nil && err != io.ErrUnexpectedEOF {
		file.Close()
		return nil, fmt.Errorf("read sample file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek sample file: %w", err)
	}

	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.gzipReader = gz
		p.reader = bufio.NewReader(gz)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewTSVReaderFrom wraps an already-open reader (e.g. stdin).
func NewTSVReaderFrom(r io.Reader) *TSVReader {
	return &TSVReader{reader: bufio.NewReader(r)}
}

// ReadAll reads every non-header, non-empty line into a SampleRecord.
func (p *TSVReader) ReadAll() ([]sample.SampleRecord, error) {
	var out []sample.SampleRecord
	for {
		rec, err := p.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return out, nil
		}
		out = append(out, *rec)
	}
}

// Next reads the next SampleRecord, or nil, nil at EOF.
func (p *TSVReader) Next() (*sample.SampleRecord, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read sample line %d: %w", p.lineNumber+1, err)
		}
		atEOF := err == io.EOF

		line = strings.TrimRight(line, "\r\n")
		p.lineNumber++

		if line == "" {
			if atEOF {
				return nil, nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			if atEOF {
				return nil, nil
			}
			continue
		}

		rec, perr := p.parseLine(line)
		if perr != nil {
			return nil, perr
		}
		return rec, nil
	}
}

func (p *TSVReader) parseLine(line string) (*sample.SampleRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return nil, &ParseError{Line: p.lineNumber, Message: fmt.Sprintf("expected 5 columns, found %d", len(fields))}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: fmt.Sprintf("invalid position %q", fields[1])}
	}

	var alts []string
	if fields[3] != "." && fields[3] != "" {
		alts = strings.Split(fields[3], ",")
	}

	return &sample.SampleRecord{
		Chrom:    fields[0],
		Position: pos,
		Ref:      fields[2],
		Alts:     alts,
		GT:       fields[4],
	}, nil
}

// Close releases the underlying file and gzip reader, if any.
func (p *TSVReader) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError reports a malformed sample-variant TSV line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sample TSV parse error at line %d: %s", e.Line, e.Message)
}
