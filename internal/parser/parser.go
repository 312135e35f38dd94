package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// Options controls how entries are captured.
type Options struct {
	// OrderField, when set, keeps only that field's value on each record
	// (Record.OrderValue) instead of the full field map.
	OrderField string
}

var (
	// @<type>{<key>,
	openingPattern = regexp.MustCompile(`@(\w+)\{([^,]+),`)
	// <name> = {<value>}; first match on the line only, no nesting.
	fieldPattern = regexp.MustCompile(`(\w+)\s*=\s*\{(.+?)\}`)
)

type state int

const (
	outsideEntry state = iota
	insideEntry
)

func (s state) String() string {
	if s == insideEntry {
		return "inside_entry"
	}
	return "outside_entry"
}

// machine is the line-driven automaton behind Scanner. feed returns a
// finished record whenever a line closes or supersedes the current entry.
type machine struct {
	orderField string
	state      state
	raw        strings.Builder
	rec        *Record
}

func newMachine(opt Options) *machine {
	m := &machine{}
	if f := strings.TrimSpace(opt.OrderField); f != "" {
		if strings.EqualFold(f, EntryTypeField) {
			m.orderField = EntryTypeField
		} else {
			m.orderField = strings.ToLower(f)
		}
	}
	return m
}

func (m *machine) feed(line string) *Record {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	switch {
	case strings.HasPrefix(trimmed, "@"):
		var done *Record
		if m.state == insideEntry {
			// previous entry never saw its closing brace
			done = m.finish()
		}
		m.begin(line)
		return done
	case m.state == insideEntry:
		m.raw.WriteString(line)
		m.capture(line)
		if trimmed == "}" {
			return m.finish()
		}
	}
	return nil
}

// flush finalizes a dangling entry at end of input.
func (m *machine) flush() *Record {
	if m.state != insideEntry {
		return nil
	}
	return m.finish()
}

func (m *machine) begin(line string) {
	m.state = insideEntry
	m.raw.Reset()
	m.raw.WriteString(line)
	m.rec = &Record{OrderField: m.orderField}
	if m.orderField == "" {
		m.rec.Fields = make(map[string]string)
	}
	if sm := openingPattern.FindStringSubmatch(line); sm != nil {
		m.rec.EntryType = sm[1]
		m.rec.Key = sm[2]
	}
	if m.orderField == EntryTypeField {
		m.rec.OrderValue = m.rec.EntryType
	}
}

func (m *machine) capture(line string) {
	sm := fieldPattern.FindStringSubmatch(line)
	if sm == nil {
		return
	}
	name := strings.ToLower(sm[1])
	if m.rec.Fields != nil {
		m.rec.Fields[name] = sm[2]
		return
	}
	if name == m.orderField {
		m.rec.OrderValue = sm[2]
	}
}

func (m *machine) finish() *Record {
	rec := m.rec
	rec.Raw = m.raw.String()
	m.raw.Reset()
	m.rec = nil
	m.state = outsideEntry
	return rec
}

// Scanner reads records one at a time from a BibTeX stream.
type Scanner struct {
	r       *bufio.Reader
	m       *machine
	rec     *Record
	err     error
	line    int
	eof     bool
	flushed bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, opt Options) *Scanner {
	return &Scanner{r: bufio.NewReader(r), m: newMachine(opt)}
}

// Scan advances to the next record. It returns false at end of input or on
// a read error; call Err to tell them apart.
func (s *Scanner) Scan() bool {
	s.rec = nil
	if s.err != nil {
		return false
	}
	for !s.eof {
		line, err := s.r.ReadString('\n')
		if len(line) > 0 {
			s.line++
			s.rec = s.m.feed(line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = &ParseError{Line: s.line, Err: err}
				return false
			}
			s.eof = true
		}
		if s.rec != nil {
			return true
		}
	}
	if !s.flushed {
		s.flushed = true
		if s.rec = s.m.flush(); s.rec != nil {
			return true
		}
	}
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() *Record { return s.rec }

// Err returns the first non-EOF error encountered.
func (s *Scanner) Err() error { return s.err }

// Parse reads every record from r in source order. Input without entries
// yields an empty, non-nil slice.
func Parse(r io.Reader, opt Options) ([]*Record, error) {
	sc := NewScanner(r, opt)
	out := []*Record{}
	for sc.Scan() {
		out = append(out, sc.Record())
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// ParseString parses BibTeX text held in memory.
func ParseString(text string, opt Options) ([]*Record, error) {
	return Parse(strings.NewReader(text), opt)
}

// ParseFile parses the BibTeX file at path. A missing file is reported as
// *FileNotFoundError.
func ParseFile(path string, opt Options) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open bib file: %w", err)
	}
	defer f.Close()
	recs, err := Parse(f, opt)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recs, nil
}
