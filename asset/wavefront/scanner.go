package wavefront

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineLength     = 16 * 1024 * 1024

	// How many physical lines to consume between context checks.
	ctxCheckInterval = 256
)

// A directive is one logical line: a keyword and its trimmed argument text.
type directive struct {
	keyword string
	args    string

	// Physical line the directive starts on.
	line int
}

// Split the argument text on whitespace.
func (d directive) fields() []string {
	return strings.Fields(d.args)
}

// lineScanner produces directives from a text stream. Comments are stripped,
// backslash continuations joined and blank lines skipped. Like bufio.Scanner
// it can only be advanced; each call to Scan yields the next directive.
type lineScanner struct {
	ctx     context.Context
	file    string
	scanner *bufio.Scanner

	// Physical lines consumed so far.
	physLine int

	cur  directive
	err  error
	cont strings.Builder
}

func newLineScanner(ctx context.Context, file string, r io.Reader) *lineScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialLineBuffer), maxLineLength)
	return &lineScanner{
		ctx:     ctx,
		file:    file,
		scanner: scanner,
	}
}

// Scan advances to the next directive. It returns false at the end of the
// input or on error; Err tells the two apart.
func (s *lineScanner) Scan() bool {
	if s.err != nil {
		return false
	}

	s.cont.Reset()
	startLine := 0
	for {
		if s.physLine%ctxCheckInterval == 0 && s.ctx != nil {
			if err := s.ctx.Err(); err != nil {
				s.err = err
				return false
			}
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				kind := ErrReadFailure
				if errors.Is(err, io.ErrUnexpectedEOF) {
					kind = ErrEmptyOrTruncatedFile
				}
				s.err = &ParseError{File: s.file, Line: s.physLine + 1, Kind: kind, Err: err, Msg: err.Error()}
				return false
			}
			if startLine != 0 {
				s.err = &ParseError{File: s.file, Line: startLine, Kind: ErrEmptyOrTruncatedFile, Msg: "line continuation at end of input"}
			}
			return false
		}
		s.physLine++

		text := s.scanner.Text()
		if s.physLine == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		if idx := strings.IndexByte(text, '#'); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimRight(text, " \t\r\f\v")

		continued := strings.HasSuffix(text, `\`)
		if continued {
			text = text[:len(text)-1]
		}

		if startLine == 0 {
			if !continued && strings.TrimSpace(text) == "" {
				continue
			}
			startLine = s.physLine
		} else {
			s.cont.WriteByte(' ')
		}
		s.cont.WriteString(text)

		if continued {
			continue
		}

		logical := strings.TrimSpace(s.cont.String())
		if logical == "" {
			// A continuation that only joined blank lines
			s.cont.Reset()
			startLine = 0
			continue
		}

		s.cur = splitDirective(logical, startLine)
		return true
	}
}

// Directive returns the directive produced by the last call to Scan.
func (s *lineScanner) Directive() directive {
	return s.cur
}

// Err returns the first non-EOF error encountered.
func (s *lineScanner) Err() error {
	return s.err
}

// Line returns the number of physical lines consumed so far.
func (s *lineScanner) Line() int {
	return s.physLine
}

func splitDirective(logical string, line int) directive {
	idx := strings.IndexAny(logical, " \t")
	if idx == -1 {
		return directive{keyword: logical, line: line}
	}
	return directive{
		keyword: logical[:idx],
		args:    strings.TrimSpace(logical[idx+1:]),
		line:    line,
	}
}
