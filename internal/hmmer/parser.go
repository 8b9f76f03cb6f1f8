package hmmer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// maxLine bounds a single report line; descriptions can be long.
const maxLine = 16 << 20

// Parser reads hits from a --tblout or --domtblout report. It only moves
// forward: to read a report again, open it again.
type Parser struct {
	sc      *bufio.Scanner
	mode    Mode
	line    int
	lenient bool
	logger  *slog.Logger
	skipped int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// Lenient makes the parser skip malformed data lines instead of failing.
// Each skipped line is logged at warn level on logger (which may be nil).
func Lenient(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.lenient = true
		p.logger = logger
	}
}

// NewParser returns a Parser for a report of the given layout. mode must be
// ModeTbl or ModeDom.
func NewParser(r io.Reader, mode Mode, opts ...ParserOption) (*Parser, error) {
	if !mode.Tabular() {
		return nil, fmt.Errorf("%w: cannot parse %s output, use tbl or dom", ErrModeMismatch, mode)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	p := &Parser{sc: sc, mode: mode}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

func (p *Parser) Mode() Mode { return p.mode }

// Skipped is the number of malformed lines dropped in lenient mode.
func (p *Parser) Skipped() int { return p.skipped }

// Next returns the next hit. Comment and blank lines are never returned. At
// the end of the report Next returns io.EOF.
func (p *Parser) Next() (Hit, error) {
	for p.sc.Scan() {
		p.line++
		text := p.sc.Text()
		if isSkippable(text) {
			continue
		}
		hit, err := p.build(text)
		if err == nil {
			return hit, nil
		}
		if !p.lenient {
			return nil, err
		}
		p.skipped++
		if p.logger != nil {
			p.logger.Warn("skipping malformed line", "line", p.line, "err", err)
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func isSkippable(line string) bool {
	s := strings.TrimSpace(line)
	return s == "" || strings.HasPrefix(line, "#")
}

func (p *Parser) build(text string) (Hit, error) {
	fields := strings.Fields(text)
	want := p.mode.minFields()
	if len(fields) < want {
		return nil, &FormatError{Line: p.line, Fields: len(fields), Want: want, Text: text}
	}
	values := append(fields[:want-1:want-1], strings.Join(fields[want-1:], " "))

	var (
		hit Hit
		err error
	)
	if p.mode == ModeDom {
		hit, err = NewDomHit(values)
	} else {
		hit, err = NewTblHit(values)
	}
	if err != nil {
		return nil, &FormatError{Line: p.line, Fields: len(fields), Want: want, Text: text, Err: err}
	}
	return hit, nil
}

// ReadTbl reads every hit of a --tblout report.
func ReadTbl(r io.Reader) ([]TblHit, error) {
	p, err := NewParser(r, ModeTbl)
	if err != nil {
		return nil, err
	}
	var hits []TblHit
	for {
		h, err := p.Next()
		if errors.Is(err, io.EOF) {
			return hits, nil
		}
		if err != nil {
			return hits, err
		}
		hits = append(hits, h.(TblHit))
	}
}

// ReadDom reads every hit of a --domtblout report.
func ReadDom(r io.Reader) ([]DomHit, error) {
	p, err := NewParser(r, ModeDom)
	if err != nil {
		return nil, err
	}
	var hits []DomHit
	for {
		h, err := p.Next()
		if errors.Is(err, io.EOF) {
			return hits, nil
		}
		if err != nil {
			return hits, err
		}
		hits = append(hits, h.(DomHit))
	}
}
