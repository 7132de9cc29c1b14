// internal/parser/parser.go
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/style"
)

type state int

const (
	stateStyleName state = iota
	stateProperty
	stateValue
	stateComment
)

// declaration is one property value and where it started in the source.
type declaration struct {
	value        string
	line, column int
}

// Parser compiles style-sheet source into a style.Sheet.
type Parser struct {
	logger *zap.Logger
}

// New creates a Parser. A nil logger disables logging.
func New(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.Named("parser")}
}

// ParseString is a convenience wrapper for in-memory sources.
func ParseString(src string) (*style.Sheet, error) {
	return New(nil).Parse(strings.NewReader(src))
}

// Parse reads the whole stream. Nothing is registered unless the entire source compiles.
func (p *Parser) Parse(r io.Reader) (*style.Sheet, error) {
	sc := newScanner()
	br := bufio.NewReader(r)
	for {
		ch, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading style sheet: %w", err)
		}
		if err := sc.feed(ch); err != nil {
			return nil, err
		}
	}
	if err := sc.finish(); err != nil {
		return nil, err
	}

	sheet, err := sc.compile()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Compiled style sheet", zap.Int("styles", sheet.Len()))
	return sheet, nil
}

// scanner is the character-level state machine. It is single use.
type scanner struct {
	state     state
	lastState state
	line      int
	column    int

	buf          strings.Builder
	pendingSlash bool
	property     string
	propLine     int
	propColumn   int

	open  []string
	order []string
	decls map[string]map[string]declaration
}

func newScanner() *scanner {
	return &scanner{
		line:  1,
		decls: make(map[string]map[string]declaration),
	}
}

func (s *scanner) feed(ch rune) error {
	s.column++

	if s.state == stateComment {
		if ch == '\n' {
			s.state = s.lastState
			s.newline()
			s.buf.WriteByte(' ')
		}
		return nil
	}

	if ch == '/' {
		if s.pendingSlash {
			s.pendingSlash = false
			s.lastState = s.state
			s.state = stateComment
			return nil
		}
		s.pendingSlash = true
		return nil
	}
	if s.pendingSlash {
		s.pendingSlash = false
		s.buf.WriteByte('/')
	}

	switch ch {
	case ':':
		if s.state != stateProperty {
			return s.syntaxError("unexpected ':'")
		}
		name := strings.TrimSpace(s.buf.String())
		if name == "" {
			return s.syntaxError("empty property name")
		}
		s.property, s.propLine, s.propColumn = name, s.line, s.column
		s.buf.Reset()
		s.state = stateValue
	case ';':
		if s.state != stateValue {
			return s.syntaxError("unexpected ';'")
		}
		value := strings.TrimSpace(s.buf.String())
		if value == "" {
			return s.syntaxError("empty value for property " + s.property)
		}
		if err := s.addProperty(value); err != nil {
			return err
		}
		s.buf.Reset()
		s.state = stateProperty
	case '{':
		if s.state != stateStyleName {
			return s.syntaxError("unexpected '{'")
		}
		if err := s.addStyleName(); err != nil {
			return err
		}
		s.state = stateProperty
	case ',':
		if s.state != stateStyleName {
			return s.syntaxError("unexpected ','")
		}
		if err := s.addStyleName(); err != nil {
			return err
		}
	case '}':
		if s.state != stateProperty {
			return s.syntaxError("unexpected '}'")
		}
		if strings.TrimSpace(s.buf.String()) != "" {
			return s.syntaxError("expected ':' after property " + strings.TrimSpace(s.buf.String()))
		}
		s.buf.Reset()
		s.open = s.open[:0]
		s.state = stateStyleName
	case '\t', '\r':
		s.buf.WriteByte(' ')
	case '\n':
		s.buf.WriteByte(' ')
		s.newline()
	default:
		s.buf.WriteRune(ch)
	}
	return nil
}

func (s *scanner) newline() {
	s.line++
	s.column = 0
}

func (s *scanner) finish() error {
	if s.pendingSlash {
		s.pendingSlash = false
		s.buf.WriteByte('/')
	}
	st := s.state
	if st == stateComment {
		st = s.lastState
	}
	if st != stateStyleName || len(s.open) > 0 || strings.TrimSpace(s.buf.String()) != "" {
		return s.syntaxError("unexpected end of input")
	}
	return nil
}

func (s *scanner) addStyleName() error {
	name := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if name == "" {
		return nil
	}
	s.open = append(s.open, name)
	if _, ok := s.decls[name]; !ok {
		s.decls[name] = make(map[string]declaration)
		s.order = append(s.order, name)
	}
	return nil
}

func (s *scanner) addProperty(value string) error {
	if len(s.open) == 0 {
		return s.syntaxError("no style name found")
	}
	if _, ok := properties[s.property]; !ok {
		return &UnknownPropertyError{Property: s.property, Line: s.propLine, Column: s.propColumn}
	}
	for _, name := range s.open {
		s.decls[name][s.property] = declaration{value: value, line: s.propLine, column: s.propColumn}
	}
	return nil
}

func (s *scanner) syntaxError(msg string) error {
	return &SyntaxError{Line: s.line, Column: s.column, Msg: msg}
}

// compile applies every declaration on top of the defaults.
func (s *scanner) compile() (*style.Sheet, error) {
	sheet := style.NewSheet()
	for _, name := range s.order {
		st := style.Default()
		decls := s.decls[name]
		props := make([]string, 0, len(decls))
		for prop := range decls {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			d := decls[prop]
			if err := properties[prop](&st, d.value); err != nil {
				return nil, &ValueError{Style: name, Property: prop, Line: d.line, Column: d.column, Err: err}
			}
		}
		sheet.Put(name, &st)
	}
	return sheet, nil
}
