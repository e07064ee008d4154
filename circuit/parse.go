// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit

import (
	"strconv"
	"unicode"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// A Connection connects a part pin to a net of its circuit.
//
type Connection struct {
	Pin string // pin name in the part's interface
	Net string // net name in the circuit
}

type scanner struct {
	in  string
	pos int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.in) && unicode.IsSpace(rune(s.in[s.pos])) {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	s.skipSpace()
	return s.pos >= len(s.in)
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}

func (s *scanner) ident() (string, error) {
	s.skipSpace()
	if s.pos >= len(s.in) || !isIdentStart(s.in[s.pos]) {
		return "", s.errorf("expected pin name")
	}
	start := s.pos
	for s.pos < len(s.in) && isIdentChar(s.in[s.pos]) {
		s.pos++
	}
	return s.in[start:s.pos], nil
}

func (s *scanner) int() (int, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.in) && '0' <= s.in[s.pos] && s.in[s.pos] <= '9' {
		s.pos++
	}
	if start == s.pos {
		return 0, s.errorf("missing bus size")
	}
	return strconv.Atoi(s.in[start:s.pos])
}

// accept consumes c if it is the next non-space character.
func (s *scanner) accept(c byte) bool {
	s.skipSpace()
	if s.pos < len(s.in) && s.in[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) errorf(msg string) error {
	return errors.Errorf("in %q at pos %d: %s", s.in, s.pos+1, msg)
}

// ParseIO parses a pin specification string and returns the corresponding
// pins. Pin names are separated by commas and a bus width can be given
// between square brackets:
//
//	ParseIO("a, b, sel[2]") // returns []Pin{{"a", 1}, {"b", 1}, {"sel", 2}}
//
func ParseIO(spec string) ([]Pin, error) {
	var out []Pin
	s := &scanner{in: spec}
	if s.eof() {
		return nil, nil
	}
	seen := make(map[string]bool)
	for {
		name, err := s.ident()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, s.errorf("duplicate pin name " + name)
		}
		seen[name] = true
		bits := 1
		if s.accept('[') {
			if bits, err = s.int(); err != nil {
				return nil, err
			}
			if bits < 1 || bits > logicsim.MaxBits {
				return nil, s.errorf("invalid bus size")
			}
			if !s.accept(']') {
				return nil, s.errorf("missing close bracket")
			}
		}
		out = append(out, Pin{Name: name, Bits: bits})
		if s.eof() {
			return out, nil
		}
		if !s.accept(',') {
			return nil, s.errorf("expected comma or end of input")
		}
	}
}

// IO is like ParseIO but panics on error. It is meant to be used for static
// part specifications.
//
func IO(spec string) []Pin {
	ps, err := ParseIO(spec)
	if err != nil {
		panic(err)
	}
	return ps
}

// ParseConnections parses a connection configuration like "a=a, b=b, out=out"
// into a slice of Connection. An output pin can be connected to several nets
// by repeating it:
//
//	"a=x, b=y, out=z, out=w"
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	s := &scanner{in: c}
	if s.eof() {
		return nil, nil
	}
	for {
		pin, err := s.ident()
		if err != nil {
			return nil, err
		}
		if !s.accept('=') {
			return nil, s.errorf("expected '='")
		}
		net, err := s.ident()
		if err != nil {
			return nil, err
		}
		conns = append(conns, Connection{Pin: pin, Net: net})
		if s.eof() {
			return conns, nil
		}
		if !s.accept(',') {
			return nil, s.errorf("expected comma or end of input")
		}
	}
}
