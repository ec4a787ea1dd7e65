// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package xges

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedStructure is returned by ParseStructure.
var ErrMalformedStructure = errors.New("malformed structure")

// Field is one typed entry of a Structure.
type Field struct {
	Name  string
	Type  string
	Value string
}

// Structure is the serialized GstStructure used by XGES attributes such as
// properties, metadatas and children-properties.
type Structure struct {
	Name   string
	Fields []Field
}

// NewStructure creates an empty structure.
func NewStructure(name string) *Structure {
	return &Structure{Name: name}
}

// Set adds or replaces a field.
func (s *Structure) Set(name, typ, value string) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i] = Field{name, typ, value}
			return
		}
	}
	s.Fields = append(s.Fields, Field{name, typ, value})
}

// Get returns the named field.
func (s *Structure) Get(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// GetString returns the value of a string-typed field.
func (s *Structure) GetString(name string) (string, bool) {
	f, ok := s.Get(name)
	if !ok || f.Type != "string" {
		return "", false
	}
	return f.Value, true
}

// String serializes the structure, e.g.
// `properties, text=(string)"Hello\ world", halignment=(int)1;`.
func (s *Structure) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, f := range s.Fields {
		b.WriteString(", ")
		b.WriteString(f.Name)
		b.WriteString("=(")
		b.WriteString(f.Type)
		b.WriteString(")")
		if f.Type == "string" {
			b.WriteString(`"`)
			b.WriteString(escapeGstString(f.Value))
			b.WriteString(`"`)
		} else {
			b.WriteString(f.Value)
		}
	}
	b.WriteString(";")
	return b.String()
}

// ParseStructure parses a serialized GstStructure. Values may be quoted or
// bare; backslash escapes are resolved in both.
func ParseStructure(str string) (*Structure, error) {
	p := &structParser{s: strings.TrimSpace(str)}

	name := p.until(",;", true)
	if name == "" {
		return nil, errors.Wrapf(ErrMalformedStructure, "missing name in %q", str)
	}
	st := NewStructure(name)

	for {
		p.skipSpace()
		if p.done() {
			return st, nil
		}
		switch p.next() {
		case ';':
			return st, nil
		case ',':
		default:
			return nil, errors.Wrapf(ErrMalformedStructure, "expected ',' at %d in %q", p.pos-1, str)
		}
		p.skipSpace()
		if p.done() || p.peek() == ';' {
			continue
		}

		field, err := p.field()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", str)
		}
		st.Fields = append(st.Fields, field)
	}
}

type structParser struct {
	s   string
	pos int
}

func (p *structParser) done() bool { return p.pos >= len(p.s) }
func (p *structParser) peek() byte { return p.s[p.pos] }

func (p *structParser) next() byte {
	c := p.s[p.pos]
	p.pos++
	return c
}

func (p *structParser) skipSpace() {
	for !p.done() && p.peek() == ' ' {
		p.pos++
	}
}

// until reads up to (not including) any unescaped byte of stop, resolving
// escapes. With trim, unescaped trailing spaces are dropped.
func (p *structParser) until(stop string, trim bool) string {
	var b []byte
	keep := 0
	for !p.done() {
		c := p.peek()
		if c == '\\' && p.pos+1 < len(p.s) {
			b = append(b, p.s[p.pos+1])
			p.pos += 2
			keep = len(b)
			continue
		}
		if strings.IndexByte(stop, c) >= 0 {
			break
		}
		b = append(b, c)
		p.pos++
		if c != ' ' {
			keep = len(b)
		}
	}
	if trim {
		b = b[:keep]
	}
	return string(b)
}

func (p *structParser) field() (Field, error) {
	name := p.until("=,;", true)
	if name == "" || p.done() || p.next() != '=' {
		return Field{}, errors.Wrapf(ErrMalformedStructure, "field without value near %d", p.pos)
	}

	var typ string
	if !p.done() && p.peek() == '(' {
		p.pos++
		typ = p.until(")", true)
		if p.done() {
			return Field{}, errors.Wrapf(ErrMalformedStructure, "unterminated type of %q", name)
		}
		p.pos++
	}

	p.skipSpace()
	if !p.done() && p.peek() == '"' {
		p.pos++
		value := p.until(`"`, false)
		if p.done() {
			return Field{}, errors.Wrapf(ErrMalformedStructure, "unterminated string value of %q", name)
		}
		p.pos++
		return Field{name, typ, value}, nil
	}
	return Field{name, typ, p.until(",;", true)}, nil
}

// escapeGstString escapes strings for GStreamer structures
func escapeGstString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, ` `, `\ `)
	s = strings.ReplaceAll(s, `,`, `\,`)
	return s
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "t":
		return true, nil
	case "false", "no", "0", "f":
		return false, nil
	}
	return false, errors.Errorf("invalid boolean %q", s)
}

func formatBool(b bool) string { return strconv.FormatBool(b) }
