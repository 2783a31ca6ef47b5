package decl

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/typeclass/internal/typesystem"
)

// ParseType reads a type expression in the surface syntax:
//
//	Int
//	List<a>
//	Map<k, Pair<a, b>>
//	f<a>
//
// A name starting with a lowercase letter is a type variable, anything
// else is a nominal constructor. Applications use angle brackets.
func ParseType(src string) (typesystem.Type, error) {
	p := &typeParser{src: src}
	p.skipSpaces()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, p.src)
	}
	return t, nil
}

// ParseTypes reads a sequence of type expressions.
func ParseTypes(srcs []string) ([]typesystem.Type, error) {
	types := make([]typesystem.Type, len(srcs))
	for i, src := range srcs {
		t, err := ParseType(src)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// ParseConstraint converts a ConstraintDecl into a typesystem.Constraint.
func ParseConstraint(c ConstraintDecl) (typesystem.Constraint, error) {
	args, err := ParseTypes(c.Args)
	if err != nil {
		return typesystem.Constraint{}, fmt.Errorf("constraint %s: %v", c.Class, err)
	}
	return typesystem.Constraint{Class: c.Class, Args: args}, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parseType() (typesystem.Type, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var head typesystem.Type
	if isVarName(name) {
		head = typesystem.TVar{Name: name}
	} else {
		head = typesystem.TCon{Name: name}
	}

	p.skipSpaces()
	if !p.consume('<') {
		return head, nil
	}

	args := []typesystem.Type{}
	for {
		p.skipSpaces()
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpaces()
		if p.consume(',') {
			continue
		}
		if p.consume('>') {
			break
		}
		return nil, fmt.Errorf("expected ',' or '>' at offset %d in type %q", p.pos, p.src)
	}

	return typesystem.TApp{Constructor: head, Args: args}, nil
}

func (p *typeParser) parseName() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		if p.pos >= len(p.src) {
			return "", fmt.Errorf("unexpected end of type %q", p.src)
		}
		return "", fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, p.src)
	}
	return p.src[start:p.pos], nil
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) skipSpaces() {
	p.pos += len(p.src[p.pos:]) - len(strings.TrimLeft(p.src[p.pos:], " \t"))
}

func isVarName(name string) bool {
	r := rune(name[0])
	return unicode.IsLower(r)
}
