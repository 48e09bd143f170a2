package csl

import "errors"

// Symbol is a named constant declared in a search space. Constants may be
// used inside constraint bodies and range bounds but are never arguments.
type Symbol struct {
	name    string
	kind    Type
	literal string
}

// NewSymbol creates a constant, validating the literal against kind.
func NewSymbol(name string, kind Type, literal string) (*Symbol, error) {
	if name == "" {
		return nil, errors.New("constant name must not be empty")
	}
	if err := validateLiteral(kind, literal); err != nil {
		return nil, err
	}
	return &Symbol{name: name, kind: kind, literal: literal}, nil
}

func (s *Symbol) Name() string    { return s.name }
func (s *Symbol) Kind() Type      { return s.kind }
func (s *Symbol) Literal() string { return s.literal }
