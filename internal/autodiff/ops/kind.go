package ops

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies the operation that produced a node. None marks a leaf.
type Kind uint8

// Supported operation kinds.
const (
	None Kind = iota
	Add
	Sub
	Mul
	Neg
	Tanh
	Exp
	Sigmoid
	ReLU
	Sum
	numKinds
)

// Variadic is the arity of kinds that accept any positive number of inputs.
const Variadic = -1

// ErrUnknownOp is returned when an operation name or kind is not supported.
var ErrUnknownOp = errors.New("unknown operation")

type kindInfo struct {
	name   string
	symbol string
	arity  int
}

var kinds = [numKinds]kindInfo{
	None:    {"none", "", 0},
	Add:     {"add", "+", 2},
	Sub:     {"sub", "-", 2},
	Mul:     {"mul", "*", 2},
	Neg:     {"neg", "neg", 1},
	Tanh:    {"tanh", "tanh", 1},
	Exp:     {"exp", "exp", 1},
	Sigmoid: {"sigmoid", "σ", 1},
	ReLU:    {"relu", "relu", 1},
	Sum:     {"sum", "Σ", Variadic},
}

// Valid reports whether k is a known kind, None included.
func (k Kind) Valid() bool {
	return k < numKinds
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kinds[k].name
}

// Symbol returns the short display form used by renderers ("+", "*", "tanh").
func (k Kind) Symbol() string {
	if !k.Valid() {
		return "?"
	}
	return kinds[k].symbol
}

// Arity returns the number of inputs k takes, or Variadic.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].arity
}

// AcceptsArity reports whether a node of kind k may have n operands.
func (k Kind) AcceptsArity(n int) bool {
	if !k.Valid() {
		return false
	}
	if k.Arity() == Variadic {
		return n >= 1
	}
	return n == k.Arity()
}

// ParseKind resolves an operation by name or symbol, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := Add; k < numKinds; k++ {
		if s == kinds[k].name || s == kinds[k].symbol {
			return k, nil
		}
	}
	return None, errors.Wrapf(ErrUnknownOp, "%q", s)
}
