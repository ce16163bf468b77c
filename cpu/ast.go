package cpu

import (
	"fmt"
	"math"
	"strings"
)

// ValueKind is the classification of an operand literal.
type ValueKind int

const (
	VALUE_LABEL    = ValueKind(iota) // label
	VALUE_ADDRESS                    // address
	VALUE_SIGNED                     // signed integer
	VALUE_UNSIGNED                   // unsigned integer
	VALUE_FLOAT                      // float
	VALUE_STRING                     // string
)

var valueKindName = [...]string{
	VALUE_LABEL:    "label",
	VALUE_ADDRESS:  "address",
	VALUE_SIGNED:   "signed integer",
	VALUE_UNSIGNED: "unsigned integer",
	VALUE_FLOAT:    "float",
	VALUE_STRING:   "string",
}

func (kind ValueKind) String() string {
	if int(kind) < len(valueKindName) {
		return f(valueKindName[kind])
	}
	return fmt.Sprintf("ValueKind(%d)", int(kind))
}

// Value is a single operand literal.
type Value struct {
	Kind   ValueKind
	Text   string // Source text.
	Name   string // Label name, or string contents.
	Bits   uint64 // Address, two's complement integer, or float32 bits.
	Column int    // Source column, 1 based.
}

// IsAddress is true for values that encode as an 8 byte address.
func (v Value) IsAddress() bool {
	return v.Kind == VALUE_LABEL || v.Kind == VALUE_ADDRESS
}

// IsInteger is true for integer literals.
func (v Value) IsInteger() bool {
	return v.Kind == VALUE_SIGNED || v.Kind == VALUE_UNSIGNED
}

// Float returns the value of a float literal.
func (v Value) Float() float32 {
	return math.Float32frombits(uint32(v.Bits))
}

func (v Value) String() string {
	switch v.Kind {
	case VALUE_LABEL:
		return v.Name
	case VALUE_ADDRESS:
		return fmt.Sprintf("&%d", v.Bits)
	case VALUE_SIGNED:
		return fmt.Sprintf("%d", int64(v.Bits))
	case VALUE_UNSIGNED:
		return fmt.Sprintf("%d", v.Bits)
	case VALUE_FLOAT:
		return fmt.Sprintf("%v", v.Float())
	case VALUE_STRING:
		return fmt.Sprintf("%q", v.Name)
	}

	return v.Text
}

// Node is an element of the syntax tree.
type Node interface {
	Line() int
}

// Tree is the ordered list of top level nodes of a source file.
type Tree struct {
	Name  string
	Nodes []Node
}

// Cmd is an instruction or data directive.
type Cmd struct {
	LineNo   int
	Column   int
	Mnemonic string // Lower case.
	Args     []Value
}

func (cmd *Cmd) Line() int { return cmd.LineNo }

// Words returns the textual form of the command.
func (cmd *Cmd) Words() (words []string) {
	words = append(words, cmd.Mnemonic)
	for _, arg := range cmd.Args {
		words = append(words, arg.Text)
	}

	return
}

func (cmd *Cmd) String() string {
	return strings.Join(cmd.Words(), " ")
}

// Label names the address of the next instruction.
type Label struct {
	LineNo int
	Column int
	Name   string
}

func (label *Label) Line() int { return label.LineNo }

// Comment is source text that is never compiled.
type Comment struct {
	LineNo int
	Text   string
}

func (comment *Comment) Line() int { return comment.LineNo }
