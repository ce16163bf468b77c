package cpu

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"; hello",
		".a: nop ; trailing",
		"",
		"  addb &1 2",
		".b",
	}

	tree, err := Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Node{
		&Comment{LineNo: 1, Text: "hello"},
		&Label{LineNo: 2, Column: 1, Name: ".a"},
		&Cmd{LineNo: 2, Column: 5, Mnemonic: "nop"},
		&Comment{LineNo: 2, Text: "trailing"},
		&Cmd{LineNo: 4, Column: 3, Mnemonic: "addb", Args: []Value{
			{Kind: VALUE_ADDRESS, Text: "&1", Bits: 1, Column: 8},
			{Kind: VALUE_SIGNED, Text: "2", Bits: 2, Column: 11},
		}},
		&Label{LineNo: 5, Column: 1, Name: ".b"},
	}

	assert.Equal(expected, tree.Nodes)
}

func TestParse_Empty(t *testing.T) {
	assert := assert.New(t)

	tree, err := Parse(strings.NewReader("\n\n  \n"))
	assert.NoError(err)
	assert.Equal(0, len(tree.Nodes))
}

func TestParse_Values(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		kind ValueKind
		bits uint64
		name string
	}){
		{"42", VALUE_SIGNED, 42, ""},
		{"010", VALUE_SIGNED, 10, ""},
		{"-1", VALUE_SIGNED, math.MaxUint64, ""},
		{"0x10", VALUE_SIGNED, 16, ""},
		{"0b101", VALUE_SIGNED, 5, ""},
		{"18446744073709551615", VALUE_UNSIGNED, math.MaxUint64, ""},
		{"1.5", VALUE_FLOAT, uint64(math.Float32bits(1.5)), ""},
		{"&100", VALUE_ADDRESS, 100, ""},
		{"&0x20", VALUE_ADDRESS, 32, ""},
		{".label", VALUE_LABEL, 0, ".label"},
		{`"hi there"`, VALUE_STRING, 0, "hi there"},
		{"$(1 + 2)", VALUE_SIGNED, 3, ""},
		{"$((1+2)*3)", VALUE_SIGNED, 9, ""},
		{"$(len(\"a)b\") + (2 * (3 + 4)))", VALUE_SIGNED, 17, ""},
		{"$(PAGE_SIZE * 2)", VALUE_SIGNED, 8192, ""},
		{"$(LINENO)", VALUE_SIGNED, 1, ""},
		{"$(0.5)", VALUE_FLOAT, uint64(math.Float32bits(0.5)), ""},
		{"&$(IMAGE_BASE + 1)", VALUE_ADDRESS, 65, ""},
	}

	for _, entry := range table {
		tree, err := Parse(strings.NewReader("datw " + entry.text))
		assert.NoError(err, entry.text)
		if err != nil {
			continue
		}
		cmd := tree.Nodes[0].(*Cmd)
		assert.Equal(1, len(cmd.Args), entry.text)
		value := cmd.Args[0]
		assert.Equal(entry.kind, value.Kind, entry.text)
		assert.Equal(entry.bits, value.Bits, entry.text)
		assert.Equal(entry.name, value.Name, entry.text)
		assert.Equal(entry.text, value.Text, entry.text)
	}
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		err    error
	}){
		{"1abc", ErrCharUnexpected('1')},
		{"@foo", ErrCharUnexpected('@')},
		{`"text"`, ErrCharUnexpected('"')},
		{`datb "abc`, ErrStringUnterminated},
		{"datw 12abc", ErrParseNumber("12abc")},
		{"datw 0xfg", ErrParseNumber("0xfg")},
		{"datw &xyz", ErrParseAddress("&xyz")},
		{"datw &", ErrParseAddress("&")},
		{"datw $(1 +)", ErrParseExpression("1 +")},
		{"datw $(1", ErrParseExpression("1")},
		{"datw $((1 + 2) ; comment", ErrParseExpression("(1 + 2) ")},
		{"datw $(1)2", ErrParseExpression("1)2")},
		{`datw $("str")`, ErrParseExpression(`"str"`)},
		{"datw $(UNDEFINED)", ErrParseExpression("UNDEFINED")},
		{"datw $foo", ErrCharUnexpected('$')},
		{"datw &$(1.5)", ErrParseAddress("&$(1.5)")},
		{"datw @", ErrCharUnexpected('@')},
	}

	for _, entry := range table {
		tree, err := Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.source)
		assert.Nil(tree, entry.source)

		var syntax *ErrSyntax
		assert.True(errors.As(err, &syntax), entry.source)
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(strings.NewReader("nop\n  datw 1 zz ; comment\nnop"))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	if syntax == nil {
		return
	}

	assert.Equal(2, syntax.LineNo)
	assert.Equal(10, syntax.Column)
	assert.Equal("  datw 1 zz ; comment", syntax.Text)
	assert.ErrorIs(err, ErrCharUnexpected('z'))
}

func TestParser_Defines(t *testing.T) {
	assert := assert.New(t)

	parser := &Parser{
		Defines: func(yield func(string, uint64) bool) {
			_ = yield("BASE", 0x100) && yield("LINENO", 99)
		},
	}

	tree, err := parser.Parse(strings.NewReader("\ndatw $(BASE + LINENO)"))
	assert.NoError(err)
	if err != nil {
		return
	}

	cmd := tree.Nodes[0].(*Cmd)
	assert.Equal(uint64(0x102), cmd.Args[0].Bits)

	tree, err = parser.Parse(strings.NewReader("cpyb &100 $((BASE + 2) * 3)"))
	assert.NoError(err)
	if err != nil {
		return
	}

	cmd = tree.Nodes[0].(*Cmd)
	assert.Equal(2, len(cmd.Args))
	assert.Equal(uint64(0x306), cmd.Args[1].Bits)
	assert.Equal(11, cmd.Args[1].Column)
}

func TestParse_MnemonicCase(t *testing.T) {
	assert := assert.New(t)

	tree, err := Parse(strings.NewReader("ADDB ._zero 1\nXit"))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal("addb", tree.Nodes[0].(*Cmd).Mnemonic)
	assert.Equal("xit", tree.Nodes[1].(*Cmd).Mnemonic)
}
