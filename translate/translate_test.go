package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("address 0x40", From("address 0x%x", 64))
	assert.Equal("addb operand 2 cannot be string", From("%v operand %d cannot be %v", "addb", 2, "string"))
}
