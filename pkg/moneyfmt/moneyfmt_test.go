package moneyfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biztrack/biztrack-api/pkg/moneyfmt"
)

func TestComma(t *testing.T) {
	assert.Equal(t, "0", moneyfmt.Comma(0))
	assert.Equal(t, "999", moneyfmt.Comma(999))
	assert.Equal(t, "1,234", moneyfmt.Comma(1234))
	assert.Equal(t, "2,000,000", moneyfmt.Comma(2000000))
	assert.Equal(t, "-15,300", moneyfmt.Comma(-15300))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "MK", moneyfmt.Symbol("MWK"))
	assert.Equal(t, "$", moneyfmt.Symbol("USD"))
	assert.Equal(t, "$", moneyfmt.Symbol(""), "moneda desconocida cae al símbolo por defecto")
	assert.Equal(t, "$", moneyfmt.Symbol("XYZ"))
}
