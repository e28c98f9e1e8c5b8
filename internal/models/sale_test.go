package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleItems(t *testing.T) {
	lines, err := ParseSaleItems("5:2,7:1")
	require.NoError(t, err)
	assert.Equal(t, []SaleLine{
		{VariantID: 5, Quantity: 2},
		{VariantID: 7, Quantity: 1},
	}, lines)
}

func TestParseSaleItemsWhitespaceAndTrailingComma(t *testing.T) {
	lines, err := ParseSaleItems(" 5 : 2 , 7:1 ,")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestParseSaleItemsRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"5",
		"5:2:1",
		"abc:2",
		"5:xyz",
		"0:2",
		"5:0",
		"5:-1",
		"-5:2",
		",",
	}

	for _, input := range cases {
		_, err := ParseSaleItems(input)
		assert.Error(t, err, "input %q", input)
	}
}
