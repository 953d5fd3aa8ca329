package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPriceList(t *testing.T) {
	res := DetectPriceList("Прайс-лист", "Mini Pudding 13gx100pcsx6jars\nHALLEY 300 гр Х 12 шт", "", nil)
	assert.True(t, res.IsPriceList)
	assert.Equal(t, "rules_positive", res.Reason)

	res = DetectPriceList("", "", "", []string{"stock.xlsx"})
	assert.False(t, res.IsPriceList)

	res = DetectPriceList("Lunch on Friday?", "See you at 12", "", nil)
	assert.False(t, res.IsPriceList)
	assert.Zero(t, res.Score)
}
