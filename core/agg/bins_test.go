package agg

import (
	"testing"

	"github.com/sastops/ehc/schema"
	"github.com/stretchr/testify/assert"
)

func TestSizeBinFor(t *testing.T) {
	tests := []struct {
		loc  int64
		want schema.SizeBin
	}{
		{0, schema.Bin0to20k},
		{19_999, schema.Bin0to20k},
		{20_000, schema.Bin0to20k}, // upper bounds are inclusive
		{20_001, schema.Bin20kto50k},
		{50_000, schema.Bin20kto50k},
		{50_001, schema.Bin50kto100k},
		{100_001, schema.Bin100kto250k},
		{250_001, schema.Bin250kto500k},
		{500_001, schema.Bin500kto1M},
		{1_000_001, schema.Bin1Mto2M},
		{2_000_001, schema.Bin2Mto3M},
		{3_000_001, schema.Bin3Mto5M},
		{5_000_001, schema.Bin5Mto7M},
		{7_000_001, schema.Bin7Mto10M},
		{10_000_000, schema.Bin7Mto10M},
		{10_000_001, schema.Bin10MPlus},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SizeBinFor(tt.loc), "loc %d", tt.loc)
	}
}
