package agg

import "github.com/sastops/ehc/schema"

// binThresholds pairs each bin with its inclusive upper bound. The final
// open-ended bin is handled by the fallthrough in SizeBinFor.
var binThresholds = []struct {
	limit int64
	bin   schema.SizeBin
}{
	{20_000, schema.Bin0to20k},
	{50_000, schema.Bin20kto50k},
	{100_000, schema.Bin50kto100k},
	{250_000, schema.Bin100kto250k},
	{500_000, schema.Bin250kto500k},
	{1_000_000, schema.Bin500kto1M},
	{2_000_000, schema.Bin1Mto2M},
	{3_000_000, schema.Bin2Mto3M},
	{5_000_000, schema.Bin3Mto5M},
	{7_000_000, schema.Bin5Mto7M},
	{10_000_000, schema.Bin7Mto10M},
}

// SizeBinFor maps a line count to its size bin. Total over non-negative
// inputs; never fails.
func SizeBinFor(loc int64) schema.SizeBin {
	for _, t := range binThresholds {
		if loc <= t.limit {
			return t.bin
		}
	}
	return schema.Bin10MPlus
}
