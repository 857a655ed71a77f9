package agg

import (
	"strings"

	"github.com/sastops/ehc/schema"
)

// ClassifyOrigin folds a free-text origin string into its canonical bucket.
// The first key in schema.OriginKeys that is a prefix of the input wins;
// nothing matching falls back to Other. Matching is by enumeration order,
// not longest match.
func ClassifyOrigin(origin string) schema.OriginKey {
	for _, key := range schema.OriginKeys {
		if strings.HasPrefix(origin, string(key)) {
			return key
		}
	}
	return schema.OriginOther
}
