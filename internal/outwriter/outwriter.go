// Package outwriter turns the statistics bundle into report sections and
// persists them to CSV files and spreadsheet cells.
package outwriter

import (
	"fmt"

	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/schema"
)

// WriteAll fans the sections out to every enabled writer. A failure on one
// section is reported and the remaining sections still go out; the returned
// count is how many section writes failed across all writers.
func WriteAll(sections []schema.Section, writers ...contract.SectionWriter) int {
	failures := 0
	for i := range sections {
		sec := &sections[i]
		for _, w := range writers {
			if err := w.WriteSection(sec); err != nil {
				contract.LogWarn(fmt.Sprintf("Skipping section %s", sec.Name), err)
				failures++
			}
		}
	}
	return failures
}
