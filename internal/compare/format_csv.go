package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"Total",
		"Notice Days",
		"Diff from Base",
		"% Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a variant result as a CSV row.
func (cf *CSVFormatter) formatRow(result *VariantResult, variantType string) []string {
	return []string{
		string(result.Variant),
		variantType,
		result.Total.StringFixed(2),
		fmt.Sprintf("%d", result.NoticeDays),
		result.DiffFromBase.StringFixed(2),
		result.PctFromBase.StringFixed(1),
	}
}
