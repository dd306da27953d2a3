package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing variants.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TERMINATION VARIANT COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 76) + "\n")
	sb.WriteString(fmt.Sprintf("Base variant: %s\n", Label(compSet.BaseVariant)))
	sb.WriteString("\n")

	// Wide enough for the longest variant label plus the " (base)" suffix.
	nameWidth := 31
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Variant",
		numWidth, "Total",
		numWidth, "Notice days",
		numWidth, "vs base"))
	sb.WriteString(strings.Repeat("-", 76) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	for i := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
	}
	sb.WriteString(strings.Repeat("=", 76) + "\n")

	// Per-variant breakdowns.
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		sb.WriteString(fmt.Sprintf("\n%s:\n", Label(alt.Variant)))
		for _, item := range alt.LineItems {
			sb.WriteString(fmt.Sprintf("  %-34s %14s\n", item.Label, "R$ "+item.Amount.StringFixed(2)))
		}
	}

	if len(compSet.Notes) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 76) + "\n")
		for _, note := range compSet.Notes {
			sb.WriteString(fmt.Sprintf("- %s\n", note))
		}
	}

	return sb.String()
}

// formatRow formats a single variant row.
func (tf *TableFormatter) formatRow(result *VariantResult, nameWidth, numWidth int, isBase bool) string {
	name := Label(result.Variant)
	if isBase {
		name += " (base)"
	}

	vsBase := "-"
	if !isBase {
		vsBase = tf.deltaSymbol(result.DiffFromBase) + result.DiffFromBase.Abs().StringFixed(2)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.Total.StringFixed(2),
		numWidth, fmt.Sprintf("%d", result.NoticeDays),
		numWidth, vsBase)
}

// deltaSymbol returns a sign prefix for deltas.
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen.
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the comparison.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s R$ %s", Label(compSet.BaseVariant), compSet.BaseResult.Total.StringFixed(2)))

	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		change := "="
		if alt.DiffFromBase.IsPositive() {
			change = "+R$ " + alt.DiffFromBase.StringFixed(2)
		} else if alt.DiffFromBase.IsNegative() {
			change = "-R$ " + alt.DiffFromBase.Abs().StringFixed(2)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", Label(alt.Variant), change))
	}

	return sb.String()
}
