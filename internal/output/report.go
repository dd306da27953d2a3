package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ReportGenerator renders calculation responses in various formats.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to stdout.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Out: os.Stdout}
}

// GenerateReport renders a response in the given format.
func GenerateReport(resp *domain.CalculationResponse, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.GenerateConsoleReport(resp)
	case "json":
		return generator.GenerateJSONReport(resp)
	case "csv":
		return generator.GenerateCSVReport(resp)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport renders a labelled breakdown with the total,
// effective rates and applied assumptions.
func (rg *ReportGenerator) GenerateConsoleReport(resp *domain.CalculationResponse) error {
	fmt.Fprintln(rg.Out, "==============================================")
	fmt.Fprintln(rg.Out, "SETTLEMENT CALCULATION RESULT")
	fmt.Fprintln(rg.Out, "==============================================")
	fmt.Fprintf(rg.Out, "Status: %s\n", resp.Status)
	if resp.Status != domain.StatusOK {
		if resp.Message != "" {
			fmt.Fprintf(rg.Out, "Detail: %s\n", resp.Message)
		}
		for _, f := range resp.MissingFields {
			fmt.Fprintf(rg.Out, "Missing: %s\n", f)
		}
		return nil
	}
	fmt.Fprintln(rg.Out)
	for _, item := range resp.LineItems {
		fmt.Fprintf(rg.Out, "%-36s %14s\n", item.Label, FormatCurrency(item.Amount))
	}
	fmt.Fprintln(rg.Out, "----------------------------------------------")
	fmt.Fprintf(rg.Out, "%-36s %14s\n", "Total", FormatCurrency(resp.Total))
	if len(resp.EffectiveRatesUsed) > 0 {
		fmt.Fprintln(rg.Out)
		names := make([]string, 0, len(resp.EffectiveRatesUsed))
		for name := range resp.EffectiveRatesUsed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rate := resp.EffectiveRatesUsed[name]
			fmt.Fprintf(rg.Out, "%-36s %14s\n", name, FormatPercentage(rate.Mul(decimal.NewFromInt(100))))
		}
	}
	if len(resp.AssumptionsApplied) > 0 {
		fmt.Fprintln(rg.Out)
		fmt.Fprintln(rg.Out, "Assumptions applied:")
		for _, a := range resp.AssumptionsApplied {
			fmt.Fprintf(rg.Out, "  - %s\n", a)
		}
	}
	return nil
}

// GenerateJSONReport renders the response as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(resp *domain.CalculationResponse) error {
	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rg.Out, string(jsonData))
	return err
}

// GenerateCSVReport renders the line items as label/amount rows.
func (rg *ReportGenerator) GenerateCSVReport(resp *domain.CalculationResponse) error {
	writer := csv.NewWriter(rg.Out)
	defer writer.Flush()

	if err := writer.Write([]string{"Label", "Amount"}); err != nil {
		return err
	}
	for _, item := range resp.LineItems {
		if err := writer.Write([]string{item.Label, item.Amount.StringFixed(2)}); err != nil {
			return err
		}
	}
	return writer.Write([]string{"Total", resp.Total.StringFixed(2)})
}

// SaveYAML writes any document as YAML, used by the example command.
func SaveYAML(doc interface{}, filename string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
