// Package report renders a feasibility.Report for people: console text,
// Markdown/HTML, an XLSX workbook and a one-page PDF.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"realty_feasibility/pkg/core/feasibility"
)

const NotAvailable = "N/A"

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Money rounds to two decimals half away from zero. Amounts are plain
// numbers; no currency symbol or locale grouping is applied.
func Money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// Area rounds square footage to one decimal.
func Area(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1)
}

// Percent formats an optional percentage, N/A when undefined.
func Percent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return decimal.NewFromFloat(*v).Round(2).StringFixed(2) + "%"
}

// Write renders rep to w in the requested format.
func Write(w io.Writer, rep *feasibility.Report, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(rep))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(rep))
		return err
	case FormatHTML:
		html, err := HTML(rep)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
