package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"realty_feasibility/pkg/core/feasibility"
)

// WritePDF lays the summary and cash flow table out on a single A4 page.
func WritePDF(w io.Writer, rep *feasibility.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(180, 10, "Project Feasibility")
	pdf.Ln(14)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(180, 8, title, "", 1, "L", true, 0, "")
		pdf.Ln(1)
	}
	row := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(100, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, value, "", 1, "R", false, 0, "")
	}

	section("Areas")
	row("Built-up area (sq ft)", Area(rep.Areas.BuiltUpAreaSqFt))
	row("Saleable area (sq ft)", Area(rep.Areas.SaleableAreaSqFt))
	pdf.Ln(3)

	section("Costs")
	row("Land", Money(rep.Costs.LandCost))
	row("Construction", Money(rep.Costs.ConstructionCost))
	row("Professional fees", Money(rep.Costs.ProfessionalFees))
	row("Marketing & contingency", Money(rep.Costs.MarketingContingency))
	pdf.Ln(3)

	section("Summary")
	row("Total revenue", Money(rep.Summary.TotalRevenue))
	row("Total cost", Money(rep.Summary.TotalCost))
	row("Total profit", Money(rep.Summary.TotalProfit))
	row("Profit margin", Percent(rep.Summary.ProfitMarginPct))
	row("IRR", Percent(rep.Summary.IRRPct))
	pdf.Ln(3)

	section(fmt.Sprintf("Cash flows (%s)", policyLabel(rep.Options.Policy)))
	for _, cf := range rep.CashFlows {
		row(fmt.Sprintf("Year %d", cf.Period), Money(cf.NetCashFlow))
	}

	if len(rep.Notes) > 0 {
		pdf.Ln(3)
		section("Notes")
		pdf.SetFont("Arial", "", 9)
		for _, n := range rep.Notes {
			pdf.MultiCell(180, 5, n, "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
