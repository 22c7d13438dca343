package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"realty_feasibility/pkg/core/feasibility"
)

const (
	SummarySheet   = "Summary"
	CashFlowSheet  = "Cash Flows"
	numberFmtMoney = "#,##0.00"
)

// WriteXLSX writes a two-sheet workbook: the summary and the yearly cash
// flows. Values are stored as numbers so the sheet can be recomputed.
func WriteXLSX(w io.Writer, rep *feasibility.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if _, err := f.NewSheet(CashFlowSheet); err != nil {
		return fmt.Errorf("failed to create cash flow sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(numberFmtMoney)})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Built-up area (sq ft)", rep.Areas.BuiltUpAreaSqFt},
		{"Saleable area (sq ft)", rep.Areas.SaleableAreaSqFt},
		{"Land cost", rep.Costs.LandCost},
		{"Construction cost", rep.Costs.ConstructionCost},
		{"Professional fees", rep.Costs.ProfessionalFees},
		{"Marketing & contingency", rep.Costs.MarketingContingency},
		{"Total revenue", rep.Summary.TotalRevenue},
		{"Total cost", rep.Summary.TotalCost},
		{"Total profit", rep.Summary.TotalProfit},
		{"Profit margin (%)", optional(rep.Summary.ProfitMarginPct)},
		{"IRR (%)", optional(rep.Summary.IRRPct)},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	f.SetCellStyle(SummarySheet, "A1", "B1", headerStyle)
	f.SetCellStyle(SummarySheet, "B2", fmt.Sprintf("B%d", len(rows)), moneyStyle)
	f.SetColWidth(SummarySheet, "A", "A", 28)
	f.SetColWidth(SummarySheet, "B", "B", 20)

	f.SetSheetRow(CashFlowSheet, "A1", &[]interface{}{"Year", "Net cash flow", "Discounted at IRR"})
	for i, cf := range rep.CashFlows {
		row := []interface{}{cf.Period, cf.NetCashFlow, ""}
		if rep.IRR != nil {
			row[2] = cf.NetCashFlow / math.Pow(1+rep.IRR.Rate, float64(cf.Period))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(CashFlowSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write cash flow row %d: %w", i, err)
		}
	}
	last := len(rep.CashFlows) + 1
	f.SetCellStyle(CashFlowSheet, "A1", "C1", headerStyle)
	f.SetCellStyle(CashFlowSheet, "B2", fmt.Sprintf("C%d", last), moneyStyle)
	f.SetCellValue(CashFlowSheet, fmt.Sprintf("A%d", last+1), "Total")
	f.SetCellFormula(CashFlowSheet, fmt.Sprintf("B%d", last+1), fmt.Sprintf("SUM(B2:B%d)", last))
	f.SetColWidth(CashFlowSheet, "B", "C", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return NotAvailable
	}
	return *v
}

func strPtr(s string) *string { return &s }
