package report

import (
	"fmt"
	"strings"

	"realty_feasibility/pkg/core/feasibility"
	"realty_feasibility/pkg/core/utils"
)

// Markdown renders the report as GitHub-flavoured Markdown tables.
func Markdown(rep *feasibility.Report) string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "| %s | %s |\n", label, value)
	}

	b.WriteString("# Project Feasibility\n\n")

	b.WriteString("## Inputs\n\n| Parameter | Value |\n|---|---|\n")
	in := rep.Inputs
	row("Land area (sq m)", fmt.Sprintf("%g", in.LandAreaSqMtr))
	row("Land cost per sq m", Money(in.LandCostPerSqMtr))
	row("Construction cost per sq ft", Money(in.ConstructionCostPerSqFt))
	row("Professional fees", fmt.Sprintf("%g%%", in.ProfessionalFeesPct*100))
	row("Marketing & contingency", fmt.Sprintf("%g%%", in.MarketingContingencyPct*100))
	row("Permissible FSI", fmt.Sprintf("%g", in.PermissibleFSI))
	row("Efficiency ratio", fmt.Sprintf("%g", in.EfficiencyRatio))
	row("Sale price per sq ft", Money(in.SalePricePerSqFt))
	row("Duration (years)", fmt.Sprintf("%d", in.ProjectDurationYears))

	b.WriteString("\n## Areas\n\n| Area | sq ft |\n|---|---|\n")
	row("Built-up", Area(rep.Areas.BuiltUpAreaSqFt))
	row("Saleable", Area(rep.Areas.SaleableAreaSqFt))

	b.WriteString("\n## Costs\n\n| Item | Amount |\n|---|---|\n")
	row("Land", Money(rep.Costs.LandCost))
	row("Construction", Money(rep.Costs.ConstructionCost))
	row("Professional fees", Money(rep.Costs.ProfessionalFees))
	row("Marketing & contingency", Money(rep.Costs.MarketingContingency))
	row("**Total**", Money(rep.Costs.TotalCost))

	b.WriteString("\n## Summary\n\n| Metric | Value |\n|---|---|\n")
	row("Total revenue", Money(rep.Summary.TotalRevenue))
	row("Total cost", Money(rep.Summary.TotalCost))
	row("Total profit", Money(rep.Summary.TotalProfit))
	row("Profit margin", Percent(rep.Summary.ProfitMarginPct))
	row("IRR", Percent(rep.Summary.IRRPct))

	fmt.Fprintf(&b, "\n## Cash Flows (%s)\n\n| Year | Net cash flow |\n|---|---|\n", policyLabel(rep.Options.Policy))
	for _, cf := range rep.CashFlows {
		row(fmt.Sprintf("%d", cf.Period), Money(cf.NetCashFlow))
	}

	if len(rep.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, n := range rep.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return b.String()
}

// HTML is Markdown rendered through goldmark inside a minimal page.
func HTML(rep *feasibility.Report) (string, error) {
	body, err := utils.MarkdownToHTML(Markdown(rep))
	if err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Project Feasibility</title></head><body>\n" +
		body + "</body></html>\n", nil
}
