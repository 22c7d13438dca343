package report

import (
	"fmt"
	"strings"

	"realty_feasibility/pkg/core/feasibility"
)

// Text is the console summary.
func Text(rep *feasibility.Report) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "  %-28s %20s\n", label, value)
	}

	b.WriteString("PROJECT FEASIBILITY\n")
	b.WriteString("Areas\n")
	line("Built-up area (sq ft)", Area(rep.Areas.BuiltUpAreaSqFt))
	line("Saleable area (sq ft)", Area(rep.Areas.SaleableAreaSqFt))

	b.WriteString("Costs\n")
	line("Land", Money(rep.Costs.LandCost))
	line("Construction", Money(rep.Costs.ConstructionCost))
	line("Professional fees", Money(rep.Costs.ProfessionalFees))
	line("Marketing & contingency", Money(rep.Costs.MarketingContingency))

	b.WriteString("Summary\n")
	line("Total revenue", Money(rep.Summary.TotalRevenue))
	line("Total cost", Money(rep.Summary.TotalCost))
	line("Total profit", Money(rep.Summary.TotalProfit))
	line("Profit margin", Percent(rep.Summary.ProfitMarginPct))
	line("IRR", Percent(rep.Summary.IRRPct))

	fmt.Fprintf(&b, "Cash flows (%s)\n", policyLabel(rep.Options.Policy))
	for _, cf := range rep.CashFlows {
		line(fmt.Sprintf("Year %d", cf.Period), Money(cf.NetCashFlow))
	}

	for _, n := range rep.Notes {
		fmt.Fprintf(&b, "Note: %s\n", n)
	}
	return b.String()
}

func policyLabel(p feasibility.CashFlowPolicy) string {
	if p == "" {
		return string(feasibility.PolicyFrontLoaded)
	}
	return string(p)
}
