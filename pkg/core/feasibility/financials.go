package feasibility

// CostBreakdown itemises the development cost.
type CostBreakdown struct {
	LandCost             float64 `json:"land_cost"`
	ConstructionCost     float64 `json:"construction_cost"`
	ProfessionalFees     float64 `json:"professional_fees"`
	MarketingContingency float64 `json:"marketing_contingency"`
	TotalCost            float64 `json:"total_cost"`
}

// Profitability is the outcome of revenue against cost. MarginPct is only
// meaningful when CalculateProfitability returned a nil error.
type Profitability struct {
	TotalProfit float64
	MarginPct   float64
}

// CalculateRevenue returns saleable area × sale price.
func CalculateRevenue(areas DerivedAreas, salePricePerSqFt float64) float64 {
	return areas.SaleableAreaSqFt * salePricePerSqFt
}

// AggregateCosts sums land, construction, professional fees and the
// revenue-linked marketing & contingency allowance.
func AggregateCosts(in ProjectInputs, areas DerivedAreas, totalRevenue float64) CostBreakdown {
	construction := areas.BuiltUpAreaSqFt * in.ConstructionCostPerSqFt()
	fees := construction * in.ProfessionalFeesPct()
	land := in.LandAreaSqMtr() * in.LandCostPerSqMtr()
	marketing := totalRevenue * in.MarketingContingencyPct()

	return CostBreakdown{
		LandCost:             land,
		ConstructionCost:     construction,
		ProfessionalFees:     fees,
		MarketingContingency: marketing,
		TotalCost:            land + construction + fees + marketing,
	}
}

// CalculateProfitability always fills TotalProfit; a loss is a valid result.
// The error is ErrDivisionUndefined when revenue is not positive, in which
// case the margin is left at zero and should be shown as N/A.
func CalculateProfitability(totalRevenue, totalCost float64) (Profitability, error) {
	res := Profitability{TotalProfit: totalRevenue - totalCost}
	margin, err := ProfitMargin(res.TotalProfit, totalRevenue)
	if err != nil {
		return res, err
	}
	res.MarginPct = margin
	return res, nil
}

// ProfitMargin returns profit / revenue × 100.
func ProfitMargin(totalProfit, totalRevenue float64) (float64, error) {
	if !(totalRevenue > 0) {
		return 0, undefinedDivisionf("profit margin requires positive revenue, got %v", totalRevenue)
	}
	return totalProfit / totalRevenue * 100, nil
}
