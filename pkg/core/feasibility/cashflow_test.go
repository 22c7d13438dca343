package feasibility

import (
	"errors"
	"math"
	"testing"
)

func sampleCosts() (CostBreakdown, float64) {
	costs := CostBreakdown{
		LandCost:             150000000,
		ConstructionCost:     86111200,
		ProfessionalFees:     4305560,
		MarketingContingency: 36597260,
	}
	costs.TotalCost = costs.LandCost + costs.ConstructionCost + costs.ProfessionalFees + costs.MarketingContingency
	return costs, 457465750
}

func TestBuildCashFlows_FrontLoaded(t *testing.T) {
	costs, revenue := sampleCosts()
	series, err := BuildCashFlows(3, costs, revenue, PolicyFrontLoaded)
	if err != nil {
		t.Fatal(err)
	}

	if len(series) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(series))
	}
	want := []float64{-costs.TotalCost, 0, 0, revenue}
	for i, cf := range series {
		if cf.Period != i {
			t.Errorf("period %d labelled %d", i, cf.Period)
		}
		if cf.NetCashFlow != want[i] {
			t.Errorf("period %d: expected %f, got %f", i, want[i], cf.NetCashFlow)
		}
	}

	if series.Sum() != revenue-costs.TotalCost {
		t.Errorf("sum %f != profit %f", series.Sum(), revenue-costs.TotalCost)
	}
}

func TestBuildCashFlows_EmptyPolicyIsFrontLoaded(t *testing.T) {
	costs, revenue := sampleCosts()
	a, _ := BuildCashFlows(5, costs, revenue, "")
	b, _ := BuildCashFlows(5, costs, revenue, PolicyFrontLoaded)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("period %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBuildCashFlows_SingleYear(t *testing.T) {
	costs, revenue := sampleCosts()
	series, err := BuildCashFlows(1, costs, revenue, PolicyFrontLoaded)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || series[0].NetCashFlow != -costs.TotalCost || series[1].NetCashFlow != revenue {
		t.Errorf("unexpected single-year series: %+v", series)
	}
}

func TestBuildCashFlows_SpreadConstruction(t *testing.T) {
	costs, revenue := sampleCosts()
	series, err := BuildCashFlows(4, costs, revenue, PolicySpreadConstruction)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 5 {
		t.Fatalf("expected 5 periods, got %d", len(series))
	}

	share := (costs.ConstructionCost + costs.ProfessionalFees) / 4
	if math.Abs(series[0].NetCashFlow-(-costs.LandCost-share)) > 1e-6 {
		t.Errorf("period 0: expected land + one share, got %f", series[0].NetCashFlow)
	}
	for i := 1; i < 4; i++ {
		if math.Abs(series[i].NetCashFlow+share) > 1e-6 {
			t.Errorf("period %d: expected -%f, got %f", i, share, series[i].NetCashFlow)
		}
	}
	wantLast := revenue - costs.MarketingContingency
	if math.Abs(series[4].NetCashFlow-wantLast) > 1e-3 {
		t.Errorf("final period: expected %f, got %f", wantLast, series[4].NetCashFlow)
	}

	profit := revenue - costs.TotalCost
	if math.Abs(series.Sum()-profit) > math.Abs(profit)*1e-15 {
		t.Errorf("sum %f != profit %f", series.Sum(), profit)
	}
}

func TestBuildCashFlows_Invalid(t *testing.T) {
	costs, revenue := sampleCosts()
	if _, err := BuildCashFlows(0, costs, revenue, PolicyFrontLoaded); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero duration: expected ErrInvalidInput, got %v", err)
	}
	if _, err := BuildCashFlows(3, costs, revenue, "quarterly"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown policy: expected ErrInvalidInput, got %v", err)
	}
}
