package feasibility

// SqFtPerSqMtr is the fixed conversion factor used for every area figure.
const SqFtPerSqMtr = 10.7639

// DerivedAreas holds the constructible and sellable floor areas of the plot.
type DerivedAreas struct {
	BuiltUpAreaSqMtr float64 `json:"built_up_area_sq_mtr"`
	BuiltUpAreaSqFt  float64 `json:"built_up_area_sq_ft"`
	SaleableAreaSqFt float64 `json:"saleable_area_sq_ft"`
}

// DeriveAreas applies FSI to the land area and the efficiency loss to the
// resulting built-up area.
//
//	built-up (sq m)  = land × FSI
//	built-up (sq ft) = built-up (sq m) × 10.7639
//	saleable (sq ft) = built-up (sq ft) × efficiency
func DeriveAreas(landAreaSqMtr, permissibleFSI, efficiencyRatio float64) (DerivedAreas, error) {
	if err := checkPositive("land_area_sq_mtr", landAreaSqMtr); err != nil {
		return DerivedAreas{}, err
	}
	if err := checkPositive("permissible_fsi", permissibleFSI); err != nil {
		return DerivedAreas{}, err
	}
	if err := checkPositive("efficiency_ratio", efficiencyRatio); err != nil {
		return DerivedAreas{}, err
	}
	if efficiencyRatio > 1 {
		return DerivedAreas{}, invalidf("efficiency_ratio must be <= 1, got %v", efficiencyRatio)
	}

	builtUpSqMtr := landAreaSqMtr * permissibleFSI
	builtUpSqFt := builtUpSqMtr * SqFtPerSqMtr
	// saleable <= built-up, so a finite built-up area bounds it
	if err := checkFinite("built_up_area_sq_ft", builtUpSqFt); err != nil {
		return DerivedAreas{}, err
	}

	return DerivedAreas{
		BuiltUpAreaSqMtr: builtUpSqMtr,
		BuiltUpAreaSqFt:  builtUpSqFt,
		SaleableAreaSqFt: builtUpSqFt * efficiencyRatio,
	}, nil
}
