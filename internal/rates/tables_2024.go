package rates

import "github.com/shopspring/decimal"

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// tables2024 is the 2024 fiscal-year table set.
//
// Income-tax brackets per the 2024 gelir vergisi tarifesi. CumulativeBelow
// values are the exact tax on income up to each lower bound and are
// re-checked by Validate.
func tables2024() *Tables {
	return &Tables{
		Year: 2024,

		Brackets: []Bracket{
			{Lower: d("0"), Upper: d("110000"), Rate: d("0.15"), CumulativeBelow: d("0")},
			{Lower: d("110000"), Upper: d("230000"), Rate: d("0.20"), CumulativeBelow: d("16500")},
			{Lower: d("230000"), Upper: d("580000"), Rate: d("0.27"), CumulativeBelow: d("40500")},
			{Lower: d("580000"), Upper: d("3000000"), Rate: d("0.35"), CumulativeBelow: d("135000")},
			{Lower: d("3000000"), Rate: d("0.40"), CumulativeBelow: d("982000")},
		},

		VATRates: []decimal.Decimal{d("0.01"), d("0.10"), d("0.20")},

		Withholding: map[WithholdingCategory]decimal.Decimal{
			WithholdingWage:       d("0.15"),
			WithholdingRent:       d("0.20"),
			WithholdingFreelance:  d("0.20"),
			WithholdingSecurities: d("0.10"),
			WithholdingDividend:   d("0.10"),
			WithholdingService:    d("0.20"),
			WithholdingBoardFee:   d("0.15"),
		},

		EmployeeSGK: EmployeeSGK{
			Retirement:   d("0.09"),
			Health:       d("0.05"),
			Unemployment: d("0.01"),
		},
		EmployerSGK: EmployerSGK{
			Retirement:   d("0.11"),
			Health:       d("0.075"),
			ShortTerm:    d("0.0225"),
			Unemployment: d("0.02"),
			Support:      d("0.0075"),
		},

		CorporateRate: d("0.25"),
		StampRate:     d("0.00759"),

		ReturnRates: map[TaxType]decimal.Decimal{
			TaxTypeVAT:         d("0.20"),
			TaxTypeIncome:      d("0.15"),
			TaxTypeCorporate:   d("0.25"),
			TaxTypeWithholding: d("0.20"),
			TaxTypeStamp:       d("0.00759"),
		},

		Vehicle: map[VehicleClass][]VehicleTier{
			VehicleClassCar: {
				{MaxDisplacement: 1300, Annual: d("3800.00")},
				{MaxDisplacement: 1600, Annual: d("6600.00")},
				{MaxDisplacement: 1800, Annual: d("13000.00")},
				{MaxDisplacement: 2000, Annual: d("20500.00")},
				{MaxDisplacement: 2500, Annual: d("30700.00")},
				{MaxDisplacement: 3000, Annual: d("42800.00")},
				{MaxDisplacement: 3500, Annual: d("65200.00")},
				{MaxDisplacement: 4000, Annual: d("102500.00")},
				{Annual: d("167800.00")},
			},
			VehicleClassMotorcycle: {
				{MaxDisplacement: 250, Annual: d("1400.00")},
				{MaxDisplacement: 650, Annual: d("2900.00")},
				{MaxDisplacement: 1200, Annual: d("7400.00")},
				{Annual: d("17900.00")},
			},
			VehicleClassMinibus: {
				{Annual: d("4600.00")},
			},
		},
		VehicleAgeThreshold: 15,
		VehicleAgeDiscount:  d("0.50"),

		LateAnnualRate: d("0.24"),
	}
}
