package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func pint(v int) *int { return &v }

func wantEq(t *testing.T, name string, got *decimal.Decimal, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Fatalf("%s: expected nil, got %s", name, got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s: expected %s, got nil", name, want)
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", name, want, got)
	}
}

func TestCalculate_AllInputs(t *testing.T) {
	out := Calculate(Inputs{
		CostOfPlate:        dec("10"),
		RMCNCMargin:        dec("0.10"),
		RMCNCScrap:         dec("0.05"),
		MachineCostPerHour: dec("50"),
		CycleTimeSec:       pint(3600),
	})

	wantEq(t, "rm_cnc_piece_price", out.RMCNCPiecePrice, "11.00")
	wantEq(t, "piece_price_cnc_no_scrap", out.PiecePriceCNCNoScrap, "50.00")
	wantEq(t, "piece_price_cnc_scrap", out.PiecePriceCNCScrap, "50.50")
	wantEq(t, "total_price", out.TotalPrice, "61.50")
	wantEq(t, "piece_weight_rm_cnc_percentage", out.PieceWeightRMCNCPct, "17.89")
	wantEq(t, "piece_weight_cnc_percentage", out.PieceWeightCNCPct, "82.11")
}

func TestCalculate_MissingPlateCostStillPricesCNC(t *testing.T) {
	out := Calculate(Inputs{
		MachineCostPerHour: dec("50"),
		CycleTimeSec:       pint(1800),
	})

	wantEq(t, "rm_cnc_piece_price", out.RMCNCPiecePrice, "")
	wantEq(t, "piece_price_cnc_no_scrap", out.PiecePriceCNCNoScrap, "25.00")
	wantEq(t, "piece_price_cnc_scrap", out.PiecePriceCNCScrap, "25.00")
	wantEq(t, "total_price", out.TotalPrice, "25.00")
	wantEq(t, "piece_weight_rm_cnc_percentage", out.PieceWeightRMCNCPct, "")
	wantEq(t, "piece_weight_cnc_percentage", out.PieceWeightCNCPct, "100.00")
}

func TestCalculate_ScrapFallsBackToNoScrap(t *testing.T) {
	out := Calculate(Inputs{
		CostOfPlate:        dec("10"),
		RMCNCMargin:        dec("0.10"),
		MachineCostPerHour: dec("50"),
		CycleTimeSec:       pint(3600),
	})

	wantEq(t, "piece_price_cnc_scrap", out.PiecePriceCNCScrap, "50.00")
	wantEq(t, "total_price", out.TotalPrice, "61.00")
}

func TestCalculate_RMOnly(t *testing.T) {
	out := Calculate(Inputs{
		CostOfPlate: dec("10"),
		RMCNCMargin: dec("0.10"),
	})

	wantEq(t, "rm_cnc_piece_price", out.RMCNCPiecePrice, "11.00")
	wantEq(t, "piece_price_cnc_no_scrap", out.PiecePriceCNCNoScrap, "")
	wantEq(t, "piece_price_cnc_scrap", out.PiecePriceCNCScrap, "")
	wantEq(t, "total_price", out.TotalPrice, "11.00")
	wantEq(t, "piece_weight_rm_cnc_percentage", out.PieceWeightRMCNCPct, "100.00")
}

func TestCalculate_NoInputs(t *testing.T) {
	out := Calculate(Inputs{})

	wantEq(t, "rm_cnc_piece_price", out.RMCNCPiecePrice, "")
	wantEq(t, "piece_price_cnc_no_scrap", out.PiecePriceCNCNoScrap, "")
	wantEq(t, "piece_price_cnc_scrap", out.PiecePriceCNCScrap, "")
	wantEq(t, "total_price", out.TotalPrice, "")
	wantEq(t, "piece_weight_rm_cnc_percentage", out.PieceWeightRMCNCPct, "")
	wantEq(t, "piece_weight_cnc_percentage", out.PieceWeightCNCPct, "")
}

func TestCalculate_ZeroCostInputsAreNotNil(t *testing.T) {
	out := Calculate(Inputs{
		CostOfPlate: dec("0"),
		RMCNCMargin: dec("0.10"),
	})

	wantEq(t, "rm_cnc_piece_price", out.RMCNCPiecePrice, "0.00")
	wantEq(t, "total_price", out.TotalPrice, "0.00")
	// A zero total makes the percentage denominator unusable.
	wantEq(t, "piece_weight_rm_cnc_percentage", out.PieceWeightRMCNCPct, "")
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Inputs{
		CostOfPlate:        dec("13.37"),
		RMCNCMargin:        dec("0.08"),
		RMCNCScrap:         dec("0.03"),
		MachineCostPerHour: dec("72.50"),
		CycleTimeSec:       pint(920),
	}

	first := Calculate(in)
	second := Calculate(in)

	pairs := []struct {
		name string
		a, b *decimal.Decimal
	}{
		{"rm_cnc_piece_price", first.RMCNCPiecePrice, second.RMCNCPiecePrice},
		{"piece_price_cnc_no_scrap", first.PiecePriceCNCNoScrap, second.PiecePriceCNCNoScrap},
		{"piece_price_cnc_scrap", first.PiecePriceCNCScrap, second.PiecePriceCNCScrap},
		{"total_price", first.TotalPrice, second.TotalPrice},
		{"piece_weight_rm_cnc_percentage", first.PieceWeightRMCNCPct, second.PieceWeightRMCNCPct},
		{"piece_weight_cnc_percentage", first.PieceWeightCNCPct, second.PieceWeightCNCPct},
	}
	for _, p := range pairs {
		if (p.a == nil) != (p.b == nil) {
			t.Fatalf("%s: nilness differs between runs", p.name)
		}
		if p.a != nil && p.a.String() != p.b.String() {
			t.Fatalf("%s: %s != %s", p.name, p.a, p.b)
		}
	}
}
