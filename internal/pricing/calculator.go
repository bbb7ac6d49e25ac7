// Package pricing computes derived cost fields for a quotation from its raw
// inputs. The calculator is pure: same inputs always yield the same outputs,
// and absent inputs propagate as nil rather than zero.
package pricing

import (
	"github.com/shopspring/decimal"
)

// pricePlaces is the scale derived monetary fields are rounded to.
const pricePlaces = 2

// pctPlaces is the scale weight percentages are rounded to.
const pctPlaces = 2

var (
	secondsPerHour = decimal.NewFromInt(3600)
	hundred        = decimal.NewFromInt(100)
)

// Inputs holds the raw cost fields of a quotation. Every field is optional;
// a nil value means the user has not filled it in yet.
type Inputs struct {
	CostOfPlate        *decimal.Decimal
	RMCNCMargin        *decimal.Decimal
	RMCNCScrap         *decimal.Decimal
	MachineCostPerHour *decimal.Decimal
	CycleTimeSec       *int
}

// Derived holds the calculated fields. A nil field means its required
// inputs were incomplete; nil is distinct from a computed zero.
type Derived struct {
	RMCNCPiecePrice      *decimal.Decimal
	PieceWeightRMCNCPct  *decimal.Decimal
	PiecePriceCNCNoScrap *decimal.Decimal
	PiecePriceCNCScrap   *decimal.Decimal
	PieceWeightCNCPct    *decimal.Decimal
	TotalPrice           *decimal.Decimal
}

// Calculate recomputes every derived field from the raw inputs. It never
// mutates its argument and never returns an error: incomplete inputs simply
// leave the dependent outputs nil.
func Calculate(in Inputs) Derived {
	var out Derived

	if in.CostOfPlate != nil && in.RMCNCMargin != nil {
		v := in.CostOfPlate.Mul(decimal.NewFromInt(1).Add(*in.RMCNCMargin)).Round(pricePlaces)
		out.RMCNCPiecePrice = &v
	}

	if in.CycleTimeSec != nil && in.MachineCostPerHour != nil {
		hours := decimal.NewFromInt(int64(*in.CycleTimeSec)).Div(secondsPerHour)
		v := hours.Mul(*in.MachineCostPerHour).Round(pricePlaces)
		out.PiecePriceCNCNoScrap = &v
	}

	var scrapCost *decimal.Decimal
	if in.CostOfPlate != nil && in.RMCNCScrap != nil {
		v := in.CostOfPlate.Mul(*in.RMCNCScrap).Round(pricePlaces)
		scrapCost = &v
	}

	switch {
	case out.PiecePriceCNCNoScrap != nil && scrapCost != nil:
		v := out.PiecePriceCNCNoScrap.Add(*scrapCost)
		out.PiecePriceCNCScrap = &v
	case out.PiecePriceCNCNoScrap != nil:
		// Scrap inputs absent: the scrap price degrades to the no-scrap price.
		v := *out.PiecePriceCNCNoScrap
		out.PiecePriceCNCScrap = &v
	}

	if out.RMCNCPiecePrice != nil || out.PiecePriceCNCScrap != nil {
		total := decimal.Zero
		if out.RMCNCPiecePrice != nil {
			total = total.Add(*out.RMCNCPiecePrice)
		}
		if out.PiecePriceCNCScrap != nil {
			total = total.Add(*out.PiecePriceCNCScrap)
		}
		total = total.Round(pricePlaces)
		out.TotalPrice = &total
	}

	out.PieceWeightRMCNCPct = weightPct(out.RMCNCPiecePrice, out.TotalPrice)
	out.PieceWeightCNCPct = weightPct(out.PiecePriceCNCScrap, out.TotalPrice)

	return out
}

// weightPct returns part/total as a percentage, or nil when either term is
// missing or the total is zero.
func weightPct(part, total *decimal.Decimal) *decimal.Decimal {
	if part == nil || total == nil || total.IsZero() {
		return nil
	}
	v := part.Div(*total).Mul(hundred).Round(pctPlaces)
	return &v
}
