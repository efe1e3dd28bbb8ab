package valuation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// divisionPlaces bounds the fractional digits kept when averaging cost.
// Nothing else is rounded during replay.
const divisionPlaces = 16

// ErrOversell is returned when a SELL exceeds the open quantity and the
// policy does not permit short positions
var ErrOversell = errors.New("sell exceeds held quantity")

// OversellPolicy decides what happens when a SELL is larger than the open
// position
type OversellPolicy int

const (
	// OversellReject fails the replay with ErrOversell
	OversellReject OversellPolicy = iota
	// OversellAllowShort lets the quantity go negative
	OversellAllowShort
)

// Position is the result of replaying one symbol's history
type Position struct {
	Quantity  decimal.Decimal
	AvgCost   decimal.Decimal
	CostBasis decimal.Decimal
	Realized  decimal.Decimal
}

// Replay folds an ordered single-symbol history into a position.
//
// A BUY weights the new lot into the average cost, or opens at the trade
// price when the position is flat. A SELL realizes q*(price-avgCost) and
// leaves avgCost untouched. CostBasis is carried alongside AvgCost so that
// buy-only histories keep an exact basis.
func Replay(txs []*models.Transaction, policy OversellPolicy) (Position, error) {
	qty := decimal.Zero
	avg := decimal.Zero
	basis := decimal.Zero
	realized := decimal.Zero

	for i, t := range txs {
		q, p := t.Quantity, t.Price

		switch t.Type {
		case models.TransactionTypeBuy:
			newQty := qty.Add(q)
			newBasis := basis.Add(q.Mul(p))
			switch {
			case qty.IsZero(), newQty.IsZero():
				avg = p
			default:
				avg = newBasis.DivRound(newQty, divisionPlaces)
			}
			qty = newQty
			basis = newBasis
			if qty.IsZero() {
				basis = decimal.Zero
			}

		case models.TransactionTypeSell:
			if q.GreaterThan(qty) && policy != OversellAllowShort {
				return Position{}, fmt.Errorf("%w: %s transaction %d sells %s with %s held",
					ErrOversell, t.Symbol, i, q, qty)
			}
			realized = realized.Add(q.Mul(p.Sub(avg)))
			newQty := qty.Sub(q)
			switch {
			case newQty.IsZero():
				basis = decimal.Zero
			case qty.IsPositive() && newQty.IsPositive():
				basis = basis.Mul(newQty).DivRound(qty, divisionPlaces)
			default:
				basis = newQty.Mul(avg)
			}
			qty = newQty

		default:
			return Position{}, fmt.Errorf("%w: unknown type %q", models.ErrInvalidTransaction, t.Type)
		}
	}

	return Position{
		Quantity:  qty,
		AvgCost:   avg,
		CostBasis: basis,
		Realized:  realized,
	}, nil
}
