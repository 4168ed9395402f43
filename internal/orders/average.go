package orders

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DivisionPrecision is the number of decimal places kept by
// AverageOrderValueDecimal.
const DivisionPrecision int32 = 16

type Summary struct {
	Total     int     `json:"total"`
	Eligible  int     `json:"eligible"`
	Cancelled int     `json:"cancelled"`
	Sum       float64 `json:"sum"`
	Average   float64 `json:"average"`
}

// AverageOrderValue returns the mean amount over all orders that are not
// cancelled. It fails with ErrEmptyInput for an empty slice and with
// ErrNoEligibleRecords when every order is cancelled.
func AverageOrderValue(orders []Order) (float64, error) {
	s, err := Summarize(orders)
	if err != nil {
		return 0, err
	}
	return s.Average, nil
}

// Summarize walks orders once and reports counts alongside the average.
func Summarize(orders []Order) (Summary, error) {
	if len(orders) == 0 {
		return Summary{}, ErrEmptyInput
	}

	s := Summary{Total: len(orders)}
	for _, o := range orders {
		if !o.Eligible() {
			s.Cancelled++
			continue
		}
		s.Sum += o.Amount
		s.Eligible++
	}
	if s.Eligible == 0 {
		return Summary{}, ErrNoEligibleRecords
	}

	s.Average = s.Sum / float64(s.Eligible)
	return s, nil
}

// AverageOrderValueDecimal is AverageOrderValue with exact accumulation.
// NaN and infinite amounts have no decimal form and are rejected.
func AverageOrderValueDecimal(orders []Order) (decimal.Decimal, error) {
	if len(orders) == 0 {
		return decimal.Zero, ErrEmptyInput
	}

	total := decimal.Zero
	count := int64(0)
	for _, o := range orders {
		if !o.Eligible() {
			continue
		}
		if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) {
			return decimal.Zero, fmt.Errorf("order %q amount %v: %w", o.ID, o.Amount, ErrInvalidField)
		}
		total = total.Add(decimal.NewFromFloat(o.Amount))
		count++
	}
	if count == 0 {
		return decimal.Zero, ErrNoEligibleRecords
	}

	return total.DivRound(decimal.NewFromInt(count), DivisionPrecision), nil
}
