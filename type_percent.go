package cartera

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio that may be not applicable.
//
// The zero value is NotApplicable, which is distinct from Ratio(0).
type Percent struct {
	value float64 // as a ratio, 0.1 is 10%
	valid bool
}

// NotApplicable is the Percent of a ratio with no base.
var NotApplicable = Percent{}

// Ratio returns the Percent of a decimal ratio.
func Ratio(r decimal.Decimal) Percent { return Percent{value: r.InexactFloat64(), valid: true} }

// Value returns the ratio and whether it is applicable.
func (p Percent) Value() (float64, bool) { return p.value, p.valid }

// IsApplicable reports whether p holds a value.
func (p Percent) IsApplicable() bool { return p.valid }

func (p Percent) Equal(q Percent) bool {
	if p.valid != q.valid {
		return false
	}
	// it has to be compared with some precision
	const precision = 0.000001
	diff := p.value - q.value
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if !p.valid {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", p.value*100)
}

func (p Percent) SignedString() string {
	if !p.valid {
		return "-"
	}
	res := fmt.Sprintf("%+.2f%%", p.value*100)
	if res == "+0.00%" || res == "-0.00%" {
		return "0.00%"
	}
	return res
}

// MarshalJSON writes the ratio, or null when not applicable.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", p.value)), nil
}
