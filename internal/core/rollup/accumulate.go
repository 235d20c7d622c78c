package rollup

import (
	"time"

	"github.com/shopspring/decimal"
)

// averageScale is the number of decimal places kept by averages and ratios.
const averageScale = 6

// idSet backs every COUNT(DISTINCT id) style column.
type idSet map[int64]struct{}

func (s idSet) add(id int64) bool {
	if _, seen := s[id]; seen {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s idSet) count() int64 { return int64(len(s)) }

// decimalStats folds a stream of values into sum, count, min and max.
type decimalStats struct {
	sum   decimal.Decimal
	count int64
	min   decimal.Decimal
	max   decimal.Decimal
}

func (s *decimalStats) observe(v decimal.Decimal) {
	if s.count == 0 {
		s.min = v
		s.max = v
	} else {
		if v.LessThan(s.min) {
			s.min = v
		}
		if v.GreaterThan(s.max) {
			s.max = v
		}
	}
	s.sum = s.sum.Add(v)
	s.count++
}

// total is zero for an empty stream.
func (s decimalStats) total() decimal.Decimal { return s.sum }

// mean is absent for an empty stream.
func (s decimalStats) mean() decimal.NullDecimal {
	return ratio(s.sum, decimal.NewFromInt(s.count))
}

func (s decimalStats) minimum() decimal.NullDecimal {
	if s.count == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(s.min)
}

func (s decimalStats) maximum() decimal.NullDecimal {
	if s.count == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(s.max)
}

// ratio divides num by den, or returns the absent value when den is zero.
func ratio(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(num.DivRound(den, averageScale))
}

// latest tracks the most recent non-zero timestamp.
type latest struct {
	at time.Time
}

func (l *latest) observe(t time.Time) {
	if t.IsZero() {
		return
	}
	if l.at.IsZero() || t.After(l.at) {
		l.at = t
	}
}

func (l latest) value() *time.Time {
	if l.at.IsZero() {
		return nil
	}
	t := l.at.UTC()
	return &t
}
