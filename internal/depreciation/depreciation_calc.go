package depreciation

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	daysInYear     = decimal.NewFromInt(365)
	salvageRate    = decimal.RequireFromString("0.05")
	moneyPrecision = int32(2)
)

// Basis is the asset data the schedule depends on.
type Basis struct {
	BillDate       time.Time
	OpeningBalance decimal.Decimal
	Addition       decimal.Decimal
	Rate           decimal.Decimal // percent per year
}

// YearRecord is one calendar year of the schedule. PeriodEnd is exclusive.
type YearRecord struct {
	Year                   int
	OpeningBalance         decimal.Decimal
	Addition               decimal.Decimal
	Depreciation           decimal.Decimal
	WDV                    decimal.Decimal
	CumulativeDepreciation decimal.Decimal
	PeriodStart            time.Time
	PeriodEnd              time.Time
}

// Closed reports whether the record covers its year through 31 December.
func (r YearRecord) Closed() bool {
	return !r.PeriodEnd.Before(yearStart(r.Year + 1))
}

// SalvageFloor is 5% of opening balance plus addition, rounded up to the cent.
func SalvageFloor(b Basis) decimal.Decimal {
	return b.OpeningBalance.Add(b.Addition).Mul(salvageRate).RoundCeil(moneyPrecision)
}

// Schedule produces yearly records up to evalDate.
// With prior == nil it starts at the bill date; otherwise it continues after prior.Year
// from prior's WDV and cumulative depreciation.
func Schedule(b Basis, prior *YearRecord, evalDate time.Time) []YearRecord {
	floor := SalvageFloor(b)
	evalDay := dayOf(evalDate)
	billDay := dayOf(b.BillDate)

	year := billDay.Year()
	start := billDay
	opening := b.OpeningBalance
	cumulative := decimal.Zero
	if prior != nil {
		year = prior.Year + 1
		start = yearStart(year)
		opening = prior.WDV
		cumulative = prior.CumulativeDepreciation
	}

	if start.After(evalDay) {
		return nil
	}

	records := make([]YearRecord, 0, evalDay.Year()-year+1)
	for ; year <= evalDay.Year(); year++ {
		end := yearStart(year + 1)
		if end.After(evalDay) {
			end = evalDay
		}

		addition := decimal.Zero
		if prior == nil && year == billDay.Year() {
			addition = b.Addition
		}

		periodBasis := opening.Add(addition)
		dep := periodBasis.Mul(b.Rate).Div(hundred).Mul(yearFraction(start, end)).Round(moneyPrecision)
		wdv := periodBasis.Sub(dep)
		if wdv.LessThan(floor) {
			wdv = floor
			dep = decimal.Max(decimal.Zero, periodBasis.Sub(floor))
		}
		cumulative = cumulative.Add(dep)

		records = append(records, YearRecord{
			Year:                   year,
			OpeningBalance:         opening,
			Addition:               addition,
			Depreciation:           dep,
			WDV:                    wdv,
			CumulativeDepreciation: cumulative,
			PeriodStart:            start,
			PeriodEnd:              end,
		})

		opening = wdv
		start = yearStart(year + 1)
	}

	return records
}

// yearFraction is days/365, capped at a full year.
func yearFraction(start, end time.Time) decimal.Decimal {
	days := int64(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return decimal.Zero
	}
	f := decimal.NewFromInt(days).Div(daysInYear)
	if f.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return f
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dayOf(a).Equal(dayOf(b))
}
