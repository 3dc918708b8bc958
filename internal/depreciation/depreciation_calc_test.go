package depreciation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestSchedule_LaptopScenario(t *testing.T) {
	b := Basis{
		BillDate:       date(2023, time.January, 1),
		OpeningBalance: d("2000"),
		Addition:       decimal.Zero,
		Rate:           d("20"),
	}

	records := Schedule(b, nil, date(2024, time.June, 1))

	assert.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 2023, first.Year)
	assert.True(t, first.Depreciation.Equal(d("400")), first.Depreciation.String())
	assert.True(t, first.WDV.Equal(d("1600")), first.WDV.String())
	assert.True(t, first.Closed())

	second := records[1]
	assert.Equal(t, 2024, second.Year)
	assert.True(t, second.OpeningBalance.Equal(d("1600")))
	assert.True(t, second.WDV.Equal(d("1466.74")), second.WDV.String())
	assert.True(t, second.CumulativeDepreciation.Equal(d("533.26")), second.CumulativeDepreciation.String())
	assert.False(t, second.Closed())
}

func TestSchedule_BackfillRowCount(t *testing.T) {
	b := Basis{
		BillDate:       date(2021, time.May, 10),
		OpeningBalance: d("50000"),
		Addition:       d("5000"),
		Rate:           d("15"),
	}

	records := Schedule(b, nil, date(2024, time.March, 31))

	// purchased three calendar years before the evaluation year
	assert.Len(t, records, 4)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].OpeningBalance.Equal(records[i-1].WDV), "year %d opening", records[i].Year)
		assert.True(t, records[i].CumulativeDepreciation.GreaterThanOrEqual(records[i-1].CumulativeDepreciation))
		assert.True(t, records[i].Addition.IsZero())
	}
	assert.True(t, records[0].Addition.Equal(d("5000")))
	assert.Equal(t, date(2021, time.May, 10), records[0].PeriodStart)
	assert.Equal(t, date(2022, time.January, 1), records[0].PeriodEnd)
}

func TestSchedule_FloorNeverBreached(t *testing.T) {
	rates := []string{"5", "20", "40", "60", "100"}
	b := Basis{
		BillDate:       date(2005, time.July, 1),
		OpeningBalance: d("1234.56"),
		Addition:       d("99.99"),
	}
	floor := SalvageFloor(b)
	assert.True(t, floor.Equal(d("66.73")), floor.String())

	for _, rate := range rates {
		b.Rate = d(rate)
		records := Schedule(b, nil, date(2025, time.December, 31))
		assert.NotEmpty(t, records)
		for _, r := range records {
			assert.True(t, r.WDV.GreaterThanOrEqual(floor), "rate %s year %d wdv %s", rate, r.Year, r.WDV)
			assert.False(t, r.Depreciation.IsNegative(), "rate %s year %d", rate, r.Year)
		}
	}
}

func TestSchedule_FloorClampsDepreciation(t *testing.T) {
	b := Basis{
		BillDate:       date(2020, time.January, 1),
		OpeningBalance: d("1000"),
		Rate:           d("100"),
	}

	records := Schedule(b, nil, date(2022, time.June, 30))

	assert.Len(t, records, 3)
	assert.True(t, records[0].WDV.Equal(d("50")))
	assert.True(t, records[0].Depreciation.Equal(d("950")))
	// already at the floor: nothing left to depreciate
	assert.True(t, records[1].Depreciation.IsZero())
	assert.True(t, records[2].WDV.Equal(d("50")))
	assert.True(t, records[2].CumulativeDepreciation.Equal(d("950")))
}

func TestSchedule_ContinuesFromPrior(t *testing.T) {
	b := Basis{
		BillDate:       date(2023, time.January, 1),
		OpeningBalance: d("2000"),
		Rate:           d("20"),
	}
	prior := &YearRecord{
		Year:                   2023,
		WDV:                    d("1600"),
		CumulativeDepreciation: d("400"),
		PeriodEnd:              date(2024, time.January, 1),
	}

	records := Schedule(b, prior, date(2024, time.June, 1))

	assert.Len(t, records, 1)
	assert.Equal(t, 2024, records[0].Year)
	assert.Equal(t, date(2024, time.January, 1), records[0].PeriodStart)
	assert.True(t, records[0].WDV.Equal(d("1466.74")))
	assert.True(t, records[0].CumulativeDepreciation.Equal(d("533.26")))
}

func TestSchedule_NothingToDo(t *testing.T) {
	b := Basis{
		BillDate:       date(2025, time.March, 1),
		OpeningBalance: d("100"),
		Rate:           d("10"),
	}

	t.Run("bill date after evaluation date", func(t *testing.T) {
		assert.Empty(t, Schedule(b, nil, date(2025, time.January, 1)))
	})

	t.Run("prior already covers evaluation year", func(t *testing.T) {
		prior := &YearRecord{Year: 2025, WDV: d("95"), PeriodEnd: date(2026, time.January, 1)}
		assert.Empty(t, Schedule(b, prior, date(2025, time.December, 1)))
	})
}

func TestSchedule_LeapYearCapped(t *testing.T) {
	b := Basis{
		BillDate:       date(2023, time.January, 1),
		OpeningBalance: d("1000"),
		Rate:           d("10"),
	}
	prior := &YearRecord{Year: 2023, WDV: d("900"), CumulativeDepreciation: d("100"), PeriodEnd: date(2024, time.January, 1)}

	records := Schedule(b, prior, date(2025, time.January, 1))

	// 2024 has 366 days, fraction is capped at one year
	assert.True(t, records[0].Depreciation.Equal(d("90")))
	assert.True(t, records[0].Closed())
	// evaluation on 1 January yields an empty period for the new year
	assert.Equal(t, 2025, records[1].Year)
	assert.True(t, records[1].Depreciation.IsZero())
}

func TestSameDay(t *testing.T) {
	assert.True(t, sameDay(time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)))
	assert.False(t, sameDay(date(2024, 6, 1), date(2024, 6, 2)))
}
