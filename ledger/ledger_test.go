package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-ledger/ledger"
)

// =============================================================================
// TIME PERIOD PARSING
// =============================================================================

func TestParseTimePeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		p, err := ledger.ParseTimePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(p))
	}

	_, err := ledger.ParseTimePeriod("quarter")
	assert.ErrorIs(t, err, ledger.ErrUnknownTimePeriod)
	_, err = ledger.ParseTimePeriod("")
	assert.ErrorIs(t, err, ledger.ErrUnknownTimePeriod)
}

// =============================================================================
// CALENDAR TRUNCATION
// =============================================================================

func TestTruncate_UTCCalendarBoundaries(t *testing.T) {
	// Thursday afternoon, ISO week starting Monday 2025-03-10.
	at := time.Date(2025, time.March, 13, 15, 30, 45, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC),
		ledger.PeriodDay.Truncate(at))
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		ledger.PeriodWeek.Truncate(at))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		ledger.PeriodMonth.Truncate(at))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ledger.PeriodYear.Truncate(at))
}

func TestTruncate_WeekOfSunday_IsPreviousMonday(t *testing.T) {
	sunday := time.Date(2025, time.March, 16, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		ledger.PeriodWeek.Truncate(sunday))
}

func TestCompareStep_FixedWidths(t *testing.T) {
	cases := map[ledger.TimePeriod]time.Duration{
		ledger.PeriodDay:   24 * time.Hour,
		ledger.PeriodWeek:  7 * 24 * time.Hour,
		ledger.PeriodMonth: 28 * 24 * time.Hour,
	}
	for period, want := range cases {
		step, err := period.CompareStep()
		require.NoError(t, err)
		assert.Equal(t, want, step)
	}

	_, err := ledger.PeriodYear.CompareStep()
	assert.ErrorIs(t, err, ledger.ErrUnknownTimePeriod)
}

func TestLabels(t *testing.T) {
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01", ledger.PeriodDay.Label(at))
	assert.Equal(t, "2026-01", ledger.PeriodMonth.Label(at))
	// Jan 1 2026 falls in ISO week 1 of 2026.
	assert.Equal(t, "2026-W01", ledger.PeriodWeek.Label(at))

	// An early-January date can belong to the previous ISO year.
	jan1_2027 := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W53", ledger.PeriodWeek.Label(jan1_2027))
}

// =============================================================================
// PRODUCT SET
// =============================================================================

func TestProductSet_TriState(t *testing.T) {
	var unset ledger.ProductSet
	assert.True(t, unset.Match("anything"), "nil set matches everything")
	assert.Nil(t, unset.IDs())

	empty := ledger.NewProductSet()
	assert.False(t, empty.Match("anything"), "explicit empty set matches nothing")
	assert.NotNil(t, empty.IDs())
	assert.Empty(t, empty.IDs())

	one := ledger.NewProductSet("x")
	assert.True(t, one.Match("x"))
	assert.False(t, one.Match("y"))
}

// =============================================================================
// DAY RANGE
// =============================================================================

func TestDayRange_InclusiveEndpoints(t *testing.T) {
	start := time.Date(2025, time.March, 3, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)

	from, to := ledger.DayRange(start, end)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC), to)
}

// =============================================================================
// FACTORIES
// =============================================================================

func TestNewSaleEvent_RecordsFactsAsGiven(t *testing.T) {
	total := decimal.RequireFromString("19.99")
	ev := ledger.NewSaleEvent("prod-1", 2, total)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, ledger.ProductID("prod-1"), ev.ProductID)
	assert.Equal(t, 2, ev.Quantity)
	assert.True(t, total.Equal(ev.TotalPrice))
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())
}

func TestNewInventoryEventAt_NormalizesToUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	at := time.Date(2025, time.March, 1, 20, 0, 0, 0, est)

	ev, err := ledger.NewInventoryEventAt("prod-1", +1, at)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())
	assert.True(t, ev.CreatedAt.Equal(at))
}
