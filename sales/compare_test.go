package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-ledger/ledger"
	"github.com/warp/inventory-ledger/sales"
)

// =============================================================================
// PRECONDITIONS
// =============================================================================

func TestCompare_UnequalWindows_RejectedBeforeStorage(t *testing.T) {
	// GIVEN: Windows of three days and minus five days
	// WHEN: compare(...)
	// THEN: The precondition error fires before any query executes

	engine, _ := newTestEngine(nil)
	d0 := date(2025, time.March, 1)

	_, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  d0,
		FirstEnd:    d0.AddDate(0, 0, 3),
		SecondStart: d0.AddDate(0, 0, 10),
		SecondEnd:   d0.AddDate(0, 0, 5),
		Granularity: ledger.PeriodDay,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrWindowMismatch)
	assert.True(t, ledger.IsValidation(err))

	var mismatch *ledger.WindowMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3*24*time.Hour, mismatch.First)
	assert.Equal(t, -5*24*time.Hour, mismatch.Second)
}

func TestCompare_UnknownGranularity_Rejected(t *testing.T) {
	engine, _ := newTestEngine(nil)
	d0 := date(2025, time.March, 1)

	_, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  d0,
		FirstEnd:    d0.AddDate(0, 0, 1),
		SecondStart: d0,
		SecondEnd:   d0.AddDate(0, 0, 1),
		Granularity: ledger.PeriodYear, // comparison has no year granularity
	})
	assert.ErrorIs(t, err, ledger.ErrUnknownTimePeriod)
}

// =============================================================================
// ZERO-FILL AND POSITIONAL PAIRING
// =============================================================================

func TestCompare_ZeroFilledSubWindows(t *testing.T) {
	// GIVEN: Two one-week windows, sales only on the first day of each
	// WHEN: Comparing at day granularity
	// THEN: All seven sub-window pairs are emitted; empty ones carry 0

	engine, s := newTestEngine(nil)
	firstStart := date(2025, time.March, 3)
	secondStart := date(2025, time.March, 10)

	sellAt(t, s, "P", "50", firstStart.Add(12*time.Hour))
	sellAt(t, s, "P", "70", secondStart.Add(12*time.Hour))

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstStart.AddDate(0, 0, 7),
		SecondStart: secondStart,
		SecondEnd:   secondStart.AddDate(0, 0, 7),
		Granularity: ledger.PeriodDay,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 7, "output length always equals the sub-window count")

	assert.Equal(t, "50", buckets[0].FirstTotal.String())
	assert.Equal(t, "70", buckets[0].SecondTotal.String())
	for _, b := range buckets[1:] {
		assert.Equal(t, "0", b.FirstTotal.String())
		assert.Equal(t, "0", b.SecondTotal.String())
	}
}

func TestCompare_PairsByIndexNotCalendar(t *testing.T) {
	// The windows start on different weekdays; the comparison is strictly
	// "first Nth interval vs second Nth interval".

	engine, s := newTestEngine(nil)
	firstStart := date(2025, time.March, 5)   // Wednesday
	secondStart := date(2025, time.March, 16) // Sunday

	sellAt(t, s, "P", "11", firstStart.AddDate(0, 0, 2).Add(3*time.Hour))
	sellAt(t, s, "P", "22", secondStart.AddDate(0, 0, 2).Add(21*time.Hour))

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstStart.AddDate(0, 0, 4),
		SecondStart: secondStart,
		SecondEnd:   secondStart.AddDate(0, 0, 4),
		Granularity: ledger.PeriodDay,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	// Both sales are two days into their own window, so they meet in
	// bucket index 2 despite falling on unrelated calendar dates.
	assert.Equal(t, "11", buckets[2].FirstTotal.String())
	assert.Equal(t, "22", buckets[2].SecondTotal.String())
}

func TestCompare_OverlappingWindowsAllowed(t *testing.T) {
	// The two windows need equal length, not disjointness.

	engine, s := newTestEngine(nil)
	d0 := date(2025, time.March, 1)
	sellAt(t, s, "P", "5", d0.Add(6*time.Hour))

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  d0,
		FirstEnd:    d0.AddDate(0, 0, 2),
		SecondStart: d0,
		SecondEnd:   d0.AddDate(0, 0, 2),
		Granularity: ledger.PeriodDay,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, buckets[0].FirstTotal.String(), buckets[0].SecondTotal.String())
}

// =============================================================================
// FIXED-WIDTH SUB-WINDOWS AND LABELS
// =============================================================================

func TestCompare_LabelsComeFromFirstWindow(t *testing.T) {
	engine, _ := newTestEngine(nil)
	firstStart := date(2025, time.March, 3)
	secondStart := date(2025, time.June, 2)

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstStart.AddDate(0, 0, 2),
		SecondStart: secondStart,
		SecondEnd:   secondStart.AddDate(0, 0, 2),
		Granularity: ledger.PeriodDay,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-03-03", buckets[0].Label)
	assert.Equal(t, "2025-03-04", buckets[1].Label)
}

func TestCompare_WeekGranularity_ISOWeekLabels(t *testing.T) {
	engine, _ := newTestEngine(nil)
	firstStart := date(2025, time.March, 3) // ISO week 10 of 2025

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstStart.AddDate(0, 0, 14),
		SecondStart: firstStart.AddDate(0, 0, 14),
		SecondEnd:   firstStart.AddDate(0, 0, 28),
		Granularity: ledger.PeriodWeek,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-W10", buckets[0].Label)
	assert.Equal(t, "2025-W11", buckets[1].Label)
}

func TestCompare_MonthGranularity_FixedTwentyEightDays(t *testing.T) {
	// GIVEN: Two 56-day windows; a sale 30 days into the first window
	// THEN: The sale lands in the SECOND 28-day sub-window, because the
	//       comparison month is a flat four weeks, not a calendar month.

	engine, s := newTestEngine(nil)
	firstStart := date(2025, time.January, 1)
	secondStart := date(2025, time.July, 1)

	sellAt(t, s, "P", "33", firstStart.AddDate(0, 0, 30))

	buckets, err := engine.Compare(context.Background(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstStart.AddDate(0, 0, 56),
		SecondStart: secondStart,
		SecondEnd:   secondStart.AddDate(0, 0, 56),
		Granularity: ledger.PeriodMonth,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "0", buckets[0].FirstTotal.String())
	assert.Equal(t, "33", buckets[1].FirstTotal.String())
	assert.Equal(t, "2025-01", buckets[0].Label)
	assert.Equal(t, "2025-01", buckets[1].Label, "second sub-window starts Jan 29, still January")
}

// =============================================================================
// FILTERED COMPARISON
// =============================================================================

func TestCompareBySKU_AndByCategory(t *testing.T) {
	resolver := &fakeResolver{members: map[string][]ledger.ProductID{
		"drinks": {"cola"},
	}}
	engine, s := newTestEngine(resolver)
	d0 := date(2025, time.March, 1)

	sellAt(t, s, "cola", "10", d0.Add(2*time.Hour))
	sellAt(t, s, "bread", "99", d0.Add(3*time.Hour))

	in := sales.CompareInput{
		FirstStart:  d0,
		FirstEnd:    d0.AddDate(0, 0, 1),
		SecondStart: d0.AddDate(0, 0, 1),
		SecondEnd:   d0.AddDate(0, 0, 2),
		Granularity: ledger.PeriodDay,
	}

	bySKU, err := engine.CompareBySKU(context.Background(), in, "cola")
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "10", bySKU[0].FirstTotal.String())

	byCat, err := engine.CompareByCategory(context.Background(), in, "drinks")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "10", byCat[0].FirstTotal.String())

	// Unknown category: explicit empty filter, totals are zero.
	byUnknown, err := engine.CompareByCategory(context.Background(), in, "nope")
	require.NoError(t, err)
	require.Len(t, byUnknown, 1)
	assert.Equal(t, "0", byUnknown[0].FirstTotal.String())
}
