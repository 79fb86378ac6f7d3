/*
compare.go - Period-over-period sales comparison

PURPOSE:
  Lets a caller compare two equal-duration windows (this week vs last week)
  bucket by bucket. Each window is cut into consecutive fixed-width
  sub-windows starting at the window's own start, and the i-th sub-window
  of the first window is paired with the i-th of the second - strictly by
  index, not by calendar alignment. The windows may start on different
  weekdays and may overlap.

ZERO-FILL:
  A sub-window with no sales contributes an explicit 0 total. The output
  length always equals the sub-window count of either window, so the two
  series can be plotted against each other.

PRECONDITION:
  The windows must have equal duration. Violations are rejected before any
  query executes, so a partial comparison result is never returned.

SEE ALSO:
  - ledger/bucket.go: CompareStep (fixed widths) and Label
*/
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-ledger/ledger"
)

// CompareInput describes one comparison query. Filter is tri-state, as in
// SalesByPeriod.
type CompareInput struct {
	FirstStart  time.Time
	FirstEnd    time.Time
	SecondStart time.Time
	SecondEnd   time.Time
	Granularity ledger.TimePeriod
	Filter      ledger.ProductSet
}

// Compare pairs up the two windows' sub-windows positionally and sums the
// matching sales into each. Labels come from the first window's sub-window
// starts.
func (e *Engine) Compare(ctx context.Context, in CompareInput) ([]ledger.ComparisonBucket, error) {
	step, err := in.Granularity.CompareStep()
	if err != nil {
		return nil, err
	}
	if in.FirstEnd.Sub(in.FirstStart) != in.SecondEnd.Sub(in.SecondStart) {
		return nil, &ledger.WindowMismatchError{
			First:  in.FirstEnd.Sub(in.FirstStart),
			Second: in.SecondEnd.Sub(in.SecondStart),
		}
	}

	first, err := e.Store.SaleEventsByRange(ctx, in.FirstStart, in.FirstEnd)
	if err != nil {
		return nil, err
	}
	second, err := e.Store.SaleEventsByRange(ctx, in.SecondStart, in.SecondEnd)
	if err != nil {
		return nil, err
	}

	firstWindows := subWindows(in.FirstStart, in.FirstEnd, step)
	secondWindows := subWindows(in.SecondStart, in.SecondEnd, step)

	// Equal durations guarantee equal counts.
	buckets := make([]ledger.ComparisonBucket, len(firstWindows))
	for i := range firstWindows {
		buckets[i] = ledger.ComparisonBucket{
			Label:       in.Granularity.Label(firstWindows[i].start),
			FirstTotal:  sumWindow(first, firstWindows[i], in.Filter),
			SecondTotal: sumWindow(second, secondWindows[i], in.Filter),
		}
	}
	return buckets, nil
}

// CompareBySKU restricts Compare to a single product.
func (e *Engine) CompareBySKU(ctx context.Context, in CompareInput, skuID ledger.ProductID) ([]ledger.ComparisonBucket, error) {
	in.Filter = ledger.NewProductSet(skuID)
	return e.Compare(ctx, in)
}

// CompareByCategory restricts Compare to a category's member products.
func (e *Engine) CompareByCategory(ctx context.Context, in CompareInput, categoryID string) ([]ledger.ComparisonBucket, error) {
	members, err := e.CategoryFilter(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	in.Filter = members
	return e.Compare(ctx, in)
}

type window struct {
	start time.Time
	end   time.Time // exclusive
}

func subWindows(start, end time.Time, step time.Duration) []window {
	var windows []window
	for current := start; current.Before(end); current = current.Add(step) {
		windows = append(windows, window{start: current, end: current.Add(step)})
	}
	return windows
}

func sumWindow(events []ledger.SaleEvent, w window, filter ledger.ProductSet) decimal.Decimal {
	total := decimal.Zero
	for _, ev := range events {
		if !filter.Match(ev.ProductID) {
			continue
		}
		if !ev.CreatedAt.Before(w.start) && ev.CreatedAt.Before(w.end) {
			total = total.Add(ev.TotalPrice)
		}
	}
	return total
}
