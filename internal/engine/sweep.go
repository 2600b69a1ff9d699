package engine

import (
	"runtime"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

// Sweep runs one projection per sample value, each against a copy of the
// base assumptions with exactly the swept field overridden, and records the
// final month of each run. Output order follows the order of values.
func Sweep(base model.Assumptions, param model.SweepParameter, values []decimal.Decimal) ([]model.SweepPoint, error) {
	if _, err := param.BaseValue(base); err != nil {
		return nil, err
	}

	points := make([]model.SweepPoint, len(values))
	for i, v := range values {
		points[i] = sweepOne(base, param, v)
	}
	return points, nil
}

// ParallelSweep computes exactly what Sweep computes, fanning samples out
// across workers. Runs are independent, so results do not depend on
// scheduling; each lands at its sample's index.
func ParallelSweep(base model.Assumptions, param model.SweepParameter, values []decimal.Decimal) ([]model.SweepPoint, error) {
	if _, err := param.BaseValue(base); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []model.SweepPoint{}, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(values) {
		numWorkers = len(values)
	}

	work := make(chan int, len(values))
	points := make([]model.SweepPoint, len(values))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				points[i] = sweepOne(base, param, values[i])
			}
		}()
	}

	for i := range values {
		work <- i
	}
	close(work)
	wg.Wait()

	return points, nil
}

func sweepOne(base model.Assumptions, param model.SweepParameter, v decimal.Decimal) model.SweepPoint {
	// param was checked by the caller; Apply cannot fail here.
	derived, _ := param.Apply(base, v)
	final := Project(derived).Final()
	return model.SweepPoint{
		Value:               v,
		FinalNetProfit:      final.NetProfit,
		FinalCumulativeCash: final.CumulativeCash,
		FinalROI:            final.CumulativeROI,
	}
}

// LinearRange builds n evenly spaced sample values from lo to hi inclusive.
// n of 1 yields just lo.
func LinearRange(lo, hi decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []decimal.Decimal{lo}
	}
	step := hi.Sub(lo).Div(decimal.NewFromInt(int64(n - 1)))
	values := make([]decimal.Decimal, n)
	for i := 0; i < n; i++ {
		values[i] = lo.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	// Pin the endpoint: the division above is precision-limited.
	values[n-1] = hi
	return values
}
