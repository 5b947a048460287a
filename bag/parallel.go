package bag

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/cubes/record"
)

// SumFeasibleIDsParallel is SumFeasibleIDs split across up to workers
// goroutines.
func SumFeasibleIDsParallel(ctx context.Context, records []record.Record, capacity Bag, workers int) (int, error) {
	return reduce(ctx, records, workers, func(chunk []record.Record) int {
		return SumFeasibleIDs(chunk, capacity)
	})
}

// SumPowersParallel is SumPowers split across up to workers goroutines.
func SumPowersParallel(ctx context.Context, records []record.Record, workers int) (int, error) {
	return reduce(ctx, records, workers, SumPowers)
}

// reduce sums fn over contiguous chunks of records, one chunk per worker.
func reduce(ctx context.Context, records []record.Record, workers int, fn func([]record.Record) int) (int, error) {
	if workers < 1 {
		workers = 1
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if workers == 1 || len(records) < 2 {
		return fn(records), nil
	}

	size := (len(records) + workers - 1) / workers
	var total atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for start := 0; start < len(records); start += size {
		chunk := records[start:min(start+size, len(records))]
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			total.Add(int64(fn(chunk)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}
