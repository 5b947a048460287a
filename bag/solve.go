package bag

import (
	"strconv"

	"github.com/dhamidi/cubes/record"
)

// Default is the bag the feasibility question is usually asked about.
var Default = Bag{Red: 12, Green: 13, Blue: 14}

// SolveFeasible parses text and returns the sum of the identifiers of the
// games feasible for capacity, in decimal.
func SolveFeasible(text string, capacity Bag, opts ...record.Option) (string, error) {
	records, err := record.Parse(text, opts...)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(SumFeasibleIDs(records, capacity)), nil
}

// SolvePower parses text and returns the sum of the powers of each game's
// minimal bag, in decimal.
func SolvePower(text string, opts ...record.Option) (string, error) {
	records, err := record.Parse(text, opts...)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(SumPowers(records)), nil
}
