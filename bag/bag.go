// Package bag computes aggregates over game records: which games a bag of
// known capacity could have produced, and the smallest bag each game needs.
package bag

import (
	"fmt"

	"github.com/dhamidi/cubes/record"
)

// Bag is a per-color cube capacity.
type Bag struct {
	Red   int `json:"red" yaml:"red"`
	Green int `json:"green" yaml:"green"`
	Blue  int `json:"blue" yaml:"blue"`
}

// Count returns the capacity for color c.
func (b Bag) Count(c record.Color) int {
	switch c {
	case record.Red:
		return b.Red
	case record.Green:
		return b.Green
	case record.Blue:
		return b.Blue
	}
	return 0
}

// Holds reports whether every count of d fits in b. A count equal to the
// capacity fits.
func (b Bag) Holds(d record.Draw) bool {
	return d.Red() <= b.Red && d.Green() <= b.Green && d.Blue() <= b.Blue
}

// Power is the product of the three capacities.
func (b Bag) Power() int {
	return b.Red * b.Green * b.Blue
}

func (b Bag) String() string {
	return fmt.Sprintf("%d red, %d green, %d blue", b.Red, b.Green, b.Blue)
}

// Feasible reports whether every draw of r fits in capacity.
func Feasible(r record.Record, capacity Bag) bool {
	for _, d := range r.Draws {
		if !capacity.Holds(d) {
			return false
		}
	}
	return true
}

// Minimal returns the smallest bag holding every draw of r. A record without
// draws needs the empty bag.
func Minimal(r record.Record) Bag {
	var m Bag
	for _, d := range r.Draws {
		m.Red = max(m.Red, d.Red())
		m.Green = max(m.Green, d.Green())
		m.Blue = max(m.Blue, d.Blue())
	}
	return m
}

// SumFeasibleIDs sums the identifiers of the records feasible for capacity.
func SumFeasibleIDs(records []record.Record, capacity Bag) int {
	sum := 0
	for _, r := range records {
		if Feasible(r, capacity) {
			sum += r.ID
		}
	}
	return sum
}

// SumPowers sums the power of each record's minimal bag.
func SumPowers(records []record.Record) int {
	sum := 0
	for _, r := range records {
		sum += Minimal(r).Power()
	}
	return sum
}
