package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cubes/bag"
	"github.com/dhamidi/cubes/record"
)

func newSolveCmd(opts *rootOptions) *cobra.Command {
	var part int
	var capacity bag.Bag
	var workers int

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Print the feasibility sum (part 1) or the power sum (part 2)",
		Long: `Parse a file of game records and print one number.

Part 1 sums the identifiers of the games that a bag holding --red, --green
and --blue cubes could have produced. Part 2 sums the power of the smallest
bag each game needs. Use "-" to read the records from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			flags := cmd.Flags()
			if !flags.Changed("red") {
				capacity.Red = cfg.Bag.Red
			}
			if !flags.Changed("green") {
				capacity.Green = cfg.Bag.Green
			}
			if !flags.Changed("blue") {
				capacity.Blue = cfg.Bag.Blue
			}
			if !flags.Changed("workers") {
				workers = cfg.Workers
			}

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := solve(cmd, text, args[0], part, capacity, workers)
			if err != nil {
				return err
			}
			log.Infof("solved part %d of %s with %d workers", part, args[0], workers)
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&part, "part", 1, "1 for the feasibility sum, 2 for the power sum")
	cmd.Flags().IntVar(&capacity.Red, "red", bag.Default.Red, "red cubes in the bag")
	cmd.Flags().IntVar(&capacity.Green, "green", bag.Default.Green, "green cubes in the bag")
	cmd.Flags().IntVar(&capacity.Blue, "blue", bag.Default.Blue, "blue cubes in the bag")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines used to reduce the records")

	return cmd
}

func solve(cmd *cobra.Command, text, name string, part int, capacity bag.Bag, workers int) (string, error) {
	file := record.WithFile(name)

	if workers <= 1 {
		switch part {
		case 1:
			return bag.SolveFeasible(text, capacity, file)
		case 2:
			return bag.SolvePower(text, file)
		}
		return "", fmt.Errorf("unknown part: %d", part)
	}

	records, err := record.Parse(text, file)
	if err != nil {
		return "", err
	}

	var sum int
	switch part {
	case 1:
		sum, err = bag.SumFeasibleIDsParallel(cmd.Context(), records, capacity, workers)
	case 2:
		sum, err = bag.SumPowersParallel(cmd.Context(), records, workers)
	default:
		return "", fmt.Errorf("unknown part: %d", part)
	}
	if err != nil {
		return "", err
	}
	return strconv.Itoa(sum), nil
}
