package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cubes/format"
	"github.com/dhamidi/cubes/record"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file of game records and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			records, err := record.Parse(text, record.WithFile(args[0]))
			if err != nil {
				return err
			}
			log.Debugf("parsed %d records from %s", len(records), args[0])

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), opts.cfg.Bag)
			if err != nil {
				return err
			}
			if err := encoder.Encode(records); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "json", "output format: json or text")

	return cmd
}
