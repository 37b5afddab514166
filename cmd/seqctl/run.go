package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/seqkit/definition"
	"github.com/kbukum/seqkit/logger"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a pipeline definition file and print the collected values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			maxElements, err := cmd.Flags().GetInt("max-elements")
			if err != nil {
				return fmt.Errorf("failed to get max-elements flag: %w", err)
			}
			maxPulls, err := cmd.Flags().GetInt("max-pulls")
			if err != nil {
				return fmt.Errorf("failed to get max-pulls flag: %w", err)
			}
			timeout, err := cmd.Flags().GetDuration("timeout")
			if err != nil {
				return fmt.Errorf("failed to get timeout flag: %w", err)
			}

			def, err := definition.LoadFile(args[0])
			if err != nil {
				return err
			}
			runner := definition.NewRunner(definition.DefaultRegistry(),
				definition.WithMaxElements(maxElements),
				definition.WithMaxPulls(maxPulls),
				definition.WithTimeout(timeout),
				definition.WithLogger(logger.GetGlobalLogger()),
			)
			res, err := runner.Run(cmd.Context(), def)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "values":
				for _, v := range res.Values {
					fmt.Fprintln(out, strconv.FormatFloat(v, 'g', -1, 64))
				}
				if res.Truncated {
					fmt.Fprintf(cmd.ErrOrStderr(), "* truncated at %d elements\n", maxElements)
				}
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want json or values)", output)
			}
		},
	}
	cmd.Flags().StringP("output", "o", "values", "output format: values or json")
	cmd.Flags().Int("max-elements", 100000, "maximum elements a run may produce (0 for unlimited)")
	cmd.Flags().Int("max-pulls", 10_000_000, "maximum source elements a run may pull (0 for unlimited)")
	cmd.Flags().Duration("timeout", 30*time.Second, "run deadline (0 for none)")
	return cmd
}
