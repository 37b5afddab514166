package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/seqkit/definition"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check pipeline definition files without running them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := definition.DefaultRegistry()
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				def, err := definition.LoadFile(path)
				if err == nil {
					err = definition.Validate(def, reg)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s (%s)\n", path, def.Name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d definitions invalid", failed, len(args))
			}
			return nil
		},
	}
}
