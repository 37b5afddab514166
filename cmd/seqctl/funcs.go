package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kbukum/seqkit/definition"
)

func newFuncsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the mapper and predicate functions definitions can reference.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
			table.SetAutoFormatHeaders(false)
			table.SetBorder(true)
			table.SetHeader([]string{"Kind", "Name", "Arg", "Description"})

			for _, f := range definition.DefaultRegistry().Funcs() {
				table.Append([]string{
					string(f.Kind),
					f.Name,
					strconv.FormatBool(f.TakesArg),
					f.Description,
				})
			}
			table.Render()
			return nil
		},
	}
}
