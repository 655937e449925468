package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/services/repkg"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var (
		sortFlag    bool
		sortByFlag  string
		entriesFlag bool
		titleFlag   string
	)

	cmd := &cobra.Command{
		Use:   "info <pkg>",
		Short: "Inspect a .pkg archive with RePKG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.unpackerClient()
			if err != nil {
				return err
			}

			output, err := client.Info(cmd.Context(), args[0], repkg.InfoOptions{
				Sort:         sortFlag,
				SortBy:       sortByFlag,
				PrintEntries: entriesFlag,
				TitleFilter:  titleFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sortFlag, "sort", false, "Sort the archive listing")
	cmd.Flags().StringVar(&sortByFlag, "sort-by", "", "Sort listing by the given column")
	cmd.Flags().BoolVar(&entriesFlag, "entries", false, "Print individual archive entries")
	cmd.Flags().StringVar(&titleFlag, "title-filter", "", "Only show entries matching this title pattern")

	return cmd
}
