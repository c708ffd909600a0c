package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

func newItemsCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List saved items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 || offset < 0 {
				return fmt.Errorf("--limit and --offset must not be negative")
			}
			svc, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			all := svc.Content()
			renderItems(a.out, window(all, limit, offset), len(all))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "max items to print (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "items to skip")
	return cmd
}

func window(items []item.Item, limit, offset int) []item.Item {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

