package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/stash/internal/domain/item"
	itemrepo "github.com/kailas-cloud/stash/internal/repository/item"
	libraryuc "github.com/kailas-cloud/stash/internal/usecase/library"
)

// discardSink drops content pushes; the CLI exits right after importing.
type discardSink struct{}

func (discardSink) SetContent([]item.Item) {}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <export.json>",
		Short: "Write items from a JSON export into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := itemrepo.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := a.loadConfigForStore()
			if err != nil {
				return err
			}
			logger := a.logger()
			repo, store, err := a.openRepo(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := libraryuc.New(repo, discardSink{}, logger).Import(cmd.Context(), items)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "Imported %d items\n", n)
			return nil
		},
	}
}
