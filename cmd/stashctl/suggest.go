package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd(a *app) *cobra.Command {
	var noResults bool

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Propose alternative queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range svc.Suggestions(args[0], svc.Content(), noResults) {
				_, _ = fmt.Fprintln(a.out, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noResults, "no-results", false, "the query found nothing")
	return cmd
}
