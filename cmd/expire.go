package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qesmsep/noir-reserve/internal/app"
	"github.com/qesmsep/noir-reserve/internal/config"
)

func newExpireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Cancel pending holds past their TTL and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.New()
			if err != nil {
				return err
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			n, err := application.ExpirePendingOnce(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("expired %d pending holds\n", n)
			return nil
		},
	}
}
