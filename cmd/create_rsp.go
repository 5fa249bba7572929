package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mybundle/pkg/rsp"
)

func newCreateRspCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Create a response file with bundle options",
		Long: `create-rsp asks for every bundle option and saves the resulting command line
to a response file. Pass it back later as: mybundle @rspFile.rsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			opts, err := rsp.Gather(rsp.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return fmt.Errorf("failed to read options: %w", err)
			}

			path := a.cfg.RspFile
			if err := rsp.Write(a.fs, path, opts); err != nil {
				a.logger().Error("Failed to write response file", zap.String("path", path), zap.Error(err))
				return err
			}
			a.logger().Debug("Wrote response file", zap.String("path", path), zap.String("command", opts.String()))

			fmt.Fprintf(cmd.OutOrStdout(), "response file created: %s\n", path)
			return nil
		},
	}
}
