package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1broseidon/fawm/internal/config"
	"github.com/1broseidon/fawm/internal/menu"
	"github.com/1broseidon/fawm/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fawm-config CONFIG_FILE",
		Short: "Compile a fawm configuration into the blob fawm loads",
		Long: `fawm-config validates a YAML configuration and writes its menu to stdout
as a size-prefixed binary blob. fawm runs it at startup.`,
		Version:       version.Version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return compile(cmd.OutOrStdout(), args[0])
		},
	}
}

func compile(w io.Writer, path string) error {
	res, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	return menu.WriteStream(w, &menu.Menu{Items: res.Config.MenuItems()})
}
