package main

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

type commandContext struct {
	configPath string
	settings   *config.Settings
}

func (c *commandContext) ensureSettings() (config.Settings, error) {
	if c.settings != nil {
		return *c.settings, nil
	}
	settings, err := config.Load(c.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	c.settings = &settings
	return settings, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "yt-study-api",
		Short:         "YouTube study assistant API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Init()
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (TOML)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newRoutesCommand(ctx))

	return rootCmd
}
