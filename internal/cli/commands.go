package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  shaum config set latitude -6.2088\n  shaum config set longitude 106.8456\n  shaum config set adjustment -1\n  shaum config set daud_strategy postpone\n  shaum config set preset mabims",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		display := val
		if display == "" {
			display = "(not set)"
		}
		fmt.Printf("  %-14s %s\n", key, display)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List prayer time calculation presets",
		Long:  "Print the table of supported calculation presets and their parameters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Supported calculation presets:")
			fmt.Println()
			fmt.Printf("  %-14s %-10s %-8s %-8s\n", "Name", "Fajr", "Imsak", "Ihtiyat")
			fmt.Printf("  %-14s %-10s %-8s %-8s\n", "────", "────", "─────", "───────")
			for _, name := range astro.PresetNames {
				p, _ := astro.PresetByName(name)
				fmt.Printf("  %-14s %-10s %-8s %-8s\n",
					name,
					fmt.Sprintf("%.1f°", p.FajrAngle),
					fmt.Sprintf("-%dm", p.ImsakBufferMinutes),
					fmt.Sprintf("%dm", p.IhtiyatMinutes))
			}
			fmt.Println()
			fmt.Println("Use --preset <name> to select a preset (default: mabims).")
			return nil
		},
	}
}
