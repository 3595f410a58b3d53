package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pomitik/tik/internal/config"
	clierrors "github.com/pomitik/tik/internal/errors"
	"github.com/pomitik/tik/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Inspect the resolved tik configuration and scaffold the config file.`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "path",
		Short:   "Print the config file location",
		Long:    `Display the path where tik looks for its config file, whether or not the file exists yet.`,
		Example: `  tik config path`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return clierrors.ConfigFailed("locate the config file", err)
			}

			out.Print("%s\n", path)

			return nil
		},
	}
}

// ConfigInfo holds the resolved presets and sessions for display.
type ConfigInfo struct {
	Presets  map[string]string         `json:"presets"`
	Sessions map[string]config.Session `json:"sessions"`
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Display every preset and session tik will accept, with user config
merged over the built-in defaults.`,
		Example: `  tik config show
  tik config show --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			cfg := config.Load()

			info := ConfigInfo{
				Presets:  cfg.Presets(),
				Sessions: make(map[string]config.Session),
			}

			for _, name := range cfg.SessionNames() {
				if s, ok := cfg.ResolveSession(name); ok {
					info.Sessions[name] = s
				}
			}

			if out.JSON {
				return out.PrintJSON(info)
			}

			out.Print("Presets:\n")

			for _, name := range sortedKeys(info.Presets) {
				out.Print("  %-14s %s\n", name, info.Presets[name])
			}

			out.Print("\nSessions:\n")

			for _, name := range sortedSessionKeys(info.Sessions) {
				s := info.Sessions[name]
				out.Print("  %-14s work=%s break=%s long_break=%s rounds=%d\n",
					name, s.Work, s.Break, s.LongBreak, s.Rounds)
			}

			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Create the config file with the built-in presets and the default
pomodoro session as a starting point. Refuses to overwrite an existing file.`,
		Example: `  tik config init`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return clierrors.ConfigFailed("locate the config file", err)
			}

			if _, err := os.Stat(path); err == nil {
				return clierrors.ConfigExists(path)
			}

			body, err := config.DefaultTOML()
			if err != nil {
				return clierrors.ConfigFailed("render the default config", err)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return clierrors.ConfigFailed("create the config directory", err)
			}

			if err := os.WriteFile(path, body, 0o600); err != nil {
				return clierrors.ConfigFailed("write the config file", err)
			}

			out.Success("Wrote default config to %s", path)

			return nil
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func sortedSessionKeys(m map[string]config.Session) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
