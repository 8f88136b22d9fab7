package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/genstudio-cli/internal/application"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	configDirName  = ".genstudio"
	configFileName = "config.toml"
)

// fileConfig mirrors the keys wireApp and the session repository read
// through viper.
type fileConfig struct {
	Sessions sessionsSection `toml:"sessions"`
	API      apiSection      `toml:"api"`
	Poll     pollSection     `toml:"poll"`
	Player   playerSection   `toml:"player"`
	Notify   notifySection   `toml:"notify"`
}

type sessionsSection struct {
	Path string `toml:"path"`
}

type apiSection struct {
	BaseURL string `toml:"base_url"`
}

type pollSection struct {
	Interval string `toml:"interval"`
}

type playerSection struct {
	Command string `toml:"command"`
}

type notifySection struct {
	Topic string `toml:"topic"`
}

func defaultFileConfig() (fileConfig, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fileConfig{}, "", fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, configDirName)
	cfg := fileConfig{
		Sessions: sessionsSection{Path: filepath.Join(configDir, "sessions.json")},
		API:      apiSection{BaseURL: defaultAPIBaseURL},
		Poll:     pollSection{Interval: application.DefaultPollInterval.String()},
		Player:   playerSection{Command: defaultPlayerCommand},
		Notify:   notifySection{Topic: ""},
	}

	return cfg, filepath.Join(configDir, configFileName), nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults, defaultPath, err := defaultFileConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = defaultPath
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s, use --overwrite to replace it", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			data, err := toml.Marshal(defaults)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if err := os.WriteFile(target, data, 0o600); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote configuration to %s\n", target)
			fmt.Fprintln(out, "Set notify.topic to an ntfy topic URL to get a push when a generation finishes.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing configuration file")

	return cmd
}
