package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/matheus3301/papirus/internal/config"
	"github.com/matheus3301/papirus/internal/logging"
	"github.com/matheus3301/papirus/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "papirus",
	Short: "papirus - a terminal HTTP client",
	Long: `papirus is an interactive terminal client for sending HTTP requests.

Keys on the home screen:
  u / e    edit the URL (Up/Down change the method, Enter sends)
  r        edit the request (Left/Right change tab, Enter edits)
  s        focus the response (y copies the body)
  q        quit`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "papirus %s\n", version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.Save(path, config.Default()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var (
	flagConfig    string
	flagLogFile   string
	flagLogLevel  string
	flagTickRate  float64
	flagFrameRate float64
	flagForce     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default ~/.papirus/config.toml)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", config.LogPath(), "log file path")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "",
		"log level: debug, info, warn or error (default $"+logging.LevelEnvVar+", empty disables logging)")
	rootCmd.Flags().Float64VarP(&flagTickRate, "tick-rate", "t", 0, "ticks per second (default from config)")
	rootCmd.Flags().Float64VarP(&flagFrameRate, "frame-rate", "f", 0, "frames per second (default from config)")

	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func runTUI() error {
	if flagTickRate < 0 || flagFrameRate < 0 {
		return errors.New("rates must be positive")
	}
	if _, err := logging.ParseLevel(flagLogLevel); flagLogLevel != "" && err != nil {
		return err
	}

	app := fx.New(
		tui.Module(tui.Params{
			ConfigPath: configPath(),
			LogPath:    flagLogFile,
			LogLevel:   flagLogLevel,
			TickRate:   flagTickRate,
			FrameRate:  flagFrameRate,
		}),
		tui.WithLogger(),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	sig := <-app.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("exited with code %d, see %s", sig.ExitCode, flagLogFile)
	}
	return nil
}
