package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/plus3/gearjump/game"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	levelPath string
	verbose   bool
	logFile   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "gearjump",
		Short:        "Jump between spinning gears",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.levelPath, "level", "l", "", "YAML level file (default: built-in two gear level)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log session events")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write session events to this file")

	rootCmd.AddCommand(playCmd(flags))
	rootCmd.AddCommand(termCmd(flags))
	rootCmd.AddCommand(simCmd(flags))
	rootCmd.AddCommand(benchCmd(flags))
	rootCmd.AddCommand(levelCmd(flags))

	return rootCmd
}

func (f *globalFlags) level() (*game.Level, error) {
	if f.levelPath == "" {
		return game.DefaultLevel(), nil
	}
	return game.LoadLevel(f.levelPath)
}

// logger picks the session log destination. --log-file wins; otherwise
// --verbose logs to stderr unless the command owns the terminal.
func (f *globalFlags) logger(ownsTerminal bool) (*log.Logger, func(), error) {
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return log.New(file, "gearjump: ", log.LstdFlags|log.Lmicroseconds), func() { file.Close() }, nil
	}
	if f.verbose && !ownsTerminal {
		return log.New(os.Stderr, "gearjump: ", log.LstdFlags), func() {}, nil
	}
	return log.New(io.Discard, "", 0), func() {}, nil
}

func levelCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "level",
		Short: "Validate the selected level and print it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := flags.level()
			if err != nil {
				return err
			}
			data, err := level.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
