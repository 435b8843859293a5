package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/gearjump/frontend/term"
	"github.com/plus3/gearjump/frontend/window"
	"github.com/plus3/gearjump/game"
	"github.com/spf13/cobra"
)

func playCmd(flags *globalFlags) *cobra.Command {
	var (
		width, height int
		zoom          float32
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			level, err := flags.level()
			if err != nil {
				return err
			}
			logger, closeLog, err := flags.logger(false)
			if err != nil {
				return err
			}
			defer closeLog()

			return window.Run(window.Config{
				Title:  "gearjump",
				Width:  width,
				Height: height,
				Zoom:   zoom,
				Debug:  debug,
				Level:  level,
				Logger: logger,
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().Float32VarP(&zoom, "zoom", "z", 2, "World to screen scale")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Show the Dear ImGui debug panels")
	return cmd
}

func termCmd(flags *globalFlags) *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := flags.level()
			if err != nil {
				return err
			}
			logger, closeLog, err := flags.logger(true)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return term.Play(ctx, level, time.Second/time.Duration(max(fps, 1)), game.WithLogger(logger))
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 30, "Ticks per second")
	return cmd
}
