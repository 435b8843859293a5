package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/plus3/gearjump/game"
	"github.com/plus3/gearjump/kinematics"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	duration       time.Duration
	gears          int
	players        int
	jumpEvery      int
	gcPauseMetrics bool
}

func benchCmd(flags *globalFlags) *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Stress the tick loop with a large generated level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := flags.logger(false)
			if err != nil {
				return err
			}
			defer closeLog()

			report, err := runBench(cmd.Context(), opts, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- Bench Report ---")
			if err := report.Generate(out); err != nil {
				return fmt.Errorf("generating report: %w", err)
			}
			fmt.Fprintln(out, "--- End of Report ---")
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.duration, "duration", 10*time.Second, "How long to run")
	cmd.Flags().IntVar(&opts.gears, "gears", 1024, "Number of gears in the generated grid")
	cmd.Flags().IntVar(&opts.players, "players", 64, "Number of orbiting players")
	cmd.Flags().IntVar(&opts.jumpEvery, "jump-every", 10, "Trigger a jump every N ticks (0 disables)")
	cmd.Flags().BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Include GC pause totals in the report")
	return cmd
}

// gridLevel lays gears out on a square grid spaced so neighbouring bounding
// boxes overlap, alternating spin direction like meshed gears.
func gridLevel(gears int) *game.Level {
	const spacing = 150

	level := game.DefaultLevel()
	level.Gears = level.Gears[:0]

	side := int(math.Ceil(math.Sqrt(float64(gears))))
	for i := range gears {
		row, col := i/side, i%side
		direction := kinematics.Clockwise
		if (row+col)%2 == 1 {
			direction = kinematics.CounterClockwise
		}
		level.Gears = append(level.Gears, game.GearSpec{
			Position:    kinematics.V2(float64(col*spacing), float64(row*spacing)),
			InitialStep: direction == kinematics.Clockwise,
			Direction:   direction,
		})
	}
	return level
}

func runBench(ctx context.Context, opts *benchOptions, logger *log.Logger) (*Report, error) {
	if opts.gears < 2 {
		return nil, fmt.Errorf("bench needs at least 2 gears, got %d", opts.gears)
	}
	if opts.players < 1 {
		return nil, fmt.Errorf("bench needs at least 1 player, got %d", opts.players)
	}

	level := gridLevel(opts.gears)
	session, err := game.NewSession(level, game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer session.End()

	spawner := &game.Spawner{
		World:      session.World,
		Components: session.Components,
		Registry:   session.Registry,
		GearSprite: level.Sprite(),
	}
	for i := 1; i < opts.players; i++ {
		gear := level.Gears[i%len(level.Gears)]
		spawner.SpawnPlayer(gear.Position, game.PlayerSpec{
			Radius:      level.Player.Radius,
			InitialStep: i%2 == 0,
			Direction:   gear.Direction.Opposite(),
		})
	}

	report := &Report{
		Duration: opts.duration,
		Gears:    opts.gears,
		Players:  opts.players,
		Entities: session.World.Len(),

		GCPauseMetrics: opts.gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Printf("bench: %d gears, %d players for %s", opts.gears, opts.players, opts.duration)
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	start := time.Now()
	last := start

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if opts.jumpEvery > 0 && report.TotalUpdates%int64(opts.jumpEvery) == 0 {
				session.Trigger(game.ActionJump)
			}

			dt := time.Since(last)
			last = time.Now()

			updateStart := time.Now()
			session.Tick(dt.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := session.Stats()
	report.Jumps = stats.Jumps
	report.Transfers = stats.Transfers
	report.Systems = session.Scheduler.GetStats().Systems

	for _, orbit := range session.Components.Orbits.Iter() {
		report.MaxRadialError = max(report.MaxRadialError, orbit.RadialError())
	}

	return report, nil
}
