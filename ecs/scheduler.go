package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system System
	stats  SystemStats
}

// Scheduler executes registered systems in registration order, then flushes
// the frame's command buffer into the world.
type Scheduler struct {
	world   *World
	systems []*systemEntry
	ticks   uint64
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world: world,
	}
}

// Register appends a system, named after its type.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	s.RegisterNamed(systemType.Name(), system)
}

// RegisterNamed appends a system under an explicit name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, &systemEntry{
		system: system,
		stats: SystemStats{
			Name:        name,
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	s.ticks++
	frame := newUpdateFrame(dt, s.ticks, s.world)

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := &entry.stats
		stats.ExecutionCount++
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	frame.Commands.Flush(s.world)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
// The delta time passed to each tick is the wall-clock time since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Ticks returns how many times Once has run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		system := entry.stats
		if system.ExecutionCount > 0 {
			system.AvgDuration = system.TotalDuration / time.Duration(system.ExecutionCount)
		} else {
			system.MinDuration = 0
		}
		stats.Systems[i] = system
		stats.TotalExecutions += system.ExecutionCount
	}

	return stats
}
