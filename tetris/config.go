package tetris

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a Config can't be used to start a game.
var ErrInvalidConfig = errors.New("invalid config")

// minTiles is the smallest board side able to hold every catalog piece at spawn.
const minTiles = 4

// Config holds the constants fixed at process start.
type Config struct {
	Width           int    `yaml:"width"`             // Board width in tiles.
	Height          int    `yaml:"height"`            // Board height in tiles.
	QueueLength     int    `yaml:"queue_length"`      // Number of upcoming pieces kept in the queue.
	FramesPerSecond int    `yaml:"frames_per_second"` // Ticks per second.
	SoftDropPoints  int    `yaml:"soft_drop_points"`  // Points per soft drop step.
	HardDropPoints  int    `yaml:"hard_drop_points"`  // Multiplier of distance² on hard drop.
	Seed            uint64 `yaml:"seed"`              // Seed for the piece die. 0 seeds from the clock.
}

func DefaultConfig() Config {
	return Config{
		Width:           10,
		Height:          20,
		QueueLength:     3,
		FramesPerSecond: 3,
		SoftDropPoints:  10,
		HardDropPoints:  10,
	}
}

// ReadConfig reads a YAML file on top of DefaultConfig and validates the result.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("unable to open config file: %w", err)
	}
	defer f.Close() //nolint: errcheck

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("unable to decode config file %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	switch {
	case c.Width < minTiles:
		return fmt.Errorf("%w: width must be at least %d, got %d", ErrInvalidConfig, minTiles, c.Width)
	case c.Height < minTiles:
		return fmt.Errorf("%w: height must be at least %d, got %d", ErrInvalidConfig, minTiles, c.Height)
	case c.QueueLength < 1:
		return fmt.Errorf("%w: queue length must be positive, got %d", ErrInvalidConfig, c.QueueLength)
	case c.FramesPerSecond < 1:
		return fmt.Errorf("%w: frames per second must be positive, got %d", ErrInvalidConfig, c.FramesPerSecond)
	case c.SoftDropPoints < 0 || c.HardDropPoints < 0:
		return fmt.Errorf("%w: scoring multipliers can't be negative", ErrInvalidConfig)
	}
	return nil
}

// SpawnColumn is the column new pieces are offset by.
func (c Config) SpawnColumn() int {
	return c.Width/2 - 1
}

// TickInterval is the time between two ticks of the clock.
func (c Config) TickInterval() time.Duration {
	return time.Duration(1000/c.FramesPerSecond) * time.Millisecond
}
