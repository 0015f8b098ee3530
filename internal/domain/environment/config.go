package environment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig       = errors.New("invalid environment config")
	ErrGridSizeOutOfBounds = errors.New("grid size out of bounds")
)

const (
	DefaultMinDim = 3
	DefaultMaxDim = 13
)

type Config struct {
	MinDim int
	MaxDim int
}

func DefaultConfig() Config {
	return Config{MinDim: DefaultMinDim, MaxDim: DefaultMaxDim}
}

func (c Config) Validate() error {
	if c.MinDim <= 0 {
		return fmt.Errorf("%w: min_environment_dim must be positive, got %d", ErrInvalidConfig, c.MinDim)
	}
	if c.MaxDim <= 0 {
		return fmt.Errorf("%w: max_environment_dim must be positive, got %d", ErrInvalidConfig, c.MaxDim)
	}
	if c.MinDim > c.MaxDim {
		return fmt.Errorf("%w: min_environment_dim %d is greater than max_environment_dim %d", ErrInvalidConfig, c.MinDim, c.MaxDim)
	}
	return nil
}

// CheckSize validates the config and that size lies in [MinDim, MaxDim].
func (c Config) CheckSize(size int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if size < c.MinDim || size > c.MaxDim {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrGridSizeOutOfBounds, size, c.MinDim, c.MaxDim)
	}
	return nil
}
