// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/retroenv/retrogolib/log"

const (
	defaultIterationFactor = 100
	defaultMinIterations   = 1000
)

// config holds the parameters of a Model.
type config struct {
	iterationFactor int // evaluations allowed per node and step
	minIterations   int // lower bound of the evaluation limit
	logger          *log.Logger
}

func makeConfig() *config {
	return &config{
		iterationFactor: defaultIterationFactor,
		minIterations:   defaultMinIterations,
	}
}

// An Option configures a Model.
//
type Option func(*config)

// IterationFactor is a configuration option. Used as a parameter in New, it
// sets the number of node evaluations allowed per node in a single step before
// the model reports an oscillation. The default is 100.
//
func IterationFactor(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.iterationFactor = n
		}
	}
}

// MinIterations is a configuration option. It sets the lower bound of the
// evaluation limit of a step, regardless of the node count. The default is 1000.
//
func MinIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minIterations = n
		}
	}
}

// WithLogger sets the logger used by the model. By default, only errors are
// logged.
//
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func defaultLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}
