package alloppnet

import (
	"os"

	"github.com/charmbracelet/log"
)

//Options carries the settings shared by the network, the likelihood and the priors
type Options struct {
	// Debug turns on tracing of mullab trees and per-gene results.
	Debug bool
	// Logger receives the traces. nil means log.Default(), or a debug-level
	// stderr logger when Debug is set.
	Logger *log.Logger
	// Population is the population-size function integrated along limbs.
	// nil means LinearPopulation.
	Population PopulationFunction
}

//DefaultOptions will return options with linear populations and no tracing
func DefaultOptions() Options {
	return Options{Population: LinearPopulation{}}
}

// NewLogger builds a logger writing to stderr at the given level.
func NewLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

var debugLogger = NewLogger(log.DebugLevel)

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.Debug {
		return debugLogger
	}
	return log.Default()
}

func (o Options) population() PopulationFunction {
	if o.Population != nil {
		return o.Population
	}
	return LinearPopulation{}
}

func (o Options) debugf(format string, args ...interface{}) {
	if o.Debug {
		o.logger().Debugf(format, args...)
	}
}
