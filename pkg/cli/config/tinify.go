package config

import (
	"time"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/infra/tinify"
	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Tinify holds compression service configuration
type Tinify struct {
	APIKey      string `masq:"secret"`
	Endpoint    string
	Timeout     time.Duration
	Concurrency int
	RateLimit   float64
}

// Flags returns CLI flags for compression service configuration
func (c *Tinify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tinify-api-key",
			Usage:       "TinyPNG API key (falls back to the settings file)",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("DONUTSHOP_TINIFY_API_KEY", "TINYPNG_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "tinify-endpoint",
			Usage:       "Compression service shrink endpoint",
			Value:       tinify.DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("DONUTSHOP_TINIFY_ENDPOINT"),
		},
		&cli.DurationFlag{
			Name:        "tinify-timeout",
			Usage:       "Timeout per compression request, 0 for none",
			Value:       0,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("DONUTSHOP_TINIFY_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "tinify-concurrency",
			Usage:       "Maximum images compressed at once, 0 for all at once",
			Value:       0,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("DONUTSHOP_TINIFY_CONCURRENCY"),
		},
		&cli.FloatFlag{
			Name:        "tinify-rate",
			Usage:       "Maximum uploads per second, 0 for unlimited",
			Value:       0,
			Destination: &c.RateLimit,
			Sources:     cli.EnvVars("DONUTSHOP_TINIFY_RATE"),
		},
	}
}

// NewCompression builds the compression use case from the configuration
func (c *Tinify) NewCompression() interfaces.CompressUseCase {
	client := tinify.NewClient(
		tinify.WithEndpoint(c.Endpoint),
		tinify.WithTimeout(c.Timeout),
	)
	return usecase.NewCompression(client,
		usecase.WithConcurrency(c.Concurrency),
		usecase.WithRateLimit(c.RateLimit),
	)
}
