package config

import (
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Scan holds creative discovery configuration
type Scan struct {
	Exclude []string
}

// Flags returns CLI flags for scan configuration
func (c *Scan) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "exclude",
			Usage:       "Glob pattern (relative to the folder, ** supported) of paths to skip; repeatable",
			Destination: &c.Exclude,
			Sources:     cli.EnvVars("DONUTSHOP_EXCLUDE"),
		},
	}
}

// NewScanner builds the scan use case from the configuration
func (c *Scan) NewScanner() (interfaces.ScanUseCase, error) {
	return usecase.NewScanner(usecase.WithExclude(c.Exclude...))
}
