package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/service/checklist"
	"github.com/secmon-lab/allegro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var libraryPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the vulnerability library and baseline checklist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "library",
				Usage:       "Path to a vulnerability library TOML (validates the built-in library when empty)",
				Sources:     cli.EnvVars("ALLEGRO_LIBRARY"),
				Destination: &libraryPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			var lib *checklist.Library
			var err error
			if libraryPath != "" {
				lib, err = checklist.LoadLibrary(libraryPath)
			} else {
				lib, err = checklist.NewLibrary()
			}
			if err != nil {
				return goerr.Wrap(err, "library validation failed")
			}
			logger.Info("Library validation passed",
				"path", libraryPath,
				"vulnerability_count", len(lib.All()),
			)

			items, err := checklist.BaselineItems()
			if err != nil {
				return goerr.Wrap(err, "baseline checklist validation failed")
			}
			logger.Info("Baseline checklist validation passed",
				"item_count", len(items),
			)

			return nil
		},
	}
}
