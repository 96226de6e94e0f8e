package common

import (
	"github.com/bornholm/darkroom/internal/config"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// GetConfig parses the configuration from the DARKROOM_* environment variables
func GetConfig(cCtx *cli.Context) (*config.Config, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse configuration")
	}

	return conf, nil
}
