package cmd

import (
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

// setupLogging applies --log-level, then lets -v and -vv raise the verbosity.
func setupLogging(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.GlobalString("log-level"))
	if err != nil {
		return err
	}

	switch {
	case ctx.GlobalBool("vv"):
		level = log.Debug
	case ctx.GlobalBool("v") && level > log.Info:
		level = log.Info
	}

	log.SetLevel(level)
	return nil
}
