package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// ExportScene writes a scene as YAML, to --out or standard output. Exported
// built-in scenes are a starting point for custom scene files.
func ExportScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	s, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}

	data, err := scene.Marshal(s)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		_, err = ctx.App.Writer.Write(data)
		return err
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	logger.Noticef("wrote %s", out)
	return nil
}
