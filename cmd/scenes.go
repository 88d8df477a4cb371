package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// ListScenes prints the built-in scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Type, info.Description})
	}
	table.Render()

	return nil
}
