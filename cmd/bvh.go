package cmd

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// DescribeBVH builds the BVH of a scene and prints its shape.
func DescribeBVH(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	s, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}

	start := time.Now()
	bvh, err := s.BuildBVH(bvhSampler(ctx.Uint64("seed")))
	if err != nil {
		return err
	}
	buildTime := time.Since(start)

	stats := bvh.Stats()
	bounds := bvh.Bounds()

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", s.Name})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", stats.Primitives)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", stats.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", stats.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{"Bounds min", formatVec(bounds.Min)})
	table.Append([]string{"Bounds max", formatVec(bounds.Max)})
	table.SetFooter([]string{"Build time", buildTime.String()})
	table.Render()

	return nil
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
