package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	RowsCompleted   int           // Scanlines fully rendered
	TotalSamples    int           // Camera rays traced
	Duration        time.Duration // Wall time spent in workers
	BuildTime       time.Duration // Acceleration structure build time, filled in by the caller
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Table builds a tabular representation of the render statistics
func (s RenderStats) Table(host HostInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Host", fmt.Sprintf("%s (%d logical cores)", host.CPUModel, host.LogicalCores)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Samples/pixel", fmt.Sprintf("%d", s.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Scanlines", fmt.Sprintf("%d/%d", s.RowsCompleted, s.Height)})
	table.Append([]string{"Camera rays", fmt.Sprintf("%d", s.TotalSamples)})
	table.Append([]string{"Rays/sec", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.Append([]string{"BVH build", s.BuildTime.String()})
	table.SetFooter([]string{"Render time", s.Duration.String()})

	table.Render()
	return buf.String()
}
