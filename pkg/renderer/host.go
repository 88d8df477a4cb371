package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	CPUModel     string
	LogicalCores int
}

// DetectHost queries the CPU model and logical core count, falling back to
// the Go runtime when the platform does not expose them
func DetectHost() HostInfo {
	host := HostInfo{
		CPUModel:     "unknown",
		LogicalCores: runtime.NumCPU(),
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		host.CPUModel = infos[0].ModelName
	}
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		host.LogicalCores = count
	}

	return host
}

// DefaultWorkerCount returns one worker per logical CPU
func DefaultWorkerCount() int {
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		return count
	}
	return runtime.NumCPU()
}
