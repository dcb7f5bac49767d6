// Package sysinfo captures the host environment a benchmark run executed on
// so reports stay comparable across machines.
package sysinfo

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo is the host snapshot embedded in every report.
type SystemInfo struct {
	OS           string  `json:"os"`
	Architecture string  `json:"architecture"`
	CPUModel     string  `json:"cpu_model,omitempty"`
	CPUCores     int     `json:"cpu_cores"`
	CPUThreads   int     `json:"cpu_threads,omitempty"`
	TotalMemory  uint64  `json:"total_memory,omitempty"`
	GoVersion    string  `json:"go_version"`
	Hostname     string  `json:"hostname,omitempty"`
	Platform     string  `json:"platform,omitempty"`
	LoadAverage  float64 `json:"load_average,omitempty"`
}

// Collect gathers the snapshot. Probes that fail on a given platform leave
// their field zero rather than failing the whole capture; the runtime-derived
// fields are always present.
func Collect() SystemInfo {
	info := SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUCores:     runtime.NumCPU(),
		GoVersion:    runtime.Version(),
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = strings.TrimSpace(cpus[0].ModelName)
	}
	if threads, err := cpu.Counts(true); err == nil {
		info.CPUThreads = threads
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
	}
	if avg, err := load.Avg(); err == nil {
		info.LoadAverage = avg.Load1
	}

	return info
}
