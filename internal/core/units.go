package core

import (
	"fmt"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with one decimal, stepping by 1024 until
// the value drops below 1024. Anything past TB is reported in PB.
func FormatBytes(v float64) string {
	for _, unit := range byteUnits {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f PB", v)
}

func FormatRate(bytesPerSec float64) string {
	return FormatBytes(bytesPerSec) + "/s"
}

// FormatUptime renders whole seconds as "H:MM:SS", prefixed with
// "N day, " or "N days, " past the first day.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)

	days := total / 86400
	rem := total % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rem/3600, (rem%3600)/60, rem%60)

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

type Metadata struct {
	CPU         CPUUnits     `json:"cpu"`
	Memory      MemoryUnits  `json:"memory"`
	Disk        DiskUnits    `json:"disk"`
	Network     NetworkUnits `json:"network"`
	Temperature string       `json:"temperature"`
	Uptime      string       `json:"uptime"`
	LoadAvg     string       `json:"load_avg"`
	Processes   string       `json:"processes"`
}

type CPUUnits struct {
	Percent   string `json:"percent"`
	PerCore   string `json:"per_cpu"`
	Frequency string `json:"frequency"`
}

type MemoryUnits struct {
	Total     string `json:"total"`
	Used      string `json:"used"`
	Available string `json:"available"`
	Percent   string `json:"percent"`
}

type DiskUnits struct {
	Total   string `json:"total"`
	Used    string `json:"used"`
	Free    string `json:"free"`
	Percent string `json:"percent"`
}

type NetworkUnits struct {
	Counters string `json:"bytes"`
	Rate     string `json:"speed"`
}

func DefaultMetadata() Metadata {
	return Metadata{
		CPU: CPUUnits{
			Percent:   "percent",
			PerCore:   "percent",
			Frequency: "MHz",
		},
		Memory: MemoryUnits{
			Total:     "bytes",
			Used:      "bytes",
			Available: "bytes",
			Percent:   "percent",
		},
		Disk: DiskUnits{
			Total:   "bytes",
			Used:    "bytes",
			Free:    "bytes",
			Percent: "percent",
		},
		Network: NetworkUnits{
			Counters: "bytes",
			Rate:     "bytes/s",
		},
		Temperature: "celsius",
		Uptime:      "seconds",
		LoadAvg:     "1m/5m/15m",
		Processes:   "percent",
	}
}
