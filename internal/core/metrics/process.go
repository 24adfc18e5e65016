package metrics

import (
	"cmp"
	"slices"

	"pulse-server/internal/domain"
)

// RankProcesses keeps the limit busiest processes by CPU%, highest first.
// Equal CPU values keep provider order. Vanished processes are dropped and
// unreadable percentages count as zero.
func RankProcesses(procs []domain.RawProcess, limit, nameMax int) []domain.ProcessInfo {
	out := make([]domain.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		if p.Gone {
			continue
		}
		out = append(out, domain.ProcessInfo{
			PID:        p.PID,
			Name:       truncate(p.Name, nameMax),
			CPUPercent: valueOrZero(p.CPUPercent),
			MemPercent: valueOrZero(p.MemPercent),
		})
	}

	slices.SortStableFunc(out, func(a, b domain.ProcessInfo) int {
		return cmp.Compare(b.CPUPercent, a.CPUPercent)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return slices.Clip(out)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
