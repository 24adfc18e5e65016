package metrics

import (
	"fmt"
	"strings"
	"testing"

	"pulse-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 {
	return &v
}

func TestRankProcesses_TopTenByCPU(t *testing.T) {
	procs := make([]domain.RawProcess, 0, 15)
	for i := range 15 {
		procs = append(procs, domain.RawProcess{
			PID:        int32(100 + i),
			Name:       fmt.Sprintf("proc-%02d", i),
			CPUPercent: pct(float64(i % 5)),
			MemPercent: pct(1),
		})
	}

	ranked := RankProcesses(procs, 10, 30)

	require.Len(t, ranked, 10)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].CPUPercent, ranked[i].CPUPercent)
	}

	// ties keep provider order
	assert.Equal(t, []int32{104, 109, 114}, []int32{ranked[0].PID, ranked[1].PID, ranked[2].PID})
}

func TestRankProcesses_Deterministic(t *testing.T) {
	procs := []domain.RawProcess{
		{PID: 1, Name: "a", CPUPercent: pct(5)},
		{PID: 2, Name: "b", CPUPercent: pct(5)},
		{PID: 3, Name: "c", CPUPercent: pct(5)},
	}

	first := RankProcesses(procs, 10, 30)
	second := RankProcesses(procs, 10, 30)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), first[0].PID)
}

func TestRankProcesses_SkipsGoneAndZeroesMissing(t *testing.T) {
	procs := []domain.RawProcess{
		{PID: 1, Name: "gone", Gone: true},
		{PID: 2, Name: "no-mem", CPUPercent: pct(3)},
		{PID: 3, Name: "no-cpu", MemPercent: pct(7)},
	}

	ranked := RankProcesses(procs, 10, 30)

	require.Len(t, ranked, 2)
	assert.Equal(t, domain.ProcessInfo{PID: 2, Name: "no-mem", CPUPercent: 3}, ranked[0])
	assert.Equal(t, domain.ProcessInfo{PID: 3, Name: "no-cpu", MemPercent: 7}, ranked[1])
}

func TestRankProcesses_TruncatesNames(t *testing.T) {
	long := strings.Repeat("x", 40)
	procs := []domain.RawProcess{
		{PID: 1, Name: long, CPUPercent: pct(1)},
		{PID: 2, Name: strings.Repeat("ü", 35), CPUPercent: pct(0)},
	}

	ranked := RankProcesses(procs, 10, 30)

	assert.Equal(t, strings.Repeat("x", 30), ranked[0].Name)
	assert.Equal(t, strings.Repeat("ü", 30), ranked[1].Name)
}

func TestRankProcesses_Empty(t *testing.T) {
	assert.Empty(t, RankProcesses(nil, 10, 30))
}

func TestRankProcesses_FifteenWithZeroCPUAndMissingMemory(t *testing.T) {
	type row struct {
		pid int32
		cpu float64
		mem *float64
	}
	rows := []row{
		{1, 0, nil},
		{2, 5, pct(1)},
		{3, 0, nil},
		{4, 7, pct(1)},
		{5, 0, pct(1)},
		{6, 3, pct(1)},
		{7, 9, pct(1)},
		{8, 0, pct(1)},
		{9, 2, pct(1)},
		{10, 8, pct(1)},
		{11, 0, pct(1)},
		{12, 4, pct(1)},
		{13, 6, pct(1)},
		{14, 0, pct(1)},
		{15, 0, pct(2)},
	}

	procs := make([]domain.RawProcess, 0, len(rows))
	for _, r := range rows {
		procs = append(procs, domain.RawProcess{
			PID:        r.pid,
			Name:       fmt.Sprintf("p%d", r.pid),
			CPUPercent: pct(r.cpu),
			MemPercent: r.mem,
		})
	}

	var ranked []domain.ProcessInfo
	require.NotPanics(t, func() { ranked = RankProcesses(procs, 10, 30) })
	require.Len(t, ranked, 10)

	pids := make([]int32, 0, len(ranked))
	for _, p := range ranked {
		pids = append(pids, p.PID)
	}
	// the two zero-cpu entries without memory fill the last slots in provider order
	assert.Equal(t, []int32{7, 10, 4, 13, 2, 12, 6, 9, 1, 3}, pids)
	assert.Zero(t, ranked[8].MemPercent)
	assert.Zero(t, ranked[9].MemPercent)

	for range 5 {
		assert.Equal(t, ranked, RankProcesses(procs, 10, 30))
	}
}
