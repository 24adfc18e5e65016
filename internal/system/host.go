// Package system reads raw host counters through gopsutil.
package system

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"pulse-server/internal/domain"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// HostProvider is the gopsutil-backed MetricsProvider. Each group is read
// independently so one failing source only marks that group unavailable.
type HostProvider struct {
	mount string
	procs *ProcessTracker
}

func NewHostProvider(mount string) *HostProvider {
	return &HostProvider{
		mount: mount,
		procs: NewProcessTracker(time.Now),
	}
}

func (p *HostProvider) Read(ctx context.Context) domain.RawMetrics {
	var raw domain.RawMetrics

	p.readCPU(ctx, &raw)
	p.readMemory(ctx, &raw)
	p.readDisk(ctx, &raw)
	p.readNetwork(ctx, &raw)

	if avg, err := load.AvgWithContext(ctx); err != nil {
		raw.MarkUnavailable(domain.SourceLoad, err)
	} else {
		raw.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	if secs, err := host.UptimeWithContext(ctx); err != nil {
		raw.MarkUnavailable(domain.SourceUptime, err)
	} else {
		raw.Uptime = time.Duration(secs) * time.Second
	}

	procs, err := p.procs.List(ctx)
	if err != nil {
		raw.MarkUnavailable(domain.SourceProcesses, err)
	}
	raw.Processes = procs

	return raw
}

func (p *HostProvider) readCPU(ctx context.Context, raw *domain.RawMetrics) {
	// interval 0 compares against the previous call, so a tick never sleeps here
	if total, err := cpu.PercentWithContext(ctx, 0, false); err != nil || len(total) == 0 {
		raw.MarkUnavailable(domain.SourceCPU, orEmpty(err, "cpu"))
	} else {
		raw.CPUPercent = total[0]
	}

	if perCore, err := cpu.PercentWithContext(ctx, 0, true); err == nil {
		raw.PerCore = perCore
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		raw.CoreCount = n
	} else {
		raw.CoreCount = len(raw.PerCore)
	}

	info, err := cpu.InfoWithContext(ctx)
	if err != nil || len(info) == 0 || info[0].Mhz <= 0 {
		raw.MarkUnavailable(domain.SourceFrequency, orEmpty(err, "cpu frequency"))
		return
	}
	mhz := info[0].Mhz
	raw.FrequencyMHz = &mhz
}

func (p *HostProvider) readMemory(ctx context.Context, raw *domain.RawMetrics) {
	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		raw.MarkUnavailable(domain.SourceMemory, err)
	} else {
		raw.MemTotal = vm.Total
		raw.MemUsed = vm.Used
		raw.MemAvailable = vm.Available
		raw.MemPercent = vm.UsedPercent
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err != nil {
		raw.MarkUnavailable(domain.SourceSwap, err)
	} else {
		raw.SwapTotal = sw.Total
		raw.SwapUsed = sw.Used
		raw.SwapPercent = sw.UsedPercent
	}
}

func (p *HostProvider) readDisk(ctx context.Context, raw *domain.RawMetrics) {
	raw.DiskMount = p.mount

	du, err := disk.UsageWithContext(ctx, p.mount)
	if err != nil {
		raw.MarkUnavailable(domain.SourceDisk, err)
		return
	}
	raw.DiskTotal = du.Total
	raw.DiskUsed = du.Used
	raw.DiskFree = du.Free
	raw.DiskPercent = du.UsedPercent
}

func (p *HostProvider) readNetwork(ctx context.Context, raw *domain.RawMetrics) {
	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		raw.MarkUnavailable(domain.SourceNetwork, orEmpty(err, "network counters"))
	} else {
		raw.Network = domain.NetCounters{
			BytesSent: counters[0].BytesSent,
			BytesRecv: counters[0].BytesRecv,
		}
	}

	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		raw.MarkUnavailable(domain.SourceInterfaces, err)
		return
	}

	raw.Interfaces = make(map[string]string, len(ifaces))
	for _, iface := range ifaces {
		for _, a := range iface.Addrs {
			if ip, ok := ipv4(a.Addr); ok {
				raw.Interfaces[iface.Name] = ip
			}
		}
	}
}

// ipv4 accepts either "10.0.0.2/24" or a bare address.
func ipv4(s string) (string, bool) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		if prefix.Addr().Is4() {
			return prefix.Addr().String(), true
		}
		return "", false
	}
	if addr, err := netip.ParseAddr(s); err == nil && addr.Is4() {
		return addr.String(), true
	}
	return "", false
}

func orEmpty(err error, what string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%s: %w", what, domain.ErrProviderUnavailable)
}
