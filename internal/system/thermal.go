package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"pulse-server/internal/config"
	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
	"pulse-server/pkg"

	"github.com/shirou/gopsutil/v4/sensors"
)

// Bits of the `vcgencmd get_throttled` word.
const (
	throttleUnderVoltage          = 1 << 0
	throttleArmFreqCapped         = 1 << 1
	throttleCurrentlyThrottled    = 1 << 2
	throttleSoftTempLimit         = 1 << 3
	throttleUnderVoltageOccurred  = 1 << 16
	throttleArmFreqCappedOccurred = 1 << 17
	throttleThrottledOccurred     = 1 << 18
	throttleSoftTempLimitOccurred = 1 << 19
)

// VcgencmdThermal reads the Raspberry Pi firmware through vcgencmd.
type VcgencmdThermal struct {
	path    string
	timeout time.Duration
	run     func(ctx context.Context, name string, args ...string) (string, error)
}

func NewVcgencmdThermal(path string, timeout time.Duration) *VcgencmdThermal {
	return &VcgencmdThermal{path: path, timeout: timeout, run: runCommand}
}

func (v *VcgencmdThermal) Name() string {
	return "vcgencmd"
}

func (v *VcgencmdThermal) Read(ctx context.Context) (domain.ThermalReading, error) {
	var reading domain.ThermalReading

	out, err := v.exec(ctx, "measure_temp")
	if err != nil {
		return reading, err
	}
	if temp, err := ParseMeasureTemp(out); err == nil {
		reading.Temperature = &temp
	}

	if out, err := v.exec(ctx, "get_throttled"); err == nil {
		if status, err := ParseThrottled(out); err == nil {
			reading.Throttle = &status
		}
	}

	if reading.Temperature == nil && reading.Throttle == nil {
		return reading, fmt.Errorf("vcgencmd: unparseable output: %w", domain.ErrProviderUnavailable)
	}
	return reading, nil
}

func (v *VcgencmdThermal) exec(ctx context.Context, arg string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.run(ctx, v.path, arg)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("vcgencmd %s: %w", arg, domain.ErrProviderUnavailable)
		}
		return "", fmt.Errorf("vcgencmd %s: %w", arg, err)
	}
	return out, nil
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// ParseMeasureTemp parses "temp=54.9'C".
func ParseMeasureTemp(s string) (float64, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return 0, fmt.Errorf("measure_temp: unexpected output %q", s)
	}
	value, _, _ = strings.Cut(value, "'")
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// ParseThrottled parses "throttled=0x50005".
func ParseThrottled(s string) (domain.ThrottleStatus, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return domain.ThrottleStatus{}, fmt.Errorf("get_throttled: unexpected output %q", s)
	}

	bits, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(value), "0x"), 16, 64)
	if err != nil {
		return domain.ThrottleStatus{}, fmt.Errorf("get_throttled: %w", err)
	}
	return DecodeThrottle(bits), nil
}

func DecodeThrottle(bits uint64) domain.ThrottleStatus {
	return domain.ThrottleStatus{
		UnderVoltage:          bits&throttleUnderVoltage != 0,
		ArmFreqCapped:         bits&throttleArmFreqCapped != 0,
		CurrentlyThrottled:    bits&throttleCurrentlyThrottled != 0,
		SoftTempLimit:         bits&throttleSoftTempLimit != 0,
		UnderVoltageOccurred:  bits&throttleUnderVoltageOccurred != 0,
		ArmFreqCappedOccurred: bits&throttleArmFreqCappedOccurred != 0,
		ThrottledOccurred:     bits&throttleThrottledOccurred != 0,
		SoftTempLimitOccurred: bits&throttleSoftTempLimitOccurred != 0,
	}
}

var cpuSensors = []string{
	"cpu_thermal",
	"soc_thermal",
	"coretemp",
	"k10temp",
	"zenpower*",
	"amd_smu",
	"acpitz",
}

// HwmonThermal reads the first CPU-like temperature sensor through gopsutil.
// It has no throttle information.
type HwmonThermal struct {
	read func(ctx context.Context) ([]sensors.TemperatureStat, error)
}

func NewHwmonThermal() *HwmonThermal {
	return &HwmonThermal{read: sensors.TemperaturesWithContext}
}

func (h *HwmonThermal) Name() string {
	return "hwmon"
}

func (h *HwmonThermal) Read(ctx context.Context) (domain.ThermalReading, error) {
	stats, err := h.read(ctx)
	// gopsutil returns partial results together with a warning error
	if len(stats) == 0 {
		if err == nil {
			err = domain.ErrProviderUnavailable
		}
		return domain.ThermalReading{}, fmt.Errorf("hwmon: %w", err)
	}

	for _, st := range stats {
		if st.Temperature > 0 && pkg.ContainsAny(st.SensorKey, cpuSensors) {
			temp := st.Temperature
			return domain.ThermalReading{Temperature: &temp}, nil
		}
	}
	return domain.ThermalReading{}, fmt.Errorf("hwmon: no cpu sensor: %w", domain.ErrProviderUnavailable)
}

// ChainThermal returns the first provider reading that succeeds.
type ChainThermal struct {
	providers []domain.ThermalProvider
}

func NewChainThermal(providers ...domain.ThermalProvider) *ChainThermal {
	return &ChainThermal{providers: providers}
}

func (c *ChainThermal) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, "+")
}

func (c *ChainThermal) Read(ctx context.Context) (domain.ThermalReading, error) {
	var errs []error
	for _, p := range c.providers {
		reading, err := p.Read(ctx)
		if err == nil {
			return reading, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return domain.ThermalReading{}, domain.ErrProviderUnavailable
	}
	return domain.ThermalReading{}, errors.Join(errs...)
}

// NewThermalProvider picks the provider named by cfg.ThermalSource. It
// returns nil for "none".
func NewThermalProvider(cfg *config.Config, log logger.Logger) domain.ThermalProvider {
	vc := NewVcgencmdThermal(cfg.VcgencmdPath, cfg.ThermalTimeout)
	hw := NewHwmonThermal()

	switch cfg.ThermalSource {
	case config.ThermalNone:
		log.Info("thermal: disabled")
		return nil
	case config.ThermalVcgencmd:
		return vc
	case config.ThermalHwmon:
		return hw
	default:
		if _, err := exec.LookPath(cfg.VcgencmdPath); err == nil {
			log.Info("thermal: using vcgencmd with hwmon fallback")
			return NewChainThermal(vc, hw)
		}
		log.Info("thermal: vcgencmd not found, using hwmon")
		return hw
	}
}
