package monitoring

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sfares/newsroom-be/internal/services"
)

// SystemMonitor periodically samples host CPU, memory and uptime. The
// latest sample feeds the realtime block of analytics reports and the
// health endpoint.
type SystemMonitor struct {
	mu     sync.RWMutex
	latest services.HostStats
	ticker *time.Ticker
	done   chan bool
}

// NewSystemMonitor creates a new SystemMonitor.
func NewSystemMonitor() *SystemMonitor {
	return &SystemMonitor{done: make(chan bool)}
}

// Run starts the periodic sampling.
func (sm *SystemMonitor) Run() {
	log.Info().Msg("Starting background system monitor...")
	sm.ticker = time.NewTicker(15 * time.Second)
	defer sm.ticker.Stop()

	// Run once immediately on start
	sm.sample()

	for {
		select {
		case <-sm.done:
			log.Info().Msg("Stopping background system monitor.")
			return
		case <-sm.ticker.C:
			sm.sample()
		}
	}
}

// Stop halts the periodic sampling.
func (sm *SystemMonitor) Stop() {
	sm.done <- true
}

// Latest returns the most recent host sample.
func (sm *SystemMonitor) Latest() services.HostStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.latest
}

func (sm *SystemMonitor) sample() {
	stats := services.HostStats{SampledAt: time.Now()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("SystemMonitor: Could not sample CPU usage")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("SystemMonitor: Could not sample memory usage")
	}

	if uptime, err := host.Uptime(); err == nil {
		stats.UptimeSeconds = int64(uptime)
	} else {
		log.Warn().Err(err).Msg("SystemMonitor: Could not read host uptime")
	}

	sm.mu.Lock()
	sm.latest = stats
	sm.mu.Unlock()
}
