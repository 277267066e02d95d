package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/scheduler"
)

// JobTrigger runs a background job outside its schedule.
type JobTrigger interface {
	RunNow(job scheduler.Job) error
}

// SystemHandlers handles system status and health endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	folioDB     *database.DB
	cacheDB     *database.DB
	trigger     JobTrigger
	maintenance scheduler.Job
	started     time.Time
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(log zerolog.Logger, dataDir string, folioDB, cacheDB *database.DB, trigger JobTrigger, maintenance scheduler.Job) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		dataDir:     dataDir,
		folioDB:     folioDB,
		cacheDB:     cacheDB,
		trigger:     trigger,
		maintenance: maintenance,
		started:     time.Now(),
	}
}

// SystemStatusResponse is the response for GET /api/system/status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Goroutines    int     `json:"goroutines"`
}

// DatabaseStatsResponse is the response for GET /api/system/databases
type DatabaseStatsResponse struct {
	Databases []DatabaseStat `json:"databases"`
}

// DatabaseStat describes a single database file
type DatabaseStat struct {
	Name    string  `json:"name"`
	SizeMB  float64 `json:"size_mb"`
	Healthy bool    `json:"healthy"`
}

// DiskUsageResponse is the response for GET /api/system/disk
type DiskUsageResponse struct {
	DataDirMB float64 `json:"data_dir_mb"`
}

// HandleHealth is a lightweight liveness check
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if err := h.folioDB.Conn().PingContext(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Database ping failed")
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// HandleSystemStatus returns process and host statistics
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		Goroutines:    runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDatabaseStats returns per-database size and quick-check results
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	response := DatabaseStatsResponse{}

	for _, db := range []*database.DB{h.folioDB, h.cacheDB} {
		stat := DatabaseStat{Name: db.Name()}

		if info, err := os.Stat(db.Path()); err == nil {
			stat.SizeMB = float64(info.Size()) / 1024 / 1024
		}

		stat.Healthy = db.QuickCheck(r.Context()) == nil
		response.Databases = append(response.Databases, stat)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDiskUsage returns the size of the data directory
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	response := DiskUsageResponse{
		DataDirMB: h.getDirSize(h.dataDir),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleRunMaintenance triggers the maintenance job immediately instead of
// waiting for its nightly schedule.
func (h *SystemHandlers) HandleRunMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := h.trigger.RunNow(h.maintenance); err != nil {
		h.log.Error().Err(err).Msg("Manual maintenance run failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "maintenance failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a short interval so the endpoint does not block for long.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
