package controllers

import (
	"fmt"
	"net/http"
	"posterd/internal/catalog"
	"posterd/internal/services"
	"posterd/internal/structures"
	"strconv"
	"time"
)

const (
	renderModeMock = "mock"
	renderModeLive = "live"
)

type HealthController struct {
	service   services.PosterServiceInterface
	modes     map[string]string
	startTime time.Time
}

type healthResponse struct {
	Status        string            `json:"status"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Users         int               `json:"users"`
	RenderModes   map[string]string `json:"render_modes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatUptime(uptime),
		UptimeSeconds: uptime.Seconds(),
		Users:         hc.service.Users(),
		RenderModes:   hc.modes,
	})
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// renderModes reports per template version whether renders leave the process.
func renderModes(conf *structures.Config, cat catalog.CatalogInterface) map[string]string {
	modes := make(map[string]string)
	for _, v := range cat.Versions() {
		mode := renderModeLive
		if conf.Provider.Mock || cat.Resolve(v).Placeholder {
			mode = renderModeMock
		}
		modes[strconv.Itoa(v)] = mode
	}
	return modes
}

func NewHealthController(service services.PosterServiceInterface, conf *structures.Config, cat catalog.CatalogInterface) *HealthController {
	return &HealthController{
		service:   service,
		modes:     renderModes(conf, cat),
		startTime: time.Now(),
	}
}
