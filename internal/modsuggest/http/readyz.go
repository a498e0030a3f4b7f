package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	503 while the database cannot be reached.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	modsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	modsdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &modsdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness check failed", "error", err)
			checks.Database = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, modsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
