// FilePath: api/resources/api.resource.system.go
package resources

import (
	"net/http"

	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/mailbox"
	"github.com/itsatony/fieldhub/internal/monitoring"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serves health, metrics and the API description
type SystemHandlers struct {
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Mailbox mailbox.State `json:"mailbox"`
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *SystemHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: nuts.GetVersion(),
		Mailbox: h.hubservice.MailboxState(),
	})
}

// @Summary Event counters
// @Tags system
// @Produce json
// @Success 200 {object} monitoring.Snapshot
// @Router /metrics [get]
func (h *SystemHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.monitoring == nil {
		respondWithJSON(w, http.StatusOK, monitoring.Snapshot{Events: map[string]int64{}})
		return
	}
	respondWithJSON(w, http.StatusOK, h.monitoring.Snapshot())
}

// SwaggerDoc serves the registered swagger document
func (h *SystemHandlers) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewInternalError("swagger document not registered", err).WithRequestID(nuts.NID("req", 12)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
