// FilePath: api/resources/api.resource.schedules.go
package resources

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/mailbox"
	"github.com/itsatony/fieldhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Poll answers, as the device firmware expects them
const (
	pollStatusEdit = "editar"
	pollStatusSend = "enviar"
	pollStatusNone = "nada"
)

// ScheduleHandlers encapsulates the schedule and mailbox HTTP handlers
type ScheduleHandlers struct {
	hubservice *hubservice.HubService
}

// EditResponse acknowledges a queued edit
type EditResponse struct {
	Status  string `json:"status"`
	Message string `json:"mensagem"`
}

// PollResponse is what the device receives on a poll
type PollResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"dados,omitempty"`
}

// @Summary Submit a schedule edit
// @Description Queue an edit for the device. A newer edit replaces an undelivered one.
// @Tags schedules
// @Accept json
// @Produce json
// @Param edit body object true "Edit payload, any JSON value except null"
// @Success 200 {object} EditResponse
// @Failure 400 {object} errors.APIError
// @Router /api/horarios/editar [post]
func (h *ScheduleHandlers) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, errors.NewValidationError("failed to read request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.SubmitScheduleEdit(body); err != nil {
		respondWithError(w, toAPIError(err, "failed to queue edit").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, EditResponse{Status: "ok", Message: "Alteração enviada ao ESP32"})
}

// @Summary Request a schedule upload
// @Description Ask the device to send its stored schedule on its next poll
// @Tags schedules
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/horarios/requisitar [post]
func (h *ScheduleHandlers) RequestRead(w http.ResponseWriter, r *http.Request) {
	h.hubservice.RequestScheduleRead()
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "pedido_enviado"})
}

// @Summary Device poll
// @Description Drain at most one pending instruction. A pending edit is delivered before a read request.
// @Tags schedules
// @Produce json
// @Success 200 {object} PollResponse
// @Router /api/horarios/pull [get]
func (h *ScheduleHandlers) Poll(w http.ResponseWriter, r *http.Request) {
	delivery := h.hubservice.PollDevice()

	switch delivery.Kind {
	case mailbox.KindEditor:
		respondWithJSON(w, http.StatusOK, PollResponse{Status: pollStatusEdit, Data: delivery.Payload})
	case mailbox.KindReadRequest:
		respondWithJSON(w, http.StatusOK, PollResponse{Status: pollStatusSend})
	default:
		respondWithJSON(w, http.StatusOK, PollResponse{Status: pollStatusNone})
	}
}

// @Summary Save the schedule
// @Description Replace the whole stored schedule with the uploaded rows
// @Tags schedules
// @Accept json
// @Produce json
// @Param batch body models.ScheduleBatch true "Schedule rows"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /api/horarios/salvar [post]
func (h *ScheduleHandlers) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, errors.NewValidationError("failed to read request body", err).WithRequestID(requestID))
		return
	}

	rows, err := models.ParseScheduleBatch(body)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid schedule batch", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.ReplaceSchedule(r.Context(), rows); err != nil {
		respondWithError(w, toAPIError(err, "failed to save schedule").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "horarios salvos no banco"})
}

// @Summary List the schedule
// @Description Stored rows ordered by line
// @Tags schedules
// @Produce json
// @Success 200 {array} models.ScheduleRow
// @Failure 500 {object} errors.APIError
// @Router /api/horarios [get]
func (h *ScheduleHandlers) ListSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	rows, err := h.hubservice.ListSchedule(r.Context())
	if err != nil {
		respondWithError(w, toAPIError(err, "failed to list schedule").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}
