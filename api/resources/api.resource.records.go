// FilePath: api/resources/api.resource.records.go
package resources

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	exportFilename    = "registros_esp32.txt"
	ingestSuccessText = "dados salvos com sucesso"
)

// RecordHandlers encapsulates the sensor record HTTP handlers
type RecordHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Ingest a sensor record
// @Description Store one reading uploaded by a field device. Missing or unusable fields are stored as null.
// @Tags records
// @Accept json
// @Produce json
// @Param record body models.SensorRecord true "Sensor reading"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/esp32 [post]
func (h *RecordHandlers) IngestRecord(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithIngestError(w, errors.NewValidationError("failed to read request body", err).WithRequestID(requestID))
		return
	}

	record, err := models.ParseSensorRecord(body)
	if err != nil {
		respondWithIngestError(w, errors.NewValidationError("invalid sensor record", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.IngestRecord(r.Context(), record); err != nil {
		respondWithIngestError(w, toAPIError(err, "failed to store record").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, StatusResponse{Status: ingestSuccessText})
}

// @Summary List sensor records
// @Description Every stored record, newest first
// @Tags records
// @Produce json
// @Success 200 {array} models.SensorRecord
// @Failure 500 {object} errors.APIError
// @Router /api/registros [get]
func (h *RecordHandlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	records, err := h.hubservice.ListRecords(r.Context())
	if err != nil {
		respondWithError(w, toAPIError(err, "failed to list records").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// @Summary Export sensor records
// @Description Every stored record, oldest first, as a tab-separated attachment. NULL values are written as empty fields and numbers use their shortest form (25.0 is written 25).
// @Tags records
// @Produce plain
// @Success 200 {string} string "tab-separated records"
// @Failure 500 {object} errors.APIError
// @Router /api/registros/txt [get]
func (h *RecordHandlers) ExportRecords(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var buf bytes.Buffer
	if err := h.hubservice.ExportRecords(r.Context(), &buf); err != nil {
		respondWithError(w, toAPIError(err, "failed to export records").WithRequestID(requestID))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFilename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// @Summary Latest record of a device
// @Description The newest record stored for one dispositivo_id
// @Tags records
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.SensorRecord
// @Failure 404 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /api/dispositivos/{id}/ultimo [get]
func (h *RecordHandlers) LatestRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	record, err := h.hubservice.LatestRecord(r.Context(), id)
	if err != nil {
		respondWithError(w, toAPIError(err, "failed to load latest record").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// respondWithIngestError answers in the device-facing {"error": ...} shape
func respondWithIngestError(w http.ResponseWriter, err *errors.APIError) {
	nuts.L.Errorf("[API] %s (request %s)", err.Error(), err.RequestID)
	respondWithJSON(w, err.Code, ErrorResponse{Error: err.Description()})
}
