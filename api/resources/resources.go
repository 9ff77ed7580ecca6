// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// maxBodyBytes caps every request body the hub reads
const maxBodyBytes = 1 << 20

// Resources holds all HTTP resource handlers
type Resources struct {
	Records   *RecordHandlers
	Schedules *ScheduleHandlers
	Commands  *CommandHandlers
	System    *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, metrics *monitoring.Service) *Resources {
	formDecoder := schema.NewDecoder()
	formDecoder.IgnoreUnknownKeys(true)

	return &Resources{
		Records:   &RecordHandlers{hubservice: svc},
		Schedules: &ScheduleHandlers{hubservice: svc},
		Commands:  &CommandHandlers{hubservice: svc, forms: formDecoder},
		System:    &SystemHandlers{hubservice: svc, monitoring: metrics},
	}
}

// toAPIError keeps typed errors from lower layers and wraps anything else as internal
func toAPIError(err error, message string) *errors.APIError {
	if apiErr, ok := errors.As(err); ok {
		return apiErr
	}
	return errors.NewInternalError(message, err)
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// StatusResponse is the plain acknowledgement most endpoints answer with
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of a failed ingestion
type ErrorResponse struct {
	Error string `json:"error"`
}
