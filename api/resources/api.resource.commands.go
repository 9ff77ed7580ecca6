// FilePath: api/resources/api.resource.commands.go
package resources

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// CommandHandlers encapsulates the dashboard-to-device status channel handlers
type CommandHandlers struct {
	hubservice *hubservice.HubService
	forms      *schema.Decoder
}

// CommandRequest is accepted as JSON or as a form body
type CommandRequest struct {
	Led *string `json:"led" schema:"led"`
	Msg *string `json:"msg" schema:"msg"`
}

// LedResponse acknowledges a LED command
type LedResponse struct {
	Status string `json:"status"`
	Led    string `json:"led"`
}

// MessageResponse echoes the stored message
type MessageResponse struct {
	Message string `json:"mensagem"`
}

// @Summary Set the LED token
// @Description Store the LED token the device reads on its next status call. Omitting led keeps the current token.
// @Tags commands
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param command body CommandRequest true "led token"
// @Success 200 {object} LedResponse
// @Failure 400 {object} errors.APIError
// @Router /comando [post]
func (h *CommandHandlers) SetLed(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	req, err := h.decode(w, r)
	if err != nil {
		respondWithError(w, err.WithRequestID(requestID))
		return
	}

	if req.Led != nil {
		h.hubservice.SetLed(*req.Led)
	}

	respondWithJSON(w, http.StatusOK, LedResponse{Status: "ok", Led: h.hubservice.Led()})
}

// @Summary Set the pending message
// @Description Store a message that the next status read delivers once. Omitting msg stores an empty message.
// @Tags commands
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param command body CommandRequest true "message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.APIError
// @Router /mensagem [post]
func (h *CommandHandlers) SetMessage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	req, err := h.decode(w, r)
	if err != nil {
		respondWithError(w, err.WithRequestID(requestID))
		return
	}

	msg := ""
	if req.Msg != nil {
		msg = *req.Msg
	}
	h.hubservice.SetMessage(msg)

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// @Summary Read the device status
// @Description Return the LED token and the pending message, clearing the message
// @Tags commands
// @Produce json
// @Success 200 {object} commands.Status
// @Router /status [get]
func (h *CommandHandlers) ReadStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.hubservice.ReadStatus())
}

// decode reads a JSON body, falling back to form fields for form content types.
// An empty body is a request with every field omitted.
func (h *CommandHandlers) decode(w http.ResponseWriter, r *http.Request) (*CommandRequest, *errors.APIError) {
	req := &CommandRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
			return nil, errors.NewValidationError("invalid form body", err)
		}
		if err := h.forms.Decode(req, r.PostForm); err != nil {
			return nil, errors.NewValidationError("invalid form body", err)
		}
		return req, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.NewValidationError("failed to read request body", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return req, nil
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, errors.NewValidationError("invalid command body", err)
	}
	return req, nil
}
