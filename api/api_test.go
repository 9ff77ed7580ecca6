package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/fieldhub/api/middleware"
	"github.com/itsatony/fieldhub/internal/config"
	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/models"
	"github.com/itsatony/fieldhub/internal/monitoring"
	"github.com/itsatony/fieldhub/internal/repository/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = 10 * time.Millisecond
)

type testHub struct {
	svc    *hubservice.HubService
	db     database.DB
	router *Router
}

func newTestHub(t *testing.T) *testHub {
	db, err := database.NewSQLiteDB(context.Background(), config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := hubservice.New(sqlstore.NewRecordRepository(db), sqlstore.NewScheduleRepository(db), nil)
	metrics := monitoring.NewService(monitoring.Config{Quiet: true})
	for _, event := range hubservice.Events {
		event := event
		svc.On(event, func(string) { metrics.RecordEvent(event, nil) })
	}

	return &testHub{
		svc:    svc,
		db:     db,
		router: NewRouter(svc, metrics, middleware.Config{AccessLog: io.Discard}),
	}
}

func (h *testHub) do(t *testing.T, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *testHub) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	return h.do(t, http.MethodPost, path, "application/json", body)
}

func (h *testHub) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return h.do(t, http.MethodGet, path, "", "")
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// Commands

func TestStatusStartsOff(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.get(t, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"led":"off","mensagem":""}`, rec.Body.String())
}

func TestLedAndMessageFlow(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.postJSON(t, "/comando", `{"led":"on"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","led":"on"}`, rec.Body.String())

	rec = hub.postJSON(t, "/mensagem", `{"msg":"Olá"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Olá"}`, rec.Body.String())

	assert.JSONEq(t, `{"led":"on","mensagem":"Olá"}`, hub.get(t, "/status").Body.String())
	assert.JSONEq(t, `{"led":"on","mensagem":""}`, hub.get(t, "/status").Body.String())
}

func TestLedIsVerbatimAndSticky(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/comando", `{"led":"blink-3x"}`)
	rec := hub.postJSON(t, "/comando", `{}`)
	assert.JSONEq(t, `{"status":"ok","led":"blink-3x"}`, rec.Body.String())
	assert.Equal(t, "blink-3x", hub.svc.Led())
}

func TestCommandFormBodies(t *testing.T) {
	hub := newTestHub(t)

	form := url.Values{"led": {"on"}}.Encode()
	rec := hub.do(t, http.MethodPost, "/comando", "application/x-www-form-urlencoded", form)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","led":"on"}`, rec.Body.String())

	form = url.Values{"msg": {"abrir válvula"}}.Encode()
	rec = hub.do(t, http.MethodPost, "/mensagem", "application/x-www-form-urlencoded", form)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensagem":"abrir válvula"}`, rec.Body.String())
}

func TestMessageOmittedStoresEmpty(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/mensagem", `{"msg":"first"}`)
	rec := hub.postJSON(t, "/mensagem", `{}`)
	assert.JSONEq(t, `{"mensagem":""}`, rec.Body.String())
	assert.JSONEq(t, `{"led":"off","mensagem":""}`, hub.get(t, "/status").Body.String())
}

func TestMalformedCommandBody(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.postJSON(t, "/comando", `{"led":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "off", hub.svc.Led())
}

// Records

func TestIngestListAndExport(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.postJSON(t, "/api/esp32", `{"numero_pacote":1,"dispositivo_id":"esp-01","temperatura":"24.5","fazenda":"Boa Vista"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"dados salvos com sucesso"}`, rec.Body.String())

	rec = hub.postJSON(t, "/api/esp32", `{"numero_pacote":2,"dispositivo_id":"esp-01","u1":0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = hub.get(t, "/api/registros")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []models.SensorRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), *records[0].PacketNumber)
	assert.Nil(t, records[0].Temperature)
	assert.Equal(t, 24.5, *records[1].Temperature)

	rec = hub.get(t, "/api/registros/txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=registros_esp32.txt", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(models.RecordColumns, "\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\t1\tBoa Vista\tesp-01\t24.5\t"))
	assert.True(t, strings.HasPrefix(lines[2], "2\t2\t\tesp-01\t\t0.5\t"))
}

func TestIngestEmptyObjectStoresNulls(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.postJSON(t, "/api/esp32", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = hub.get(t, "/api/registros")
	assert.JSONEq(t, `[{"id":1,"numero_pacote":null,"fazenda":null,"dispositivo_id":null,"temperatura":null,
		"u1":null,"u2":null,"u3":null,"u4":null,"u5":null,"fruto":null,"data":null,"hora":null,
		"ip_local":null,"mac":null}]`, rec.Body.String())
}

func TestIngestRejectsNonObjects(t *testing.T) {
	hub := newTestHub(t)

	for _, body := range []string{``, `[1,2]`, `"text"`, `null`, `{"temperatura":`} {
		rec := hub.postJSON(t, "/api/esp32", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		out := decodeMap(t, rec)
		assert.NotEmpty(t, out["error"], "body %q", body)
	}

	assert.JSONEq(t, `[]`, hub.get(t, "/api/registros").Body.String())
}

func TestIngestStorageFailure(t *testing.T) {
	hub := newTestHub(t)
	require.NoError(t, hub.db.Close())

	rec := hub.postJSON(t, "/api/esp32", `{"dispositivo_id":"esp-01"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decodeMap(t, rec)
	assert.NotEmpty(t, out["error"])
}

func TestExportEmpty(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.get(t, "/api/registros/txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.Join(models.RecordColumns, "\t"), rec.Body.String())
}

func TestLatestRecordEndpoint(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/esp32", `{"dispositivo_id":"esp-07","temperatura":18}`)
	hub.postJSON(t, "/api/esp32", `{"dispositivo_id":"esp-07","temperatura":19}`)

	rec := hub.get(t, "/api/dispositivos/esp-07/ultimo")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeMap(t, rec)
	assert.Equal(t, 19.0, out["temperatura"])

	rec = hub.get(t, "/api/dispositivos/esp-99/ultimo")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Schedules

func TestEditPollFlow(t *testing.T) {
	hub := newTestHub(t)

	assert.JSONEq(t, `{"status":"nada"}`, hub.get(t, "/api/horarios/pull").Body.String())

	rec := hub.postJSON(t, "/api/horarios/editar", `{"linha":3,"hora_ligar":"06:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","mensagem":"Alteração enviada ao ESP32"}`, rec.Body.String())

	rec = hub.postJSON(t, "/api/horarios/requisitar", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"pedido_enviado"}`, rec.Body.String())

	assert.JSONEq(t, `{"status":"editar","dados":{"linha":3,"hora_ligar":"06:00"}}`, hub.get(t, "/api/horarios/pull").Body.String())
	assert.JSONEq(t, `{"status":"enviar"}`, hub.get(t, "/api/horarios/pull").Body.String())
	assert.JSONEq(t, `{"status":"nada"}`, hub.get(t, "/api/horarios/pull").Body.String())
}

func TestEditLastWriteWins(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/horarios/editar", `{"v":1}`)
	hub.postJSON(t, "/api/horarios/editar", `{"v":2}`)

	assert.JSONEq(t, `{"status":"editar","dados":{"v":2}}`, hub.get(t, "/api/horarios/pull").Body.String())
	assert.JSONEq(t, `{"status":"nada"}`, hub.get(t, "/api/horarios/pull").Body.String())
}

func TestEditRejectsEmptyAndNull(t *testing.T) {
	hub := newTestHub(t)

	for _, body := range []string{``, `null`, `{oops`} {
		rec := hub.postJSON(t, "/api/horarios/editar", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.JSONEq(t, `{"status":"nada"}`, hub.get(t, "/api/horarios/pull").Body.String())
}

func TestSaveAndListSchedule(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.postJSON(t, "/api/horarios/salvar", `{"horarios":[
		{"linha":2,"hora_ligar":"18:00","hora_desligar":"22:00","dias":["seg","qua"]},
		{"linha":1,"hora_ligar":"06:00","hora_desligar":"07:00","dias":[1,3,5]}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"horarios salvos no banco"}`, rec.Body.String())

	rec = hub.get(t, "/api/horarios")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.ScheduleRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Line)
	assert.Equal(t, "1,3,5", rows[0].Days)
	assert.Equal(t, "seg,qua", rows[1].Days)

	// a second save replaces the table
	rec = hub.postJSON(t, "/api/horarios/salvar", `{"horarios":[{"linha":9,"hora_ligar":"a","hora_desligar":"b","dias":[]}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(hub.get(t, "/api/horarios").Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(9), rows[0].Line)
	assert.Equal(t, "", rows[0].Days)
}

func TestSaveScheduleRejectsMalformedBatch(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/horarios/salvar", `{"horarios":[{"linha":1,"hora_ligar":"a","hora_desligar":"b","dias":[1]}]}`)

	for _, body := range []string{`{`, `{"horarios":[{"hora_ligar":"a","hora_desligar":"b","dias":[]}]}`, `{"horarios":"x"}`} {
		rec := hub.postJSON(t, "/api/horarios/salvar", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}

	var rows []models.ScheduleRow
	require.NoError(t, json.Unmarshal(hub.get(t, "/api/horarios").Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
}

func TestSaveScheduleNullBodyKeepsTable(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/horarios/salvar", `{"horarios":[{"linha":1,"hora_ligar":"a","hora_desligar":"b","dias":[1]}]}`)

	for _, body := range []string{`null`, `{"horarios":null}`, `[]`} {
		rec := hub.postJSON(t, "/api/horarios/salvar", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}

	var rows []models.ScheduleRow
	require.NoError(t, json.Unmarshal(hub.get(t, "/api/horarios").Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Line)

	// an object without the key still clears the table
	rec := hub.postJSON(t, "/api/horarios/salvar", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(hub.get(t, "/api/horarios").Body.Bytes(), &rows))
	assert.Empty(t, rows)
}

// System

func TestHealthReportsMailbox(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/horarios/requisitar", ``)
	rec := hub.get(t, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeMap(t, rec)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "readPending", out["mailbox"])
}

func TestMetricsCountEvents(t *testing.T) {
	hub := newTestHub(t)

	hub.postJSON(t, "/api/esp32", `{}`)
	hub.get(t, "/api/horarios/pull")

	assert.Eventually(t, func() bool {
		rec := hub.get(t, "/metrics")
		var snap struct {
			Events map[string]int64 `json:"events"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			return false
		}
		return snap.Events[hubservice.EventRecordIngested] == 1 && snap.Events[hubservice.EventDevicePolled] >= 1
	}, timeout, tick)
}

func TestSwaggerDoc(t *testing.T) {
	hub := newTestHub(t)

	rec := hub.get(t, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeMap(t, rec)
	assert.Equal(t, "2.0", out["swagger"])
	paths, ok := out["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/api/esp32")
	assert.Contains(t, paths, "/api/horarios/pull")

	export := paths["/api/registros/txt"].(map[string]interface{})["get"].(map[string]interface{})
	assert.Contains(t, export["description"], "NULL values are written as empty fields")
}

func TestCORSHeaders(t *testing.T) {
	hub := newTestHub(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	hub.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIs404(t *testing.T) {
	hub := newTestHub(t)
	assert.Equal(t, http.StatusNotFound, hub.get(t, "/api/nope").Code)
}
