// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/fieldhub/api/middleware"
	"github.com/itsatony/fieldhub/api/resources"
	_ "github.com/itsatony/fieldhub/docs"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/monitoring"
)

type Router struct {
	router    *mux.Router
	handler   http.Handler
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, metrics *monitoring.Service, cfg middleware.Config) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, metrics),
	}

	r.setupRoutes()
	r.handler = middleware.Wrap(r.router, cfg)
	return r
}

func (r *Router) setupRoutes() {
	// System
	r.router.HandleFunc("/health", r.resources.System.HealthCheck).Methods(http.MethodGet)
	r.router.HandleFunc("/metrics", r.resources.System.Metrics).Methods(http.MethodGet)
	r.router.HandleFunc("/swagger/doc.json", r.resources.System.SwaggerDoc).Methods(http.MethodGet)

	// Dashboard to device commands
	r.router.HandleFunc("/comando", r.resources.Commands.SetLed).Methods(http.MethodPost)
	r.router.HandleFunc("/mensagem", r.resources.Commands.SetMessage).Methods(http.MethodPost)
	r.router.HandleFunc("/status", r.resources.Commands.ReadStatus).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Records
	api.HandleFunc("/esp32", r.resources.Records.IngestRecord).Methods(http.MethodPost)
	api.HandleFunc("/registros", r.resources.Records.ListRecords).Methods(http.MethodGet)
	api.HandleFunc("/registros/txt", r.resources.Records.ExportRecords).Methods(http.MethodGet)
	api.HandleFunc("/dispositivos/{id}/ultimo", r.resources.Records.LatestRecord).Methods(http.MethodGet)

	// Schedules
	schedules := api.PathPrefix("/horarios").Subrouter()
	schedules.HandleFunc("", r.resources.Schedules.ListSchedule).Methods(http.MethodGet)
	schedules.HandleFunc("/editar", r.resources.Schedules.SubmitEdit).Methods(http.MethodPost)
	schedules.HandleFunc("/requisitar", r.resources.Schedules.RequestRead).Methods(http.MethodPost)
	schedules.HandleFunc("/pull", r.resources.Schedules.Poll).Methods(http.MethodGet)
	schedules.HandleFunc("/salvar", r.resources.Schedules.SaveSchedule).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
