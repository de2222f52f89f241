package tables

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/callable"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/telemetry"
)

type Handler struct {
	service *Service
	logger  logger.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Handler{service: service, logger: log, tlm: telemetry.NewHTTP()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generateTables", h.GenerateTables)
	r.Post("/listTables", h.ListTables)
	r.Post("/updateTableStatus", h.UpdateTableStatus)
	r.Post("/clearTable", h.ClearTable)
}

func (h *Handler) GenerateTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GenerateTables")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req GenerateTablesRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	tables, err := h.service.Generate(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "generateTables", err)
		return
	}

	callable.Respond(w, tables)
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ListTablesRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	tables, err := h.service.List(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listTables", err)
		return
	}

	callable.Respond(w, tables)
}

func (h *Handler) UpdateTableStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateTableStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req UpdateTableStatusRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	table, err := h.service.UpdateStatus(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "updateTableStatus", err)
		return
	}

	callable.Respond(w, table)
}

func (h *Handler) ClearTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearTable")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ClearTableRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	table, err := h.service.Clear(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "clearTable", err)
		return
	}

	callable.Respond(w, table)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
