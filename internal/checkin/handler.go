package checkin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/callable"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/telemetry"
)

const nothingToCancel = "no pending check-in found"

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
	r.Post("/requestCheckIn", h.RequestCheckIn)
	r.Post("/cancelCheckIn", h.CancelCheckIn)
	r.Post("/handleCheckInResponse", h.HandleCheckInResponse)
	r.Post("/listNotifications", h.ListNotifications)
	r.Post("/getMyCheckIn", h.GetMyCheckIn)
}

func (h *Handler) RequestCheckIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RequestCheckIn")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RequestCheckInRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	c, err := h.service.Request(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "requestCheckIn", err)
		return
	}

	callable.Respond(w, c)
}

func (h *Handler) CancelCheckIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelCheckIn")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req CancelCheckInRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	cancelled, err := h.service.Cancel(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "cancelCheckIn", err)
		return
	}
	if !cancelled {
		callable.Respond(w, callable.SoftFailure(nothingToCancel))
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) HandleCheckInResponse(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.HandleCheckInResponse")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RespondRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if _, err := h.service.Respond(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "handleCheckInResponse", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListNotifications")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ListNotificationsRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	list, err := h.service.Notifications(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listNotifications", err)
		return
	}

	callable.Respond(w, list)
}

func (h *Handler) GetMyCheckIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMyCheckIn")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req MyCheckInRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	c, err := h.service.Mine(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "getMyCheckIn", err)
		return
	}

	callable.Respond(w, c)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
