package report

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
	r.Post("/getDailySalesReport", h.GetDailySalesReport)
}

func (h *Handler) GetDailySalesReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDailySalesReport")
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	var req DailySalesRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	days, err := h.service.DailySales(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "getDailySalesReport", err)
		return
	}

	callable.Respond(w, days)
}
