package order

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
	r.Post("/createOrder", h.CreateOrder)
	r.Post("/listMyOrders", h.ListMyOrders)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req CreateOrderRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	o, err := h.service.Create(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "createOrder", err)
		return
	}

	callable.Respond(w, CreateOrderResult{Success: true, OrderID: o.OrderID, ID: o.ID})
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMyOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ListMyOrdersRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	list, err := h.service.ListMine(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listMyOrders", err)
		return
	}

	callable.Respond(w, list)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
