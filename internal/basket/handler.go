package basket

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
	r.Post("/addItemToBasket", h.AddItemToBasket)
	r.Post("/removeItemFromBasket", h.RemoveItemFromBasket)
	r.Post("/updateBasketItemQuantity", h.UpdateBasketItemQuantity)
	r.Post("/clearBasket", h.ClearBasket)
	r.Post("/sendToChefsQ", h.SendToChefsQ)
	r.Post("/listBasket", h.ListBasket)
	r.Post("/getChefsQueue", h.GetChefsQueue)
	r.Post("/updateItemStatus", h.UpdateItemStatus)
	r.Post("/applyItemDiscount", h.ApplyItemDiscount)
}

func (h *Handler) AddItemToBasket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddItemToBasket")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req AddItemRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.AddItem(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "addItemToBasket", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) RemoveItemFromBasket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveItemFromBasket")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RemoveItemRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.RemoveItem(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "removeItemFromBasket", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) UpdateBasketItemQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateBasketItemQuantity")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req UpdateQuantityRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.UpdateQuantity(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "updateBasketItemQuantity", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearBasket")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ClearBasketRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.ClearBasket(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "clearBasket", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) SendToChefsQ(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SendToChefsQ")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req SendToKitchenRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.SendToKitchen(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "sendToChefsQ", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) ListBasket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBasket")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ListBasketRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	items, err := h.service.ListBasket(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listBasket", err)
		return
	}

	callable.Respond(w, items)
}

func (h *Handler) GetChefsQueue(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetChefsQueue")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ChefsQueueRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	queue, err := h.service.ChefsQueue(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "getChefsQueue", err)
		return
	}

	callable.Respond(w, queue)
}

func (h *Handler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateItemStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req UpdateItemStatusRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	item, err := h.service.UpdateItemStatus(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "updateItemStatus", err)
		return
	}

	callable.Respond(w, item)
}

func (h *Handler) ApplyItemDiscount(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ApplyItemDiscount")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ApplyDiscountRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	item, err := h.service.ApplyDiscount(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "applyItemDiscount", err)
		return
	}

	callable.Respond(w, item)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
