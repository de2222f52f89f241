package restaurant

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
	return &Handler{
		service: service,
		logger:  log,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/registerRestaurant", h.RegisterRestaurant)
	r.Post("/getRestaurant", h.GetRestaurant)
	r.Post("/listRestaurants", h.ListRestaurants)
	r.Post("/addEmployee", h.AddEmployee)
	r.Post("/updateEmployee", h.UpdateEmployee)
	r.Post("/removeEmployee", h.RemoveEmployee)
	r.Post("/listEmployees", h.ListEmployees)
}

func (h *Handler) RegisterRestaurant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RegisterRestaurant")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RegisterRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	res, err := h.service.Register(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "registerRestaurant", err)
		return
	}

	callable.Respond(w, res)
}

func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetRestaurant")
	defer finish()

	log := h.log(r)

	var req GetRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	res, err := h.service.Get(r.Context(), req.RestaurantID)
	if err != nil {
		callable.Fail(w, log, h.tlm, "getRestaurant", err)
		return
	}

	callable.Respond(w, res)
}

func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRestaurants")
	defer finish()

	log := h.log(r)

	list, err := h.service.List(r.Context())
	if err != nil {
		callable.Fail(w, log, h.tlm, "listRestaurants", err)
		return
	}

	if list == nil {
		list = []*Restaurant{}
	}
	callable.Respond(w, list)
}

func (h *Handler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddEmployee")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req AddEmployeeRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	res, err := h.service.AddEmployee(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "addEmployee", err)
		return
	}

	callable.Respond(w, res)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateEmployee")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req UpdateEmployeeRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	res, err := h.service.UpdateEmployee(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "updateEmployee", err)
		return
	}

	callable.Respond(w, res)
}

func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveEmployee")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RemoveEmployeeRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.RemoveEmployee(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "removeEmployee", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListEmployees")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req ListEmployeesRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	list, err := h.service.ListEmployees(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listEmployees", err)
		return
	}

	if list == nil {
		list = []*Employee{}
	}
	callable.Respond(w, list)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
