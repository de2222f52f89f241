package payment

import (
	"context"
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
	r.Post("/createPaymentIntent", h.CreatePaymentIntent)
	r.Post("/createSetupIntent", h.CreateSetupIntent)
	r.Post("/createEphemeralKey", h.CreateEphemeralKey)
	r.Post("/createConnectedAccount", h.CreateConnectedAccount)
	r.Post("/createLoginLink", h.CreateLoginLink)
	r.Post("/checkOnboardingStatus", h.CheckOnboardingStatus)
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "createPaymentIntent", h.service.CreatePaymentIntent)
}

func (h *Handler) CreateSetupIntent(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "createSetupIntent", h.service.CreateSetupIntent)
}

func (h *Handler) CreateEphemeralKey(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "createEphemeralKey", h.service.CreateEphemeralKey)
}

func (h *Handler) CreateConnectedAccount(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "createConnectedAccount", h.service.CreateConnectedAccount)
}

func (h *Handler) CreateLoginLink(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "createLoginLink", h.service.CreateLoginLink)
}

func (h *Handler) CheckOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "checkOnboardingStatus", h.service.OnboardingStatus)
}

// serve runs the decode, call, respond cycle shared by every payment call.
func serve[Req, Res any](h *Handler, w http.ResponseWriter, r *http.Request, op string, call func(context.Context, string, Req) (*Res, error)) {
	w, r, finish := h.tlm.Start(w, r, "Handler."+op)
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	var req Req
	if !callable.Decode(w, r, &req, log) {
		return
	}

	res, err := call(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, op, err)
		return
	}

	callable.Respond(w, res)
}
