package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"railbooking/internal/auth"
	"railbooking/internal/booking"
	"railbooking/internal/identity"
	"railbooking/internal/inventory"
	"railbooking/internal/logger"
	"railbooking/internal/otp"
	"railbooking/internal/payload"
	"railbooking/internal/rules"
	"railbooking/internal/utils"
)

// Handler adapts HTTP requests into booking core calls. It owns no business
// rules beyond the registration handshake (pending credentials held between
// OTP request and verification).
type Handler struct {
	Booking  *booking.Service
	Identity *identity.Store
	OTP      *otp.Authenticator
	Tokens   *auth.TokenIssuer
	Catalog  *inventory.Catalog
	QR       booking.QRGenerator
	Logger   *logger.Logger

	mu      sync.Mutex
	pending map[string]string // email -> password awaiting OTP verification
}

func NewHandler(svc *booking.Service, ident *identity.Store, authenticator *otp.Authenticator,
	tokens *auth.TokenIssuer, catalog *inventory.Catalog, qr booking.QRGenerator, log *logger.Logger) *Handler {
	return &Handler{
		Booking:  svc,
		Identity: ident,
		OTP:      authenticator,
		Tokens:   tokens,
		Catalog:  catalog,
		QR:       qr,
		Logger:   log,
		pending:  make(map[string]string),
	}
}

// Routes mounts the full HTTP surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/register", h.Register)
	r.Post("/auth/register/verify", h.RegisterVerify)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/login/verify", h.LoginVerify)
	r.Post("/auth/login/password", h.LoginPassword)

	r.Get("/trains", h.ListTrains)
	r.Get("/pnr/{pnr}", h.TrackPNR)
	r.Get("/pnr/{pnr}/qr", h.TrackPNRQR)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.Tokens))
		r.Post("/bookings", h.Book)
		r.Get("/bookings", h.ListBookings)
		r.Put("/bookings/{pnr}", h.Edit)
		r.Post("/bookings/{pnr}/cancel", h.Cancel)
		r.Delete("/bookings", h.Clear)
	})

	return r
}

// ---------------- auth ----------------

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	email := identity.Normalize(req.Email)
	if email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("registration failed", "email and password are required"))
		return
	}
	if !rules.ValidEmail(email) {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("registration failed", "invalid email address"))
		return
	}
	if h.Identity.Exists(email) {
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("registration failed", "account already exists, please log in"))
		return
	}
	if req.Password != req.ConfirmPassword {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("registration failed", "passwords do not match"))
		return
	}
	if len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("registration failed", "password must be at least 6 characters"))
		return
	}

	if _, err := h.OTP.Issue(email); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.mu.Lock()
	h.pending[email] = req.Password
	h.mu.Unlock()

	h.Logger.LogOTP("ISSUE", email, "registration OTP sent")
	writeJSON(w, http.StatusOK, utils.SuccessResponse("OTP sent to your email address", nil))
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) RegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	email := identity.Normalize(req.Email)
	h.mu.Lock()
	password, pendingOK := h.pending[email]
	h.mu.Unlock()
	if !pendingOK {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("registration failed", "please request a new OTP before registering"))
		return
	}

	ok, err := h.OTP.Verify(email, req.OTP)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("registration failed", "invalid or expired OTP, please request a new one"))
		return
	}

	if err := h.Identity.Register(email, password); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.mu.Lock()
	delete(h.pending, email)
	h.mu.Unlock()

	h.Logger.LogOTP("VERIFY", email, "registration complete")
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("registration successful, please log in", nil))
}

type loginRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	email := identity.Normalize(req.Email)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("login failed", "please enter your registered email"))
		return
	}
	if !h.Identity.Exists(email) {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("login failed", "no account found for this email, please register first"))
		return
	}

	if _, err := h.OTP.Issue(email); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.Logger.LogOTP("ISSUE", email, "login OTP sent")
	writeJSON(w, http.StatusOK, utils.SuccessResponse("OTP sent to your email address", nil))
}

func (h *Handler) LoginVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	email := identity.Normalize(req.Email)
	ok, err := h.OTP.Verify(email, req.OTP)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("login failed", "invalid or expired OTP, please request a new one"))
		return
	}

	h.issueSession(w, email)
}

type passwordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) LoginPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	email := identity.Normalize(req.Email)
	if err := h.Identity.Authenticate(email, req.Password); err != nil {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("login failed", "invalid email or password"))
		return
	}

	h.issueSession(w, email)
}

func (h *Handler) issueSession(w http.ResponseWriter, email string) {
	token, err := h.Tokens.Issue(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("login failed", err.Error()))
		return
	}
	h.Logger.Info("AUTH", "session issued for "+email)
	writeJSON(w, http.StatusOK, utils.SuccessResponse("logged in successfully", map[string]string{"token": token}))
}

// ---------------- catalog & tracking ----------------

func (h *Handler) ListTrains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse("train catalog", h.Catalog.List()))
}

func (h *Handler) TrackPNR(w http.ResponseWriter, r *http.Request) {
	pnr := chi.URLParam(r, "pnr")
	ticket, err := h.Booking.TrackByPNR(pnr)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("PNR status", map[string]any{
		"ticket":  ticket,
		"payload": payload.Display(*ticket),
	}))
}

func (h *Handler) TrackPNRQR(w http.ResponseWriter, r *http.Request) {
	pnr := chi.URLParam(r, "pnr")
	ticket, err := h.Booking.TrackByPNR(pnr)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	png, err := h.QR.GenerateTicketQR(*ticket)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to generate QR", err.Error()))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ---------------- bookings ----------------

type bookRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Mobile      string `json:"mobile"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
	JourneyDate string `json:"journey_date"`
	TrainNo     string `json:"train_no"`
	TravelClass string `json:"travel_class"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.UserEmail(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("booking failed", "not logged in"))
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if req.Nationality == "" {
		req.Nationality = "Indian"
	}

	result, err := h.Booking.Book(booking.BookRequest{
		Email: email,
		Passenger: rules.Passenger{
			Name:        req.Name,
			Age:         req.Age,
			Mobile:      req.Mobile,
			Nationality: req.Nationality,
			Address:     req.Address,
			From:        req.FromStation,
			To:          req.ToStation,
		},
		TrainNo:     req.TrainNo,
		Class:       req.TravelClass,
		JourneyDate: req.JourneyDate,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data := map[string]any{
		"ticket":  result.Ticket,
		"payload": payload.Display(result.Ticket),
	}
	if result.Warning != "" {
		writeJSON(w, http.StatusCreated, utils.WarningResponse("ticket booked successfully", result.Warning, data))
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse("ticket booked successfully, a copy has been sent to your email", data))
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	email, _ := auth.UserEmail(r.Context())
	tickets, err := h.Booking.ListForUser(email)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("your bookings", tickets))
}

type editRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	JourneyDate string `json:"journey_date"`
	TravelClass string `json:"travel_class"`
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	email, _ := auth.UserEmail(r.Context())
	pnr := chi.URLParam(r, "pnr")

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	ticket, err := h.Booking.Edit(pnr, email, booking.EditRequest{
		Name:        req.Name,
		Age:         req.Age,
		Nationality: req.Nationality,
		Address:     req.Address,
		Class:       req.TravelClass,
		JourneyDate: req.JourneyDate,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("booking updated successfully", ticket))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	email, _ := auth.UserEmail(r.Context())
	pnr := chi.URLParam(r, "pnr")

	result, err := h.Booking.Cancel(pnr, email)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("ticket cancelled, refund amount: Rs.%d", result.Refund),
		map[string]any{"ticket": result.Ticket, "refund": result.Refund}))
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	email, _ := auth.UserEmail(r.Context())
	if err := h.Booking.ClearAll(email); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("all bookings cleared successfully", nil))
}

// ---------------- error mapping ----------------

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var validation *rules.ValidationError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("validation failed", validation.Error()))
	case errors.Is(err, identity.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid email", err.Error()))
	case errors.Is(err, identity.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("account already exists", err.Error()))
	case errors.Is(err, inventory.ErrSoldOut):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("no seats available", err.Error()))
	case errors.Is(err, booking.ErrInvalidState):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("invalid booking state", err.Error()))
	case errors.Is(err, booking.ErrPNRExhausted):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse("booking failed", err.Error()))
	case errors.Is(err, rules.ErrUnknownClass), errors.Is(err, inventory.ErrUnknownClass):
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("unknown travel class", err.Error()))
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, inventory.ErrTrainNotFound),
		errors.Is(err, identity.ErrNotFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("not found", err.Error()))
	case errors.Is(err, otp.ErrDeliveryFailed):
		writeJSON(w, http.StatusBadGateway, utils.ErrorResponse("unable to send OTP right now, please try again later", err.Error()))
	default:
		h.Logger.Error("API", err.Error())
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error", err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
