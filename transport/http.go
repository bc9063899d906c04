package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	productapp "github.com/muhammadheryan/community-market/application/product"
	reservationapp "github.com/muhammadheryan/community-market/application/reservation"
	userapp "github.com/muhammadheryan/community-market/application/user"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	"github.com/muhammadheryan/community-market/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp        userapp.UserApp
	ProductApp     productapp.ProductApp
	ReservationApp reservationapp.ReservationApp
}

func NewTransport(internalAPIKey string, userApp userapp.UserApp, productApp productapp.ProductApp, reservationApp reservationapp.ReservationApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:        userApp,
		ProductApp:     productApp,
		ReservationApp: reservationApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)

	// protected routes
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)

	mux.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id:[0-9]+}", rh.UpdateProduct).Methods(http.MethodPut)
	mux.HandleFunc("/products/{id:[0-9]+}", rh.DeleteProduct).Methods(http.MethodDelete)
	mux.HandleFunc("/products/{id:[0-9]+}/stock", rh.UpdateStock).Methods(http.MethodPut)
	mux.HandleFunc("/products/{id:[0-9]+}/reservations", rh.ListProductReservations).Methods(http.MethodGet)

	mux.HandleFunc("/reservations", rh.CreateReservation).Methods(http.MethodPost)
	mux.HandleFunc("/reservations/my", rh.ListMyReservations).Methods(http.MethodGet)
	mux.HandleFunc("/reservations/my-products", rh.ListMyProductReservations).Methods(http.MethodGet)
	mux.HandleFunc("/reservations/stats", rh.GetReservationStats).Methods(http.MethodGet)
	mux.HandleFunc("/reservations/{id:[0-9]+}", rh.GetReservation).Methods(http.MethodGet)
	mux.HandleFunc("/reservations/{id:[0-9]+}", rh.UpdateReservation).Methods(http.MethodPut)
	mux.HandleFunc("/reservations/{id:[0-9]+}", rh.DeleteReservation).Methods(http.MethodDelete)
	mux.HandleFunc("/reservations/{id:[0-9]+}/confirm", rh.ConfirmReservation).Methods(http.MethodPost)
	mux.HandleFunc("/reservations/{id:[0-9]+}/cancel", rh.CancelReservation).Methods(http.MethodPost)
	mux.HandleFunc("/reservations/{id:[0-9]+}/status", rh.UpdateReservationStatus).Methods(http.MethodPut)

	// internal routes, called by the worker
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/reservations/{id:[0-9]+}/expire", rh.ExpireReservation).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(userApp))

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.Response{data=model.RegisterResponse}
// @Failure 400 {object} model.Response
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.UserApp.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.Response{data=model.LoginResponse}
// @Failure 400 {object} model.Response
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.UserApp.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout user
// @Description Invalidate the session of the presented token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
