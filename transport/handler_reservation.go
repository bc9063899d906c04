package transport

import (
	"context"
	"net/http"

	"github.com/muhammadheryan/community-market/model"
)

// CreateReservation handler
// @Summary Reserve a product
// @Description Creates a pending reservation. Stock is only checked, not held.
// @Tags Reservation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateReservationRequest true "Reservation"
// @Success 201 {object} model.Response{data=model.ReservationEntity}
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 409 {object} model.Response
// @Router /reservations [post]
func (s *RestHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateReservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.ReservationApp.CreateReservation(r.Context(), actor.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// ListMyReservations handler
// @Summary Reservations I made
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed or cancelled"
// @Param product_id query int false "Product ID"
// @Param page query int false "Page"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {object} model.Response{data=model.ReservationListResponse}
// @Failure 400 {object} model.Response
// @Router /reservations/my [get]
func (s *RestHandler) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	s.listReservations(w, r, s.ReservationApp.ListMyReservations)
}

// ListMyProductReservations handler
// @Summary Reservations on my products
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed or cancelled"
// @Param product_id query int false "Product ID"
// @Param page query int false "Page"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {object} model.Response{data=model.ReservationListResponse}
// @Failure 400 {object} model.Response
// @Router /reservations/my-products [get]
func (s *RestHandler) ListMyProductReservations(w http.ResponseWriter, r *http.Request) {
	s.listReservations(w, r, s.ReservationApp.ListMyProductReservations)
}

type reservationLister func(ctx context.Context, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error)

func (s *RestHandler) listReservations(w http.ResponseWriter, r *http.Request, list reservationLister) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	filter, err := parseReservationFilter(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	res, err := list(r.Context(), actor, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListProductReservations handler
// @Summary Reservations on one product
// @Description Product owner or admin
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param status query string false "pending, confirmed or cancelled"
// @Param page query int false "Page"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {object} model.Response{data=model.ReservationListResponse}
// @Failure 403 {object} model.Response
// @Router /products/{id}/reservations [get]
func (s *RestHandler) ListProductReservations(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	filter, err := parseReservationFilter(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	res, err := s.ReservationApp.ListProductReservations(r.Context(), id, actor, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetReservationStats handler
// @Summary Reservation counts per status
// @Description Counts as customer and as product owner
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response{data=model.ReservationStats}
// @Router /reservations/stats [get]
func (s *RestHandler) GetReservationStats(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReservationApp.GetStats(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetReservation handler
// @Summary Get reservation
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Response{data=model.ReservationDetail}
// @Failure 403 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /reservations/{id} [get]
func (s *RestHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return s.ReservationApp.GetReservation(ctx, id, actor)
	})
}

// UpdateReservation handler
// @Summary Edit a pending reservation
// @Description Customer only, while pending
// @Tags Reservation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body model.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} model.Response{data=model.ReservationDetail}
// @Failure 400 {object} model.Response
// @Failure 403 {object} model.Response
// @Router /reservations/{id} [put]
func (s *RestHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateReservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return s.ReservationApp.UpdateReservation(ctx, id, actor, &req)
	})
}

// DeleteReservation handler
// @Summary Delete reservation
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Response
// @Failure 403 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /reservations/{id} [delete]
func (s *RestHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return nil, s.ReservationApp.DeleteReservation(ctx, id, actor)
	})
}

// ConfirmReservation handler
// @Summary Confirm reservation
// @Description Product owner or admin. Decrements stock by the reserved quantity.
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Response{data=model.ReservationDetail}
// @Failure 400 {object} model.Response
// @Failure 403 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 409 {object} model.Response
// @Router /reservations/{id}/confirm [post]
func (s *RestHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return s.ReservationApp.ConfirmReservation(ctx, id, actor)
	})
}

// CancelReservation handler
// @Summary Cancel reservation
// @Description Customer, product owner or admin. Only pending reservations.
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Response{data=model.ReservationDetail}
// @Failure 400 {object} model.Response
// @Failure 403 {object} model.Response
// @Router /reservations/{id}/cancel [post]
func (s *RestHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return s.ReservationApp.CancelReservation(ctx, id, actor)
	})
}

// UpdateReservationStatus handler
// @Summary Override reservation status
// @Description Product owner or admin. Writes the status as given and never changes stock.
// @Tags Reservation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body model.UpdateReservationStatusRequest true "Status"
// @Success 200 {object} model.Response{data=model.ReservationDetail}
// @Failure 400 {object} model.Response
// @Failure 403 {object} model.Response
// @Router /reservations/{id}/status [put]
func (s *RestHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateReservationStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	s.withReservation(w, r, func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error) {
		return s.ReservationApp.UpdateReservationStatus(ctx, id, actor, req.Status)
	})
}

// withReservation resolves the caller and the {id} path value, runs fn and
// writes its result.
func (s *RestHandler) withReservation(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uint64, actor model.Principal) (interface{}, error)) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := fn(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ExpireReservation handler
// @Summary Expire a pending reservation
// @Description Internal. Called by the worker when the pending TTL elapses.
// @Tags Internal
// @Produce json
// @Param Authorization header string true "Bearer <internal api key>"
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /internal/v1/reservations/{id}/expire [post]
func (s *RestHandler) ExpireReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ReservationApp.ExpireReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
