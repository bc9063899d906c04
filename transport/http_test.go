package transport_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/muhammadheryan/community-market/constant"
	productmocks "github.com/muhammadheryan/community-market/mocks/application/product"
	reservationmocks "github.com/muhammadheryan/community-market/mocks/application/reservation"
	usermocks "github.com/muhammadheryan/community-market/mocks/application/user"
	"github.com/muhammadheryan/community-market/model"
	"github.com/muhammadheryan/community-market/transport"
	cerr "github.com/muhammadheryan/community-market/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const internalKey = "internal-secret"

type apps struct {
	user        *usermocks.UserApp
	product     *productmocks.ProductApp
	reservation *reservationmocks.ReservationApp
}

func newApps(t *testing.T) apps {
	return apps{
		user:        usermocks.NewUserApp(t),
		product:     productmocks.NewProductApp(t),
		reservation: reservationmocks.NewReservationApp(t),
	}
}

func (a apps) handler() http.Handler {
	return transport.NewTransport(internalKey, a.user, a.product, a.reservation)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (a apps) signedIn(p model.Principal) {
	a.user.On("ValidateToken", mock.Anything, "good-token").Return(p, nil)
}

func TestConfirmReservation(t *testing.T) {
	owner := model.Principal{UserID: 1}

	tests := []struct {
		name       string
		token      string
		mockCall   func(a apps)
		wantStatus int
		wantCode   constant.ErrorType
	}{
		{
			name:  "success",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(&model.ReservationDetail{ReservationEntity: model.ReservationEntity{ID: 7, Status: constant.ReservationStatusConfirmed}}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCode:   constant.Successful,
		},
		{
			name:  "insufficient stock is a conflict",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(nil, cerr.SetCustomError(constant.ErrInsufficientStock)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   constant.ErrInsufficientStock,
		},
		{
			name:  "not pending is a bad request",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(nil, cerr.SetCustomError(constant.ErrConfirmNotPending)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ErrConfirmNotPending,
		},
		{
			name:  "permission denied",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(nil, cerr.SetCustomError(constant.ErrForbidden)).Once()
			},
			wantStatus: http.StatusForbidden,
			wantCode:   constant.ErrForbidden,
		},
		{
			name:  "not found",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(nil, cerr.SetCustomError(constant.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   constant.ErrNotFound,
		},
		{
			name:  "unmapped error is internal",
			token: "good-token",
			mockCall: func(a apps) {
				a.signedIn(owner)
				a.reservation.On("ConfirmReservation", mock.Anything, uint64(7), owner).
					Return(nil, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   constant.ErrInternal,
		},
		{
			name:       "missing token",
			mockCall:   func(a apps) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   constant.ErrUnauthorize,
		},
		{
			name:  "invalid token",
			token: "bad-token",
			mockCall: func(a apps) {
				a.user.On("ValidateToken", mock.Anything, "bad-token").Return(model.Principal{}, errors.New("expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   constant.ErrUnauthorize,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			a := newApps(t)
			tt.mockCall(a)

			rec, env := do(t, a.handler(), http.MethodPost, "/reservations/7/confirm", tt.token, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, constant.ErrorTypeCode[tt.wantCode], env.Code)
			assert.Equal(t, tt.wantCode == constant.Successful, env.Success)
		})
	}
}

func TestCreateReservation(t *testing.T) {
	customer := model.Principal{UserID: 2}

	t.Run("created", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)
		a.reservation.On("CreateReservation", mock.Anything, uint64(2), &model.CreateReservationRequest{ProductID: 5, Quantity: 2}).
			Return(&model.ReservationEntity{ID: 11, ProductID: 5, Quantity: 2, Status: constant.ReservationStatusPending}, nil).Once()

		rec, env := do(t, a.handler(), http.MethodPost, "/reservations", "good-token", `{"product_id":5,"quantity":2}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got model.ReservationEntity
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, uint64(11), got.ID)
		assert.Equal(t, constant.ReservationStatusPending, got.Status)
	})

	t.Run("self reservation is a conflict", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)
		a.reservation.On("CreateReservation", mock.Anything, uint64(2), mock.Anything).
			Return(nil, cerr.SetCustomError(constant.ErrSelfReservation)).Once()

		rec, env := do(t, a.handler(), http.MethodPost, "/reservations", "good-token", `{"product_id":5,"quantity":2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, constant.ErrorTypeCode[constant.ErrSelfReservation], env.Code)
	})

	t.Run("missing product id fails validation", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)

		rec, env := do(t, a.handler(), http.MethodPost, "/reservations", "good-token", `{"quantity":2}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Data), "ProductID")
	})

	t.Run("malformed body", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)

		rec, _ := do(t, a.handler(), http.MethodPost, "/reservations", "good-token", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListMyReservations(t *testing.T) {
	customer := model.Principal{UserID: 2}

	t.Run("filter is parsed from the query", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)
		a.reservation.On("ListMyReservations", mock.Anything, customer, model.ReservationFilter{
			Status:  constant.ReservationStatusConfirmed,
			Page:    2,
			PerPage: 20,
		}).Return(&model.ReservationListResponse{Items: []model.ReservationDetail{}, Page: 2, PerPage: 20}, nil).Once()

		rec, _ := do(t, a.handler(), http.MethodGet, "/reservations/my?status=confirmed&page=2&per_page=20", "good-token", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)

		rec, env := do(t, a.handler(), http.MethodGet, "/reservations/my?status=lost", "good-token", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Data), "Status")
	})

	t.Run("page size above limit", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)

		rec, _ := do(t, a.handler(), http.MethodGet, "/reservations/my?per_page=500", "good-token", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non numeric page", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(customer)

		rec, env := do(t, a.handler(), http.MethodGet, "/reservations/my?page=two", "good-token", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, constant.ErrorTypeCode[constant.ErrInvalidRequest], env.Code)
	})
}

func TestUpdateReservationStatus(t *testing.T) {
	owner := model.Principal{UserID: 1}

	t.Run("override", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(owner)
		a.reservation.On("UpdateReservationStatus", mock.Anything, uint64(3), owner, constant.ReservationStatusCancelled).
			Return(&model.ReservationDetail{}, nil).Once()

		rec, _ := do(t, a.handler(), http.MethodPut, "/reservations/3/status", "good-token", `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("status outside the enum", func(t *testing.T) {
		a := newApps(t)
		a.signedIn(owner)

		rec, _ := do(t, a.handler(), http.MethodPut, "/reservations/3/status", "good-token", `{"status":"shipped"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPublicProductRoutes(t *testing.T) {
	t.Run("browsing needs no token", func(t *testing.T) {
		a := newApps(t)
		a.product.On("ListProducts", mock.Anything, model.ProductFilter{Type: constant.ProductTypeBarter, Search: "bike"}).
			Return(&model.ProductListResponse{Items: []model.ProductDetail{}, Page: 1, PerPage: 10}, nil).Once()

		rec, _ := do(t, a.handler(), http.MethodGet, "/products?type=barter&search=bike", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("product detail needs no token", func(t *testing.T) {
		a := newApps(t)
		a.product.On("GetProduct", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()

		rec, _ := do(t, a.handler(), http.MethodGet, "/products/5", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("product reservations need a token", func(t *testing.T) {
		a := newApps(t)

		rec, _ := do(t, a.handler(), http.MethodGet, "/products/5/reservations", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("creating a product needs a token", func(t *testing.T) {
		a := newApps(t)

		rec, _ := do(t, a.handler(), http.MethodPost, "/products", "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExpireReservation(t *testing.T) {
	t.Run("valid internal key", func(t *testing.T) {
		a := newApps(t)
		a.reservation.On("ExpireReservation", mock.Anything, uint64(9)).Return(nil).Once()

		rec, _ := do(t, a.handler(), http.MethodPost, "/internal/v1/reservations/9/expire", internalKey, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user token is not an internal key", func(t *testing.T) {
		a := newApps(t)

		rec, _ := do(t, a.handler(), http.MethodPost, "/internal/v1/reservations/9/expire", "good-token", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	a := newApps(t)
	a.signedIn(model.Principal{UserID: 2})
	a.user.On("Logout", mock.Anything, "good-token").Return(nil).Once()

	rec, env := do(t, a.handler(), http.MethodPost, "/logout", "good-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}
