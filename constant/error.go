package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrInvalidReservationStatus
	ErrInsufficientStock
	ErrSelfReservation
	ErrInvalidQuantity
	ErrConfirmNotPending
	ErrCancelNotPending
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                  "success",
	ErrInternal:                 "error internal",
	ErrNotFound:                 "data not found",
	ErrInvalidRequest:           "invalid request",
	ErrUnauthorize:              "unauthorize request",
	ErrCredentialExists:         "email or phone already exists",
	ErrInvalidPassword:          "password invalid",
	ErrForbidden:                "permission denied",
	ErrInvalidReservationStatus: "invalid reservation status",
	ErrInsufficientStock:        "insufficient stock",
	ErrSelfReservation:          "cannot reserve your own product",
	ErrInvalidQuantity:          "quantity must be greater than zero",
	ErrConfirmNotPending:        "only pending reservations can be confirmed",
	ErrCancelNotPending:         "only pending reservations can be cancelled",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                  http.StatusOK,
	ErrInternal:                 http.StatusInternalServerError,
	ErrNotFound:                 http.StatusNotFound,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrUnauthorize:              http.StatusUnauthorized,
	ErrCredentialExists:         http.StatusBadRequest,
	ErrInvalidPassword:          http.StatusBadRequest,
	ErrForbidden:                http.StatusForbidden,
	ErrInvalidReservationStatus: http.StatusBadRequest,
	ErrInsufficientStock:        http.StatusConflict,
	ErrSelfReservation:          http.StatusConflict,
	ErrInvalidQuantity:          http.StatusBadRequest,
	ErrConfirmNotPending:        http.StatusBadRequest,
	ErrCancelNotPending:         http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                  "0000",
	ErrInternal:                 "0001",
	ErrNotFound:                 "0002",
	ErrInvalidRequest:           "0003",
	ErrUnauthorize:              "0004",
	ErrCredentialExists:         "0005",
	ErrInvalidPassword:          "0006",
	ErrForbidden:                "0007",
	ErrInvalidReservationStatus: "0008",
	ErrInsufficientStock:        "0009",
	ErrSelfReservation:          "0010",
	ErrInvalidQuantity:          "0011",
	ErrConfirmNotPending:        "0012",
	ErrCancelNotPending:         "0013",
}
