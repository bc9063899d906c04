package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	utilsContext "github.com/muhammadheryan/community-market/utils/context"
	"github.com/muhammadheryan/community-market/utils/errors"
	validatorx "github.com/muhammadheryan/community-market/utils/validator"
)

var errInvalidRequest = errors.SetCustomError(constant.ErrInvalidRequest)

func pathID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidRequest
	}
	return id, nil
}

func principal(r *http.Request) (model.Principal, error) {
	p, ok := utilsContext.GetPrincipal(r.Context())
	if !ok {
		return model.Principal{}, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return p, nil
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errInvalidRequest)
		return false
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errInvalidRequest
	}
	return n, nil
}

func queryUint(r *http.Request, key string) (uint64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errInvalidRequest
	}
	return n, nil
}

func queryPaging(r *http.Request) (page, perPage int, err error) {
	if page, err = queryInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if perPage, err = queryInt(r, "per_page"); err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

// parseReservationFilter reads status, product_id and paging from the query
// string. Scoping by customer or owner is decided by the handler, never by
// the caller.
func parseReservationFilter(r *http.Request) (model.ReservationFilter, error) {
	var f model.ReservationFilter
	var err error

	f.Status = constant.ReservationStatus(r.URL.Query().Get("status"))
	if f.ProductID, err = queryUint(r, "product_id"); err != nil {
		return f, err
	}
	if f.Page, f.PerPage, err = queryPaging(r); err != nil {
		return f, err
	}
	if err := validatorx.ValidateStruct(&f); err != nil {
		return f, err
	}
	return f, nil
}

func parseProductFilter(r *http.Request) (model.ProductFilter, error) {
	q := r.URL.Query()
	f := model.ProductFilter{
		Type:     constant.ProductType(q.Get("type")),
		Category: q.Get("category"),
		Search:   strings.TrimSpace(q.Get("search")),
	}

	var err error
	if f.OwnerID, err = queryUint(r, "owner_id"); err != nil {
		return f, err
	}
	if v := q.Get("is_recommend"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return f, errInvalidRequest
		}
		f.IsRecommend = &b
	}
	if f.Page, f.PerPage, err = queryPaging(r); err != nil {
		return f, err
	}
	if err := validatorx.ValidateStruct(&f); err != nil {
		return f, err
	}
	return f, nil
}

// writeFilterError distinguishes validation failures from malformed values
func writeFilterError(w http.ResponseWriter, err error) {
	if _, ok := err.(errors.CustomError); ok {
		writeError(w, err)
		return
	}
	writeValidationError(w, err)
}
