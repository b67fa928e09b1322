package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ttnppedr/banking-system/internal/models"
)

// pathID parses the {id} URL parameter. ok is false for anything that is not
// a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// paginationQuery reads page and perPage, falling back to the defaults when
// absent.
func paginationQuery(q url.Values) (models.Pagination, []APIError) {
	var errs []APIError
	page, err := positiveInt(q, "page")
	if err != nil {
		errs = append(errs, *err)
	}
	perPage, err := positiveInt(q, "perPage")
	if err != nil {
		errs = append(errs, *err)
	}
	return models.NewPagination(page, perPage), errs
}

func positiveInt(q url.Values, key string) (int, *APIError) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &APIError{Path: []string{key}, Message: "Expected number, received nan"}
	}
	if n < 1 {
		return 0, &APIError{Path: []string{key}, Message: "Number must be greater than or equal to 1"}
	}
	return n, nil
}

// timeQuery parses an optional RFC 3339 timestamp.
func timeQuery(q url.Values, key string) (*time.Time, *APIError) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &APIError{Path: []string{key}, Message: "Invalid datetime"}
	}
	return &t, nil
}
