package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathID returns the {id} URL parameter. Anything that is not a UUID cannot
// name a stored row, so it is answered with notFound directly.
func pathID(w http.ResponseWriter, r *http.Request, notFound error) (string, bool) {
	id := chi.URLParam(r, "id")
	parsed, err := uuid.Parse(id)
	if err != nil {
		response.HandleError(w, notFound)
		return "", false
	}
	return parsed.String(), true
}

// actor returns the user resolved by middleware.AuthRequired
func actor(w http.ResponseWriter, r *http.Request) (user.User, bool) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return user.User{}, false
	}
	return current, true
}

// pagination reads skip and limit; zero values are left for the filter defaults
func pagination(r *http.Request) (skip, limit int, err error) {
	var errs validator.ValidationErrors

	query := r.URL.Query()
	if s := query.Get("skip"); s != "" {
		if skip, err = strconv.Atoi(s); err != nil {
			errs = append(errs, validator.ValidationError{Field: "skip", Message: "skip must be an integer"})
		}
	}
	if l := query.Get("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil {
			errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be an integer"})
		}
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return skip, limit, nil
}

// optionalQuery returns nil for absent or blank parameters
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func listMeta(skip, limit int, total int64) *response.Meta {
	return &response.Meta{
		Skip:       skip,
		Limit:      limit,
		TotalItems: total,
	}
}
