// Package handler contains the HTTP handlers for the shoestore API.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/service"
)

// validate is shared by all handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// decodeValid decodes the JSON body into dst and validates it. On failure a
// 400 envelope has already been written and the caller should return.
func decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.RespondError(w, fmt.Errorf("%w: malformed request body", service.ErrValidation))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		api.RespondError(w, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return false
	}

	return true
}

// pathID parses a numeric {id} path segment. On failure a 400 envelope has
// already been written.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		api.RespondError(w, fmt.Errorf("%w: invalid %s", service.ErrValidation, name))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, falling back to def
// when absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
