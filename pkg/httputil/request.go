package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// ParseJSON decodes the request body into dest. Unknown fields are an error.
func ParseJSON(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// ParseJSONOrError is ParseJSON that answers 400 itself and reports whether
// the handler should continue
func ParseJSONOrError(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := ParseJSON(r, dest)
	if err != nil {
		WriteValidationError(w, err.Error())
	}
	return err == nil
}

// ParsePathStringOrError returns the named route variable, answering 400
// when the route has none
func ParsePathStringOrError(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	val := mux.Vars(r)[key]
	if val == "" {
		WriteValidationError(w, "missing path parameter: "+key)
		return "", false
	}
	return val, true
}

// ParseQueryString returns the query value for key, or def when absent
func ParseQueryString(r *http.Request, key, def string) string {
	if val := r.URL.Query().Get(key); val != "" {
		return val
	}
	return def
}

// ParseQueryList splits a comma-separated query value. Blank items are dropped.
func ParseQueryList(r *http.Request, key string) []string {
	var out []string
	for _, item := range strings.Split(r.URL.Query().Get(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseQueryBool parses a boolean query value, or returns def when absent
func ParseQueryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for query param %s: %s", key, raw)
	}
	return val, nil
}

// RequireNonEmpty answers 400 when value is empty
func RequireNonEmpty(w http.ResponseWriter, value, field string) bool {
	if value == "" {
		WriteValidationError(w, field+" is required")
		return false
	}
	return true
}
