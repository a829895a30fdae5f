package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
)

var errBadRequestBody = errors.New("request: invalid body")

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errBadRequestBody, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequestBody, name)
	}
	return id, nil
}

func parsePageSizeParam(raw string) (int, error) {
	size, err := strconv.Atoi(raw)
	if err != nil || size < 0 {
		return 0, employee.ErrInvalidPageSize
	}
	return size, nil
}
