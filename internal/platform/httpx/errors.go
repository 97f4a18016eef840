package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors mapped onto export responses.
var (
	ErrUnavailable = errors.New("service unavailable")
	ErrUpstream    = errors.New("upstream failure")
	ErrRejected    = errors.New("request rejected")
)

// RespondError maps err onto a problem response. detail is shown to the caller.
func RespondError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, ErrUnavailable):
		Problem(w, http.StatusServiceUnavailable, detail)
	case errors.Is(err, ErrUpstream):
		Problem(w, http.StatusBadGateway, detail)
	case errors.Is(err, ErrRejected):
		Problem(w, http.StatusBadRequest, detail)
	default:
		Problem(w, http.StatusInternalServerError, detail)
	}
}
