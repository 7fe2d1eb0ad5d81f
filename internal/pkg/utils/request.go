package utils

import (
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeAndValidate parses a JSON body into dst and runs struct validation.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

// MapContextError turns a context deadline into the gateway timeout error and
// leaves everything else untouched.
func MapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constvars.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get(constvars.HeaderXRealIP); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ParseCoordinates reads lat/lng from the query string, falling back to the
// client coordinate headers.
func ParseCoordinates(r *http.Request) (lat, lng float64, ok bool) {
	query := r.URL.Query()
	latRaw, lngRaw := query.Get("lat"), query.Get("lng")
	if latRaw != "" && lngRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lng, errLng := strconv.ParseFloat(lngRaw, 64)
		if errLat == nil && errLng == nil {
			return lat, lng, true
		}
	}
	return ParseCoordinateHeaders(r)
}

// ParseCoordinateHeaders reads the optional client coordinate headers.
func ParseCoordinateHeaders(r *http.Request) (lat, lng float64, ok bool) {
	latRaw := r.Header.Get(constvars.HeaderXClientLat)
	lngRaw := r.Header.Get(constvars.HeaderXClientLng)
	if latRaw == "" || lngRaw == "" {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
