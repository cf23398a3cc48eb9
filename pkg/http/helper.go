package http

import (
	"net/http"
	"strconv"

	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// UserID extracts the authenticated user id set by the auth gateway.
// Session management itself is delegated to the hosted platform; the
// services only ever trust this forwarded header.
func UserID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}
