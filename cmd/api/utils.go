package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/go-chi/chi/v5"
)

// batchKeyFromRequest reads {sigla}, {year} and the optional attachments query flag.
func batchKeyFromRequest(r *http.Request) (types.BatchKey, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		return types.BatchKey{}, fmt.Errorf("invalid year %q", chi.URLParam(r, "year"))
	}

	withAttachments := false
	if param := r.URL.Query().Get("attachments"); param != "" {
		withAttachments, err = strconv.ParseBool(param)
		if err != nil {
			return types.BatchKey{}, fmt.Errorf("invalid attachments flag %q", param)
		}
	}

	return types.NewBatchKey(chi.URLParam(r, "sigla"), year, withAttachments), nil
}

func parseLimit(param string, fallback, max int) int {
	if param == "" {
		return fallback
	}
	l, err := strconv.Atoi(param)
	if err != nil || l < 1 {
		return fallback
	}
	if l > max {
		return max
	}
	return l
}
