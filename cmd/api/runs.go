package main

import (
	"net/http"

	"github.com/farxc/envelopa-camara/internal/response"
	"github.com/farxc/envelopa-camara/internal/store"
)

type GetRunsResponse = response.APIResponse[[]store.AcquisitionRun]

// @Summary		Get acquisition runs
// @Description	Get the latest acquisition runs, newest first.
// @Tags			Runs
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetRunsResponse			"Successfully retrieved latest acquisition runs"
// @Failure		501		{object}	response.ErrorResponse	"Run history needs a database store"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get acquisition runs"
// @Router			/runs [get]
func (app *application) handleGetRuns(w http.ResponseWriter, r *http.Request) {
	if app.store.Runs == nil {
		writeJSONError(w, http.StatusNotImplemented, "run history is only kept by the sqlite and postgres stores")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), 10, 100)

	ctx := r.Context()
	data, err := app.store.Runs.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get acquisition runs: "+err.Error())
		return
	}

	response := &GetRunsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest acquisition runs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
