package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/export"
	"github.com/farxc/envelopa-camara/internal/response"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/go-chi/chi/v5"
)

type GetBatchResponse = response.APIResponse[*types.Batch]
type GetPropositionResponse = response.APIResponse[*types.Proposition]

// loadBatch writes the error response itself and returns nil when the batch cannot be served.
func (app *application) loadBatch(w http.ResponseWriter, r *http.Request) *types.Batch {
	key, err := batchKeyFromRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	batch, err := app.store.Batches.Get(r.Context(), key)
	if errors.Is(err, store.ErrBatchNotFound) {
		writeJSONError(w, http.StatusNotFound, "batch not acquired: "+key.String())
		return nil
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to read batch: "+err.Error())
		return nil
	}
	return batch
}

// @Summary		Get batch
// @Description	Get every proposition acquired for a type sigla and year.
// @Tags			Batches
// @Produce		json
// @Param			sigla		path		string				true	"Proposition type sigla"
// @Param			year		path		int					true	"Year"
// @Param			attachments	query		bool				false	"Batch built with attachments"	default(false)
// @Success		200			{object}	GetBatchResponse	"Successfully retrieved batch"
// @Failure		400			{object}	response.ErrorResponse	"Invalid year or attachments flag"
// @Failure		404			{object}	response.ErrorResponse	"Batch not acquired"
// @Router			/batches/{sigla}/{year} [get]
func (app *application) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch := app.loadBatch(w, r)
	if batch == nil {
		return
	}

	response := &GetBatchResponse{
		Success: true,
		Data:    batch,
		Message: fmt.Sprintf("Successfully retrieved batch with %d propositions", len(batch.Propositions)),
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get proposition
// @Description	Get one proposition of a batch by its id.
// @Tags			Batches
// @Produce		json
// @Param			sigla		path		string					true	"Proposition type sigla"
// @Param			year		path		int						true	"Year"
// @Param			id			path		int						true	"Proposition id"
// @Param			attachments	query		bool					false	"Batch built with attachments"	default(false)
// @Success		200			{object}	GetPropositionResponse	"Successfully retrieved proposition"
// @Failure		404			{object}	response.ErrorResponse	"Batch or proposition not found"
// @Router			/batches/{sigla}/{year}/propositions/{id} [get]
func (app *application) handleGetProposition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid proposition id")
		return
	}

	batch := app.loadBatch(w, r)
	if batch == nil {
		return
	}

	p := batch.Find(id)
	if p == nil {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("proposition %d not in batch %s", id, batch.Key))
		return
	}

	response := &GetPropositionResponse{
		Success: true,
		Data:    p,
		Message: "Successfully retrieved proposition",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Export batch
// @Description	Download a batch as CSV, one row per proposition.
// @Tags			Batches
// @Produce		text/csv
// @Param			sigla		path	string	true	"Proposition type sigla"
// @Param			year		path	int		true	"Year"
// @Param			attachments	query	bool	false	"Batch built with attachments"	default(false)
// @Param			windows1252	query	bool	false	"Encode as Windows-1252"		default(false)
// @Success		200
// @Failure		404	{object}	response.ErrorResponse	"Batch not acquired"
// @Router			/batches/{sigla}/{year}/export [get]
func (app *application) handleExportBatch(w http.ResponseWriter, r *http.Request) {
	batch := app.loadBatch(w, r)
	if batch == nil {
		return
	}

	windows1252, _ := strconv.ParseBool(r.URL.Query().Get("windows1252"))
	df, err := export.DataFrame(batch)
	if errors.Is(err, export.ErrEmptyBatch) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	contentType := "text/csv; charset=utf-8"
	if windows1252 {
		contentType = "text/csv; charset=windows-1252"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=proposicoes_%s.csv", batch.Key))
	w.WriteHeader(http.StatusOK)

	if err := export.WriteFrame(w, df, windows1252); err != nil {
		app.appLogger.Error("API", "Export failed after headers were sent: batch=%s rows=%d error=%v", batch.Key, df.Nrow(), err)
	}
}
