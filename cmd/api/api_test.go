package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func samplePropositions() []*types.Proposition {
	first := &types.Proposition{ID: 2080512, Name: "PL 1/2015", Number: 1, Year: 2015}
	first.SetType(types.PropositionType{ID: 139, Sigla: "PL", Name: "Projeto de Lei"})
	first.SetTopic("Viação e Transportes")

	second := &types.Proposition{ID: 2080513, Name: "PL 2/2015", Number: 2, Year: 2015}
	second.SetType(types.PropositionType{ID: 139, Sigla: "PL", Name: "Projeto de Lei"})

	return []*types.Proposition{first, second}
}

func newFileApp(t *testing.T) *application {
	t.Helper()
	storage := store.NewFileStorage(t.TempDir())

	batch := &types.Batch{
		Key:          types.NewBatchKey("PL", 2015, false),
		Propositions: samplePropositions(),
	}
	require.NoError(t, storage.Batches.Put(context.Background(), batch))

	empty := &types.Batch{Key: types.NewBatchKey("PEC", 2015, true)}
	require.NoError(t, storage.Batches.Put(context.Background(), empty))

	return &application{
		config:    config{storeDriver: "file"},
		store:     *storage,
		appLogger: logger.Discard(),
	}
}

func get(t *testing.T, app *application, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.mount().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newFileApp(t), "/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "available", body["status"])
	require.Equal(t, "file", body["store"])
}

func TestGetBatch(t *testing.T) {
	app := newFileApp(t)

	rec := get(t, app, "/v1/batches/pl/2015")
	require.Equal(t, http.StatusOK, rec.Code)

	var body GetBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, types.NewBatchKey("PL", 2015, false), body.Data.Key)
	require.Len(t, body.Data.Propositions, 2)

	rec = get(t, app, "/v1/batches/PL/2015?attachments=true")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, app, "/v1/batches/PL/abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, app, "/v1/batches/PL/2015?attachments=maybe")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProposition(t *testing.T) {
	app := newFileApp(t)

	rec := get(t, app, "/v1/batches/PL/2015/propositions/2080512")
	require.Equal(t, http.StatusOK, rec.Code)

	var body GetPropositionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	topic, err := body.Data.Topic()
	require.NoError(t, err)
	require.Equal(t, "Viação e Transportes", topic)

	rec = get(t, app, "/v1/batches/PL/2015/propositions/1")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, app, "/v1/batches/PL/2015/propositions/x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportBatch(t *testing.T) {
	app := newFileApp(t)

	rec := get(t, app, "/v1/batches/PL/2015/export")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "2080512,"))

	rec = get(t, app, "/v1/batches/PEC/2015/export?attachments=true")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRunsWithoutDatabase(t *testing.T) {
	rec := get(t, newFileApp(t), "/v1/runs")
	require.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGetRuns(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))

	storage := store.NewStorage(db)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, year := range []int{2015, 2016, 2017} {
		run := &store.AcquisitionRun{
			Sigla:      "PL",
			Year:       year,
			Status:     store.StatusSuccess,
			StartedAt:  started.Add(time.Duration(i) * time.Minute),
			FinishedAt: started.Add(time.Duration(i)*time.Minute + time.Second),
		}
		require.NoError(t, storage.Runs.InsertRun(context.Background(), run))
	}

	app := &application{
		config:    config{storeDriver: "sqlite"},
		store:     *storage,
		appLogger: logger.Discard(),
	}

	rec := get(t, app, "/v1/runs?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body GetRunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, 2017, body.Data[0].Year)
	require.Equal(t, 2016, body.Data[1].Year)
}
