package acquisition

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/camaratest"
	"github.com/farxc/envelopa-camara/internal/camara/converter"
	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/camara/webservice"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newDriver(t *testing.T, storage *store.Storage, fixtures ...camaratest.Fixture) (*Driver, *camaratest.Server) {
	t.Helper()
	srv := camaratest.NewServer(t, fixtures...)
	client := webservice.NewClient(srv.URL, 5*time.Second, nil)
	return NewDriver(client, storage, nil), srv
}

func ids(batch *types.Batch) []int64 {
	out := make([]int64, 0, len(batch.Propositions))
	for _, p := range batch.Propositions {
		out = append(out, p.ID)
	}
	return out
}

func TestRunIsCheckpointed(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, srv := newDriver(t, storage,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016},
	)

	results, err := driver.Run(ctx, "PL", []int{2016}, false)
	require.NoError(t, err)
	require.Equal(t, store.StatusSuccess, results[0].Status)
	require.Equal(t, 1, results[0].Propositions)

	results, err = driver.Run(ctx, "PL", []int{2016}, false)
	require.NoError(t, err)
	require.Equal(t, store.StatusSkipped, results[0].Status)

	require.Len(t, srv.ListingCalls(), 1)
	require.Len(t, srv.DetailCalls(), 1)
}

func TestMutualAttachmentsAppearOnce(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, srv := newDriver(t, storage,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016, Attachments: []string{"PL 101/2016"}},
		camaratest.Fixture{ID: 101, Sigla: "PL", Number: 101, Year: 2016, Attachments: []string{"PL 100/2016"}},
	)

	_, err := driver.Run(ctx, "PL", []int{2016}, true)
	require.NoError(t, err)

	batch, err := storage.Batches.Get(ctx, types.NewBatchKey("PL", 2016, true))
	require.NoError(t, err)
	require.Equal(t, []int64{100, 101}, ids(batch))
	require.Equal(t, []types.PropositionKey{
		types.NewPropositionKey("PL", 100, 2016),
		types.NewPropositionKey("PL", 101, 2016),
	}, batch.Seen)

	// the year listing plus one attachment lookup; 101 is not mapped twice
	require.Len(t, srv.ListingCalls(), 2)
	require.Equal(t, []int64{100, 101}, srv.DetailCalls())
}

func TestAttachmentOfListedAttachmentIsExpanded(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, srv := newDriver(t, storage,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016, Attachments: []string{"PL 101/2016"}},
		camaratest.Fixture{ID: 101, Sigla: "PL", Number: 101, Year: 2016, Attachments: []string{"PL 100/2016", "PL 7/2015"}},
		camaratest.Fixture{ID: 7, Sigla: "PL", Number: 7, Year: 2015},
	)

	_, err := driver.Run(ctx, "PL", []int{2016}, true)
	require.NoError(t, err)

	batch, err := storage.Batches.Get(ctx, types.NewBatchKey("PL", 2016, true))
	require.NoError(t, err)
	require.Equal(t, []int64{100, 101, 7}, ids(batch))
	require.Contains(t, batch.Seen, types.NewPropositionKey("PL", 7, 2015))

	// 101 is expanded when its listing entry comes up, without a second detail fetch
	require.Len(t, srv.ListingCalls(), 3)
	require.Equal(t, []int64{100, 101, 7}, srv.DetailCalls())
}

func TestAttachmentsInterleaveAfterParent(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, _ := newDriver(t, storage,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016, Attachments: []string{"PL 7/2015", "PL 999/2016", "bogus"}},
		camaratest.Fixture{ID: 101, Sigla: "PL", Number: 101, Year: 2016},
		camaratest.Fixture{ID: 7, Sigla: "PL", Number: 7, Year: 2015},
	)

	_, err := driver.Run(ctx, "PL", []int{2016}, true)
	require.NoError(t, err)

	batch, err := storage.Batches.Get(ctx, types.NewBatchKey("PL", 2016, true))
	require.NoError(t, err)
	require.Equal(t, []int64{100, 7, 101}, ids(batch))
}

func TestAttachmentsFlagOff(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, srv := newDriver(t, storage,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016, Attachments: []string{"PL 7/2015"}},
		camaratest.Fixture{ID: 7, Sigla: "PL", Number: 7, Year: 2015},
	)

	_, err := driver.Run(ctx, "PL", []int{2016}, false)
	require.NoError(t, err)

	batch, err := storage.Batches.Get(ctx, types.NewBatchKey("PL", 2016, false))
	require.NoError(t, err)
	require.Equal(t, []int64{100}, ids(batch))
	require.Len(t, batch.Propositions[0].Attachments, 1)
	require.Len(t, srv.ListingCalls(), 1)
}

func TestSchemaViolationWritesNothing(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()
	require.NoError(t, store.Migrate(ctx, db))

	storage := store.NewStorage(db)
	driver, _ := newDriver(t, storage,
		camaratest.Fixture{ID: 90, Sigla: "PL", Number: 90, Year: 2015},
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016},
		camaratest.Fixture{ID: 101, Sigla: "PL", Number: 101, Year: 2016, Omit: []string{"autor1"}},
		camaratest.Fixture{ID: 1, Sigla: "PL", Number: 1, Year: 2017},
	)

	results, err := driver.Run(ctx, "PL", []int{2015, 2016, 2017}, false)
	require.ErrorIs(t, err, converter.ErrSchemaViolation)
	require.Len(t, results, 2)

	ok, err := storage.Batches.Exists(ctx, types.NewBatchKey("PL", 2015, false))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = storage.Batches.Exists(ctx, types.NewBatchKey("PL", 2016, false))
	require.NoError(t, err)
	require.False(t, ok)

	runs, err := storage.Runs.GetLatest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	statuses := map[int]string{}
	for _, r := range runs {
		statuses[r.Year] = r.Status
	}
	require.Equal(t, map[int]string{2015: store.StatusSuccess, 2016: store.StatusFailure}, statuses)
}

func TestEmptyYearIsStored(t *testing.T) {
	ctx := context.Background()
	storage := store.NewFileStorage(t.TempDir())
	driver, _ := newDriver(t, storage)

	results, err := driver.Run(ctx, "PEC", []int{1990}, false)
	require.NoError(t, err)
	require.Equal(t, 0, results[0].Propositions)

	batch, err := storage.Batches.Get(ctx, types.NewBatchKey("PEC", 1990, false))
	require.NoError(t, err)
	require.Empty(t, batch.Propositions)
}

func TestProgressIsLogged(t *testing.T) {
	var buf bytes.Buffer
	srv := camaratest.NewServer(t,
		camaratest.Fixture{ID: 100, Sigla: "PL", Number: 100, Year: 2016},
		camaratest.Fixture{ID: 101, Sigla: "PL", Number: 101, Year: 2016},
	)
	client := webservice.NewClient(srv.URL, 5*time.Second, nil)
	driver := NewDriver(client, store.NewFileStorage(t.TempDir()), logger.New(&buf, logger.LevelInfo))

	_, err := driver.Run(context.Background(), "PL", []int{2016}, false)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "count=1/2")
	require.Contains(t, buf.String(), "count=2/2")
}
