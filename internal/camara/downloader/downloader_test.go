package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/integra":
			http.Redirect(w, r, "/files/teor.pdf", http.StatusFound)
		case "/files/teor.pdf":
			require.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.4 body"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := New(5*time.Second, nil)

	res, err := d.Fetch(context.Background(), srv.URL+"/integra")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", res.ContentType)
	require.Equal(t, []byte("%PDF-1.4 body"), res.Body)

	_, err = d.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
