package profileregistry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_BuiltInPresets(t *testing.T) {
	r := New("", zerolog.Nop())

	rp, ok := r.Lookup(context.Background(), "Medium")
	require.True(t, ok)
	assert.Equal(t, 0.06, rp.AnnualReturnMean)
	assert.Equal(t, 0.10, rp.AnnualReturnStdDev)

	_, ok = r.Lookup(context.Background(), "aggressive")
	assert.False(t, ok)

	_, ok = r.Lookup(context.Background(), " ")
	assert.False(t, ok)
}

func TestLookup_RemoteProfileIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/profiles/aggressive", req.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"aggressive","mean":0.11,"std_dev":0.22}`))
	}))
	defer srv.Close()

	r := New(srv.URL+"/", zerolog.Nop())

	for i := 0; i < 3; i++ {
		rp, ok := r.Lookup(context.Background(), "aggressive")
		require.True(t, ok)
		assert.Equal(t, "aggressive", rp.Name)
		assert.Equal(t, 0.11, rp.AnnualReturnMean)
		assert.Equal(t, 0.22, rp.AnnualReturnStdDev)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestLookup_FallsBackOnRegistryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New(srv.URL, zerolog.Nop())

	rp, ok := r.Lookup(context.Background(), "high")
	require.True(t, ok)
	assert.Equal(t, 0.08, rp.AnnualReturnMean)

	_, ok = r.Lookup(context.Background(), "aggressive")
	assert.False(t, ok)
}

func TestLookup_RejectsIncompleteProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"name":"low","mean":0.02}`))
	}))
	defer srv.Close()

	r := New(srv.URL, zerolog.Nop())

	_, err := r.fetch(context.Background(), "low")
	assert.ErrorIs(t, err, ErrIncompleteProfile)

	// falls back to the preset
	rp, ok := r.Lookup(context.Background(), "low")
	require.True(t, ok)
	assert.Equal(t, 0.04, rp.AnnualReturnMean)
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := New(srv.URL, zerolog.Nop())
	_, err := r.fetch(context.Background(), "low")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
