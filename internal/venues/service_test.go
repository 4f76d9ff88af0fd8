package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smartslot/internal/upstream"
	"smartslot/pkg/cache"
	"smartslot/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVenueService(t *testing.T, handler http.Handler) Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	up := upstream.NewClient(srv.URL, 2*time.Second)
	return NewService(up, cache.NewService(client), logger.GetDefault())
}

func TestListEscapesVenueText(t *testing.T) {
	svc := newVenueService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"venues":[{
			"id":"V1",
			"name":"<script>alert(1)</script>",
			"description":"Big & bright",
			"capacity":200,
			"location":"3rd floor > east wing",
			"amenities":["Wi-Fi","\"Premium\" sound"]}]}`))
	}))

	venues, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)

	v := venues[0]
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", v.Name)
	assert.Equal(t, "Big &amp; bright", v.Description)
	assert.Equal(t, "3rd floor &gt; east wing", v.Location)
	require.Len(t, v.Amenities, 2)
	assert.Equal(t, "&#34;Premium&#34; sound", v.Amenities[1])
}

func TestListServesFromCache(t *testing.T) {
	var calls atomic.Int32
	svc := newVenueService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"venues":[{"id":"V1","name":"Hall","capacity":50}]}`))
	}))

	for i := 0; i < 3; i++ {
		venues, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, venues, 1)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestListUpstreamFailure(t *testing.T) {
	svc := newVenueService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, upstream.ErrUpstream)
}
