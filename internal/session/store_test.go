package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartslot/pkg/cache"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(cache.NewService(client), time.Hour), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &User{ID: "u1", Email: "a@b.test", DisplayName: "Ada", Role: RoleUser}
	require.NoError(t, store.Set(ctx, "sid-1", "tok-1", user))

	got := store.Get(ctx, "sid-1")
	require.True(t, got.SignedIn())
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "Ada", got.User.Name())
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got := store.Get(context.Background(), "nope")
	assert.False(t, got.SignedIn())
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
}

func TestStoreGetMalformedRecordNormalizes(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Simulate a corrupted cached profile: the read must normalize to
	// signed-out and remove the record.
	mr.Set("smartslot:session:bad", "{not json")

	got := store.Get(ctx, "bad")
	assert.False(t, got.SignedIn())
	assert.False(t, mr.Exists("smartslot:session:bad"))
}

func TestStoreGetPartialRecordNormalizes(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Token present, user absent: invariant violation, must clear.
	mr.Set("smartslot:session:half", `{"token":"tok","user":null}`)
	got := store.Get(ctx, "half")
	assert.False(t, got.SignedIn())
	assert.False(t, mr.Exists("smartslot:session:half"))

	// User present, token absent: same.
	mr.Set("smartslot:session:other", `{"token":"","user":{"id":"u1","email":"a@b.test","role":"USER"}}`)
	got = store.Get(ctx, "other")
	assert.False(t, got.SignedIn())
	assert.False(t, mr.Exists("smartslot:session:other"))
}

func TestStoreClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", "tok", &User{ID: "u", Email: "e@x.test", Role: RoleUser}))
	require.NoError(t, store.Clear(ctx, "sid"))
	assert.False(t, store.Get(ctx, "sid").SignedIn())
}

func TestRoleGates(t *testing.T) {
	assert.True(t, RoleStaff.CanModerate())
	assert.True(t, RoleAdmin.CanModerate())
	assert.False(t, RoleUser.CanModerate())
	assert.False(t, Role("GUEST").IsValid())
}
