package auth

import (
	"context"
	"testing"

	"labstock/models"
	"labstock/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// withTestRedis points the shared redis client at an in-process server for
// the duration of the test.
func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := rdx.Conn
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdx.Conn = prev })
	return mr
}

func TestRevokeSessionsClearsCache(t *testing.T) {
	mr := withTestRedis(t)

	// seed the mirror exactly as login does
	if err := rdx.SetWithExpiry(sessionKeyPrefix+"old-token", "uid", models.TokenTTL); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}
	if err := rdx.SetWithExpiry(sessionKeyPrefix+"other-token", "uid2", models.TokenTTL); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	revokeSessions([]models.Token{{Token: "old-token"}})

	if mr.Exists(sessionKeyPrefix + "old-token") {
		t.Fatal("revoked session still cached")
	}
	if !mr.Exists(sessionKeyPrefix + "other-token") {
		t.Fatal("unrelated session was dropped")
	}
}

func TestTokenPersistedAfterRevocation(t *testing.T) {
	withTestRedis(t)

	if err := rdx.SetWithExpiry(sessionKeyPrefix+"old-token", "uid", models.TokenTTL); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}
	revokeSessions([]models.Token{{Token: "old-token"}})

	// the Mongo fallback must not resurrect the session either; a canceled
	// context makes that lookup fail regardless of server availability
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if tokenPersisted(ctx, "old-token") {
		t.Fatal("revoked token still accepted")
	}
}

func TestTokenPersistedCacheHit(t *testing.T) {
	withTestRedis(t)

	if err := rdx.SetWithExpiry(sessionKeyPrefix+"live-token", "uid", models.TokenTTL); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cache hit alone must carry the check; Mongo is unreachable here
	if !tokenPersisted(ctx, "live-token") {
		t.Fatal("cached session not recognized")
	}
}
