package admincache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsAdminCachesLookups(t *testing.T) {
	calls := 0
	c := New(func(_ context.Context, userID int64) (bool, error) {
		calls++
		return userID == 1, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := c.IsAdmin(ctx, 1)
		if err != nil || !ok {
			t.Fatalf("iteration %d: ok=%v err=%v", i, ok, err)
		}
	}
	if calls != 1 {
		t.Fatalf("lookup called %d times, want 1", calls)
	}

	ok, err := c.IsAdmin(ctx, 2)
	if err != nil || ok {
		t.Fatalf("user 2: ok=%v err=%v", ok, err)
	}
	if calls != 2 {
		t.Fatalf("lookup called %d times, want 2", calls)
	}
}

func TestIsAdminRefreshesAfterTTL(t *testing.T) {
	flag := true
	calls := 0
	c := New(func(context.Context, int64) (bool, error) {
		calls++
		return flag, nil
	})

	clock := time.Now()
	c.now = func() time.Time { return clock }

	ctx := context.Background()
	if ok, _ := c.IsAdmin(ctx, 1); !ok {
		t.Fatal("expected admin")
	}

	// Revocation is invisible until the entry expires.
	flag = false
	if ok, _ := c.IsAdmin(ctx, 1); !ok {
		t.Fatal("expected stale admin flag inside TTL")
	}

	clock = clock.Add(defaultTTL + time.Second)
	if ok, _ := c.IsAdmin(ctx, 1); ok {
		t.Fatal("expected refreshed flag after TTL")
	}
	if calls != 2 {
		t.Fatalf("lookup called %d times, want 2", calls)
	}
}

func TestInvalidateForcesRefresh(t *testing.T) {
	flag := true
	c := New(func(context.Context, int64) (bool, error) {
		return flag, nil
	})

	ctx := context.Background()
	if ok, _ := c.IsAdmin(ctx, 1); !ok {
		t.Fatal("expected admin")
	}
	flag = false
	c.Invalidate(1)
	if ok, _ := c.IsAdmin(ctx, 1); ok {
		t.Fatal("expected refreshed flag after invalidate")
	}
}

func TestLookupErrorsNotCached(t *testing.T) {
	fail := true
	calls := 0
	c := New(func(context.Context, int64) (bool, error) {
		calls++
		if fail {
			return false, errors.New("db down")
		}
		return true, nil
	})

	ctx := context.Background()
	if _, err := c.IsAdmin(ctx, 1); err == nil {
		t.Fatal("expected error")
	}
	fail = false
	ok, err := c.IsAdmin(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if calls != 2 {
		t.Fatalf("lookup called %d times, want 2", calls)
	}
}
