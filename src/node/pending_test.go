package node

import (
	"sync"
	"testing"
	"time"
)

func TestPendingResolve(t *testing.T) {
	table := newPendingTable()

	table.register(&pendingRequest{
		id:       1,
		dest:     "n1",
		kind:     "gossip",
		deadline: time.Now().Add(time.Second),
	})

	req, ok := table.resolve(1)
	if !ok {
		t.Fatal("resolve should find the registered request")
	}
	if req.dest != "n1" {
		t.Fatalf("wrong request resolved: %+v", req)
	}

	if _, ok := table.resolve(1); ok {
		t.Fatal("second resolve of the same id should miss")
	}
	if _, ok := table.resolve(99); ok {
		t.Fatal("unknown id should miss")
	}
}

func TestPendingExpire(t *testing.T) {
	table := newPendingTable()
	now := time.Now()

	table.register(&pendingRequest{id: 1, deadline: now.Add(-time.Second)})
	table.register(&pendingRequest{id: 2, deadline: now.Add(time.Hour)})

	expired := table.expire(now)
	if len(expired) != 1 || expired[0].id != 1 {
		t.Fatalf("expected only request 1 to expire, got %+v", expired)
	}

	if table.count() != 1 {
		t.Fatalf("one request should remain, not %d", table.count())
	}
	if _, ok := table.resolve(1); ok {
		t.Fatal("expired request should no longer resolve")
	}
	if _, ok := table.resolve(2); !ok {
		t.Fatal("unexpired request should still resolve")
	}
}

// TestPendingResolveExpireRace hammers resolve and expire on the same ids
// concurrently and checks that each request is surfaced exactly once.
func TestPendingResolveExpireRace(t *testing.T) {
	table := newPendingTable()

	const numReqs = 500
	past := time.Now().Add(-time.Second)
	for i := uint64(1); i <= numReqs; i++ {
		table.register(&pendingRequest{id: i, deadline: past})
	}

	var seenLock sync.Mutex
	seen := make(map[uint64]int)
	record := func(id uint64) {
		seenLock.Lock()
		seen[id]++
		seenLock.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := uint64(1); i <= numReqs; i++ {
			if req, ok := table.resolve(i); ok {
				record(req.id)
			}
		}
	}()

	go func() {
		defer wg.Done()
		for _, req := range table.expire(time.Now()) {
			record(req.id)
		}
	}()

	wg.Wait()

	if len(seen) != numReqs {
		t.Fatalf("expected %d requests surfaced, got %d", numReqs, len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("request %d surfaced %d times", id, n)
		}
	}
	if table.count() != 0 {
		t.Fatalf("table should be empty, has %d", table.count())
	}
}
