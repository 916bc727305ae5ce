package ident

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator("n1")

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateConcurrent(t *testing.T) {
	gen := NewGenerator("n1")

	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := gen.Generate()
				if err != nil {
					t.Errorf("err: %v", err)
					return
				}
				ids <- id
			}
		}()
	}

	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true

		if !strings.HasPrefix(id, "n1-") {
			t.Fatalf("id should carry the node prefix: %s", id)
		}
	}

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d ids, got %d", workers*perWorker, len(seen))
	}
}

func TestGenerateAcrossNodes(t *testing.T) {
	// Different nodes never collide because the node id is part of the token.
	seen := map[string]bool{}

	for n := 0; n < 5; n++ {
		gen := NewGenerator(fmt.Sprintf("n%d", n))
		for i := 0; i < 100; i++ {
			id, err := gen.Generate()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if seen[id] {
				t.Fatalf("duplicate id: %s", id)
			}
			seen[id] = true
		}
	}
}
