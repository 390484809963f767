package tui

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestConnectionsCap(t *testing.T) {
	r := NewConnections(2)
	for i := range 2 {
		if err := r.Register(Connection{ID: fmt.Sprint(i)}); err != nil {
			t.Fatalf("Register(%d): %v", i, err)
		}
	}
	if err := r.Register(Connection{ID: "2"}); !errors.Is(err, ErrServerFull) {
		t.Fatalf("third Register = %v, want ErrServerFull", err)
	}

	r.Unregister("0")
	if err := r.Register(Connection{ID: "2", User: "carol"}); err != nil {
		t.Fatalf("Register after Unregister: %v", err)
	}
	if c, ok := r.Get("2"); !ok || c.User != "carol" {
		t.Errorf("Get(2) = %+v, %v", c, ok)
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
}

func TestConnectionsConcurrent(t *testing.T) {
	r := NewConnections(0)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprint(i)
			if err := r.Register(Connection{ID: id}); err != nil {
				t.Error(err)
			}
			r.Unregister(id)
		}()
	}
	wg.Wait()
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
}
