package conversation

import (
	"fmt"
	"sync"
	"testing"
)

func exchange(i int) Exchange {
	return Exchange{UserMessage: fmt.Sprintf("q%d", i), AssistantReply: fmt.Sprintf("a%d", i)}
}

func TestStoreAppendKeepsMostRecent(t *testing.T) {
	for n := 0; n <= 12; n++ {
		store := NewStore()
		for i := 1; i <= n; i++ {
			store.Append("user", exchange(i))
		}
		want := n
		if want > MaxExchanges {
			want = MaxExchanges
		}
		got := store.Recent("user", MaxExchanges)
		if len(got) != want || store.Len("user") != want {
			t.Fatalf("n=%d: expected %d exchanges, got %d", n, want, len(got))
		}
		for i, ex := range got {
			expected := exchange(n - want + 1 + i)
			if ex != expected {
				t.Fatalf("n=%d: position %d = %+v, want %+v", n, i, ex, expected)
			}
		}
	}
}

func TestStoreRecentWindowAndIsolation(t *testing.T) {
	store := NewStore()
	if got := store.Recent("unknown", 3); len(got) != 0 {
		t.Fatalf("expected empty history for unknown user, got %d", len(got))
	}
	if store.Users() != 0 {
		t.Fatal("reading must not create a log")
	}

	for i := 1; i <= 5; i++ {
		store.Append("a", exchange(i))
	}
	store.Append("b", exchange(99))

	first := store.Recent("a", 3)
	second := store.Recent("a", 3)
	if len(first) != 3 || first[0] != exchange(3) || first[2] != exchange(5) {
		t.Fatalf("unexpected window %+v", first)
	}
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Fatal("repeated reads must be identical")
	}

	first[0].UserMessage = "mutated"
	if store.Recent("a", 3)[0].UserMessage != "q3" {
		t.Fatal("Recent must return a copy")
	}
	if store.Len("a") != 5 || store.Len("b") != 1 || store.Users() != 2 {
		t.Fatalf("unexpected sizes a=%d b=%d users=%d", store.Len("a"), store.Len("b"), store.Users())
	}
	if got := store.Recent("a", 0); len(got) != 0 {
		t.Fatalf("expected empty result for n=0, got %d", len(got))
	}
}

func TestStoreConcurrentAppends(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", u)
			for i := 0; i < 50; i++ {
				store.Append(user, exchange(i))
				_ = store.Recent(user, 3)
			}
		}(u)
	}
	wg.Wait()
	for u := 0; u < 8; u++ {
		if got := store.Len(fmt.Sprintf("user-%d", u)); got != MaxExchanges {
			t.Fatalf("user-%d: expected %d, got %d", u, MaxExchanges, got)
		}
	}
}
