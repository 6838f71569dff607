package world

import "testing"

func TestNextIDEmptyTableDefaultBase(t *testing.T) {
	alloc := NewAllocator(nil)
	if got := alloc.Next(World{}, "funds"); got != "1" {
		t.Fatalf("expected 1, got %s", got)
	}
}

func TestNextIDEmptyTableDeclaredBase(t *testing.T) {
	alloc := NewAllocator(map[string]int{"audit_trails": 7001, "access_logs": 8001})
	w := World{}
	if got := alloc.Next(w, "audit_trails"); got != "7001" {
		t.Fatalf("expected 7001, got %s", got)
	}
	if got := alloc.Next(w, "access_logs"); got != "8001" {
		t.Fatalf("expected 8001, got %s", got)
	}
}

func TestNextIDIsMaxPlusOne(t *testing.T) {
	alloc := NewAllocator(nil)
	w := World{"funds": {"3": Record{}, "41": Record{}, "7": Record{}}}
	if got := alloc.Next(w, "funds"); got != "42" {
		t.Fatalf("expected 42, got %s", got)
	}
}

func TestNextIDPureOverPreState(t *testing.T) {
	alloc := NewAllocator(nil)
	w := World{"funds": {"5": Record{}}}
	first := alloc.Next(w, "funds")
	second := alloc.Next(w, "funds")
	if first != second {
		t.Fatalf("allocator consumed state without a write: %s vs %s", first, second)
	}
}
