package usecase

import (
	"strings"
	"testing"
)

func TestSeatNamer_Generate(t *testing.T) {
	sn := NewSeatNamer()

	name1 := sn.Generate()
	if name1 == "" {
		t.Error("Expected seat name to be non-empty")
	}

	name2 := sn.Generate()
	if name1 == name2 {
		t.Error("Expected unique seat names", name1, name2)
	}
}

func TestSeatNamer_Format(t *testing.T) {
	sn := NewSeatNamer()
	name := sn.Generate()

	parts := strings.Split(name, " ")
	if len(parts) < 2 {
		t.Errorf("Expected name format 'Archetype Trait', got: %s", name)
	}
}

func TestSeatNamer_Release(t *testing.T) {
	sn := NewSeatNamer()

	name := sn.Generate()
	if !sn.existing[name] {
		t.Error("Expected name to be marked as existing")
	}

	sn.Release(name)
	if sn.existing[name] {
		t.Error("Expected name to be released (removed from map)")
	}
}

func TestSeatNamer_Concurrency(t *testing.T) {
	sn := NewSeatNamer()

	done := make(chan bool)
	for i := 0; i < 100; i++ {
		go func() {
			sn.Generate()
			done <- true
		}()
	}
	for i := 0; i < 100; i++ {
		<-done
	}

	if sn.ActiveCount() != 100 {
		t.Errorf("Expected 100 active names, got %d", sn.ActiveCount())
	}
}
