package sim

import (
	"testing"
)

func TestSourceEmitsCountClientsAtSampledGaps(t *testing.T) {
	// GIVEN a source emitting 5 clients every 10 time units
	s := NewSimulator(1)
	src := NewSource(s, "src", 5, NewDeterministic(10))
	sink := newCapture(s, "sink")
	src.SetNext(sink)

	// WHEN the simulation runs
	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN clients arrive at 10, 20, ..., 50 and the gaps are recorded
	if len(sink.clients) != 5 {
		t.Fatalf("clients: got %d, want 5", len(sink.clients))
	}
	for i, at := range sink.times {
		want := float64((i + 1) * 10)
		if at != want {
			t.Errorf("arrival %d at %f, want %f", i, at, want)
		}
	}
	if src.Count() != 5 {
		t.Errorf("emitted: got %d, want 5", src.Count())
	}
	if src.Statistic.Count() != 5 || src.Statistic.Mean() != 10 {
		t.Errorf("inter-arrival stat: %s", src.Statistic.Info())
	}
}

func TestSourceClientIDsAndCreationTimes(t *testing.T) {
	// GIVEN a source with a client type
	s := NewSimulator(1)
	src := NewSource(s, "src", 2, NewDeterministic(5))
	src.SetClientType("gold")
	sink := newCapture(s, "sink")
	src.SetNext(sink)

	// WHEN the simulation runs
	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN clients carry distinct IDs, the type tag and their birth time
	a, b := sink.clients[0], sink.clients[1]
	if a.ID == b.ID {
		t.Error("client IDs not distinct")
	}
	if a.TypeName != "gold" || b.TypeName != "gold" {
		t.Errorf("type names: %q %q", a.TypeName, b.TypeName)
	}
	if a.CreatedAt != 5 || b.CreatedAt != 10 {
		t.Errorf("created at %f and %f, want 5 and 10", a.CreatedAt, b.CreatedAt)
	}
}

func TestSourceBatchNeverOvershootsCount(t *testing.T) {
	// GIVEN 3 clients emitted in batches of 2
	s := NewSimulator(1)
	src := NewSource(s, "src", 3, NewDeterministic(10))
	src.SetBatchSize(NewDeterministic(2))
	sink := newCapture(s, "sink")
	src.SetNext(sink)

	// WHEN the simulation runs
	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN exactly 3 clients appear: a full batch, then the remainder
	if len(sink.clients) != 3 {
		t.Fatalf("clients: got %d, want 3", len(sink.clients))
	}
	if sink.times[0] != 10 || sink.times[1] != 10 || sink.times[2] != 20 {
		t.Errorf("arrival times %v, want [10 10 20]", sink.times)
	}
}

func TestSourceRejectsMisconfiguration(t *testing.T) {
	// GIVEN a source without a successor
	s := NewSimulator(1)
	NewSource(s, "src", 5, NewDeterministic(10))

	// WHEN the simulation starts
	err := s.Run()

	// THEN the sanity pass reports it
	if err == nil {
		t.Fatal("expected error for missing successor")
	}
}

func TestSourceCannotReceive(t *testing.T) {
	// GIVEN a source
	s := NewSimulator(1)
	src := NewSource(s, "src", 1, NewDeterministic(1))

	// THEN routing a client into it panics
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	src.Receive(s.NewClient(""))
}
