package sequence

import (
	"errors"
	"testing"
)

// newTestMachine builds a three-state machine whose Run functions count
// executions into runs.
func newTestMachine(t *testing.T, runs *[3]int) *Machine {
	t.Helper()
	m, err := NewMachine([]State{
		{Tag: 0, Name: "fill", Run: func() { runs[0]++ }},
		{Tag: 1, Name: "heat", Run: func() { runs[1]++ }},
		{Tag: 2, Name: "drain", Run: func() { runs[2]++ }},
	})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestNewMachine_Validation(t *testing.T) {
	if _, err := NewMachine(nil); !errors.Is(err, ErrNoStates) {
		t.Errorf("empty list: expected ErrNoStates, got: %v", err)
	}

	_, err := NewMachine([]State{
		{Tag: 0, Name: "fill"},
		{Tag: 1, Name: "fill"},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate names: expected ErrDuplicateName, got: %v", err)
	}
}

func TestMachine_StartsAtNone(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	if m.Position() != None {
		t.Errorf("Position = %d, want None", m.Position())
	}
	if m.Current() != nil {
		t.Error("Current != nil at None")
	}

	// Evaluating with no state is a no-op.
	m.Evaluate()
	if runs != [3]int{} {
		t.Errorf("runs = %v, want none", runs)
	}
}

func TestMachine_NextWalksSequenceThenParks(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	want := []int{0, 1, 2, None, 0}
	for i, w := range want {
		m.Next()
		if got := m.Position(); got != w {
			t.Fatalf("step %d: Position = %d, want %d", i, got, w)
		}
	}
}

func TestMachine_PreviousMirrorsNext(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	// From None, Previous enters the last state.
	m.Previous()
	if got := m.Position(); got != 2 {
		t.Fatalf("Previous from None: Position = %d, want 2", got)
	}

	m.Previous()
	m.Previous()
	if got := m.Position(); got != 0 {
		t.Fatalf("Position = %d, want 0", got)
	}

	// From the first state, Previous parks at None.
	m.Previous()
	if got := m.Position(); got != None {
		t.Errorf("Previous from 0: Position = %d, want None", got)
	}
}

func TestMachine_SetPosition(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	if err := m.SetPosition(2); err != nil {
		t.Fatalf("SetPosition(2): %v", err)
	}
	if got := m.Position(); got != 2 {
		t.Errorf("Position = %d, want 2", got)
	}

	if err := m.SetPosition(None); err != nil {
		t.Fatalf("SetPosition(None): %v", err)
	}
	if got := m.Position(); got != None {
		t.Errorf("Position = %d, want None", got)
	}
}

func TestMachine_SetPositionOutOfRange(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)
	m.SetPosition(1) //nolint:errcheck

	tests := []int{3, 40, -2}
	for _, position := range tests {
		if err := m.SetPosition(position); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("SetPosition(%d): expected ErrPositionOutOfRange, got: %v", position, err)
		}
		if got := m.Position(); got != 1 {
			t.Errorf("SetPosition(%d) moved the machine to %d", position, got)
		}
	}
}

func TestMachine_SetByName(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	if err := m.SetByName("heat"); err != nil {
		t.Fatalf("SetByName: %v", err)
	}
	if got := m.Current(); got == nil || got.Name != "heat" {
		t.Errorf("Current = %v, want heat", got)
	}

	if err := m.SetByName("ferment"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("expected ErrUnknownState, got: %v", err)
	}
	if got := m.Position(); got != 1 {
		t.Errorf("failed SetByName moved the machine to %d", got)
	}
}

func TestMachine_EvaluateRunsCurrentState(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	m.Next() // fill
	m.Evaluate()
	m.Evaluate()
	m.Next() // heat
	m.Evaluate()

	if runs != [3]int{2, 1, 0} {
		t.Errorf("runs = %v, want [2 1 0]", runs)
	}
}

func TestMachine_EveryChangeFiresTransition(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	type hop struct{ from, to int }
	var hops []hop
	m.OnTransition(func(from, to int) { hops = append(hops, hop{from, to}) })

	m.Next()                 // None → 0
	m.SetPosition(2)         //nolint:errcheck
	m.SetByName("heat")      //nolint:errcheck
	m.SetPosition(1)         //nolint:errcheck // Re-entry still transitions
	m.Previous()             // 1 → 0
	m.SetPosition(40)        //nolint:errcheck // Invalid: no transition
	m.SetByName("no-state")  //nolint:errcheck // Invalid: no transition

	want := []hop{
		{None, 0},
		{0, 2},
		{2, 1},
		{1, 1},
		{1, 0},
	}
	if len(hops) != len(want) {
		t.Fatalf("got %d transitions, want %d: %v", len(hops), len(want), hops)
	}
	for i := range want {
		if hops[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, hops[i], want[i])
		}
	}
}

func TestMachine_TransitionRecordsTime(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	before := m.LastTransition()
	m.Next()
	if !m.LastTransition().After(before) && !m.LastTransition().Equal(before) {
		t.Error("LastTransition went backwards")
	}

	between := m.LastTransition()
	m.Next()
	if m.LastTransition().Before(between) {
		t.Error("LastTransition not refreshed on second change")
	}
}

func TestMachine_States(t *testing.T) {
	var runs [3]int
	m := newTestMachine(t, &runs)

	states := m.States()
	if len(states) != 3 || states[0].Name != "fill" || states[2].Name != "drain" {
		t.Errorf("States = %v", states)
	}

	// Mutating the copy must not corrupt the machine.
	states[0].Name = "corrupted"
	if m.States()[0].Name != "fill" {
		t.Error("States returned a live reference")
	}
}
