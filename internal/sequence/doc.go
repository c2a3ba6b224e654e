// Package sequence provides the ordered state machine driving a brew
// session through its recipe stages.
//
// The machine holds a fixed, ordered list of states and a position that is
// either an index into that list or None. Stepping past either end parks
// the machine at None, so a completed sequence naturally comes to rest and
// a rewound one returns to "not started". Explicitly setting a position
// outside the list is an error, never a clamp; a caller asking for state
// 40 of 17 has a bug that must surface.
//
// # Key Types
//
//   - State: tag, name and the function run on every evaluation
//   - Machine: position, ordered states, transition hook
//
// # Transitions
//
// Every successful position change is a transition, including explicit
// re-entry into the current state. Each one records the transition time
// and fires the OnTransition hook; the control loop uses the hook to clear
// the operator permission gate so a grant can never survive into a state
// it was not given for.
//
// # Thread Safety
//
// Machine is NOT safe for concurrent use. It is owned by the control
// loop's tick goroutine.
//
// # Usage
//
//	machine, err := sequence.NewMachine([]sequence.State{
//	    {Tag: 0, Name: "fill", Run: fill},
//	    {Tag: 1, Name: "heat", Run: heat},
//	})
//	if err != nil {
//	    return err
//	}
//	machine.OnTransition(func(from, to int) { resetPermissions() })
//	machine.Next()     // none → first state
//	machine.Evaluate() // runs fill()
package sequence
