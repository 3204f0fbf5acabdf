// Package machine is a small generic state machine used to guard state transitions of persisted records.
package machine

import (
	"errors"
	"fmt"
	"slices"
)

type State interface {
	~string
}

var ErrInvalidTransition = errors.New("invalid state transition")

// Transition lists the states reachable from a single state
type Transition[S State] struct {
	from S
	to   []S
}

// StateMachine tracks a current state and the transitions allowed out of it
type StateMachine[S State] struct {
	current     S
	transitions []Transition[S]
}

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Transition[S]
}

func New[S State](current S, transitions ...Transition[S]) *StateMachine[S] {
	return &StateMachine[S]{current: current, transitions: transitions}
}

// From starts a transition out of the given state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Transition[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Transition[S] {
	tb.transition.to = to
	return tb.transition
}

// Current is the state the machine is in
func (m *StateMachine[S]) Current() S {
	return m.current
}

// Can reports whether the machine may move to s from its current state
func (m *StateMachine[S]) Can(s S) bool {
	for _, t := range m.transitions {
		if t.from == m.current && slices.Contains(t.to, s) {
			return true
		}
	}

	return false
}

// ToState checks that s is reachable from the current state without moving the machine
func (m *StateMachine[S]) ToState(s S) error {
	if !m.Can(s) {
		return fmt.Errorf("%w: %q to %q", ErrInvalidTransition, m.current, s)
	}

	return nil
}

// Advance moves the machine to s if the transition is allowed
func (m *StateMachine[S]) Advance(s S) error {
	if err := m.ToState(s); err != nil {
		return err
	}

	m.current = s
	return nil
}
