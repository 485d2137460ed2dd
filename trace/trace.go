// Package trace defines the round-tracing callback shared by the cipher
// engines.
//
// Tracing exists so a caller can watch diffusion happen: each engine,
// when constructed with a trace callback, reports its internal state at
// every round boundary. Engines never trace by default and a nil
// callback costs nothing on the hot path.
package trace

// Op identifies which operation emitted an event.
type Op string

// Operations reported by the engines.
const (
	OpEncrypt     Op = "encrypt"
	OpDecrypt     Op = "decrypt"
	OpKeySchedule Op = "keyschedule"
)

// Event is a snapshot of cipher state at one round boundary.
type Event struct {
	// Algorithm is the engine's name, e.g. "aes-128" or "rc6".
	Algorithm string
	// Op is the operation being traced.
	Op Op
	// Round counts from 0. Round 0 is the state after initial
	// whitening or key mixing, before the first full round.
	Round int
	// State is the block state serialized in the engine's block byte
	// order. It is a fresh copy; the callback may retain it.
	State []byte
}

// Func receives trace events. Implementations must not block: events
// are delivered synchronously from inside the cipher rounds.
type Func func(Event)
