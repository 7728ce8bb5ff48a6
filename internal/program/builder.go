package program

import "sync"

// Builder collects a program one instruction at a time. It is append-only
// and safe for concurrent use.
type Builder struct {
	mu  sync.Mutex
	seq []Instruction
}

// Append adds instructions to the end of the program.
func (b *Builder) Append(in ...Instruction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq = append(b.seq, in...)
}

// Len returns the number of instructions collected so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.seq)
}

// Snapshot returns a copy of the current sequence.
func (b *Builder) Snapshot() []Instruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Instruction(nil), b.seq...)
}
