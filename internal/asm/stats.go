package asm

// DefaultCapacity is the instruction memory of the target, in words.
const DefaultCapacity = 8000

// Stats summarises an emitted program against the instruction memory.
type Stats struct {
	Instructions int
	Capacity     int
}

// Utilization returns the share of capacity used, in percent.
func (s Stats) Utilization() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.Instructions) / float64(s.Capacity) * 100
}

// Exceeded reports whether the program does not fit the capacity.
func (s Stats) Exceeded() bool {
	return s.Capacity > 0 && s.Instructions > s.Capacity
}
