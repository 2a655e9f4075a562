package cpu

// Flags is the comparison flags register, laid out as 00000LGE.
// CMP sets exactly one bit and clears the rest.
type Flags uint8

const (
	FL_E = Flags(1 << 0) // Equal
	FL_G = Flags(1 << 1) // Greater than
	FL_L = Flags(1 << 2) // Less than

	FL_MASK = FL_L | FL_G | FL_E
)

// Equal returns true if the last comparison was equal.
func (fl Flags) Equal() bool { return fl&FL_E != 0 }

// Greater returns true if the last comparison was greater than.
func (fl Flags) Greater() bool { return fl&FL_G != 0 }

// Less returns true if the last comparison was less than.
func (fl Flags) Less() bool { return fl&FL_L != 0 }

// String returns the flags as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	out := []byte("---")
	if fl.Less() {
		out[0] = 'L'
	}
	if fl.Greater() {
		out[1] = 'G'
	}
	if fl.Equal() {
		out[2] = 'E'
	}
	return string(out)
}
