package env

import "github.com/catanlab/catanenv/catan"

// Observation is one decision point, or the terminal sentinel, as seen
// by one seat. It is immutable once produced: the worker hands it to
// the caller by pointer and never touches it again.
//
// A terminal observation has Terminal set and every payload slice nil —
// callers must branch on Terminal, not on payload length. Hidden is
// present on every non-terminal observation of an environment iff the
// environment's format was built with hidden detail, never per call.
type Observation struct {
	// Seat is the player whose decision this observation requests.
	Seat catan.PlayerId
	// Board is the spatial tensor, row-major (Width, Height, Channels)
	// with Channels = 13 + 2×playerCount.
	Board []int32
	// Flat is the scalar feature vector, length 29 + 8×playerCount.
	Flat []int32
	// Hidden is the opponents' concealed-detail vector, length
	// (playerCount-1)×27, or nil when the format excludes it.
	Hidden []int32
	// Actions is the legal-action mask over the full action space.
	Actions []bool
	// Terminal marks the end-of-game sentinel.
	Terminal bool

	// Tensor dimensions, recorded so callers can index Board without
	// holding the format.
	Width    int
	Height   int
	Channels int
}

// BoardAt returns the board cell at (x, y, c).
func (o *Observation) BoardAt(x, y, c int) int32 {
	return o.Board[(x*o.Height+y)*o.Channels+c]
}
