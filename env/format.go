// Package env runs an external game engine on its own goroutine and
// exposes it to a turn-taking caller as a synchronous Start/Play/Result
// API, fanning out per-seat observations with hidden-information
// masking.
package env

import (
	"errors"

	"github.com/catanlab/catanenv/catan"
)

// MapFunc converts a board coordinate into a cell of the observation
// tensor. It must be a pure function and must stay inside
// [0,width)×[0,height) for every coordinate of the layout it is paired
// with.
type MapFunc func(catan.Coord) (x, y int)

// ObservationFormat fixes the board tensor dimensions, the
// coordinate→cell mapping and the hidden-detail visibility for one
// environment. It is immutable after construction and shared read-only
// between the caller and the simulation goroutine.
type ObservationFormat struct {
	width         int
	height        int
	mapCoord      MapFunc
	includeHidden bool
}

// NewObservationFormat validates and builds a format.
func NewObservationFormat(width, height int, mapCoord MapFunc, includeHidden bool) (*ObservationFormat, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("env: observation format needs positive dimensions")
	}
	if mapCoord == nil {
		return nil, errors.New("env: observation format needs a coordinate mapping")
	}
	return &ObservationFormat{
		width:         width,
		height:        height,
		mapCoord:      mapCoord,
		includeHidden: includeHidden,
	}, nil
}

// Width returns the board tensor width.
func (f *ObservationFormat) Width() int { return f.width }

// Height returns the board tensor height.
func (f *ObservationFormat) Height() int { return f.height }

// IncludeHidden reports whether observations carry the hidden
// opponent-detail vector.
func (f *ObservationFormat) IncludeHidden() bool { return f.includeHidden }
