package catan

// PhaseKind is the coarse game phase.
type PhaseKind uint8

const (
	PhaseSetup PhaseKind = iota
	PhaseTurn
	PhaseFinished
)

// TurnPhase is the position within one seat's turn.
type TurnPhase uint8

const (
	PreRoll TurnPhase = iota
	PostRoll
)

// DevelopmentPhaseKind tracks the seat's development card window.
type DevelopmentPhaseKind uint8

const (
	// DevUsed means a development card was already played this turn.
	DevUsed DevelopmentPhaseKind = iota
	// DevReady means a development card may still be played.
	DevReady
	// DevRoadBuilding means a Road Building card is being resolved.
	DevRoadBuilding
	// DevYearOfPlenty means a Year of Plenty card is being resolved.
	DevYearOfPlenty
)

// DevelopmentPhase carries the development window and, for the two
// multi-step cards, whether both picks remain.
type DevelopmentPhase struct {
	Kind    DevelopmentPhaseKind
	TwoLeft bool
}

// Phase is the engine's position in the turn structure at a decision
// point. Player, Turn and Development are meaningful only for PhaseTurn.
type Phase struct {
	Kind        PhaseKind
	Player      PlayerId
	Turn        TurnPhase
	Development DevelopmentPhase
}
