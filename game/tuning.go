package game

const (
	DefaultDurationMs = 120_000 // one game lasts two minutes
	DefaultMoles      = 12
	NominationEveryMs = 1000 // fixed cadence, one reveal per second
	MinVisibleMs      = 250  // shortest time a mole stays up
	MaxVisibleMs      = 5000 // exclusive upper bound for the visible draw
)
