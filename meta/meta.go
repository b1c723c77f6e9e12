// meta/meta.go
package meta

import "time"

// GO_ROUTINES is the default number of search workers per decision.
const GO_ROUTINES = 1

// SIMULATIONS is the base rollout budget of the Monte Carlo strategy.
const SIMULATIONS = 1000

// MIN_SIMULATIONS is the rollout floor, run even when the time limit passed.
const MIN_SIMULATIONS = 100

// TIME_LIMIT bounds the wall-clock time of one decision.
const TIME_LIMIT = 2 * time.Second

// EXPLORATION is the UCB1 exploration constant.
const EXPLORATION = 1.4142135623730951

// CONFIDENCE weighs visit share against average reward in the final choice.
const CONFIDENCE = 0.1

// WITH_CUTOFF is the default rollout depth, enough to fill the board.
const WITH_CUTOFF = 42

// MAX_TURNS caps the length of a game in the engine.
const MAX_TURNS = 42

// GAMES is the default number of games per side in a symmetry match.
const GAMES = 1000

// WORKERS is the default number of games played concurrently.
const WORKERS = 4

// OUT_DIR is where experiment records are written.
const OUT_DIR = "results"
