// Package outcome judges completed games. Rules are a strategy keyed by game
// type so new choice cardinalities plug into the same state machine without
// touching escrow or fee logic.
package outcome

import (
	"sync"

	"github.com/zkgames/zkgames-go/internal/model"
)

// Rules judges the outcome of one game type deterministically
type Rules interface {
	// GameType names the rule set
	GameType() model.GameType
	// Choices is the number of discrete choice values, K; valid choices
	// are 0..K-1
	Choices() int
	// Judge returns the outcome for player1's and player2's choices.
	// Both choices must already be validated against Choices.
	Judge(c1, c2 model.Choice) model.Result
}

// GameTypeRPSBasic is the built-in three-choice cyclic game
const GameTypeRPSBasic model.GameType = "rps-basic"

// cyclic implements an N-choice game where each choice beats its predecessor
// in the cycle: choice c beats c-1 (mod N), equal choices tie. For N=3 this
// is rock/paper/scissors with 0=rock, 1=paper, 2=scissors.
type cyclic struct {
	gameType model.GameType
	choices  int
}

// RPSBasic returns the three-choice cyclic rule set
func RPSBasic() Rules {
	return &cyclic{gameType: GameTypeRPSBasic, choices: 3}
}

// Cyclic returns an N-choice cyclic-dominance rule set under the given name
func Cyclic(gameType model.GameType, choices int) Rules {
	return &cyclic{gameType: gameType, choices: choices}
}

func (r *cyclic) GameType() model.GameType { return r.gameType }

func (r *cyclic) Choices() int { return r.choices }

func (r *cyclic) Judge(c1, c2 model.Choice) model.Result {
	if c1 == c2 {
		return model.ResultTie
	}
	if (int(c2)+1)%r.choices == int(c1) {
		return model.ResultPlayer1
	}
	return model.ResultPlayer2
}

// Registry holds the known game types
type Registry struct {
	mu    sync.RWMutex
	rules map[model.GameType]Rules
}

// NewRegistry creates a registry with the given rule sets
func NewRegistry(rules ...Rules) *Registry {
	r := &Registry{rules: make(map[model.GameType]Rules)}
	for _, rs := range rules {
		r.rules[rs.GameType()] = rs
	}
	return r
}

// Register adds or replaces a rule set
func (r *Registry) Register(rules Rules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rules.GameType()] = rules
}

// Rules returns the rule set for a game type
func (r *Registry) Rules(gameType model.GameType) (Rules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[gameType]
	if !ok {
		return nil, model.ErrUnknownGameType
	}
	return rules, nil
}
