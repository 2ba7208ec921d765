// Package types defines the shared data structures for the Midway room script.
// This package contains only type definitions, with no logic beyond trivial accessors.
package types

// Command is a room command registration. Pattern is the phrase players type
// ("play highstriker"); Desc is optional help text.
type Command struct {
	Pattern string `yaml:"pattern"`
	Desc    string `yaml:"desc,omitempty"`
}

// Char is a character present in the room.
type Char struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Surname string `yaml:"surname,omitempty"`
}

// CmdAction is a single invocation of a registered command.
type CmdAction struct {
	Keyword string
	Char    Char
}

// Event is a host-side trace event emitted while handling a step.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single host step.
type Result struct {
	Events []Event
	Output []string
}

// Difficulty is the ring toss target tier.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Threshold returns the probability that a toss misses at this tier.
func (d Difficulty) Threshold() float64 {
	switch d {
	case Medium:
		return 0.75
	case Hard:
		return 0.9
	default:
		return 0.5
	}
}

func (d Difficulty) String() string {
	switch d {
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "easy"
	}
}

// State is the mutable minigame state of one room.
type State struct {
	Difficulty Difficulty
	Throw      int // milk bottle attempt, 1..3
	Toss       int // ring toss attempt, 1..3
}

// CarnivalDef holds carnival metadata from Lua.
type CarnivalDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// Snapshot is a dump of one room and its games, written by /state.
type Snapshot struct {
	Room      string            `yaml:"room"`
	Occupants []Char            `yaml:"occupants"`
	Commands  map[string]string `yaml:"commands"`
	Games     GameSnapshot      `yaml:"games"`
}

// GameSnapshot is the minigame part of a Snapshot.
type GameSnapshot struct {
	Difficulty string `yaml:"difficulty"`
	Throw      int    `yaml:"throw"`
	Toss       int    `yaml:"toss"`
	Seed       *int64 `yaml:"seed,omitempty"`
	Draws      int64  `yaml:"draws,omitempty"`
}
