package engine

import (
	"sort"
	"strings"
	"testing"

	"github.com/nathoo/midway/engine/events"
	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/types"
)

// testDefs builds small content pools. Every entry is unique so tests can
// tell which pool a line was drawn from.
func testDefs() *state.Defs {
	return &state.Defs{
		Carnival: types.CarnivalDef{Title: "Test Midway", Version: "1.0"},
		Pools: map[string][]string{
			state.SmallPrizes:   {"bouncy ball", "toy spider ring"},
			state.MediumPrizes:  {"foam sword", "toy dinosaur"},
			state.LargePrizes:   {"giant teddy bear", "talking robot toy"},
			state.MalletVerbs:   {"slams", "whacks"},
			state.MalletAdverbs: {"furiously", "timidly"},
			state.PuckVerbs:     {"rocket", "zip"},
			state.HSDeclarative: {"Test your strength!"},
			state.HSGoading:     {"Is that bicep or just hot air?"},
			state.HSAllure:      {"Hit the top!"},
			state.MBDeclarative: {"Knock down the bottles!"},
			state.MBGoading:     {"Got an arm or just stories to tell?"},
			state.MBAllure:      {"Make 'em fall!"},
			state.RTDeclarative: {"Try your aim!"},
			state.RTGoading:     {"Think you're lucky? Then prove it!"},
			state.RTAllure:      {"Land the ring!"},
			state.Fortunes:      {"The number three will reveal itself.", "Tonight, the stars align."},
		},
	}
}

// scriptedSource replays fixed draws. Exhausted queues return zero.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// fakeRoom records registry changes and description lines.
type fakeRoom struct {
	commands  map[string]types.Command
	lines     []string
	chars     int
	listening bool
}

func newFakeRoom() *fakeRoom {
	return &fakeRoom{commands: map[string]types.Command{}, chars: 1}
}

func (r *fakeRoom) AddCommand(keyword string, cmd types.Command) { r.commands[keyword] = cmd }

func (r *fakeRoom) RemoveCommand(keyword string) bool {
	_, ok := r.commands[keyword]
	delete(r.commands, keyword)
	return ok
}

func (r *fakeRoom) Describe(msg string) { r.lines = append(r.lines, msg) }
func (r *fakeRoom) HasChars() bool      { return r.chars > 0 }
func (r *fakeRoom) ListenCharEvent()    { r.listening = true }

func (r *fakeRoom) keywords() []string {
	var kws []string
	for kw := range r.commands {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

func (r *fakeRoom) has(keyword string) bool {
	_, ok := r.commands[keyword]
	return ok
}

// flush returns and clears the recorded lines.
func (r *fakeRoom) flush() []string {
	lines := r.lines
	r.lines = nil
	return lines
}

func newTestEngine(t *testing.T, src *scriptedSource) (*Engine, *fakeRoom) {
	t.Helper()
	room := newFakeRoom()
	e := New(room, testDefs(), src)
	e.OnActivate()
	return e, room
}

func run(e *Engine, keyword string) {
	e.OnCommand("midway", types.CmdAction{Keyword: keyword, Char: types.Char{ID: "c1", Name: "Ada"}})
}

func assertKeywords(t *testing.T, room *fakeRoom, want ...string) {
	t.Helper()
	sort.Strings(want)
	got := room.keywords()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("registered = %v, want %v", got, want)
	}
}

func contains(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

var entryCommands = []string{KeyHighstriker, KeyMilkbottle, KeyRingtoss, KeyPandar}

// --- Activation ---

func TestActivate_RegistersAttractions(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})

	assertKeywords(t, room, entryCommands...)
	if !room.listening {
		t.Error("expected presence subscription")
	}
	if room.commands[KeyHighstriker].Pattern != "play highstriker" {
		t.Errorf("highstriker pattern = %q", room.commands[KeyHighstriker].Pattern)
	}
	if e.State.Throw != 1 || e.State.Toss != 1 || e.State.Difficulty != types.Easy {
		t.Errorf("unexpected initial state %+v", *e.State)
	}
}

func TestActivate_AgainStartsClean(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.9}})
	run(e, KeyMilkbottle)
	run(e, KeyThrow)

	// The host clears registrations before re-activating.
	room.commands = map[string]types.Command{}
	e.OnActivate()

	assertKeywords(t, room, entryCommands...)
	if e.State.Throw != 1 {
		t.Errorf("expected throw counter 1 after re-activation, got %d", e.State.Throw)
	}
}

// --- Highstriker ---

func TestHighstriker_Start(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})

	run(e, KeyHighstriker)
	lines := room.flush()

	assertKeywords(t, room, KeySwing, KeyMilkbottle, KeyRingtoss, KeyPandar)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	want := "Step right up!  Step right up! Test your strength! Is that bicep or just hot air? Hit the top!"
	if lines[0] != want {
		t.Errorf("pitch = %q, want %q", lines[0], want)
	}
	if lines[1] != "Use `swing` to play." {
		t.Errorf("instruction = %q", lines[1])
	}
}

func TestHighstriker_Markers(t *testing.T) {
	tests := []struct {
		score  int
		marker string
	}{
		{0, "ten point marker."},
		{1, "twenty point marker."},
		{4, "fifty point marker."},
		{8, "ninety point marker."},
	}
	for _, tt := range tests {
		e, room := newTestEngine(t, &scriptedSource{ints: []int{0, 0, 0, tt.score}})
		run(e, KeyHighstriker)
		room.flush()

		run(e, KeySwing)
		lines := room.flush()

		if len(lines) != 1 {
			t.Fatalf("score %d: expected 1 line, got %v", tt.score, lines)
		}
		want := "Ada slams the mallet furiously, causing the puck to rocket up to the " + tt.marker
		if lines[0] != want {
			t.Errorf("score %d: got %q, want %q", tt.score, lines[0], want)
		}
		if contains(lines, "wins") {
			t.Errorf("score %d: no prize expected", tt.score)
		}
		assertKeywords(t, room, entryCommands...)
	}
}

func TestHighstriker_BellWinsLargePrize(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{ints: []int{0, 0, 0, 9, 1, 1, 1, 1}})
	run(e, KeyHighstriker)
	room.flush()

	run(e, KeySwing)
	lines := room.flush()

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	want := "Ada whacks the mallet timidly, causing the puck to zip up to the hundred point marker and ringing the bell!"
	if lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
	if lines[1] != "Ada wins a talking robot toy!" {
		t.Errorf("prize line = %q", lines[1])
	}
	assertKeywords(t, room, entryCommands...)
}

// --- Milk bottle ---

func TestMilkbottle_Start(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})

	run(e, KeyMilkbottle)
	lines := room.flush()

	assertKeywords(t, room, KeyHighstriker, KeyThrow, KeyRingtoss, KeyPandar)
	if len(lines) != 2 || !strings.HasPrefix(lines[0], stepRightUp+" Knock down the bottles!") {
		t.Fatalf("unexpected pitch %v", lines)
	}
	if lines[1] != "Use `throw` to play." {
		t.Errorf("instruction = %q", lines[1])
	}
}

func TestMilkbottle_HitWinsSmallPrize(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.29}, ints: []int{0, 0, 0, 1}})
	run(e, KeyMilkbottle)
	room.flush()

	run(e, KeyThrow)
	lines := room.flush()

	want := []string{
		"Ada lands their ball square in the milk bottles and knocks them all over.",
		"Ada wins a toy spider ring!",
	}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", lines, want)
	}
	assertKeywords(t, room, entryCommands...)
}

func TestMilkbottle_ThreeMisses(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.3, 0.5, 0.99}})
	run(e, KeyMilkbottle)
	room.flush()

	run(e, KeyThrow)
	lines := room.flush()
	if len(lines) != 2 || lines[0] != "Ada misses the milk bottles." ||
		lines[1] != "Got an arm or just stories to tell? You got two more tries!" {
		t.Fatalf("first miss: %v", lines)
	}
	if e.State.Throw != 2 {
		t.Errorf("expected counter 2, got %d", e.State.Throw)
	}
	assertKeywords(t, room, KeyHighstriker, KeyThrow, KeyRingtoss, KeyPandar)

	run(e, KeyThrow)
	lines = room.flush()
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "You got one more try!") {
		t.Fatalf("second miss: %v", lines)
	}
	if e.State.Throw != 3 {
		t.Errorf("expected counter 3, got %d", e.State.Throw)
	}

	run(e, KeyThrow)
	lines = room.flush()
	if len(lines) != 2 || lines[1] != "Awwr, better luck next time!" {
		t.Fatalf("third miss: %v", lines)
	}
	if e.State.Throw != 1 {
		t.Errorf("expected counter reset to 1, got %d", e.State.Throw)
	}
	assertKeywords(t, room, entryCommands...)
}

func TestMilkbottle_HitAfterMissResetsCounter(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.8, 0.1}})
	run(e, KeyMilkbottle)
	run(e, KeyThrow)
	if e.State.Throw != 2 {
		t.Fatalf("expected counter 2 after miss, got %d", e.State.Throw)
	}

	run(e, KeyThrow)
	if e.State.Throw != 1 {
		t.Errorf("expected counter 1 after win, got %d", e.State.Throw)
	}
	if !contains(room.flush(), "wins a") {
		t.Error("expected a prize")
	}
}

// --- Ring toss ---

func TestRingtoss_StartOffersTargets(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})

	run(e, KeyRingtoss)
	lines := room.flush()

	assertKeywords(t, room, KeyHighstriker, KeyMilkbottle, KeyPandar, KeyPickEasy, KeyPickMedium, KeyPickHard)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[1] != "You can choose to pick an easy, medium, or hard target.  `pick easy`, `pick medium`, or `pick hard`" {
		t.Errorf("instruction = %q", lines[1])
	}
}

func TestRingtoss_PickSetsDifficulty(t *testing.T) {
	tests := []struct {
		keyword string
		want    types.Difficulty
	}{
		{KeyPickEasy, types.Easy},
		{KeyPickMedium, types.Medium},
		{KeyPickHard, types.Hard},
	}
	for _, tt := range tests {
		e, room := newTestEngine(t, &scriptedSource{})
		run(e, KeyRingtoss)
		room.flush()

		run(e, tt.keyword)
		lines := room.flush()

		if e.State.Difficulty != tt.want {
			t.Errorf("%s: difficulty = %v, want %v", tt.keyword, e.State.Difficulty, tt.want)
		}
		if len(lines) != 1 || lines[0] != "Use `toss` to play." {
			t.Errorf("%s: lines = %v", tt.keyword, lines)
		}
		assertKeywords(t, room, KeyHighstriker, KeyMilkbottle, KeyPandar, KeyToss)
	}
}

func TestRingtoss_PrizePoolFollowsDifficulty(t *testing.T) {
	tests := []struct {
		keyword string
		draw    float64
		pool    string
	}{
		{KeyPickEasy, 0.51, state.SmallPrizes},
		{KeyPickMedium, 0.76, state.MediumPrizes},
		{KeyPickHard, 0.95, state.LargePrizes},
	}
	for _, tt := range tests {
		for idx := 0; idx < 2; idx++ {
			e, room := newTestEngine(t, &scriptedSource{floats: []float64{tt.draw}, ints: []int{0, 0, 0, idx}})
			run(e, KeyRingtoss)
			run(e, tt.keyword)
			room.flush()

			run(e, KeyToss)
			lines := room.flush()

			if len(lines) != 2 {
				t.Fatalf("%s: expected 2 lines, got %v", tt.keyword, lines)
			}
			if lines[0] != "Ada tosses their ring and it lands squarely on the bottle." {
				t.Errorf("%s: got %q", tt.keyword, lines[0])
			}
			want := "Ada wins a " + testDefs().Pools[tt.pool][idx] + "!"
			if lines[1] != want {
				t.Errorf("%s: prize = %q, want %q", tt.keyword, lines[1], want)
			}
			assertKeywords(t, room, entryCommands...)
		}
	}
}

func TestRingtoss_DrawAtThresholdMisses(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.75}})
	run(e, KeyRingtoss)
	run(e, KeyPickMedium)
	room.flush()

	run(e, KeyToss)
	lines := room.flush()

	if len(lines) != 2 || lines[0] != "Ada tosses their ring and it misses the bottle." {
		t.Fatalf("expected a miss, got %v", lines)
	}
	if lines[1] != "Think you're lucky? Then prove it! You got two more tries!" {
		t.Errorf("goad = %q", lines[1])
	}
	if e.State.Toss != 2 {
		t.Errorf("expected toss counter 2, got %d", e.State.Toss)
	}
}

func TestRingtoss_ThreeMissesEndGame(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.1, 0.2, 0.3}})
	run(e, KeyRingtoss)
	run(e, KeyPickHard)

	run(e, KeyToss)
	run(e, KeyToss)
	assertKeywords(t, room, KeyHighstriker, KeyMilkbottle, KeyPandar, KeyToss)
	room.flush()

	run(e, KeyToss)
	lines := room.flush()
	if len(lines) != 2 || lines[1] != "Awwr, better luck next time!" {
		t.Fatalf("third miss: %v", lines)
	}
	if e.State.Toss != 1 {
		t.Errorf("expected toss counter 1, got %d", e.State.Toss)
	}
	assertKeywords(t, room, entryCommands...)
}

func TestRingtoss_DifficultyKeptAcrossTosses(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedSource{floats: []float64{0.1, 0.2}})
	run(e, KeyRingtoss)
	run(e, KeyPickHard)
	run(e, KeyToss)
	run(e, KeyToss)

	if e.State.Difficulty != types.Hard {
		t.Errorf("expected hard difficulty, got %v", e.State.Difficulty)
	}
}

// --- Pandar ---

func TestPandar_TwoLines(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{ints: []int{1}})

	run(e, KeyPandar)
	lines := room.flush()

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "The mysterious Pandar animates to life to consult its crystal ball.  It soon prints out a fortune in the receptacle." {
		t.Errorf("intro = %q", lines[0])
	}
	if lines[1] != "_Tonight, the stars align._" {
		t.Errorf("fortune = %q", lines[1])
	}
	assertKeywords(t, room, entryCommands...)
}

// --- Presence ---

func TestCharEvent_DepartureResetsGames(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.1}})
	run(e, KeyHighstriker)
	run(e, KeyMilkbottle)
	run(e, KeyRingtoss)
	run(e, KeyPickMedium)
	run(e, KeyToss)
	if e.State.Toss != 2 {
		t.Fatalf("expected toss counter 2, got %d", e.State.Toss)
	}
	room.flush()

	e.OnCharEvent("midway", "c2", nil, &types.Char{ID: "c2", Name: "Bo"})

	assertKeywords(t, room, entryCommands...)
	if e.State.Throw != 1 || e.State.Toss != 1 {
		t.Errorf("expected counters reset, got %+v", *e.State)
	}
	if lines := room.flush(); len(lines) != 0 {
		t.Errorf("reset should be silent, got %v", lines)
	}
}

func TestCharEvent_PickingStageCleared(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})
	run(e, KeyRingtoss)

	e.OnCharEvent("midway", "c2", nil, &types.Char{ID: "c2"})

	assertKeywords(t, room, entryCommands...)
}

func TestCharEvent_EmptyRoomNoReset(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{floats: []float64{0.9}})
	run(e, KeyMilkbottle)
	run(e, KeyThrow)
	room.chars = 0

	e.OnCharEvent("midway", "c1", nil, &types.Char{ID: "c1"})

	if e.State.Throw != 2 {
		t.Errorf("expected counter untouched, got %d", e.State.Throw)
	}
	assertKeywords(t, room, KeyHighstriker, KeyThrow, KeyRingtoss, KeyPandar)
}

func TestCharEvent_ArrivalAndChangeIgnored(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})
	run(e, KeyHighstriker)
	c := &types.Char{ID: "c2", Name: "Bo"}

	e.OnCharEvent("midway", "c2", c, nil)
	e.OnCharEvent("midway", "c2", c, c)

	assertKeywords(t, room, KeySwing, KeyMilkbottle, KeyRingtoss, KeyPandar)
}

// --- Dispatch ---

func TestOnCommand_UnknownKeywordIgnored(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})
	run(e, "juggle")

	if len(room.lines) != 0 {
		t.Errorf("expected no output, got %v", room.lines)
	}
	assertKeywords(t, room, entryCommands...)
}

func TestUnusedHooks_NoEffect(t *testing.T) {
	e, room := newTestEngine(t, &scriptedSource{})
	data := "{}"
	action := &events.ExitAction{CharID: "c1", ExitID: "gate"}

	events.Dispatch(e,
		events.Event{Kind: events.RoomEvent, Payload: `{"type":"say"}`},
		events.Event{Kind: events.Message, Topic: "hi", Data: &data},
		events.Event{Kind: events.ExitUse, Exit: action},
	)

	if len(room.lines) != 0 {
		t.Errorf("expected no output, got %v", room.lines)
	}
	if _, _, decided := action.Outcome(); decided {
		t.Error("exit action should be left undecided")
	}
	assertKeywords(t, room, entryCommands...)
}

func TestFullCycles_RestoreRegistry(t *testing.T) {
	rng := NewRNG(2024)
	room := newFakeRoom()
	e := New(room, testDefs(), rng)
	e.OnActivate()

	for i := 0; i < 200; i++ {
		run(e, KeyHighstriker)
		run(e, KeySwing)
		assertKeywords(t, room, entryCommands...)

		run(e, KeyMilkbottle)
		for room.has(KeyThrow) {
			run(e, KeyThrow)
			if e.State.Throw < 1 || e.State.Throw > state.MaxAttempts {
				t.Fatalf("throw counter out of range: %d", e.State.Throw)
			}
		}
		assertKeywords(t, room, entryCommands...)

		run(e, KeyRingtoss)
		run(e, []string{KeyPickEasy, KeyPickMedium, KeyPickHard}[i%3])
		for room.has(KeyToss) {
			run(e, KeyToss)
			if e.State.Toss < 1 || e.State.Toss > state.MaxAttempts {
				t.Fatalf("toss counter out of range: %d", e.State.Toss)
			}
		}
		assertKeywords(t, room, entryCommands...)
		if e.State.Throw != 1 || e.State.Toss != 1 {
			t.Fatalf("cycle %d: counters not reset: %+v", i, *e.State)
		}
	}
}

func TestCommandFor(t *testing.T) {
	cmd, ok := CommandFor(KeyPickHard)
	if !ok || cmd.Pattern != "pick hard" {
		t.Errorf("CommandFor(pickhard) = %+v, %v", cmd, ok)
	}
	if _, ok := CommandFor("juggle"); ok {
		t.Error("expected unknown keyword to be missing")
	}
}

func TestFillSnapshot(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedSource{floats: []float64{0.9}})
	run(e, KeyRingtoss)
	run(e, KeyPickHard)
	run(e, KeyToss)

	var snap types.Snapshot
	e.FillSnapshot(&snap)
	want := types.GameSnapshot{Difficulty: "hard", Throw: 1, Toss: 2}
	if snap.Games != want {
		t.Errorf("games = %+v, want %+v", snap.Games, want)
	}

	rng := NewRNG(11)
	e = New(newFakeRoom(), testDefs(), rng)
	e.OnActivate()
	run(e, KeyPandar)
	e.FillSnapshot(&snap)
	if snap.Games.Seed == nil || *snap.Games.Seed != 11 || snap.Games.Draws != rng.Position() || snap.Games.Draws == 0 {
		t.Errorf("rng fields = %+v", snap.Games)
	}
}

func TestFillSnapshot_ZeroSeedReported(t *testing.T) {
	e := New(newFakeRoom(), testDefs(), NewRNG(0))
	e.OnActivate()

	var snap types.Snapshot
	e.FillSnapshot(&snap)
	if snap.Games.Seed == nil || *snap.Games.Seed != 0 {
		t.Errorf("seed = %v, want a reported 0", snap.Games.Seed)
	}
}
