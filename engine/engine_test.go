package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testCatalog(t), testWorld(t), WithLogger(quietLogger()))
}

func assertOutputContains(t *testing.T, result types.Result, substr string) {
	t.Helper()
	for _, line := range result.Output {
		if strings.Contains(line, substr) {
			return
		}
	}
	t.Errorf("output does not contain %q; got %q", substr, result.Output)
}

func TestStep_EmptyInput(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("   ")
	if len(result.Output) != 1 || result.Output[0] != "What do you want to do?" {
		t.Errorf("output = %q", result.Output)
	}
	if result.Err != nil {
		t.Errorf("err = %v", result.Err)
	}
}

func TestStep_Cast(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("cast firebolt 1 2")
	if result.Err != nil {
		t.Fatalf("err = %v", result.Err)
	}
	assertOutputContains(t, result, "Resolving ability: [firebolt] caster id: [1]")
	assertOutputContains(t, result, "after:[82]")
	if got := hpOf(t, e.World, 2); got != 82 {
		t.Errorf("hp = %d, want 82", got)
	}
}

func TestStep_CastAliases(t *testing.T) {
	for _, input := range []string{"c strike 1 2", "use strike 1 2", "CAST strike 1 2"} {
		t.Run(input, func(t *testing.T) {
			e := newTestEngine(t)
			if result := e.Step(input); result.Err != nil {
				t.Fatalf("err = %v", result.Err)
			}
			if got := hpOf(t, e.World, 2); got != 85 {
				t.Errorf("hp = %d, want 85", got)
			}
		})
	}
}

func TestStep_CastRejected(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("cast mend 1 2")
	if result.Err != nil {
		t.Errorf("rejection reported as error: %v", result.Err)
	}
	assertOutputContains(t, result, "Error: Self ability requires target to be the caster")
}

func TestStep_CastUnknownAbility(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("cast meteor 1 2")
	if !errors.Is(result.Err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", result.Err)
	}
	assertOutputContains(t, result, `Error: resolving "meteor": unknown ability "meteor"`)
}

func TestStep_CastMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no args", "cast", usageCast},
		{"no caster", "cast firebolt", usageCast},
		{"bad caster", "cast firebolt one 2", `invalid entity id: "one"`},
		{"bad target", "cast firebolt 1 -2", `invalid entity id: "-2"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			result := e.Step(tt.input)
			assertOutputContains(t, result, tt.want)
			if hpOf(t, e.World, 2) != 100 {
				t.Error("malformed command mutated the world")
			}
		})
	}
}

func TestStep_Tick(t *testing.T) {
	e := newTestEngine(t)
	e.Step("cast firebolt 1 2")

	result := e.Step("tick")
	if result.Err != nil {
		t.Fatal(result.Err)
	}
	if e.Turn != 1 {
		t.Errorf("turn = %d, want 1", e.Turn)
	}
	if result.Output[0] != "Turn 1 begins." {
		t.Errorf("first line = %q", result.Output[0])
	}
	assertOutputContains(t, result, "takes [3 Fire] from burning (1 stacks)")

	for _, alias := range []string{"t", "turn", "wait", "z"} {
		e.Step(alias)
	}
	if e.Turn != 5 {
		t.Errorf("turn = %d after aliases, want 5", e.Turn)
	}
	// 82 - 3 (turn 1) - 3 (turn 2, expires).
	if got := hpOf(t, e.World, 2); got != 76 {
		t.Errorf("hp = %d, want 76", got)
	}
}

func TestStep_TickWithArgs(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("tick 3")
	assertOutputContains(t, result, usageTick)
	if e.Turn != 0 {
		t.Errorf("turn = %d, want 0", e.Turn)
	}
}

func TestStep_Show(t *testing.T) {
	e := newTestEngine(t)
	e.Step("cast firebolt 1 2")

	result := e.Step("show")
	want := []string{
		"#1 hp:100 armor:2 power:10 [Player]",
		"#2 hp:82 armor:0 power:8 [Enemy] burning x1 (2t)",
	}
	if !slices.Equal(result.Output, want) {
		t.Errorf("show = %q, want %q", result.Output, want)
	}

	result = e.Step("l 2")
	if len(result.Output) != 1 || result.Output[0] != want[1] {
		t.Errorf("show 2 = %q, want %q", result.Output, want[1])
	}
}

func TestStep_ShowUnknownEntity(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("show 7")
	if !errors.Is(result.Err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", result.Err)
	}
	assertOutputContains(t, result, `unknown entity "7"`)
}

func TestStep_Listings(t *testing.T) {
	e := newTestEngine(t)

	result := e.Step("abilities")
	if len(result.Output) != 5 {
		t.Errorf("abilities = %q, want 5 lines", result.Output)
	}
	if result.Output[0] != "cleanse (SingleAlly) [Spell]: RemoveStatusByTag Debuff max 5" {
		t.Errorf("first ability = %q", result.Output[0])
	}
	assertOutputContains(t, result, "firebolt (SingleEnemy) [Spell,Fire]: Damage Fire 12.00+0.60*Power; ApplyStatus burning x1 for 2t")

	result = e.Step("statuses")
	if len(result.Output) != 5 {
		t.Errorf("statuses = %q, want 5 lines", result.Output)
	}
	assertOutputContains(t, result, "burning max:3 [Fire,Debuff] dot:3 Fire/stack")
	assertOutputContains(t, result, "empowered max:1 [Buff] OnBeforeDealDamage(1)")
}

func TestStep_UnknownVerb(t *testing.T) {
	e := newTestEngine(t)
	result := e.Step("dance")
	assertOutputContains(t, result, `I don't understand "dance"`)
}

func TestStep_CommandLog(t *testing.T) {
	e := newTestEngine(t)
	inputs := []string{"show", "cast firebolt 1 2", "", "tick"}
	for _, in := range inputs {
		e.Step(in)
	}
	if !slices.Equal(e.CommandLog, inputs) {
		t.Errorf("command log = %q, want %q", e.CommandLog, inputs)
	}
}

func TestDescribeEntity_MultipleStatuses(t *testing.T) {
	ent := &types.Entity{
		ID: 3, HP: 40, Armor: 1, Power: 5,
		Statuses: []types.StatusInstance{
			{StatusID: "burning", Stacks: 2, RemainingTurns: 1},
			{StatusID: "vulnerable", Stacks: 1, RemainingTurns: 3},
		},
	}
	want := "#3 hp:40 armor:1 power:5 burning x2 (1t), vulnerable x1 (3t)"
	if got := DescribeEntity(ent); got != want {
		t.Errorf("DescribeEntity = %q, want %q", got, want)
	}
}

func TestNew_SessionIDTagsLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := New(testCatalog(t), testWorld(t), WithLogger(logger))

	if _, err := uuid.Parse(e.SessionID); err != nil {
		t.Fatalf("SessionID %q: %v", e.SessionID, err)
	}
	if other := newTestEngine(t); other.SessionID == e.SessionID {
		t.Error("two engines share a session id")
	}

	e.Step("cast firebolt 1 2")
	out := buf.String()
	if n := strings.Count(out, "session="+e.SessionID); n < 2 {
		t.Errorf("expected step and resolver records tagged with the session, got:\n%s", out)
	}
}
