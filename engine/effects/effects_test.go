package effects

import (
	"errors"
	"testing"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

func testSetup(t *testing.T) Context {
	t.Helper()
	cat, err := catalog.New(nil, []types.StatusDef{
		{ID: "burning", Tags: []string{"fire", "magic"}, MaxStacks: 3},
		{ID: "blessed", Tags: []string{"holy", "magic"}, MaxStacks: 1},
		{
			ID: "fragile", Tags: []string{"debuff"}, MaxStacks: 1,
			Hooks: map[types.Hook][]types.ModifierRule{
				types.OnBeforeTakeDamage: {{Multiplier: 2}},
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	w := state.NewWorld()
	for _, e := range []types.Entity{
		{ID: 1, HP: 50, Armor: 0, Power: 10},
		{ID: 2, HP: 100, Armor: 4, Power: 8},
	} {
		if err := w.Insert(e); err != nil {
			t.Fatal(err)
		}
	}
	return Context{
		Catalog: cat,
		World:   w,
		Ability: types.AbilityDef{ID: "test", Tags: []string{"spell"}},
		Caster:  1,
	}
}

func hp(t *testing.T, ctx Context, id types.EntityID) int {
	t.Helper()
	v, err := ctx.World.GetStat(id, types.StatHP)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestEvalAmount(t *testing.T) {
	caster := &types.Entity{HP: 80, Armor: 3, Power: 10}
	tests := []struct {
		amount types.ScaledAmount
		want   float32
	}{
		{types.ScaledAmount{Base: 12, ScalesWith: types.StatPower, Scale: 0.6}, 18},
		{types.ScaledAmount{Base: 10, ScalesWith: types.StatPower, Scale: 0.5}, 15},
		{types.ScaledAmount{Base: 0, ScalesWith: types.StatHP, Scale: 0.25}, 20},
		{types.ScaledAmount{Base: 5, ScalesWith: types.StatArmor, Scale: 0}, 5},
		{types.ScaledAmount{Base: 0, ScalesWith: types.StatPower, Scale: 0.7}, 7},
	}
	for _, tt := range tests {
		if got := EvalAmount(caster, tt.amount); got != tt.want {
			t.Errorf("EvalAmount(%+v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

// Single-precision rounding lands these products exactly on an integer,
// where double precision falls just short and truncates one lower.
func TestEvalAmount_TruncationEdge(t *testing.T) {
	tests := []struct {
		name    string
		power   int
		scale   float32
		wantInt int
	}{
		{"0.29 x 100", 100, 0.29, 29},
		{"0.57 x 100", 100, 0.57, 57},
		{"0.7 x 10", 10, 0.7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := &types.Entity{HP: 100, Power: tt.power}
			got := EvalAmount(caster, types.ScaledAmount{ScalesWith: types.StatPower, Scale: tt.scale})
			if int(got) != tt.wantInt {
				t.Errorf("int(EvalAmount) = %d, want %d (value %v)", int(got), tt.wantInt, got)
			}
		})
	}
}

func TestApply_DamageTruncationEdge(t *testing.T) {
	ctx := testSetup(t)
	caster, err := ctx.World.Entity(1)
	if err != nil {
		t.Fatal(err)
	}
	caster.Power = 100
	tr := trace.New()
	eff := types.DamageEffect{
		DamageType: types.Fire,
		Amount:     types.ScaledAmount{ScalesWith: types.StatPower, Scale: 0.29},
	}
	if err := Apply(ctx, 2, eff, tr); err != nil {
		t.Fatal(err)
	}
	if got := hp(t, ctx, 2); got != 71 {
		t.Errorf("hp = %d, want 71", got)
	}
}

func TestMitigate(t *testing.T) {
	tests := []struct {
		dmg   int
		dt    types.DamageType
		armor int
		want  int
	}{
		{15, types.Physical, 0, 15},
		{15, types.Physical, 4, 11},
		{3, types.Physical, 4, 0},
		{15, types.Fire, 4, 15},
		{15, types.Poison, 40, 15},
	}
	for _, tt := range tests {
		if got := Mitigate(tt.dmg, tt.dt, tt.armor); got != tt.want {
			t.Errorf("Mitigate(%d, %s, %d) = %d, want %d", tt.dmg, tt.dt, tt.armor, got, tt.want)
		}
	}
}

func TestApply_DamagePhysicalArmor(t *testing.T) {
	ctx := testSetup(t)
	tr := trace.New()
	eff := types.DamageEffect{
		DamageType: types.Physical,
		Amount:     types.ScaledAmount{Base: 10, ScalesWith: types.StatPower, Scale: 0.55},
	}
	// 10 + 10*0.55 = 15.5, truncated to 15, minus 4 armor.
	if err := Apply(ctx, 2, eff, tr); err != nil {
		t.Fatal(err)
	}
	if got := hp(t, ctx, 2); got != 89 {
		t.Errorf("hp = %d, want 89", got)
	}
	want := "Resolving Damage:\nAmount:[11 Physical]\nTarget entity:[2] HP before:[100] after:[89]"
	if lines := tr.Lines(); len(lines) != 1 || lines[0] != want {
		t.Errorf("trace = %q, want %q", lines, want)
	}
}

func TestApply_DamageIgnoresArmorForElements(t *testing.T) {
	ctx := testSetup(t)
	eff := types.DamageEffect{
		DamageType: types.Ice,
		Amount:     types.ScaledAmount{Base: 12, ScalesWith: types.StatPower, Scale: 0.6},
	}
	if err := Apply(ctx, 2, eff, trace.New()); err != nil {
		t.Fatal(err)
	}
	if got := hp(t, ctx, 2); got != 82 {
		t.Errorf("hp = %d, want 82", got)
	}
}

func TestApply_DamageRoutedThroughHooks(t *testing.T) {
	ctx := testSetup(t)
	if err := ctx.World.AddStatus(ctx.Catalog, 2, "fragile", 2, 1); err != nil {
		t.Fatal(err)
	}
	tr := trace.New()
	eff := types.DamageEffect{
		DamageType: types.Fire,
		Amount:     types.ScaledAmount{Base: 12, ScalesWith: types.StatPower, Scale: 0.6},
	}
	if err := Apply(ctx, 2, eff, tr); err != nil {
		t.Fatal(err)
	}
	if got := hp(t, ctx, 2); got != 64 {
		t.Errorf("hp = %d, want 64", got)
	}
	lines := tr.Lines()
	if len(lines) != 2 {
		t.Fatalf("trace = %q, want modifier + damage lines", lines)
	}
	if lines[0] != "Modifier: [fragile] hook: [OnBeforeTakeDamage] stacks: [1] value before: [18.00] after: [36.00]" {
		t.Errorf("modifier line = %q", lines[0])
	}
}

func TestApply_DamageTruncatesNegativeTowardZero(t *testing.T) {
	ctx := testSetup(t)
	eff := types.DamageEffect{
		DamageType: types.Fire,
		Amount:     types.ScaledAmount{Base: -2.7, ScalesWith: types.StatPower, Scale: 0},
	}
	if err := Apply(ctx, 2, eff, trace.New()); err != nil {
		t.Fatal(err)
	}
	// int(-2.7) == -2: negative damage is not clamped for non-physical types.
	if got := hp(t, ctx, 2); got != 102 {
		t.Errorf("hp = %d, want 102", got)
	}
}

func TestApply_Heal(t *testing.T) {
	ctx := testSetup(t)
	if err := ctx.World.AddStatus(ctx.Catalog, 1, "fragile", 2, 1); err != nil {
		t.Fatal(err)
	}
	tr := trace.New()
	eff := types.HealEffect{
		DamageType: types.Physical,
		Amount:     types.ScaledAmount{Base: 60, ScalesWith: types.StatPower, Scale: 0.99},
	}
	if err := Apply(ctx, 1, eff, tr); err != nil {
		t.Fatal(err)
	}
	// 60 + 9.9 = 69.9 truncated to 69, no clamp, no modifiers.
	if got := hp(t, ctx, 1); got != 119 {
		t.Errorf("hp = %d, want 119", got)
	}
	want := "Effect: Heal 69 Physical target=1 hp before: 50 hp now: 119"
	if lines := tr.Lines(); len(lines) != 1 || lines[0] != want {
		t.Errorf("trace = %q, want %q", lines, want)
	}
}

func TestApply_ApplyStatus(t *testing.T) {
	ctx := testSetup(t)
	tr := trace.New()
	if err := Apply(ctx, 2, types.ApplyStatusEffect{StatusID: "burning", Duration: 2, Stacks: 1}, tr); err != nil {
		t.Fatal(err)
	}
	sts, _ := ctx.World.Statuses(2)
	if len(sts) != 1 || sts[0].StatusID != "burning" {
		t.Errorf("statuses = %+v", sts)
	}
	if lines := tr.Lines(); len(lines) != 1 || lines[0] != "Status applied: [burning] for: [2] turns" {
		t.Errorf("trace = %q", lines)
	}
}

func TestApply_ApplyStatusUnknown(t *testing.T) {
	ctx := testSetup(t)
	tr := trace.New()
	err := Apply(ctx, 2, types.ApplyStatusEffect{StatusID: "frozen", Duration: 2, Stacks: 1}, tr)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if tr.Len() != 0 {
		t.Errorf("failed effect was traced: %q", tr.Lines())
	}
}

func TestApply_RemoveStatusByTag(t *testing.T) {
	ctx := testSetup(t)
	for _, id := range []string{"burning", "blessed"} {
		if err := ctx.World.AddStatus(ctx.Catalog, 2, id, 3, 1); err != nil {
			t.Fatal(err)
		}
	}
	tr := trace.New()
	if err := Apply(ctx, 2, types.RemoveStatusByTagEffect{Tag: "magic", MaxRemoved: 1}, tr); err != nil {
		t.Fatal(err)
	}
	sts, _ := ctx.World.Statuses(2)
	if len(sts) != 1 || sts[0].StatusID != "burning" {
		t.Errorf("statuses = %+v, want only burning", sts)
	}
	if lines := tr.Lines(); len(lines) != 1 || lines[0] != "Effect: Remove Status Tag =magic removed=1 target=2" {
		t.Errorf("trace = %q", lines)
	}
}

func TestApply_UnknownTarget(t *testing.T) {
	ctx := testSetup(t)
	effs := []types.Effect{
		types.DamageEffect{DamageType: types.Fire},
		types.HealEffect{},
		types.ApplyStatusEffect{StatusID: "burning", Duration: 1, Stacks: 1},
		types.RemoveStatusByTagEffect{Tag: "magic", MaxRemoved: 1},
	}
	for _, eff := range effs {
		if err := Apply(ctx, 99, eff, trace.New()); !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("Apply(%T) error = %v, want ErrNotFound", eff, err)
		}
	}
}

func TestApply_NilEffect(t *testing.T) {
	ctx := testSetup(t)
	if err := Apply(ctx, 2, nil, trace.New()); err == nil {
		t.Error("expected error for nil effect")
	}
}
