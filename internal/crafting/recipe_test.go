package crafting

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

func TestIsEligible(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stock    map[domain.ItemKey]int
		levels   map[string]int
		expected bool
	}{
		{
			name:     "all items held",
			stock:    map[domain.ItemKey]int{keyHerb: 2, keyWater: 1, keyKettle: 1},
			levels:   map[string]int{"Alchemy": 1},
			expected: true,
		},
		{
			name:     "one ingredient short",
			stock:    map[domain.ItemKey]int{keyHerb: 1, keyWater: 1, keyKettle: 1},
			levels:   map[string]int{"Alchemy": 1},
			expected: false,
		},
		{
			name:     "tool missing",
			stock:    map[domain.ItemKey]int{keyHerb: 2, keyWater: 1},
			levels:   map[string]int{"Alchemy": 1},
			expected: false,
		},
		{
			name:     "level too low",
			stock:    map[domain.ItemKey]int{keyHerb: 2, keyWater: 1, keyKettle: 1},
			levels:   map[string]int{"Alchemy": 0},
			expected: false,
		},
		{
			name:     "category unknown to professions",
			stock:    map[domain.ItemKey]int{keyHerb: 2, keyWater: 1, keyKettle: 1},
			levels:   map[string]int{"Smithing": 99},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture(potionDef())
			f.inv = newFakeInventory(tt.stock)
			f.registry.env.Inventory = f.inv
			f.professions.levels = tt.levels

			assert.Equal(t, tt.expected, f.recipe("Potion").IsEligible(ctx))
		})
	}
}

func TestIsEligible_NoProfessionSystemSkipsLevelGate(t *testing.T) {
	def := swordDef()
	def.RequiredLevel = 50

	registry, err := NewRegistry([]domain.RecipeDefinition{def}, Environment{
		Inventory: newFakeInventory(map[domain.ItemKey]int{keyIron: 3, keyHammer: 1}),
	})
	require.NoError(t, err)
	registry.Initialize(context.Background(), false)

	recipe, _ := registry.FindByName("Iron Sword")
	assert.True(t, recipe.IsEligible(context.Background()))
}

func TestIsEligible_SkipsItemsTheCatalogCannotResolve(t *testing.T) {
	ctx := context.Background()
	catalog := mapCatalog{
		keyHerb:   {Key: keyHerb, Name: "Herb"},
		keyKettle: {Key: keyKettle, Name: "Kettle"},
		// water is not in the catalog
	}

	registry, err := NewRegistry([]domain.RecipeDefinition{potionDef()}, Environment{
		Inventory: newFakeInventory(map[domain.ItemKey]int{keyHerb: 2, keyKettle: 1}),
		Catalog:   catalog,
	})
	require.NoError(t, err)
	registry.Initialize(ctx, false)

	recipe, _ := registry.FindByName("Potion")
	assert.True(t, recipe.IsEligible(ctx), "unresolvable water must not block the craft")
}

func TestIsEligible_HasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	recipe := f.recipe("Potion")

	before := f.inv.QuantityOf(keyHerb)
	for i := 0; i < 3; i++ {
		recipe.IsEligible(ctx)
	}

	assert.Equal(t, before, f.inv.QuantityOf(keyHerb))
	assert.Zero(t, f.random.calls)
	assert.Equal(t, 0, recipe.State().TimesCrafted)
}

func TestResolveCraft_SuccessRate100NeverFails(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	f.random.values = []float64{0.999999999}
	f.inv.Add(keyHerb, 1000)
	f.inv.Add(keyWater, 1000)

	for i := 0; i < 100; i++ {
		result, err := f.recipe("Potion").ResolveCraft(ctx)
		require.NoError(t, err)
		assert.True(t, result.Succeeded)
	}
}

func TestResolveCraft_SuccessRate1IsAboutOnePercent(t *testing.T) {
	ctx := context.Background()

	def := potionDef()
	def.SuccessRate = 1
	def.Tools = nil
	def.Ingredients = nil

	registry, err := NewRegistry([]domain.RecipeDefinition{def}, Environment{
		Inventory: newFakeInventory(nil),
		Random:    NewSeededRandomSource(20240601),
	})
	require.NoError(t, err)
	registry.Initialize(ctx, false)
	recipe, _ := registry.FindByName("Potion")

	const trials = 10000
	successes := 0
	for i := 0; i < trials; i++ {
		result, err := recipe.ResolveCraft(ctx)
		require.NoError(t, err)
		if result.Succeeded {
			successes++
		}
	}

	// Binomial(10000, 0.01): mean 100, sd ~10. Four sigma either side.
	assert.InDelta(t, 100, successes, 40)
	assert.Equal(t, successes, recipe.State().TimesCrafted)
}

func TestResolveCraft_DecrementsIngredientsButNeverTools(t *testing.T) {
	ctx := context.Background()

	for _, roll := range []float64{0.0, 0.99} {
		f := newTestFixture()
		recipe := f.recipe("Potion")
		recipe.def.SuccessRate = 50
		f.random.values = []float64{roll, 0.5}

		_, err := recipe.ResolveCraft(ctx)
		require.NoError(t, err)

		assert.Equal(t, 8, f.inv.QuantityOf(keyHerb), "roll %v", roll)
		assert.Equal(t, 4, f.inv.QuantityOf(keyWater), "roll %v", roll)
		assert.Equal(t, 1, f.inv.QuantityOf(keyKettle), "roll %v", roll)
	}
}

func TestResolveCraft_CounterOnlyCountsSuccesses(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	recipe := f.recipe("Potion")
	recipe.def.SuccessRate = 50

	// success, failure (second draw is the failure time), success
	f.random.values = []float64{0.1, 0.9, 0.3, 0.2}

	r1, err := recipe.ResolveCraft(ctx)
	require.NoError(t, err)
	assert.True(t, r1.Succeeded)
	assert.Equal(t, 1, recipe.State().TimesCrafted)

	r2, err := recipe.ResolveCraft(ctx)
	require.NoError(t, err)
	assert.False(t, r2.Succeeded)
	assert.Equal(t, 1, recipe.State().TimesCrafted)

	r3, err := recipe.ResolveCraft(ctx)
	require.NoError(t, err)
	assert.True(t, r3.Succeeded)
	assert.Equal(t, 2, recipe.State().TimesCrafted)
}

func TestResolveCraft_FailureTimeWithinLowerHalf(t *testing.T) {
	ctx := context.Background()

	for _, r2 := range []float64{0, 0.25, 0.5, 0.999999, math.Nextafter(1, 0)} {
		f := newTestFixture()
		recipe := f.recipe("Potion")
		recipe.def.SuccessRate = 1
		f.random.values = []float64{0.5, r2}

		result, err := recipe.ResolveCraft(ctx)
		require.NoError(t, err)
		require.False(t, result.Succeeded)

		d := float64(recipe.def.CraftDuration)
		assert.Equal(t, d, result.ExpectedDuration)
		assert.GreaterOrEqual(t, result.ActualResolutionTime, d/2)
		assert.Less(t, result.ActualResolutionTime, d)
		assert.InDelta(t, d/2+r2*d/2, result.ActualResolutionTime, 1e-9)
	}
}

func TestResolveCraft_FailureTimeNeverRoundsUpToDuration(t *testing.T) {
	for _, duration := range []int{1, 3, 120, 7919} {
		f := newTestFixture()
		recipe := f.recipe("Potion")
		recipe.def.SuccessRate = 1
		recipe.def.CraftDuration = duration
		f.random.values = []float64{0.5, math.Nextafter(1, 0)}

		result, err := recipe.ResolveCraft(context.Background())
		require.NoError(t, err)
		require.False(t, result.Succeeded)
		assert.Less(t, result.ActualResolutionTime, float64(duration), "duration %d", duration)
	}
}

func TestResolveCraft_SuccessTimeIsFullDuration(t *testing.T) {
	f := newTestFixture()
	result, err := f.recipe("Potion").ResolveCraft(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, 120.0, result.ActualResolutionTime)
	assert.Equal(t, result.ExpectedDuration, result.ActualResolutionTime)
}

func TestResolveCraft_RewardsAddedImmediately(t *testing.T) {
	ctx := context.Background()

	t.Run("success gives products", func(t *testing.T) {
		f := newTestFixture()
		result, err := f.recipe("Potion").ResolveCraft(ctx)
		require.NoError(t, err)

		assert.Equal(t, []domain.ItemRequirement{req(keyPotion, 1)}, result.Rewards)
		assert.Equal(t, 1, f.inv.QuantityOf(keyPotion))
		assert.Equal(t, 0, f.inv.QuantityOf(keySludge))
	})

	t.Run("failure gives fail products", func(t *testing.T) {
		f := newTestFixture()
		recipe := f.recipe("Potion")
		recipe.def.SuccessRate = 10
		f.random.values = []float64{0.5, 0.5}

		result, err := recipe.ResolveCraft(ctx)
		require.NoError(t, err)

		assert.Equal(t, []domain.ItemRequirement{req(keySludge, 1)}, result.Rewards)
		assert.Equal(t, 0, f.inv.QuantityOf(keyPotion))
		assert.Equal(t, 1, f.inv.QuantityOf(keySludge))
	})

	t.Run("failure without fail products yields nothing", func(t *testing.T) {
		f := newTestFixture()
		recipe := f.recipe("Potion")
		recipe.def.SuccessRate = 10
		recipe.def.FailProducts = nil
		f.random.values = []float64{0.5, 0.5}

		result, err := recipe.ResolveCraft(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.Rewards)
	})
}

func TestResolveCraft_NotEligibleHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	f.inv.Remove(keyHerb, 9) // one left, two needed
	recipe := f.recipe("Potion")

	result, err := recipe.ResolveCraft(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.Nil(t, result)
	assert.Equal(t, 1, f.inv.QuantityOf(keyHerb))
	assert.Equal(t, 5, f.inv.QuantityOf(keyWater))
	assert.Equal(t, 0, recipe.State().TimesCrafted)
	assert.Zero(t, f.random.calls)
	assert.Empty(t, f.professions.awards)
}

func TestResolveCraft_Experience(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		roll        float64
		alwaysAward bool
		expected    []award
	}{
		{"success awards", 0.1, false, []award{{"Alchemy", 5}}},
		{"failure awards nothing by default", 0.9, false, nil},
		{"failure awards when always-award is set", 0.9, true, []award{{"Alchemy", 5}}},
		{"success with always-award awards once", 0.1, true, []award{{"Alchemy", 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture()
			f.registry.env.AlwaysAwardExperience = tt.alwaysAward
			recipe := f.recipe("Potion")
			recipe.def.SuccessRate = 50
			f.random.values = []float64{tt.roll, 0.5}

			_, err := recipe.ResolveCraft(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.professions.awards)
		})
	}
}

// Recipe: rate 100, ingredient item 1 x2, product item 5 x1
func scenarioRecipe(stock int) (*Recipe, *fakeInventory) {
	def := domain.RecipeDefinition{
		Name:          "Scenario",
		SuccessRate:   100,
		CraftDuration: 120,
		Ingredients:   []domain.ItemRequirement{req(domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}, 2)},
		Products:      []domain.ItemRequirement{req(domain.ItemKey{Type: domain.ItemTypeGood, ID: 5}, 1)},
	}
	inv := newFakeInventory(map[domain.ItemKey]int{{Type: domain.ItemTypeGood, ID: 1}: stock})
	registry, err := NewRegistry([]domain.RecipeDefinition{def}, Environment{Inventory: inv})
	if err != nil {
		panic(err)
	}
	registry.Initialize(context.Background(), false)
	recipe, _ := registry.FindByName("Scenario")
	return recipe, inv
}

func TestScenario_EnoughIngredients(t *testing.T) {
	ctx := context.Background()
	recipe, inv := scenarioRecipe(3)

	require.True(t, recipe.IsEligible(ctx))

	result, err := recipe.ResolveCraft(ctx)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, 1, inv.QuantityOf(domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}))
	assert.Equal(t, 1, inv.QuantityOf(domain.ItemKey{Type: domain.ItemTypeGood, ID: 5}))
	assert.Equal(t, 1, recipe.State().TimesCrafted)
}

func TestScenario_NotEnoughIngredients(t *testing.T) {
	ctx := context.Background()
	recipe, inv := scenarioRecipe(1)

	assert.False(t, recipe.IsEligible(ctx))

	_, err := recipe.ResolveCraft(ctx)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.Equal(t, 1, inv.QuantityOf(domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}))
	assert.Equal(t, 0, inv.QuantityOf(domain.ItemKey{Type: domain.ItemTypeGood, ID: 5}))
	assert.Equal(t, 0, recipe.State().TimesCrafted)
}

func TestMarkDiscovered_NotifiesOnce(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(potionDef())
	recipe := f.recipe("Potion")
	require.False(t, recipe.State().Discovered)

	recipe.MarkDiscovered(ctx)
	recipe.MarkDiscovered(ctx)

	assert.True(t, recipe.State().Discovered)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "Potion", f.notifier.calls[0].recipe)
	assert.Equal(t, "Book", f.notifier.calls[0].cue.Name)
}

func TestSetDiscovered_IsSilent(t *testing.T) {
	f := newTestFixture(potionDef())
	recipe := f.recipe("Potion")

	recipe.SetDiscovered(true)
	assert.True(t, recipe.State().Discovered)
	recipe.SetDiscovered(false)
	assert.False(t, recipe.State().Discovered)

	assert.Empty(t, f.notifier.calls)
}

func TestMarkDiscovered_AfterSilentForgetNotifiesAgain(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(potionDef())
	recipe := f.recipe("Potion")

	recipe.MarkDiscovered(ctx)
	recipe.SetDiscovered(false)
	recipe.MarkDiscovered(ctx)

	assert.Len(t, f.notifier.calls, 2)
}

func TestProgress(t *testing.T) {
	f := newTestFixture()
	recipe := f.recipe("Potion") // 120 ticks

	assert.Equal(t, 0.0, recipe.Progress(-5))
	assert.Equal(t, 0.0, recipe.Progress(0))
	assert.InDelta(t, 0.5, recipe.Progress(60), 1e-9)
	assert.Equal(t, 1.0, recipe.Progress(120))
	assert.Equal(t, 1.0, recipe.Progress(500))
}

func TestDefinitionDefaultsToUndiscovered(t *testing.T) {
	f := newTestFixture(potionDef())
	assert.Equal(t, domain.RecipeState{}, f.recipe("Potion").State())
}
