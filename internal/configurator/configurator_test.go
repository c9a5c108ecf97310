package configurator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/configurator"
	"github.com/tricast360/tricast360-server/internal/storage"
)

func advanceTo(t *testing.T, c *configurator.Configurator, target configurator.Step) {
	t.Helper()
	for c.Step() < target {
		require.NoError(t, c.Next())
	}
}

func TestConfigurator_Defaults(t *testing.T) {
	c := configurator.New(catalog.Default())

	assert.Equal(t, configurator.StepSelectSet, c.Step())
	// a set is pre-selected, so step 1 is always valid in practice
	assert.True(t, c.IsStepValid(configurator.StepSelectSet))
	assert.Equal(t, 399.0, c.Total())
}

func TestConfigurator_LinearAdvance(t *testing.T) {
	c := configurator.New(catalog.Default())

	advanceTo(t, c, configurator.StepSummary)
	assert.Equal(t, configurator.StepSummary, c.Step())

	err := c.Next()
	assert.ErrorIs(t, err, configurator.ErrAtLastStep)
}

func TestConfigurator_InvalidQuantityBlocksAdvance(t *testing.T) {
	tests := []struct {
		name   string
		custom string
	}{
		{name: "non_numeric", custom: "viele"},
		{name: "zero", custom: "0"},
		{name: "negative", custom: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := configurator.New(catalog.Default())
			advanceTo(t, c, configurator.StepSelectQuantity)

			c.SetCustomQuantity(tt.custom)
			assert.False(t, c.IsStepValid(configurator.StepSelectQuantity))

			err := c.Next()
			assert.ErrorIs(t, err, configurator.ErrStepInvalid)
			assert.Equal(t, configurator.StepSelectQuantity, c.Step())

			// clearing the free text unblocks the step via the preset
			c.SetCustomQuantity("")
			assert.NoError(t, c.Next())
		})
	}
}

func TestConfigurator_BackKeepsLaterSelections(t *testing.T) {
	c := configurator.New(catalog.Default())

	require.NoError(t, c.SelectSet("set-m"))
	advanceTo(t, c, configurator.StepSelectPanel)
	require.NoError(t, c.SelectPanel("werbetafel-m"))
	advanceTo(t, c, configurator.StepSelectQuantity)
	require.NoError(t, c.SetQuantity(3))

	require.NoError(t, c.Back())
	require.NoError(t, c.Back())
	assert.Equal(t, configurator.StepSelectAddOns, c.Step())

	sel := c.Selection()
	assert.Equal(t, "werbetafel-m", sel.WerbetafelID)
	assert.Equal(t, 3, sel.Quantity)

	err := c.Back()
	require.NoError(t, err)
	assert.ErrorIs(t, c.Back(), configurator.ErrAtFirstStep)
}

func TestConfigurator_ToggleAddOn(t *testing.T) {
	c := configurator.New(catalog.Default())

	require.NoError(t, c.ToggleAddOn("verstarkung"))
	assert.Equal(t, []string{"verstarkung"}, c.Selection().AddOnIDs)

	require.NoError(t, c.ToggleAddOn("farboption"))
	assert.Equal(t, []string{"verstarkung", "farboption"}, c.Selection().AddOnIDs)

	require.NoError(t, c.ToggleAddOn("verstarkung"))
	assert.Equal(t, []string{"farboption"}, c.Selection().AddOnIDs)

	assert.ErrorIs(t, c.ToggleAddOn("beleuchtung"), catalog.ErrAddOnNotFound)
}

func TestConfigurator_TotalRecomputesOnMutation(t *testing.T) {
	c := configurator.New(catalog.Default())

	require.NoError(t, c.SelectSet("set-m"))
	assert.Equal(t, 559.0, c.Total())

	require.NoError(t, c.ToggleAddOn("verstarkung"))
	assert.Equal(t, 609.0, c.Total())

	require.NoError(t, c.SelectPanel("werbetafel-m"))
	assert.Equal(t, 648.0, c.Total())

	require.NoError(t, c.SetQuantity(3))
	assert.Equal(t, 1944.0, c.Total())

	// free text overrides the preset
	c.SetCustomQuantity("10")
	assert.Equal(t, 6480.0, c.Total())
}

func TestConfigurator_CommitOnlyAtSummary(t *testing.T) {
	c := configurator.New(catalog.Default())

	_, err := c.Commit()
	assert.ErrorIs(t, err, configurator.ErrNotAtSummary)
}

func TestConfigurator_CommitDraft(t *testing.T) {
	c := configurator.New(catalog.Default())

	require.NoError(t, c.SelectSet("set-m"))
	require.NoError(t, c.ToggleAddOn("verstarkung"))
	require.NoError(t, c.SelectPanel("werbetafel-m"))
	require.NoError(t, c.SetQuantity(3))
	c.SetDesignUpload(true)
	advanceTo(t, c, configurator.StepSummary)

	d, err := c.Commit()
	require.NoError(t, err)

	assert.Equal(t, configurator.DraftSchemaVersion, d.SchemaVersion)
	assert.Equal(t, "set-m", d.SetID)
	assert.Equal(t, "Set M (7er Set)", d.SetName)
	assert.Equal(t, "32cm", d.Diameter)
	assert.Equal(t, 7, d.Modules)
	assert.Equal(t, 559.0, d.BasePrice)
	require.Len(t, d.AddOns, 1)
	assert.Equal(t, 50.0, d.AddOns[0].Price)
	require.NotNil(t, d.Werbetafel)
	assert.Equal(t, 39.0, d.Werbetafel.Price)
	assert.Equal(t, 3, d.Quantity)
	assert.True(t, d.HasDesignUpload)
	assert.Equal(t, 1944.0, d.TotalPrice)
}

func TestConfigurator_CommitNoPanelIsNil(t *testing.T) {
	c := configurator.New(catalog.Default())
	advanceTo(t, c, configurator.StepSummary)

	d, err := c.Commit()
	require.NoError(t, err)

	assert.Nil(t, d.Werbetafel)
	assert.Equal(t, 399.0, d.TotalPrice)
}

func TestDraft_SaveLoadOverwrite(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := configurator.LoadDraft(store)
	assert.ErrorIs(t, err, storage.ErrSlotEmpty)

	first := &configurator.Draft{SchemaVersion: 1, SetID: "set-s", SetName: "Set S (5er Set)", Quantity: 1, TotalPrice: 399}
	require.NoError(t, configurator.SaveDraft(store, first))

	second := &configurator.Draft{SchemaVersion: 1, SetID: "set-l", SetName: "Set L (9er Set)", Quantity: 2, TotalPrice: 1398}
	require.NoError(t, configurator.SaveDraft(store, second))

	got, err := configurator.LoadDraft(store)
	require.NoError(t, err)
	assert.Equal(t, "set-l", got.SetID)

	require.NoError(t, configurator.ClearDraft(store))
	_, err = configurator.LoadDraft(store)
	assert.ErrorIs(t, err, storage.ErrSlotEmpty)
}

func TestDraft_UnsupportedVersionRejected(t *testing.T) {
	store := storage.NewMemoryStore()

	future := &configurator.Draft{SchemaVersion: configurator.DraftSchemaVersion + 1, SetID: "set-s"}
	require.NoError(t, configurator.SaveDraft(store, future))

	_, err := configurator.LoadDraft(store)
	assert.ErrorIs(t, err, configurator.ErrDraftVersion)
}
