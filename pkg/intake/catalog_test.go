package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookupCommercial(t *testing.T) {
	c := DefaultCatalog()

	got, err := c.Lookup("Meadow Energy", "National Grid", AccountTypeSmallDemand)
	require.NoError(t, err)
	assert.Equal(t, "Meadow-National-Grid-Commercial-UCB-Agreement.pdf", got)

	got, err = c.Lookup("Meadow Energy", "RG&E", AccountTypeLargeDemand)
	require.NoError(t, err)
	assert.Equal(t, "Meadow-RGE-Commercial-UCB-Agreement.pdf", got)
}

func TestCatalogLookupMassMarketBypassesUtility(t *testing.T) {
	c := DefaultCatalog()

	// Residential accounts take the mass market agreement even when the
	// utility has a dedicated commercial form.
	got, err := c.Lookup("Meadow Energy", "National Grid", AccountTypeMassMarket)
	require.NoError(t, err)
	assert.Equal(t, "Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf", got)
}

func TestCatalogLookupFallsBackToMassMarket(t *testing.T) {
	c := DefaultCatalog()

	// A commercial account on a utility with no dedicated form still gets
	// the developer's mass market agreement.
	got, err := c.Lookup("Meadow Energy", "Central Hudson", AccountTypeSmallDemand)
	require.NoError(t, err)
	assert.Equal(t, "Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf", got)

	got, err = c.Lookup("Solar Simplified", "NYSEG", AccountTypeSmallDemand)
	require.NoError(t, err)
	assert.Equal(t, "Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf", got)
}

func TestCatalogLookupUnknownDeveloper(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Lookup("Unknown Solar Co", "National Grid", AccountTypeSmallDemand)
	assert.ErrorIs(t, err, ErrNoAgreementTemplate)
}

func TestCatalogLookupNoTemplates(t *testing.T) {
	c := StaticCatalog{"Bare Developer": {}}
	_, err := c.Lookup("Bare Developer", "National Grid", AccountTypeMassMarket)
	assert.ErrorIs(t, err, ErrNoAgreementTemplate)
}
