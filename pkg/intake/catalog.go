package intake

import (
	"errors"
	"fmt"
)

// ErrNoAgreementTemplate is returned when no subscription agreement is on
// file for a submission's developer and utility pairing.
var ErrNoAgreementTemplate = errors.New("no agreement template for developer and utility")

// massMarketKey indexes the residential agreement inside a developer's
// template set.
const massMarketKey = "Mass Market"

// AgreementCatalog resolves the subscription agreement template for a
// submission.
type AgreementCatalog interface {
	Lookup(developer, utility, accountType string) (string, error)
}

// StaticCatalog is the built-in developer catalog: each developer maps
// utilities to agreement template filenames, with an optional mass market
// entry under the "Mass Market" key.
type StaticCatalog map[string]map[string]string

// DefaultCatalog returns the agreement templates currently in production.
func DefaultCatalog() StaticCatalog {
	return StaticCatalog{
		"Meadow Energy": {
			"National Grid": "Meadow-National-Grid-Commercial-UCB-Agreement.pdf",
			"NYSEG":         "Meadow-NYSEG-Commercial-UCB-Agreement.pdf",
			"RG&E":          "Meadow-RGE-Commercial-UCB-Agreement.pdf",
			massMarketKey:   "Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf",
		},
		"Solar Simplified": {
			massMarketKey: "Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf",
		},
	}
}

// Lookup picks the agreement for the developer's utility. Residential
// submissions take the developer's mass market agreement first; commercial
// submissions take the utility-specific agreement, falling back to the mass
// market one when the utility has no dedicated form.
func (c StaticCatalog) Lookup(developer, utility, accountType string) (string, error) {
	templates, ok := c[developer]
	if !ok {
		return "", fmt.Errorf("developer %q: %w", developer, ErrNoAgreementTemplate)
	}
	if accountType == AccountTypeMassMarket {
		if name, ok := templates[massMarketKey]; ok {
			return name, nil
		}
	}
	if name, ok := templates[utility]; ok {
		return name, nil
	}
	if name, ok := templates[massMarketKey]; ok {
		return name, nil
	}
	return "", fmt.Errorf("developer %q utility %q: %w", developer, utility, ErrNoAgreementTemplate)
}
