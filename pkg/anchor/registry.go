package anchor

// Built-in registries for the three template families. Offsets were tuned
// against the template revisions named in templateAnchors; when a template
// is re-issued the numbers change, the mechanism does not.

// Power of Attorney: customer info on page 1, signature block on page 2,
// and three stacked identifier lines beneath the phone-number label.
var poaAnchors = map[string]Descriptor{
	"customer_name_page1":    {Anchor: "Customer Name:", DX: 120, DY: -2},
	"service_address_page1":  {Anchor: "Service Address:", DX: 130, DY: -2},
	"utility_provider_page1": {Anchor: "Utility Provider:", DX: 140, DY: -2},
	"utility_account_page1":  {Anchor: "Utility Account Number:", DX: 190, DY: -2},

	"customer_signature": {Anchor: "Customer Signature:", DX: 150, DY: -2},
	"printed_name":       {Anchor: "Printed Name:", DX: 100, DY: -2},
	"date_signed":        {Anchor: "Date:", DX: 50, DY: -2},
	"email":              {Anchor: "Email Address:", DX: 120, DY: -2},

	"submission_id":        {Anchor: "Phone Number:", DX: 0, DY: 14, FontSize: 8},
	"poa_id":               {Anchor: "Phone Number:", DX: 0, DY: 26, FontSize: 8},
	"generation_timestamp": {Anchor: "Phone Number:", DX: 0, DY: 38, FontSize: 8},
}

// Commercial UCB agreements (National Grid, NYSEG and RG&E variants share a
// layout). The signature block must land under the SUBSCRIBER heading, not
// under SOLAR PRODUCER, hence the second-match preference. The subscriber
// block on page 7 is a pre-printed table with no usable anchor text nearby,
// so those fields are pinned to absolute coordinates. The Exhibit 1 row
// lives on the second-to-last page regardless of the template's total page
// count.
var ucbCommercialAnchors = map[string]Descriptor{
	"effective_date":          {Anchor: "Effective Date", DX: 78, DY: -2},
	"agreement_business_name": {Anchor: "by and between", DX: 72, DY: -2},

	"subscriber_attention":     {Fixed: true, Page: 6, X: 148.9, Y: 238.2},
	"subscriber_business_name": {Fixed: true, Page: 6, X: 148.9, Y: 257.4},
	"subscriber_address":       {Fixed: true, Page: 6, X: 148.9, Y: 276.6},
	"subscriber_email":         {Fixed: true, Page: 6, X: 148.9, Y: 295.8},
	"subscriber_phone":         {Fixed: true, Page: 6, X: 148.9, Y: 315.0},

	"customer_signature": {Anchor: "By:", Context: "SUBSCRIBER:", ContextPreference: PreferSecond, DX: 60, DY: 15},
	"printed_name":       {Anchor: "Name:", Context: "SUBSCRIBER:", ContextPreference: PreferSecond, DX: 60, DY: 15},
	"title":              {Anchor: "Title:", Context: "SUBSCRIBER:", ContextPreference: PreferSecond, DX: 60, DY: 15},

	"exhibit_utility":         {Anchor: "Utility Company", PageHint: -2, DX: 0, DY: 18, FontSize: 8},
	"exhibit_account_name":    {Anchor: "Name on Utility Account", PageHint: -2, DX: 0, DY: 18, FontSize: 8},
	"exhibit_account_number":  {Anchor: "Utility Account Number", PageHint: -2, DX: 0, DY: 18, FontSize: 8},
	"exhibit_service_address": {Anchor: "Service Address", PageHint: -2, DX: 0, DY: 18, FontSize: 7},
}

// Mass-Market (residential) subscription agreement: customer-information and
// distribution-utility boxes on page 1, signature and the second Date: on
// page 2.
var massMarketAnchors = map[string]Descriptor{
	"customer_info_name":    {Anchor: "Customer", DX: 12, DY: 16},
	"customer_info_address": {Anchor: "Customer", DX: 12, DY: 31},
	"customer_info_city":    {Anchor: "Customer", DX: 12, DY: 46},
	"customer_info_state":   {Anchor: "Customer", DX: 150, DY: 46},
	"customer_info_zip":     {Anchor: "Customer", DX: 205, DY: 46},
	"customer_info_phone":   {Anchor: "Customer", DX: 12, DY: 61},
	"customer_info_email":   {Anchor: "Customer", DX: 12, DY: 76},

	"distribution_utility":        {Anchor: "Distribution", DX: 12, DY: 16},
	"distribution_account_number": {Anchor: "Distribution", DX: 12, DY: 31},

	"customer_signature": {Anchor: "Signature of Subscriber:", DX: 160, DY: -2},
	"date_signed":        {Anchor: "Date:", ContextPreference: PreferSecond, DX: 45, DY: -2},
}

var templateAnchors = map[string]map[string]Descriptor{
	"GreenWattUSA_Limited_Power_of_Attorney.pdf":                        poaAnchors,
	"Meadow-National-Grid-Commercial-UCB-Agreement.pdf":                 ucbCommercialAnchors,
	"Meadow-NYSEG-Commercial-UCB-Agreement.pdf":                         ucbCommercialAnchors,
	"Meadow-RGE-Commercial-UCB-Agreement.pdf":                           ucbCommercialAnchors,
	"Form-Subscription-Agreement-Mass Market UCB-Meadow-January 2023-002.pdf": massMarketAnchors,
	// The agency agreement shares the commercial signature-block layout.
	"GreenWATT-USA-Inc-Communtiy-Solar-Agency-Agreement.pdf": ucbCommercialAnchors,
}

// Registry maps template filenames to their field descriptors. It is built
// once at startup and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	templates map[string]map[string]Descriptor
}

// NewRegistry returns the built-in registry.
func NewRegistry() *Registry {
	templates := make(map[string]map[string]Descriptor, len(templateAnchors))
	for name, fields := range templateAnchors {
		copied := make(map[string]Descriptor, len(fields))
		for f, d := range fields {
			copied[f] = d
		}
		templates[name] = copied
	}
	return &Registry{templates: templates}
}

// ForTemplate returns the field descriptors for a template filename.
// The returned map is a copy; callers may not mutate registry state.
func (r *Registry) ForTemplate(filename string) (map[string]Descriptor, bool) {
	fields, ok := r.templates[filename]
	if !ok {
		return nil, false
	}
	copied := make(map[string]Descriptor, len(fields))
	for f, d := range fields {
		copied[f] = d
	}
	return copied, true
}

// Templates lists the template filenames the registry knows about.
func (r *Registry) Templates() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
