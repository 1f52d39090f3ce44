// Package intake turns customer submissions and their OCR-extracted utility
// bill data into filled agreement documents. It selects the documents a
// submission needs, binds field values for each one, and drives the pdffill
// engine to produce the output PDFs.
package intake

// Account types as they appear on the intake form.
const (
	AccountTypeSmallDemand = "Small Demand <25 KW"
	AccountTypeLargeDemand = "Large Demand >25 KW"
	AccountTypeMassMarket  = "Mass Market [Residential]"
)

// Documents every submission run can produce.
const (
	DefaultPOATemplate    = "GreenWattUSA_Limited_Power_of_Attorney.pdf"
	DefaultAgencyTemplate = "GreenWATT-USA-Inc-Communtiy-Solar-Agency-Agreement.pdf"
)

// Submission is the intake form payload. The minted identifiers are filled
// in during processing and are empty on arrival.
type Submission struct {
	AccountName       string `json:"account_name"`
	BusinessEntity    string `json:"business_entity"`
	ContactName       string `json:"contact_name"`
	Title             string `json:"title"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	ServiceAddresses  string `json:"service_addresses"`
	UtilityProvider   string `json:"utility_provider"`
	POID              string `json:"poid"`
	AccountType       string `json:"account_type"`
	DeveloperAssigned string `json:"developer_assigned"`
	AgentID           string `json:"agent_id"`
	Attention         string `json:"attention"`

	SubmissionID        string `json:"submission_id,omitempty"`
	POAID               string `json:"poa_id,omitempty"`
	GenerationTimestamp string `json:"generation_timestamp,omitempty"`
}

// OCRFields is what the bill scanner extracted from the uploaded utility
// bill. Every field may be empty; the binder falls back to submission data.
type OCRFields struct {
	UtilityName    string `json:"utility_name"`
	CustomerName   string `json:"customer_name"`
	AccountNumber  string `json:"account_number"`
	POID           string `json:"poid"`
	MonthlyUsage   string `json:"monthly_usage"`
	AnnualUsage    string `json:"annual_usage"`
	ServiceAddress string `json:"service_address"`
}
