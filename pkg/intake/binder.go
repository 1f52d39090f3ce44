package intake

import (
	"github.com/greenwatt/intake/pkg/anchor"
	"github.com/greenwatt/intake/pkg/pdffill"
)

// minted holds the per-run values that do not come from the submission or
// the bill: generated identifiers and dates.
type minted struct {
	submissionID string
	poaID        string
	generatedAt  string
	today        string
}

// bindingRule produces the drawn value for one registry field.
type bindingRule func(sub *Submission, ocr OCRFields, m minted) pdffill.Field

func text(s string) pdffill.Field      { return pdffill.Field{Text: s} }
func signature(s string) pdffill.Field { return pdffill.Field{Text: s, Signature: true} }

// Shared source policies. The bill scan is the authority for what the
// utility actually has on file, so OCR wins for utility-side values; the
// agent-entered submission is the authority for the legal entity and
// contact details.
func boundAccountName(sub *Submission) string {
	return firstNonEmpty(sub.AccountName, sub.BusinessEntity)
}

func boundServiceAddress(sub *Submission, ocr OCRFields) string {
	return firstNonEmpty(ocr.ServiceAddress, sub.ServiceAddresses)
}

func boundUtility(sub *Submission, ocr OCRFields) string {
	return firstNonEmpty(ocr.UtilityName, sub.UtilityProvider)
}

func boundAccountNumber(sub *Submission, ocr OCRFields) string {
	return firstNonEmpty(ocr.AccountNumber, sub.POID)
}

// bindingRules maps every registry field name to its value source. Field
// names are unique across templates except where two templates share the
// exact same semantics, so one flat table covers all of them.
var bindingRules = map[string]bindingRule{
	// Power of attorney, page 1.
	"customer_name_page1": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountName(sub))
	},
	"service_address_page1": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundServiceAddress(sub, ocr))
	},
	"utility_provider_page1": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundUtility(sub, ocr))
	},
	"utility_account_page1": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountNumber(sub, ocr))
	},
	"email": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Email)
	},
	"submission_id": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(m.submissionID)
	},
	"poa_id": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(m.poaID)
	},
	"generation_timestamp": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(m.generatedAt)
	},

	// Shared signature block.
	"customer_signature": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return signature(sub.ContactName)
	},
	"printed_name": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.ContactName)
	},
	"date_signed": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(m.today)
	},
	"title": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Title)
	},

	// Commercial subscription agreement.
	"effective_date": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(m.today)
	},
	"agreement_business_name": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountName(sub))
	},
	"subscriber_attention": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(firstNonEmpty(sub.Attention, sub.ContactName))
	},
	"subscriber_business_name": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountName(sub))
	},
	"subscriber_address": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundServiceAddress(sub, ocr))
	},
	"subscriber_email": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Email)
	},
	"subscriber_phone": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Phone)
	},

	// Exhibit 1 utility account row, same sources as the single-value
	// fields above.
	"exhibit_utility": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundUtility(sub, ocr))
	},
	"exhibit_account_name": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountName(sub))
	},
	"exhibit_account_number": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountNumber(sub, ocr))
	},
	"exhibit_service_address": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundServiceAddress(sub, ocr))
	},

	// Mass market agreement customer block.
	"customer_info_name": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(firstNonEmpty(sub.ContactName, sub.AccountName))
	},
	"customer_info_address": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		street, _, _, _ := parseAddressParts(boundServiceAddress(sub, ocr))
		return text(street)
	},
	"customer_info_city": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		_, city, _, _ := parseAddressParts(boundServiceAddress(sub, ocr))
		return text(city)
	},
	"customer_info_state": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		_, _, state, _ := parseAddressParts(boundServiceAddress(sub, ocr))
		return text(state)
	},
	"customer_info_zip": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		_, _, _, zip := parseAddressParts(boundServiceAddress(sub, ocr))
		return text(zip)
	},
	"customer_info_phone": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Phone)
	},
	"customer_info_email": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(sub.Email)
	},
	"distribution_utility": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundUtility(sub, ocr))
	},
	"distribution_account_number": func(sub *Submission, ocr OCRFields, m minted) pdffill.Field {
		return text(boundAccountNumber(sub, ocr))
	},
}

// bindFields evaluates the binding rules for every field the template's
// anchor set names. Fields with no rule or an empty value are left out, so
// the engine never draws blanks.
func bindFields(anchors map[string]anchor.Descriptor, sub *Submission, ocr OCRFields, m minted) map[string]pdffill.Field {
	values := make(map[string]pdffill.Field, len(anchors))
	for name := range anchors {
		rule, ok := bindingRules[name]
		if !ok {
			continue
		}
		f := rule(sub, ocr, m)
		if f.Text == "" {
			continue
		}
		values[name] = f
	}
	return values
}
