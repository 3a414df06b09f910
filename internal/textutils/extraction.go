// Package textutils extracts structured hints from free-text bank remittance data.
package textutils

import (
	"regexp"
	"strings"
)

// Labels that introduce the other party in unstructured remittance text.
var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)payment to:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)payment from:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)payee:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)b[ée]n[ée]ficiaire:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)recipient:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)donneur d'ordre:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)\bto:\s*([^,;]+)`),
	regexp.MustCompile(`(?i)\bfrom:\s*([^,;]+)`),
}

// Card and TWINT descriptions name the merchant after a preposition.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+on\s|$)`),
	regexp.MustCompile(`(?i)\bchez\s+(.+?)(?:\s+le\s|$)`),
	regexp.MustCompile(`(?i)aupr[èe]s de\s+(.+?)(?:\s+le\s|$)`),
}

// ExtractParty returns the party named by a "Payee:", "To:", "From:" style
// label in remittance text, or "" when none is present.
func ExtractParty(text string) string {
	for _, re := range partyPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if party := strings.TrimSpace(m[1]); party != "" {
				return party
			}
		}
	}
	return ""
}

// ExtractMerchant returns the merchant of a card or TWINT payment description.
func ExtractMerchant(description string) string {
	lower := strings.ToLower(description)
	if !strings.Contains(lower, "card") && !strings.Contains(lower, "twint") {
		return ""
	}
	for _, re := range merchantPatterns {
		if m := re.FindStringSubmatch(description); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Counterparty tries ExtractParty then ExtractMerchant.
func Counterparty(text string) string {
	if party := ExtractParty(text); party != "" {
		return party
	}
	return ExtractMerchant(text)
}
