package checkout

import "strings"

// defaultRegulatedMedications are medication names subject to stricter
// dispensing rules. A selection matching any entry forces the controlled
// acknowledgment before checkout and a live encounter after payment.
var defaultRegulatedMedications = []string{
	"adderall",
	"alprazolam",
	"ambien",
	"amphetamine salts",
	"hydrocodone",
	"ketamine",
	"lorazepam",
	"oxycodone",
	"phentermine",
	"testosterone",
	"tramadol",
	"xanax",
	"zolpidem",
}

// ComplianceGate answers whether a medication selection triggers the
// regulated-dispensing rules.
type ComplianceGate struct {
	regulated map[string]struct{}
}

// NewComplianceGate builds a gate from the built-in regulated list plus any
// extra names from configuration. Matching is exact after normalization;
// fuzzy matching is deliberately not attempted.
func NewComplianceGate(extra []string) *ComplianceGate {
	regulated := make(map[string]struct{}, len(defaultRegulatedMedications)+len(extra))
	for _, name := range defaultRegulatedMedications {
		regulated[normalizeMedicationName(name)] = struct{}{}
	}
	for _, name := range extra {
		regulated[normalizeMedicationName(name)] = struct{}{}
	}
	return &ComplianceGate{regulated: regulated}
}

// IsRegulated reports whether a single medication name is in the regulated class.
func (g *ComplianceGate) IsRegulated(name string) bool {
	_, ok := g.regulated[normalizeMedicationName(name)]
	return ok
}

// HasRegulated reports whether any selected medication is regulated.
func (g *ComplianceGate) HasRegulated(names []string) bool {
	for _, name := range names {
		if g.IsRegulated(name) {
			return true
		}
	}
	return false
}

func normalizeMedicationName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
