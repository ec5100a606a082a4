package schema

// Rule is one entry of the lint rule catalogue used for violation reports.
type Rule struct {
	Name            string `json:"rule"`
	Description     string `json:"description"`
	RuleRef         string `json:"rule_ref"`
	ExpectedPattern string `json:"expected_pattern,omitempty"`
}

// RuleSet is an ordered lint rule catalogue.
type RuleSet []Rule

// Lookup returns the rule with the given name.
func (rs RuleSet) Lookup(name string) (Rule, bool) {
	for _, r := range rs {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Names returns the rule names in catalogue order.
func (rs RuleSet) Names() []string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Name)
	}
	return names
}
