package model

// RuleInfo is one entry of the effective rule set as shown to the user.
type RuleInfo struct {
	Name    string
	Enabled bool
	// Custom is true for rules executed by this tool; the others are
	// carried for the host formatter only.
	Custom   bool
	Risky    bool
	Priority int
	Options  map[string]any
}

// RuleOption documents one configuration option of a rule.
type RuleOption struct {
	Name        string
	Description string
	Allowed     []string
	Default     string
}

// RuleSample is a documented code sample and the diff the rule produces on it.
type RuleSample struct {
	Code    string
	Options map[string]any
	Diff    string
}

// RuleDescription is the full documentation of a custom rule.
type RuleDescription struct {
	Name             string
	Summary          string
	Description      string
	Risky            bool
	RiskyDescription string
	Priority         int
	Options          []RuleOption
	Samples          []RuleSample
}
