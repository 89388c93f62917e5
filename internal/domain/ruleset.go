package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"csrules.dev/pkg/csrules/internal/domain/fixers"
	m "csrules.dev/pkg/csrules/internal/model"
)

// Rule is one rule-set entry. Value is a bool (enabled or disabled) or an
// option map, which also enables the rule.
type Rule struct {
	Name  string
	Value any
}

// RuleSet is an ordered rule-name to configuration map.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a rule set keeping the given order. A later duplicate
// replaces the value of an earlier one.
func NewRuleSet(rules ...Rule) RuleSet {
	var rs RuleSet

	for _, rule := range rules {
		rs = rs.with(rule.Name, rule.Value)
	}

	return rs
}

// DefaultRules returns the shared rule set: the declarative rules handed to
// the host formatter plus the custom rules of this module.
func DefaultRules() RuleSet {
	return NewRuleSet(
		Rule{"@Symfony", true},
		Rule{"array_indentation", true},
		Rule{"array_syntax", map[string]any{"syntax": "short"}},
		Rule{"binary_operator_spaces", map[string]any{"default": "single_space"}},
		Rule{"concat_space", map[string]any{"spacing": "one"}},
		Rule{"class_attributes_separation", map[string]any{
			"elements": []any{"method", "property"},
		}},
		Rule{"heredoc_indentation", true},
		Rule{"method_argument_space", map[string]any{"on_multiline": "ensure_fully_multiline"}},
		Rule{"linebreak_after_opening_tag", true},
		Rule{"new_with_braces", true},
		Rule{"no_superfluous_phpdoc_tags", true},
		Rule{"not_operator_with_successor_space", true},
		Rule{"ordered_imports", true},
		Rule{"operator_linebreak", map[string]any{"position": "beginning"}},
		Rule{"phpdoc_order", true},
		Rule{"phpdoc_align", map[string]any{
			"align": "left",
			"tags": []any{
				"param", "property", "property-read", "property-write",
				"return", "throws", "type", "var", "method",
			},
		}},
		Rule{"phpdoc_no_alias_tag", map[string]any{"type": "var", "link": "see"}},
		Rule{"phpdoc_no_empty_return", false},
		Rule{"single_line_throw", false},

		// Risky rules
		Rule{"declare_strict_types", true},
		Rule{"logical_operators", true},

		Rule{fixers.LineBreakBeforeThrowExpressionName, true},
		// Renames variables; enabled explicitly by the user.
		Rule{fixers.VariableCaseName, false},
		Rule{fixers.PhpdocSimplifyArrayKeyName, true},
	)
}

// Rules returns a copy of the entries in order.
func (rs RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// Len returns the number of entries.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Get returns the value of name, matched case-insensitively.
func (rs RuleSet) Get(name string) (any, bool) {
	if i := rs.index(name); i >= 0 {
		return rs.rules[i].Value, true
	}

	return nil, false
}

// Merge returns a copy of rs with overrides applied. An override replaces
// the whole value of an existing entry in place; new names are appended in
// sorted order.
func (rs RuleSet) Merge(overrides map[string]any) RuleSet {
	merged := RuleSet{rules: rs.Rules()}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		merged = merged.with(name, overrides[name])
	}

	return merged
}

func (rs RuleSet) with(name string, value any) RuleSet {
	if i := rs.index(name); i >= 0 {
		rs.rules[i].Value = value
		return rs
	}

	rs.rules = append(rs.rules, Rule{Name: name, Value: value})

	return rs
}

// index matches case-insensitively since configuration keys may arrive
// lowercased.
func (rs RuleSet) index(name string) int {
	for i, rule := range rs.rules {
		if strings.EqualFold(rule.Name, name) {
			return i
		}
	}

	return -1
}

// MarshalYAML encodes the rule set as a mapping in rule order.
func (rs RuleSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, rule := range rs.rules {
		value := &yaml.Node{}
		if err := value.Encode(rule.Value); err != nil {
			return nil, fmt.Errorf("encode rule %s: %w", rule.Name, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rule.Name},
			value,
		)
	}

	return node, nil
}

// MarshalJSON encodes the rule set as an object in rule order.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, rule := range rs.rules {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(rule.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(rule.Value)
		if err != nil {
			return nil, fmt.Errorf("encode rule %s: %w", rule.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Config is the effective configuration of a run.
type Config struct {
	Rules        RuleSet
	RiskyAllowed bool
	Whitespaces  m.WhitespacesConfig
}

// NewConfig merges overrides over DefaultRules and allows risky rules.
func NewConfig(overrides map[string]any) Config {
	return Config{
		Rules:        DefaultRules().Merge(overrides),
		RiskyAllowed: true,
		Whitespaces:  m.DefaultWhitespacesConfig(),
	}
}

// Signature fingerprints the configuration. Cached results are only valid
// for the signature they were produced with.
func (c Config) Signature(version string) (string, error) {
	payload, err := json.Marshal(struct {
		Version      string
		Rules        RuleSet
		RiskyAllowed bool
		Indent       string
		LineEnding   string
	}{version, c.Rules, c.RiskyAllowed, c.Whitespaces.Indent, c.Whitespaces.LineEnding})
	if err != nil {
		return "", fmt.Errorf("signature: %w", err)
	}

	sum := sha256.Sum256(payload)

	return hex.EncodeToString(sum[:]), nil
}

// Resolve builds the configured fixers of cfg in execution order. Entries
// outside the CsRules namespace are left to the host formatter.
func Resolve(reg Registry, cfg Config) ([]fixers.Fixer, error) {
	list := make([]fixers.Fixer, 0)

	for _, rule := range cfg.Rules.rules {
		if !IsCustomRule(rule.Name) {
			slog.Debug("Delegated rule", "rule", rule.Name)
			continue
		}

		fixer, err := reg.New(rule.Name)
		if err != nil {
			return nil, err
		}

		enabled, options, err := ruleOptions(fixer.Name(), rule.Value)
		if err != nil {
			return nil, err
		}

		if !enabled {
			continue
		}

		if err := fixer.Configure(options); err != nil {
			return nil, fmt.Errorf("configure %s: %w", fixer.Name(), err)
		}

		if fixer.IsRisky() && !cfg.RiskyAllowed {
			return nil, fmt.Errorf("%w: %s", ErrRiskyNotAllowed, fixer.Name())
		}

		if aware, ok := fixer.(fixers.WhitespacesAware); ok {
			aware.SetWhitespacesConfig(cfg.Whitespaces)
		}

		list = append(list, fixer)
	}

	fixers.SortByPriority(list)

	return list, nil
}

func ruleOptions(name string, value any) (bool, map[string]any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil, nil
	case map[string]any:
		return true, v, nil
	default:
		return false, nil, fmt.Errorf("%w: [%s] expected a boolean or an option map, got %T",
			fixers.ErrInvalidConfiguration, name, value)
	}
}

// RuleInfos lists the rule set followed by any registered rule it omits.
func RuleInfos(reg Registry, cfg Config) []m.RuleInfo {
	infos := make([]m.RuleInfo, 0, cfg.Rules.Len())
	seen := make(map[string]bool)

	for _, rule := range cfg.Rules.rules {
		info := m.RuleInfo{Name: rule.Name, Custom: IsCustomRule(rule.Name)}
		info.Enabled, info.Options, _ = ruleOptions(rule.Name, rule.Value)

		if fixer, err := reg.New(rule.Name); err == nil {
			info.Name = fixer.Name()
			info.Risky = fixer.IsRisky()
			info.Priority = fixer.Priority()
			seen[fixer.Name()] = true
		}

		infos = append(infos, info)
	}

	for _, name := range reg.Names() {
		if seen[name] {
			continue
		}

		fixer, _ := reg.New(name)
		infos = append(infos, m.RuleInfo{
			Name:     name,
			Custom:   true,
			Risky:    fixer.IsRisky(),
			Priority: fixer.Priority(),
		})
	}

	return infos
}
