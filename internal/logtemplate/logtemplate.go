// Package logtemplate implements optional, config-driven redaction of OTLP
// log bodies: a small ordered list of regex/placeholder rules applied before
// a body is counted or stored, so that high-cardinality substrings (UUIDs,
// timestamps, raw SQL literals) don't inflate storage or query results.
package logtemplate

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule is a single redaction rule: occurrences of Regex are replaced with
// Placeholder (which may reference capture groups, e.g. "$1 <WHERE>").
type Rule struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"regex"`
	Placeholder string `yaml:"placeholder"`
	Description string `yaml:"description"`

	regex *regexp.Regexp
}

type ruleFile struct {
	Rules []Rule `yaml:"patterns"`
}

// Redactor applies an ordered list of Rules to log bodies. A nil *Redactor
// is valid and Redact is a no-op on it, so callers can hold an optional
// redactor without a separate enabled flag.
type Redactor struct {
	rules []Rule
}

// Load reads a YAML rule file (the same shape the teacher used for its
// pre-masking patterns: a top-level "patterns" list of name/regex/placeholder/
// description entries) and compiles every rule's regex.
func Load(path string) (*Redactor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logtemplate: reading rules file: %w", err)
	}

	var parsed ruleFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("logtemplate: parsing rules YAML: %w", err)
	}

	rules := make([]Rule, 0, len(parsed.Rules))
	for _, r := range parsed.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("logtemplate: compiling rule %s: %w", r.Name, err)
		}
		r.regex = re
		rules = append(rules, r)
	}

	return &Redactor{rules: rules}, nil
}

// Default returns a Redactor seeded with a built-in rule set covering
// common high-cardinality substrings, for deployments that want redaction
// without maintaining their own rule file.
func Default() *Redactor {
	return &Redactor{rules: defaultRules()}
}

// Redact applies every rule in order and returns the resulting body. Rules
// are applied sequentially, so an earlier rule's placeholder text can be
// matched by a later rule.
func (r *Redactor) Redact(body string) string {
	if r == nil {
		return body
	}
	for _, rule := range r.rules {
		body = rule.regex.ReplaceAllString(body, rule.Placeholder)
	}
	return body
}

// Len reports how many rules are loaded.
func (r *Redactor) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rules)
}

func defaultRules() []Rule {
	mustRule := func(name, pattern, placeholder, description string) Rule {
		return Rule{
			Name:        name,
			Pattern:     pattern,
			Placeholder: placeholder,
			Description: description,
			regex:       regexp.MustCompile(pattern),
		}
	}

	return []Rule{
		mustRule("timestamp", `\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`, "<TIMESTAMP>", "ISO-like timestamps"),
		mustRule("uuid", `\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`, "<UUID>", "Standard UUID format"),
		mustRule("email", `\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`, "<EMAIL>", "Email addresses"),
		mustRule("sql_select", `(db/query:\s*SELECT\s+(?:.*?\s+)?FROM\s+\w+)(?:\s+.+)?$`, "$1 <WHERE>", "SQL SELECT queries - keep table, mask WHERE"),
		mustRule("sql_delete", `(db/query:\s*DELETE\s+FROM\s+\w+)(?:\s+.+)?$`, "$1 <WHERE>", "SQL DELETE queries - keep table, mask WHERE"),
		mustRule("sql_update", `(db/query:\s*UPDATE\s+\w+)\s+SET\s+.+$`, "$1 <SET>", "SQL UPDATE queries - keep table, mask SET/WHERE"),
		mustRule("sql_insert", `(db/query:\s*INSERT\s+INTO\s+\w+)(?:\s+.+)?$`, "$1 <VALUES>", "SQL INSERT queries - keep table, mask VALUES"),
		mustRule("url", `https?://[^\s]+|\s(/[a-zA-Z0-9/_.-]+)`, " <URL>", "HTTP/HTTPS URLs and absolute paths"),
		mustRule("duration", `\d+(?:\.\d+)?(?:µs|ms|s|m|h)\b`, "<DURATION>", "Time durations with units"),
		mustRule("size", `\d+(?:\.\d+)?(?:B|KB|MB|GB)\b`, "<SIZE>", "File/memory sizes with units"),
		mustRule("ip", `\[::1\]|\b(?:\d{1,3}\.){3}\d{1,3}\b`, "<IP>", "IPv4 addresses and localhost IPv6"),
		mustRule("hex", `\b[0-9a-f]{8,}\b`, "<HEX>", "Long hexadecimal strings"),
		mustRule("number", `\b\d+\b`, "<NUM>", "Any numeric value"),
	}
}
