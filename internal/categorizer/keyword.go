package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"gopkg.in/yaml.v3"
)

// Rule assigns Category to drafts whose note or payment method contains one
// of the keywords.
type Rule struct {
	Category string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type rulesFile struct {
	Categories []Rule `yaml:"categories"`
}

// LoadRules reads keyword rules from a YAML file of the form
//
//	categories:
//	  - name: Groceries
//	    keywords: [migros, coop]
//
// A missing file yields no rules.
func LoadRules(path string) ([]Rule, error) {
	data, ok, err := fileutils.ReadFileIfExists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse category rules %s: %w", path, err)
	}
	rules := f.Categories[:0]
	for _, r := range f.Categories {
		r.Category = strings.TrimSpace(r.Category)
		if r.Category == "" || len(r.Keywords) == 0 {
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// KeywordStrategy matches rule keywords against the note and payment method,
// case-insensitively. The first matching rule wins.
type KeywordStrategy struct {
	rules  []Rule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over rules.
func NewKeywordStrategy(rules []Rule, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &KeywordStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize implements Strategy.
func (s *KeywordStrategy) Categorize(_ context.Context, d models.TransactionDraft) (string, bool) {
	text := strings.ToLower(d.Note + " " + d.PaymentMethod)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" || !strings.Contains(text, keyword) {
				continue
			}
			s.logger.WithFields(
				logging.F("strategy", s.Name()),
				logging.F("keyword", keyword),
				logging.F(logging.FieldCategory, rule.Category),
			).Debug("Transaction categorized using keyword matching")
			return rule.Category, true
		}
	}
	return "", false
}
