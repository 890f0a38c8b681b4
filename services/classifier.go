package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"research-directory/models"
)

// TypeRule maps name substrings to a structural department type. Rules are
// checked in order; the first match wins.
type TypeRule struct {
	Match []string `json:"match"`
	Type  string   `json:"type"`
}

// ClassifierRules is the reviewable vocabulary driving department
// classification. It ships with built-in defaults and can be replaced from a
// JSON file so the phrase lists grow without code changes.
type ClassifierRules struct {
	DisciplinePhrases []string   `json:"discipline_phrases"`
	TypeRules         []TypeRule `json:"type_rules"`
}

// DefaultClassifierRules returns the built-in vocabulary for the computer
// science directory.
func DefaultClassifierRules() ClassifierRules {
	return ClassifierRules{
		DisciplinePhrases: []string{
			"computer science",
			"software engineering",
			"cybersecurity",
			"cyber security",
			"artificial intelligence",
			"applied ai",
			"ai & robotics",
			"ai robotics",
			"data science",
		},
		TypeRules: []TypeRule{
			{Match: []string{"school"}, Type: models.DepartmentTypeSchool},
			{Match: []string{"centre", "center"}, Type: models.DepartmentTypeCentre},
			{Match: []string{"group"}, Type: models.DepartmentTypeGroup},
			{Match: []string{"college"}, Type: models.DepartmentTypeCollege},
		},
	}
}

// LoadClassifierRules reads a rules file, falling back to the defaults for
// empty sections so a file may override only one of the two lists.
func LoadClassifierRules(path string) (ClassifierRules, error) {
	rules := DefaultClassifierRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read classifier rules: %w", err)
	}
	var loaded ClassifierRules
	if err := json.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("parse classifier rules: %w", err)
	}
	if len(loaded.DisciplinePhrases) > 0 {
		rules.DisciplinePhrases = loaded.DisciplinePhrases
	}
	if len(loaded.TypeRules) > 0 {
		rules.TypeRules = loaded.TypeRules
	}
	return rules, nil
}

// Classifier decides discipline relevance and structural type of department
// names. Both checks are total functions over text.
type Classifier struct {
	rules ClassifierRules
}

// NewClassifier builds a classifier over the given vocabulary.
func NewClassifier(rules ClassifierRules) *Classifier {
	return &Classifier{rules: rules}
}

// IsDisciplineRelated reports whether the department name matches any of the
// discipline-signaling phrases, case-insensitively. Non-matching departments
// are dropped by the importer and never created.
func (c *Classifier) IsDisciplineRelated(name string) bool {
	lower := strings.ToLower(name)
	for _, phrase := range c.rules.DisciplinePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// StructuralType classifies the department name into its structural type.
// Rules apply in priority order; names matching none are "other".
func (c *Classifier) StructuralType(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range c.rules.TypeRules {
		for _, m := range rule.Match {
			if strings.Contains(lower, strings.ToLower(m)) {
				return rule.Type
			}
		}
	}
	return models.DepartmentTypeOther
}
