package model

import (
	"encoding/json"
	"fmt"
)

// CategoryRule decides which products a category owns. The two
// implementations are mutually exclusive: a category either lists the product
// category identifiers it owns, or it is resolved heuristically.
type CategoryRule interface {
	isCategoryRule()
}

// ByID owns exactly the products whose CategoryID is in IDs.
type ByID struct {
	IDs []string
}

// Heuristic owns products whose name or description mentions a keyword, or
// that share a tag with the category.
type Heuristic struct {
	Keywords []string
	Tags     []string
}

func (ByID) isCategoryRule()      {}
func (Heuristic) isCategoryRule() {}

const (
	RuleKindByID      = "by_id"
	RuleKindHeuristic = "heuristic"
)

type Category struct {
	ID    string
	Label string
	Rule  CategoryRule
}

type categoryJSON struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Rule     string   `json:"rule"`
	IDs      []string `json:"ids,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	out := categoryJSON{ID: c.ID, Label: c.Label}
	switch r := c.Rule.(type) {
	case ByID:
		out.Rule = RuleKindByID
		out.IDs = r.IDs
	case Heuristic:
		out.Rule = RuleKindHeuristic
		out.Keywords = r.Keywords
		out.Tags = r.Tags
	case nil:
		out.Rule = RuleKindHeuristic
	default:
		return nil, fmt.Errorf("category %s: unsupported rule %T", c.ID, c.Rule)
	}
	return json.Marshal(out)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var in categoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.ID = in.ID
	c.Label = in.Label
	rule, err := NewCategoryRule(in.Rule, in.IDs, in.Keywords, in.Tags)
	if err != nil {
		return fmt.Errorf("category %s: %w", in.ID, err)
	}
	c.Rule = rule
	return nil
}

// NewCategoryRule builds the rule for a stored category. An empty kind is
// inferred: a non-empty id list means ByID.
func NewCategoryRule(kind string, ids, keywords, tags []string) (CategoryRule, error) {
	if kind == "" {
		kind = RuleKindHeuristic
		if len(ids) > 0 {
			kind = RuleKindByID
		}
	}
	switch kind {
	case RuleKindByID:
		return ByID{IDs: ids}, nil
	case RuleKindHeuristic:
		return Heuristic{Keywords: keywords, Tags: tags}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", kind)
	}
}
