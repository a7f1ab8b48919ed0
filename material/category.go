package material

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"
)

type Category int

const (
	Default Category = iota
	Hair
	GameSkinBody
	EyeOcclusion
	Cornea
	Eye
	Skin
	Scalp
)

var categoryNames = map[Category]string{
	Default:      "default",
	Hair:         "hair",
	GameSkinBody: "ga_skin_body",
	EyeOcclusion: "eye_occlusion",
	Cornea:       "cornea",
	Eye:          "eye",
	Skin:         "skin",
	Scalp:        "scalp",
}

func (c Category) String() string {
	return categoryNames[c]
}

func parseCategory(s string) (Category, bool) {
	for c, n := range categoryNames {
		if n == s {
			return c, true
		}
	}
	return Default, false
}

// IsSkin reports whether c receives skin-specific tuning.
func (c Category) IsSkin() bool {
	return c == Skin || c == GameSkinBody
}

type Rule struct {
	Category string   `yaml:"category"`
	Any      []string `yaml:"any"`
	None     []string `yaml:"none"`
}

func (r *Rule) match(lower string) bool {
	for _, s := range r.None {
		if strings.Contains(lower, s) {
			return false
		}
	}
	for _, s := range r.Any {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

type Markers struct {
	MergeSuffix  string   `yaml:"merge_suffix"`
	SpecularAny  []string `yaml:"specular_any"`
	SpecularNone []string `yaml:"specular_none"`
}

// Rules is an ordered list of name predicates.
type Rules struct {
	Version    int     `yaml:"version"`
	Categories []Rule  `yaml:"categories"`
	Markers    Markers `yaml:"markers"`

	categories []Category
}

const RulesVersion = 1

//go:embed rules.yaml
var defaultRules []byte

func DefaultRules() *Rules {
	r, err := parseRules(defaultRules)
	if err != nil {
		panic(err)
	}
	return r
}

func LoadRules(r io.Reader) (*Rules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseRules(data)
}

func parseRules(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if rules.Version != RulesVersion {
		return nil, fmt.Errorf("unsupported rules version: %d", rules.Version)
	}
	for _, rule := range rules.Categories {
		c, ok := parseCategory(rule.Category)
		if !ok {
			return nil, fmt.Errorf("unknown material category: %q", rule.Category)
		}
		rules.categories = append(rules.categories, c)
	}
	return &rules, nil
}

// Categorize returns the first category whose rule matches name.
func (r *Rules) Categorize(name string) Category {
	lower := strings.ToLower(name)
	for i := range r.Categories {
		if r.Categories[i].match(lower) {
			return r.categories[i]
		}
	}
	return Default
}

func (r *Rules) IsMerge(name string) bool {
	return r.Markers.MergeSuffix != "" && strings.HasSuffix(name, r.Markers.MergeSuffix)
}

func (r *Rules) IsSpecular(name string) bool {
	m := Rule{Any: r.Markers.SpecularAny, None: r.Markers.SpecularNone}
	return m.match(strings.ToLower(name))
}
