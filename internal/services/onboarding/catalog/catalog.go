// Package catalog exposes the option lists offered by the onboarding wizards.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Platform keys accepted by the creator wizard.
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTikTok    = "tiktok"
)

// CategoryOther unlocks the free-text custom category field.
const CategoryOther = "Other"

// Deliverable is one priced content format for a platform.
type Deliverable struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Platform describes one social platform and its priced deliverables.
type Platform struct {
	Key          string        `yaml:"key"`
	Label        string        `yaml:"label"`
	Deliverables []Deliverable `yaml:"deliverables"`
}

// Creator holds creator wizard option lists.
type Creator struct {
	Ages       []string   `yaml:"ages"`
	Genders    []string   `yaml:"genders"`
	Categories []string   `yaml:"categories"`
	Currencies []string   `yaml:"currencies"`
	Platforms  []Platform `yaml:"platforms"`
}

// Brand holds brand wizard option lists.
type Brand struct {
	Industries         []string `yaml:"industries"`
	CompanySizes       []string `yaml:"company_sizes"`
	Countries          []string `yaml:"countries"`
	CollaborationTypes []string `yaml:"collaboration_types"`
	CreatorCategories  []string `yaml:"creator_categories"`
	BrandValues        []string `yaml:"brand_values"`
	Tones              []string `yaml:"tones"`
}

// Catalog is the full set of onboarding options.
type Catalog struct {
	Creator Creator `yaml:"creator"`
	Brand   Brand   `yaml:"brand"`
}

//go:embed options.yaml
var embeddedOptions []byte

var defaultCatalog = mustLoadEmbedded()

// Default returns the embedded option catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses an option catalog document.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse option catalog: %w", err)
	}
	if len(c.Creator.Platforms) == 0 {
		return nil, fmt.Errorf("option catalog has no platforms")
	}
	for _, platform := range c.Creator.Platforms {
		if strings.TrimSpace(platform.Key) == "" {
			return nil, fmt.Errorf("option catalog platform key is required")
		}
		if len(platform.Deliverables) == 0 {
			return nil, fmt.Errorf("platform %q has no deliverables", platform.Key)
		}
	}
	return &c, nil
}

// Platform returns the platform with the given key.
func (c *Catalog) Platform(key string) (Platform, bool) {
	if c == nil {
		return Platform{}, false
	}
	for _, platform := range c.Creator.Platforms {
		if platform.Key == key {
			return platform, true
		}
	}
	return Platform{}, false
}

// PlatformKeys returns the platform keys in catalog order.
func (c *Catalog) PlatformKeys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Creator.Platforms))
	for _, platform := range c.Creator.Platforms {
		keys = append(keys, platform.Key)
	}
	return keys
}

// IsPlatform reports whether key names a known platform.
func (c *Catalog) IsPlatform(key string) bool {
	_, ok := c.Platform(key)
	return ok
}

// Contains reports whether value is one of options.
func Contains(options []string, value string) bool {
	return slices.Contains(options, value)
}

// Filter returns the values that appear in options, deduplicated, in options order.
func Filter(options []string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, option := range options {
		if slices.Contains(values, option) {
			out = append(out, option)
		}
	}
	return out
}

func mustLoadEmbedded() *Catalog {
	c, err := Load(embeddedOptions)
	if err != nil {
		panic(err)
	}
	return c
}
