package wizard

import (
	"slices"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
)

// Role is the account type chosen at the first creator step.
type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
)

// ParseRole normalizes a submitted role value.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleCreator:
		return RoleCreator, true
	case RoleBrand:
		return RoleBrand, true
	default:
		return "", false
	}
}

// Personal holds the creator's personal details.
type Personal struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Country        string `json:"country"`
	Category       string `json:"category"`
	CustomCategory string `json:"custom_category"`
	Bio            string `json:"bio"`
}

// ResolvedCategory returns the category to persist, preferring the custom
// value when Other was selected.
func (p Personal) ResolvedCategory() string {
	if p.Category == catalog.CategoryOther {
		return strings.TrimSpace(p.CustomCategory)
	}
	return p.Category
}

// YouTube holds the channel URL and the metadata enriched from it.
type YouTube struct {
	URL             string `json:"url"`
	ChannelID       string `json:"channel_id,omitempty"`
	ChannelName     string `json:"channel_name,omitempty"`
	ProfileImage    string `json:"profile_image,omitempty"`
	SubscriberCount string `json:"subscriber_count,omitempty"`
	// LookupError is the field-scoped enrichment failure shown under the URL.
	LookupError string `json:"lookup_error,omitempty"`
}

// ClearChannel drops previously enriched metadata.
func (y *YouTube) ClearChannel() {
	y.ChannelID = ""
	y.ChannelName = ""
	y.ProfileImage = ""
	y.SubscriberCount = ""
}

// Instagram holds typed Instagram attributes. Counts stay raw so the
// validator can report what was entered.
type Instagram struct {
	Username  string `json:"username"`
	Followers string `json:"followers"`
	Posts     string `json:"posts"`
}

// Handle holds a platform username.
type Handle struct {
	Username string `json:"username"`
}

// Details groups per-platform attributes.
type Details struct {
	YouTube   YouTube   `json:"youtube"`
	Instagram Instagram `json:"instagram"`
	Facebook  Handle    `json:"facebook"`
	TikTok    Handle    `json:"tiktok"`
}

// Brand holds the brand onboarding record.
type Brand struct {
	BrandName                  string   `json:"brand_name"`
	LogoURL                    string   `json:"logo_url"`
	WebsiteURL                 string   `json:"website_url"`
	Industry                   string   `json:"industry"`
	CompanySize                string   `json:"company_size"`
	Location                   string   `json:"location"`
	Description                string   `json:"description"`
	ContactPerson              string   `json:"contact_person"`
	ContactEmail               string   `json:"contact_email"`
	ContactPhone               string   `json:"contact_phone"`
	InstagramURL               string   `json:"instagram_url"`
	FacebookURL                string   `json:"facebook_url"`
	TwitterURL                 string   `json:"twitter_url"`
	LinkedInURL                string   `json:"linkedin_url"`
	YouTubeURL                 string   `json:"youtube_url"`
	CollaborationTypes         []string `json:"collaboration_types"`
	PreferredCreatorCategories []string `json:"preferred_creator_categories"`
	BrandValues                []string `json:"brand_values"`
	PreferredTone              []string `json:"preferred_tone"`
}

// SocialURLs returns the brand's social links keyed by field name.
func (b Brand) SocialURLs() map[string]string {
	return map[string]string{
		"instagram_url": b.InstagramURL,
		"facebook_url":  b.FacebookURL,
		"twitter_url":   b.TwitterURL,
		"linkedin_url":  b.LinkedInURL,
		"youtube_url":   b.YouTubeURL,
	}
}

// State is the in-progress answers of one onboarding session.
type State struct {
	Flow      Flow     `json:"flow"`
	Step      Step     `json:"step"`
	Role      Role     `json:"role,omitempty"`
	Personal  Personal `json:"personal"`
	Platforms []string `json:"platforms,omitempty"`
	Details   Details  `json:"details"`
	Pricing   Pricing  `json:"pricing"`
	Asset     *Asset   `json:"asset,omitempty"`
	Brand     Brand    `json:"brand"`
	// Generations holds the latest enrichment token issued per field.
	Generations map[string]uint64 `json:"generations,omitempty"`
	PassedSteps []Step            `json:"passed_steps,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// New returns an empty state positioned at the flow's first step.
func New(flow Flow) *State {
	m := MachineFor(flow)
	return &State{
		Flow: m.Flow(),
		Step: m.Initial(),
	}
}

// Machine returns the machine driving this state.
func (s *State) Machine() Machine {
	return MachineFor(s.Flow)
}

// Prefill seeds identity fields from the signed-in session without
// overwriting answers already given.
func (s *State) Prefill(name, email string) {
	if strings.TrimSpace(s.Personal.Username) == "" {
		s.Personal.Username = strings.TrimSpace(name)
	}
	if strings.TrimSpace(s.Personal.Email) == "" {
		s.Personal.Email = strings.TrimSpace(email)
	}
	if strings.TrimSpace(s.Brand.ContactEmail) == "" {
		s.Brand.ContactEmail = strings.TrimSpace(email)
	}
}

// Advance moves to the next step and records the current one as passed.
// Callers run the step validator first.
func (s *State) Advance() error {
	next, err := s.Machine().Next(s.Step)
	if err != nil {
		return err
	}
	s.MarkPassed(s.Step)
	s.Step = next
	return nil
}

// Retreat moves to the previous step.
func (s *State) Retreat() error {
	back, err := s.Machine().Back(s.Step)
	if err != nil {
		return err
	}
	s.Step = back
	return nil
}

// MarkPassed records that step's validator passed in this session.
func (s *State) MarkPassed(step Step) {
	if !slices.Contains(s.PassedSteps, step) {
		s.PassedSteps = append(s.PassedSteps, step)
	}
}

// HasPassed reports whether step's validator has passed in this session.
func (s *State) HasPassed(step Step) bool {
	return slices.Contains(s.PassedSteps, step)
}

// ReadyToSubmit reports whether the state sits on the review step.
func (s *State) ReadyToSubmit() bool {
	return s.Step == s.Machine().Final()
}

// SetPlatforms replaces the platform selection with the known keys in keys,
// deduplicated and sorted.
func (s *State) SetPlatforms(keys []string) {
	known := catalog.Default()
	selected := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if !known.IsPlatform(key) || slices.Contains(selected, key) {
			continue
		}
		selected = append(selected, key)
	}
	slices.Sort(selected)
	s.Platforms = selected
}

// HasPlatform reports whether key is selected.
func (s *State) HasPlatform(key string) bool {
	return slices.Contains(s.Platforms, key)
}
