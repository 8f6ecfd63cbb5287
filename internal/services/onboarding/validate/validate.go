// Package validate implements the per-step onboarding validators.
//
// Validators are pure: they read a wizard state and return field-scoped
// messages for the current step only. An empty result means the step passes.
package validate

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
)

// StepErrors maps a field key to its message.
type StepErrors map[string]string

// OK reports whether no field failed.
func (e StepErrors) OK() bool {
	return len(e) == 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ForState validates the state's current step in its own flow.
func ForState(s *wizard.State) StepErrors {
	if s == nil {
		return StepErrors{}
	}
	if s.Flow == wizard.FlowBrand {
		return Brand(s, s.Step)
	}
	return Creator(s, s.Step)
}

// Email checks the local@domain.tld shape, reporting missing and malformed
// values with distinct messages.
func Email(value, required string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return required, false
	}
	if !emailPattern.MatchString(value) {
		return "Invalid email.", false
	}
	return "", true
}

// NonNegative parses value as a finite number >= 0.
func NonNegative(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

// HTTPURL reports whether value is an absolute http or https URL.
func HTTPURL(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
