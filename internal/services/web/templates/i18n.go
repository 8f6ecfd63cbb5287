package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for web components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns the translation for key. Without a localizer string keys are
// formatted as-is so pages still render in the source language.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	keyString, ok := key.(string)
	if !ok {
		return ""
	}
	if len(args) == 0 {
		return keyString
	}
	return fmt.Sprintf(keyString, args...)
}
