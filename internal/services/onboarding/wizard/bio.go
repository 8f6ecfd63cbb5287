package wizard

import "strings"

// MaxBioWords caps the stored bio length.
const MaxBioWords = 2500

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SetBio stores text unless it exceeds MaxBioWords, in which case the prior
// bio is kept and false is returned.
func (s *State) SetBio(text string) bool {
	if WordCount(text) > MaxBioWords {
		return false
	}
	s.Personal.Bio = text
	return true
}
