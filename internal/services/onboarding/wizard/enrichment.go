package wizard

// Enrichment fields that carry generation tokens.
const (
	FieldYouTube = "youtube"
	FieldBio     = "bio"
)

// BeginEnrichment issues a new generation for field. The state must be saved
// before the outbound call so later requests observe the increment.
func (s *State) BeginEnrichment(field string) uint64 {
	if s.Generations == nil {
		s.Generations = make(map[string]uint64)
	}
	s.Generations[field]++
	return s.Generations[field]
}

// LatestGeneration returns the most recent generation issued for field.
func (s *State) LatestGeneration(field string) uint64 {
	return s.Generations[field]
}

// ApplyEnrichment runs apply only when gen is still the latest generation for
// field, and reports whether it ran. Stale responses are discarded.
func (s *State) ApplyEnrichment(field string, gen uint64, apply func(*State)) bool {
	if gen == 0 || gen != s.LatestGeneration(field) {
		return false
	}
	if apply != nil {
		apply(s)
	}
	return true
}
