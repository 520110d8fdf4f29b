package game

// Session accumulates scoring across sequential rounds. Rounds never
// overlap, so plain fields are safe.
type Session struct {
	RoundsPlayed  int
	CurrentStreak int
	BestStreak    int
}

// Record applies one round outcome: a correct guess extends the streak, an
// incorrect guess or a skip resets it.
func (s *Session) Record(o Outcome) {
	s.RoundsPlayed++
	if o.Correct {
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
}
