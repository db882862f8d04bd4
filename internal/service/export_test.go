package service

import "time"

// SetClock replaces the clock used to stamp conversations and messages.
func (s *ConversationService) SetClock(now func() time.Time) {
	s.now = now
}
