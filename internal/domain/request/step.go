package request

import "time"

// Step is an executor's work-log entry.
type Step struct {
	id        uint
	requestID uint
	authorID  uint
	text      string
	createdAt time.Time
}

func ReconstructStep(id, requestID, authorID uint, text string, createdAt time.Time) *Step {
	return &Step{id: id, requestID: requestID, authorID: authorID, text: text, createdAt: createdAt}
}

func (s *Step) ID() uint             { return s.id }
func (s *Step) RequestID() uint      { return s.requestID }
func (s *Step) AuthorID() uint       { return s.authorID }
func (s *Step) Text() string         { return s.text }
func (s *Step) CreatedAt() time.Time { return s.createdAt }
func (s *Step) SetID(id uint)        { s.id = id }
