package app

import (
	"sync"

	"vocab-progress-service/internal/domain"
)

// QuizSession tracks the currently presented question for one connection.
// It is the guard that makes grading happen at most once per question
// instance: repeated submissions after grading return ErrAlreadyGraded and
// never re-award XP.
type QuizSession struct {
	id string

	mu       sync.Mutex
	username string
	question *domain.Question
	graded   bool
}

// NewQuizSession is exported for infrastructure layers that need to seed sessions.
func NewQuizSession(id string) *QuizSession {
	return &QuizSession{id: id}
}

// ID returns the opaque session identifier.
func (s *QuizSession) ID() string {
	return s.id
}

// Bind associates the session with an authenticated account.
func (s *QuizSession) Bind(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// Username returns the bound account name, empty for guest sessions.
func (s *QuizSession) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// SetQuestion replaces any existing instance with a fresh, ungraded one.
// Always legal, regardless of prior grading status.
func (s *QuizSession) SetQuestion(q domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.question = &q
	s.graded = false
}

// Grade scores answer against the current question exactly once. The second
// call for the same instance returns ErrAlreadyGraded; a call before any
// question returns ErrNoActiveQuestion.
func (s *QuizSession) Grade(answer string) (bool, domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.question == nil {
		return false, domain.Question{}, domain.ErrNoActiveQuestion
	}
	if s.graded {
		return false, *s.question, domain.ErrAlreadyGraded
	}
	s.graded = true
	return answer == s.question.Answer, *s.question, nil
}
