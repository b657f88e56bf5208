package domain

import "time"

// QuestionKind distinguishes the two practice modes.
type QuestionKind string

const (
	KindVocabulary QuestionKind = "vocabulary"
	KindGrammar    QuestionKind = "grammar"
)

// Account is the durable record for one learner.
type Account struct {
	Username     string
	PasswordHash string
	XP           int
	Streak       int
	LastActivity time.Time // date-only, zero before first activity
}

// AccountSnapshot is a read-only view of an account's progress.
type AccountSnapshot struct {
	Username     string    `json:"username"`
	XP           int       `json:"xp"`
	Streak       int       `json:"streak"`
	Level        string    `json:"level"`
	LastActivity time.Time `json:"lastActivity,omitempty"`
}

// ProgressRecord is one per-date ledger row.
type ProgressRecord struct {
	Date   time.Time `json:"date"`
	XP     int       `json:"xp"`
	Streak int       `json:"streak"`
}

// MistakeEntry records one incorrect submission. Immutable once appended.
type MistakeEntry struct {
	Username  string `json:"username"`
	Question  string `json:"question"`
	Submitted string `json:"submitted"`
	Correct   string `json:"correct"`
}

// LeaderboardRow is a derived (username, xp) pair.
type LeaderboardRow struct {
	Username string `json:"username"`
	XP       int    `json:"xp"`
}

// Leaderboard captures the ordered top-N projection over accounts.
type Leaderboard struct {
	Rows      []LeaderboardRow `json:"rows"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Word is the opaque record supplied by the external content collaborator.
type Word struct {
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
	Example string `json:"example,omitempty"`
}

// Question is one presented question instance. Answer is always one of
// Options; Options are distinct.
type Question struct {
	Kind    QuestionKind
	Prompt  string
	Options []string
	Answer  string
}

// QuestionView is the client-facing shape of a question, without the answer.
type QuestionView struct {
	Kind    QuestionKind `json:"kind"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options"`
}

// View strips the answer for transport.
func (q Question) View() QuestionView {
	return QuestionView{Kind: q.Kind, Prompt: q.Prompt, Options: q.Options}
}

// AnswerResult summarizes the outcome of grading one submission.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	Awarded       int    `json:"awarded"`
	CorrectAnswer string `json:"correctAnswer"`
	XP            int    `json:"xp"`
	Streak        int    `json:"streak"`
	Level         string `json:"level"`
}

// DateOnly truncates t to a calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
