package app

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vocab-progress-service/internal/domain"
)

// SessionStore abstracts how practice sessions are tracked (in-memory, Redis-marked, etc).
type SessionStore interface {
	GetOrCreate(sessionID string) *QuizSession
	Get(sessionID string) (*QuizSession, bool)
	Delete(sessionID string)
}

// AccountRepository is the durable account table.
type AccountRepository interface {
	Insert(ctx context.Context, acc domain.Account) error
	Get(ctx context.Context, username string) (domain.Account, error)
	// Award atomically applies xp delta, recomputes the streak for today and
	// stamps the activity date. Implementations must run the whole
	// read-compute-write under one lock or transaction.
	Award(ctx context.Context, username string, delta int, today time.Time) (domain.Account, error)
	Top(ctx context.Context, n int) ([]domain.LeaderboardRow, error)
}

// ProgressRepository is the per-date ledger.
type ProgressRepository interface {
	// UpsertToday writes the daily snapshot row. Implementations must keep
	// the write monotonic per date: a record carrying less XP than the
	// stored row never replaces it, so a snapshot that commits late cannot
	// roll the trail back behind the account table.
	UpsertToday(ctx context.Context, rec domain.ProgressRecord) error
	Latest(ctx context.Context) (domain.ProgressRecord, bool, error)
}

// MistakeRepository is the append-only mistake log.
type MistakeRepository interface {
	Append(ctx context.Context, entry domain.MistakeEntry) error
	Recent(ctx context.Context, n int) ([]domain.MistakeEntry, error)
}

// QuestionSource supplies fresh question instances per practice mode.
type QuestionSource interface {
	Next(ctx context.Context, kind domain.QuestionKind) (domain.Question, error)
}

// LeaderboardMirror is an optional ranked projection kept outside the
// account table (e.g. a Redis sorted set). Updates are best effort; the
// account table stays the source of truth.
type LeaderboardMirror interface {
	Record(ctx context.Context, username string, xp int) error
	Top(ctx context.Context, n int) ([]domain.LeaderboardRow, error)
}

// Settings is the externally adjustable engine configuration.
type Settings struct {
	XPPerCorrect    int
	LeaderboardSize int
	Levels          domain.Levels
}

// DefaultSettings matches the original course values.
func DefaultSettings() Settings {
	return Settings{
		XPPerCorrect:    5,
		LeaderboardSize: 5,
		Levels:          domain.DefaultLevels(),
	}
}

// ProgressService contains the progress engine use cases.
type ProgressService struct {
	accounts  AccountRepository
	ledger    ProgressRepository
	mistakes  MistakeRepository
	sessions  SessionStore
	questions QuestionSource
	mirror    LeaderboardMirror
	settings  Settings
	now       func() time.Time

	// Serializes guest awards, which go through the ledger without an
	// account row to lock.
	guestMu sync.Mutex
}

func NewProgressService(
	accounts AccountRepository,
	ledger ProgressRepository,
	mistakes MistakeRepository,
	sessions SessionStore,
	questions QuestionSource,
	settings Settings,
) *ProgressService {
	if settings.XPPerCorrect <= 0 {
		settings.XPPerCorrect = DefaultSettings().XPPerCorrect
	}
	if settings.LeaderboardSize <= 0 {
		settings.LeaderboardSize = DefaultSettings().LeaderboardSize
	}
	if len(settings.Levels) == 0 {
		settings.Levels = domain.DefaultLevels()
	}
	settings.Levels = settings.Levels.Normalize()
	return &ProgressService{
		accounts:  accounts,
		ledger:    ledger,
		mistakes:  mistakes,
		sessions:  sessions,
		questions: questions,
		settings:  settings,
		now:       time.Now,
	}
}

// WithMirror attaches a leaderboard mirror.
func (s *ProgressService) WithMirror(mirror LeaderboardMirror) *ProgressService {
	s.mirror = mirror
	return s
}

// WithClock is test-only for deterministic dates.
func (s *ProgressService) WithClock(now func() time.Time) *ProgressService {
	s.now = now
	return s
}

// Register creates an account with a bcrypt password hash. A duplicate
// username surfaces domain.ErrUsernameTaken; existing state is untouched.
func (s *ProgressService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return errors.New("username and password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.Insert(ctx, domain.Account{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Authenticate verifies credentials. Unknown users and hash mismatches are
// indistinguishable to the caller; bcrypt's comparison is constant time.
func (s *ProgressService) Authenticate(ctx context.Context, username, password string) (domain.AccountSnapshot, error) {
	username = strings.TrimSpace(username)
	acc, err := s.accounts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.AccountSnapshot{}, domain.ErrInvalidCredentials
		}
		return domain.AccountSnapshot{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return domain.AccountSnapshot{}, domain.ErrInvalidCredentials
	}
	return s.snapshot(acc), nil
}

// Open creates (or rebinds) the practice session for one connection.
func (s *ProgressService) Open(sessionID, username string) *QuizSession {
	session := s.sessions.GetOrCreate(sessionID)
	session.Bind(username)
	return session
}

// Close drops a connection's session.
func (s *ProgressService) Close(sessionID string) {
	s.sessions.Delete(sessionID)
}

// NextQuestion replaces the session's current instance with a fresh one.
// On content errors the session keeps its previous state.
func (s *ProgressService) NextQuestion(ctx context.Context, sessionID string, kind domain.QuestionKind) (domain.QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.QuestionView{}, domain.ErrSessionNotFound
	}
	q, err := s.questions.Next(ctx, kind)
	if err != nil {
		return domain.QuestionView{}, err
	}
	session.SetQuestion(q)
	return q.View(), nil
}

// SubmitAnswer grades the session's current question exactly once. A correct
// answer awards XP and updates streak and ledger; an incorrect one is
// appended to the mistake log. Re-submitting returns ErrAlreadyGraded with
// no side effects.
func (s *ProgressService) SubmitAnswer(ctx context.Context, sessionID, answer string) (domain.AnswerResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}

	correct, question, err := session.Grade(answer)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	result := domain.AnswerResult{Correct: correct, CorrectAnswer: question.Answer}
	if !correct {
		entry := domain.MistakeEntry{
			Username:  guestName(session.Username()),
			Question:  question.Prompt,
			Submitted: answer,
			Correct:   question.Answer,
		}
		if err := s.mistakes.Append(ctx, entry); err != nil {
			return domain.AnswerResult{}, err
		}
		if snap, serr := s.Snapshot(ctx, session.Username()); serr == nil {
			result.XP = snap.XP
			result.Streak = snap.Streak
			result.Level = snap.Level
		} else {
			result.Level = s.settings.Levels.Classify(0)
		}
		return result, nil
	}

	today := domain.DateOnly(s.now())
	rec, err := s.award(ctx, session.Username(), today)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	result.Awarded = s.settings.XPPerCorrect
	result.XP = rec.XP
	result.Streak = rec.Streak
	result.Level = s.settings.Levels.Classify(rec.XP)
	return result, nil
}

// award runs the XP/streak transaction for either a bound account or a
// guest (single-user ledger) session, then upserts today's ledger row.
func (s *ProgressService) award(ctx context.Context, username string, today time.Time) (domain.ProgressRecord, error) {
	delta := s.settings.XPPerCorrect

	if username == "" {
		s.guestMu.Lock()
		defer s.guestMu.Unlock()

		prev, ok, err := s.ledger.Latest(ctx)
		if err != nil {
			return domain.ProgressRecord{}, err
		}
		rec := domain.ProgressRecord{Date: today, XP: delta, Streak: 1}
		if ok {
			rec.XP = prev.XP + delta
			rec.Streak = domain.NextStreak(prev.Date, today, prev.Streak)
		}
		if err := s.ledger.UpsertToday(ctx, rec); err != nil {
			return domain.ProgressRecord{}, err
		}
		return rec, nil
	}

	acc, err := s.accounts.Award(ctx, username, delta, today)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	rec := domain.ProgressRecord{Date: today, XP: acc.XP, Streak: acc.Streak}
	if err := s.ledger.UpsertToday(ctx, rec); err != nil {
		return domain.ProgressRecord{}, err
	}
	if s.mirror != nil {
		// Mirror updates are best effort; the account table is authoritative.
		if err := s.mirror.Record(ctx, acc.Username, acc.XP); err != nil {
			log.Printf("leaderboard mirror update failed: %v", err)
		}
	}
	return rec, nil
}

// Snapshot returns the current progress view for an account, or the guest
// ledger view when username is empty.
func (s *ProgressService) Snapshot(ctx context.Context, username string) (domain.AccountSnapshot, error) {
	if strings.TrimSpace(username) == "" {
		rec, ok, err := s.ledger.Latest(ctx)
		if err != nil {
			return domain.AccountSnapshot{}, err
		}
		snap := domain.AccountSnapshot{Username: guestName("")}
		if ok {
			snap.XP = rec.XP
			snap.Streak = rec.Streak
			snap.LastActivity = rec.Date
		}
		snap.Level = s.settings.Levels.Classify(snap.XP)
		return snap, nil
	}
	acc, err := s.accounts.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return s.snapshot(acc), nil
}

// TopAccounts returns the ranked projection, xp descending with username
// ascending on ties. n falls back to the configured size.
func (s *ProgressService) TopAccounts(ctx context.Context, n int) (domain.Leaderboard, error) {
	if n <= 0 {
		n = s.settings.LeaderboardSize
	}
	var rows []domain.LeaderboardRow
	var err error
	if s.mirror != nil {
		rows, err = s.mirror.Top(ctx, n)
	} else {
		rows, err = s.accounts.Top(ctx, n)
	}
	if err != nil {
		return domain.Leaderboard{}, err
	}
	sortRows(rows)
	return domain.Leaderboard{Rows: rows, UpdatedAt: s.now()}, nil
}

// Mistakes returns the newest n mistake entries.
func (s *ProgressService) Mistakes(ctx context.Context, n int) ([]domain.MistakeEntry, error) {
	if n <= 0 {
		n = s.settings.LeaderboardSize
	}
	return s.mistakes.Recent(ctx, n)
}

func (s *ProgressService) snapshot(acc domain.Account) domain.AccountSnapshot {
	return domain.AccountSnapshot{
		Username:     acc.Username,
		XP:           acc.XP,
		Streak:       acc.Streak,
		Level:        s.settings.Levels.Classify(acc.XP),
		LastActivity: acc.LastActivity,
	}
}

func sortRows(rows []domain.LeaderboardRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XP != rows[j].XP {
			return rows[i].XP > rows[j].XP
		}
		return rows[i].Username < rows[j].Username
	})
}

func guestName(username string) string {
	if username == "" {
		return "guest"
	}
	return username
}
