package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/metrics"
	"github.com/novapath/trident/internal/ordering"
	"github.com/novapath/trident/internal/report"
	"github.com/novapath/trident/internal/store"
)

// Service owns persistence between interactions. Progress is stored per
// user key; orderings come from a shared cache.
type Service struct {
	cache    *ordering.Cache
	layout   bank.Catalog
	version  string
	progress store.ProgressRepo
	events   store.EventRepo
	metrics  *metrics.Metrics
	logger   *zap.Logger
	newRunID func() string

	// mu serializes load-modify-save cycles on stored progress.
	mu sync.Mutex
}

// NewService creates a Service. m may be nil.
func NewService(cache *ordering.Cache, progress store.ProgressRepo, events store.EventRepo, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:    cache,
		layout:   cache.Bank().Catalog(),
		version:  cache.Bank().Version(),
		progress: progress,
		events:   events,
		metrics:  m,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Layout returns the catalog sessions walk.
func (s *Service) Layout() bank.Catalog {
	return s.layout
}

// Start opens identifier's session, resuming stored progress when there is
// some and creating fresh progress otherwise.
func (s *Service) Start(ctx context.Context, identifier string) (*Session, error) {
	id, err := identity.Normalize(identifier)
	if err != nil {
		return nil, err
	}
	key, seed := identity.Key(id), identity.Seed(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.progress.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if rec != nil {
		if rec.Seed != seed {
			return nil, ErrSeedMismatch
		}
		sess, err := s.restore(rec)
		if err != nil {
			return nil, err
		}
		s.record(ctx, sess, store.ActionResume)
		return sess, nil
	}

	sess := s.fresh(key, seed)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.record(ctx, sess, store.ActionStart)
	return sess, nil
}

// Lookup resumes the session stored under key, using the stored seed.
func (s *Service) Lookup(ctx context.Context, key string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(ctx, key)
}

func (s *Service) lookup(ctx context.Context, key string) (*Session, error) {
	rec, err := s.progress.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return s.restore(rec)
}

// Answer records value for the current question, persists the new state
// and appends an answer event. A rejected answer changes nothing, in
// memory or in the store.
func (s *Service) Answer(ctx context.Context, sess *Session, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer(ctx, sess, value)
}

// AnswerKey is Answer for the session stored under key. Concurrent calls
// for the same key apply in turn.
func (s *Service) AnswerKey(ctx context.Context, key string, value int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.answer(ctx, sess, value); err != nil {
		return sess, err
	}
	return sess, nil
}

func (s *Service) answer(ctx context.Context, sess *Session, value int) error {
	next, err := assessment.Advance(sess.State, s.layout, value)
	if err != nil {
		return s.rejected(sess, value, err)
	}
	pos, err := sess.Current()
	if err != nil {
		return s.rejected(sess, value, err)
	}
	candidate := *sess
	candidate.State = next
	if err := s.save(ctx, &candidate); err != nil {
		return err
	}
	sess.State = next

	s.metrics.AnswerRecorded()
	if err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     sess.RunID,
		UserKey:       sess.Key,
		Section:       pos.Section,
		Trait:         pos.Trait,
		QuestionIndex: pos.QuestionIndex,
		Question:      pos.Question,
		Value:         value,
	}); err != nil {
		s.logger.Warn("record answer event", zap.String("run_id", sess.RunID), zap.Error(err))
	}
	s.logger.Debug("answer recorded",
		zap.String("user_key", sess.Key),
		zap.String("run_id", sess.RunID),
		zap.String("section", pos.Section),
		zap.String("trait", pos.Trait),
		zap.Int("value", value),
	)
	if sess.Complete() {
		s.record(ctx, sess, store.ActionComplete)
	}
	return nil
}

func (s *Service) rejected(sess *Session, value int, err error) error {
	if errors.Is(err, assessment.ErrInvalidAnswer) {
		s.metrics.AnswerRejected()
	}
	s.logger.Debug("answer rejected",
		zap.String("user_key", sess.Key),
		zap.String("run_id", sess.RunID),
		zap.Int("value", value),
		zap.Error(err),
	)
	return err
}

// Reset zeroes the session, starts a new run and persists it.
func (s *Service) Reset(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(ctx, sess)
}

// ResetKey is Reset for the session stored under key.
func (s *Service) ResetKey(ctx context.Context, key string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.reset(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) reset(ctx context.Context, sess *Session) error {
	next := *sess
	next.State = assessment.Reset(s.layout)
	next.RunID = s.newRunID()
	if err := s.save(ctx, &next); err != nil {
		return err
	}
	*sess = next
	s.record(ctx, sess, store.ActionReset)
	return nil
}

// Pause persists the session and records that the user stepped away.
func (s *Service) Pause(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, sess); err != nil {
		return err
	}
	s.record(ctx, sess, store.ActionPause)
	return nil
}

// Summary ranks a complete session's scores. It returns
// assessment.ErrIncomplete until every question is answered.
func (s *Service) Summary(sess *Session, topN int) (*report.Summary, error) {
	if !sess.Complete() {
		return nil, assessment.ErrIncomplete
	}
	return report.Build(s.layout, sess.State.Scores, topN)
}

// History returns the lifecycle events recorded for key, oldest first.
func (s *Service) History(ctx context.Context, key string, opts store.QueryOpts) ([]store.SessionEvent, error) {
	return s.events.QuerySessionEvents(ctx, key, opts)
}

func (s *Service) fresh(key string, seed int64) *Session {
	return &Session{
		Key:      key,
		Seed:     seed,
		RunID:    s.newRunID(),
		State:    assessment.NewProgress(s.layout),
		layout:   s.layout,
		ordering: s.cache.Get(seed),
	}
}

func (s *Service) restore(rec *store.ProgressRecord) (*Session, error) {
	st := assessment.ProgressState{
		SectionIndex:  rec.SectionIndex,
		TraitIndex:    rec.TraitIndex,
		QuestionIndex: rec.QuestionIndex,
		Scores:        assessment.ScoreTable(rec.Scores),
	}
	if err := assessment.Validate(st, s.layout); err != nil {
		return nil, fmt.Errorf("restore progress %s: %w", rec.Key, err)
	}
	if rec.BankVersion != s.version {
		s.logger.Warn("progress was saved against a different question bank",
			zap.String("user_key", rec.Key),
			zap.String("saved", rec.BankVersion),
			zap.String("loaded", s.version),
		)
	}
	return &Session{
		Key:      rec.Key,
		Seed:     rec.Seed,
		RunID:    rec.RunID,
		State:    st,
		layout:   s.layout,
		ordering: s.cache.Get(rec.Seed),
	}, nil
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	err := s.progress.Save(ctx, &store.ProgressRecord{
		Key:           sess.Key,
		Seed:          sess.Seed,
		RunID:         sess.RunID,
		SectionIndex:  sess.State.SectionIndex,
		TraitIndex:    sess.State.TraitIndex,
		QuestionIndex: sess.State.QuestionIndex,
		Scores:        sess.State.Scores,
		BankVersion:   s.version,
		Complete:      sess.Complete(),
	})
	if err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// record appends a session event and counts it. Event failures are logged;
// the progress they describe is already saved.
func (s *Service) record(ctx context.Context, sess *Session, action string) {
	s.metrics.SessionEvent(action)
	if err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: sess.RunID,
		UserKey:   sess.Key,
		Action:    action,
		Answered:  sess.Answered(),
		Remaining: sess.Remaining(),
	}); err != nil {
		s.logger.Warn("record session event", zap.String("action", action), zap.Error(err))
	}
	s.logger.Info("session "+action,
		zap.String("user_key", sess.Key),
		zap.String("run_id", sess.RunID),
		zap.Int("answered", sess.Answered()),
	)
}
