package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trident.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// tick makes the store clock advance one second per call.
func tick(s *Store) {
	var mu sync.Mutex
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at = at.Add(time.Second)
		return at
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"progress", "session_events", "answer_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trident.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "r1", UserKey: "k", Action: ActionStart}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestProgressSaveLoad(t *testing.T) {
	s := openTestStore(t)
	tick(s)
	repo := s.ProgressRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := &ProgressRecord{
		Key:           "k1",
		Seed:          294,
		RunID:         "run-1",
		SectionIndex:  0,
		TraitIndex:    1,
		QuestionIndex: 3,
		Scores:        map[string]map[string]int{"RIASEC": {"Realistic": 48, "Investigative": 12}},
		BankVersion:   "v1.0.0",
	}
	require.NoError(t, repo.Save(ctx, rec))
	created := rec.CreatedAt

	got, err = repo.Load(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(294), got.Seed)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, [3]int{0, 1, 3}, [3]int{got.SectionIndex, got.TraitIndex, got.QuestionIndex})
	assert.Equal(t, rec.Scores, got.Scores)
	assert.Equal(t, "v1.0.0", got.BankVersion)
	assert.False(t, got.Complete)
	assert.True(t, got.CreatedAt.Equal(created), "created_at = %v, want %v", got.CreatedAt, created)

	// Upsert keeps created_at and replaces the rest.
	rec.CreatedAt = time.Time{}
	rec.QuestionIndex = 4
	rec.Complete = true
	rec.Scores["RIASEC"]["Investigative"] = 15
	require.NoError(t, repo.Save(ctx, rec))

	got, err = repo.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.QuestionIndex)
	assert.True(t, got.Complete)
	assert.Equal(t, 15, got.Scores["RIASEC"]["Investigative"])
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.After(created))
}

func TestProgressListAndDelete(t *testing.T) {
	s := openTestStore(t)
	tick(s)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, &ProgressRecord{Key: key, Scores: map[string]map[string]int{}}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Key, "most recently updated first")

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "b"), "deleting twice is fine")

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAnswerCount(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "run-1", UserKey: "k", Section: "X", Trait: "Y", QuestionIndex: i, Question: "q", Value: 3,
		}))
	}
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "run-2", Value: 1}))

	n, err := repo.AnswerCount(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.AnswerCount(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	tick(s)
	repo := s.EventRepo()
	ctx := context.Background()

	actions := []string{ActionStart, ActionPause, ActionResume, ActionComplete}
	for i, a := range actions {
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: "run-1", UserKey: "k", Action: a, Answered: i, Remaining: 10 - i,
		}))
	}
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "x", UserKey: "other", Action: ActionStart}))

	events, err := repo.QuerySessionEvents(ctx, "k", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i, e := range events {
		assert.Equal(t, actions[i], e.Action)
		assert.Equal(t, int64(i+1), e.Sequence)
	}

	events, err = repo.QuerySessionEvents(ctx, "k", QueryOpts{After: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionPause, events[0].Action)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Interleave with another event kind to check the shared sequence.
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "r", UserKey: "k", Action: ActionStart}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m1", Purpose: "guidance", InputTokens: 10, OutputTokens: 5,
		LatencyMs: 100, Success: true, RequestBody: "req", ResponseBody: "resp",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "m2", Purpose: "guidance", InputTokens: 20, OutputTokens: 1,
		LatencyMs: 300, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "m2", events[0].Model, "newest first")
	assert.Equal(t, int64(3), events[0].Sequence)
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.Success)
	assert.Equal(t, "req", e.RequestBody)
	assert.Equal(t, "resp", e.ResponseBody)

	e, err = repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, e)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, LLMUsage{Purpose: "guidance", Calls: 2, InputTokens: 30, OutputTokens: 6, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Len(t, byModel, 2)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TRIDENT_DB", filepath.Join(dir, "explicit", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "explicit", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "explicit"))

	t.Setenv("TRIDENT_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "trident", "trident.db"), p)
}
