package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressRecord is the persisted progress of one user. Key is the hashed
// identifier; the raw identifier is never stored. Seed is kept so a session
// can be resumed by key alone.
type ProgressRecord struct {
	Key           string
	Seed          int64
	RunID         string
	SectionIndex  int
	TraitIndex    int
	QuestionIndex int
	Scores        map[string]map[string]int
	BankVersion   string
	Complete      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProgressRepo stores one progress record per user key.
type ProgressRepo interface {
	// Save inserts or replaces the record for rec.Key.
	Save(ctx context.Context, rec *ProgressRecord) error

	// Load returns the record for key, or nil if none exists.
	Load(ctx context.Context, key string) (*ProgressRecord, error)

	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every record, most recently updated first.
	List(ctx context.Context) ([]ProgressRecord, error)
}

// Session event actions.
const (
	ActionStart    = "start"
	ActionResume   = "resume"
	ActionPause    = "pause"
	ActionReset    = "reset"
	ActionComplete = "complete"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID string
	UserKey   string
	Action    string
	Answered  int
	Remaining int
}

// AnswerEventData captures one accepted answer.
type AnswerEventData struct {
	SessionID     string
	UserKey       string
	Section       string
	Trait         string
	QuestionIndex int
	Question      string
	Value         int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionEvents returns a user's session events, oldest first.
	QuerySessionEvents(ctx context.Context, userKey string, opts QueryOpts) ([]SessionEvent, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// AnswerCount returns how many answers were recorded in a session run.
	AnswerCount(ctx context.Context, sessionID string) (int, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
