package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table declarations for the migrator. Every event table carries a unique
// global sequence so rows from different tables interleave in write order.
var (
	progressColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "seed", Type: field.TypeInt64},
		{Name: "run_id", Type: field.TypeString},
		{Name: "section_index", Type: field.TypeInt},
		{Name: "trait_index", Type: field.TypeInt},
		{Name: "question_index", Type: field.TypeInt},
		{Name: "scores", Type: field.TypeString, Size: 2147483647},
		{Name: "bank_version", Type: field.TypeString, Default: ""},
		{Name: "complete", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	progressTable = &schema.Table{
		Name:       "progress",
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
	}

	sessionEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_key", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "answered", Type: field.TypeInt},
		{Name: "remaining", Type: field.TypeInt},
	}
	sessionEventTable = &schema.Table{
		Name:       "session_events",
		Columns:    sessionEventColumns,
		PrimaryKey: []*schema.Column{sessionEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_user_key", Columns: []*schema.Column{sessionEventColumns[4]}},
		},
	}

	answerEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_key", Type: field.TypeString},
		{Name: "section", Type: field.TypeString},
		{Name: "trait", Type: field.TypeString},
		{Name: "question_index", Type: field.TypeInt},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "value", Type: field.TypeInt},
	}
	answerEventTable = &schema.Table{
		Name:       "answer_events",
		Columns:    answerEventColumns,
		PrimaryKey: []*schema.Column{answerEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventColumns[3]}},
		},
	}

	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{
		progressTable,
		sessionEventTable,
		answerEventTable,
		llmEventTable,
		sequenceTable,
	}
)
