package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableLessons  = "lesson_completions"
	tableModules  = "module_passes"
	tableLearner  = "learner"
	tableSessions = "session_events"
	tableLLM      = "llm_request_events"

	learnerID = 1
)

var (
	lessonCompletionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "lesson_id", Type: field.TypeString, Unique: true},
		{Name: "completions", Type: field.TypeInt, Default: 1},
		{Name: "first_completed_at", Type: field.TypeTime},
		{Name: "last_completed_at", Type: field.TypeTime},
	}
	lessonCompletionsTable = &schema.Table{
		Name:       tableLessons,
		Columns:    lessonCompletionsColumns,
		PrimaryKey: []*schema.Column{lessonCompletionsColumns[0]},
	}

	modulePassesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "module_id", Type: field.TypeString, Unique: true},
		{Name: "passes", Type: field.TypeInt, Default: 1},
		{Name: "first_passed_at", Type: field.TypeTime},
		{Name: "last_passed_at", Type: field.TypeTime},
	}
	modulePassesTable = &schema.Table{
		Name:       tableModules,
		Columns:    modulePassesColumns,
		PrimaryKey: []*schema.Column{modulePassesColumns[0]},
	}

	// learner is a single row keyed by learnerID.
	learnerColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "total_correct", Type: field.TypeInt, Default: 0},
		{Name: "total_incorrect", Type: field.TypeInt, Default: 0},
		{Name: "time_spent_seconds", Type: field.TypeInt64, Default: 0},
		{Name: "admin", Type: field.TypeBool, Default: false},
	}
	learnerTable = &schema.Table{
		Name:       tableLearner,
		Columns:    learnerColumns,
		PrimaryKey: []*schema.Column{learnerColumns[0]},
	}

	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "target_id", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "incorrect", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "duration_secs", Type: field.TypeInt64},
		{Name: "percentage", Type: field.TypeFloat64},
		{Name: "passed", Type: field.TypeBool},
		{Name: "xp", Type: field.TypeInt},
	}
	sessionEventsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_target_id", Columns: []*schema.Column{sessionEventsColumns[5]}},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
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
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       tableLLM,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
		},
	}

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		lessonCompletionsTable,
		modulePassesTable,
		learnerTable,
		sessionEventsTable,
		llmRequestEventsTable,
	}
)
