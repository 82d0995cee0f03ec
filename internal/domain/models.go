package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExtractionRun represents one document upload and its extraction outcome.
type ExtractionRun struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	DocumentName  string     `db:"document_name" json:"document_name"`
	DocumentSize  int64      `db:"document_size" json:"document_size"`
	ContentType   string     `db:"content_type" json:"content_type"`
	S3Bucket      string     `db:"s3_bucket" json:"s3_bucket,omitempty"`
	S3Key         string     `db:"s3_key" json:"s3_key,omitempty"`
	ModelUsed     string     `db:"model_used" json:"model_used"`
	Status        RunStatus  `db:"status" json:"status"`
	ErrorMessage  string     `db:"error_message" json:"error_message,omitempty"`
	ScenarioCount int        `db:"scenario_count" json:"scenario_count"`
	TokensUsed    int        `db:"tokens_used" json:"tokens_used"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at"`
}

// Scenario is one normalized integration test scenario extracted from a document.
// Modules always holds at least two entries; elements that come back from the
// model with fewer are discarded during normalization.
type Scenario struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	RunID               uuid.UUID  `db:"run_id" json:"run_id"`
	Position            int        `db:"position" json:"position"`
	RequirementLocation string     `db:"requirement_location" json:"requirement_location"`
	FlowSummary         string     `db:"flow_summary" json:"flow_summary"`
	Modules             StringList `db:"modules" json:"modules"`
	TestScenario        string     `db:"test_scenario" json:"test_scenario"`
	FlowType            FlowType   `db:"flow_type" json:"flow_type"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
}

// StringList is an ordered list of strings stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = StringList{}
		return nil
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}
