package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PolicyRule is the structured rule set governing what an insurer pays
// under a given plan. Immutable once loaded; looked up by (insurer, plan).
type PolicyRule struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Insurer              string     `db:"insurer" json:"insurer"`
	Plan                 string     `db:"plan" json:"plan"`
	CoveragePercent      float64    `db:"coverage_percent" json:"coverage_percent"`
	Deductible           float64    `db:"deductible" json:"deductible"`
	AnnualLimit          float64    `db:"annual_limit" json:"annual_limit"`
	RoomRentLimit        *float64   `db:"room_rent_limit" json:"room_rent_limit"` // nil = unlimited
	CoPayPercent         float64    `db:"co_pay_percent" json:"co_pay_percent"`
	NonPayableKeywords   StringList `db:"non_payable_keywords" json:"non_payable_keywords"`
	ProcessingDescriptor string     `db:"processing_descriptor" json:"processing_descriptor"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// RoomRentUnlimited reports whether the plan places no cap on room rent.
func (p *PolicyRule) RoomRentUnlimited() bool {
	return p.RoomRentLimit == nil
}

// ExtractedDocument is the result of running the extraction pipeline over an
// uploaded bill. Created once per upload, immutable after creation.
type ExtractedDocument struct {
	SourceFormat SourceFormat     `json:"source_format"`
	RawText      string           `json:"raw_text"`
	Method       ExtractionMethod `json:"extraction_method"`
	Warnings     []string         `json:"warnings"`
	Confidence   Confidence       `json:"confidence"`
}

// BillLineItem is a single charge parsed from bill text. Derived, never
// persisted; absence of parseable line items is a valid state.
type BillLineItem struct {
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Category    LineItemCategory `json:"category"`
}

// Deduction is one applied step in a coverage computation, in order applied.
type Deduction struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

// CoverageEstimate is the computed payable range plus the ordered trace of
// deductions that produced it. Recomputed on demand, never persisted.
type CoverageEstimate struct {
	Conservative   float64        `json:"conservative"`
	Optimistic     float64        `json:"optimistic"`
	Deductions     []Deduction    `json:"deductions_applied"`
	TimelineBucket TimelineBucket `json:"timeline_bucket"`
	Status         EstimateStatus `json:"status"`
}

// Conversation groups an extracted bill with its message history for one
// insurer+plan selection.
type Conversation struct {
	ID                   uuid.UUID        `db:"id" json:"id"`
	Insurer              string           `db:"insurer" json:"insurer"`
	Plan                 string           `db:"plan" json:"plan"`
	BillText             string           `db:"bill_text" json:"bill_text"`
	SourceFormat         SourceFormat     `db:"source_format" json:"source_format"`
	ExtractionMethod     ExtractionMethod `db:"extraction_method" json:"extraction_method"`
	ExtractionConfidence Confidence       `db:"extraction_confidence" json:"extraction_confidence"`
	ExtractionWarnings   StringList       `db:"extraction_warnings" json:"extraction_warnings"`
	S3Bucket             string           `db:"s3_bucket" json:"-"`
	S3Key                string           `db:"s3_key" json:"-"`
	CreatedAt            time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time        `db:"updated_at" json:"updated_at"`

	Messages []Message `db:"-" json:"messages,omitempty"`
}

// Message is one chat turn entry. Append-only; ordering is the sole source
// of truth for conversation context.
type Message struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	ConversationID uuid.UUID   `db:"conversation_id" json:"conversation_id"`
	Role           MessageRole `db:"role" json:"role"`
	Content        string      `db:"content" json:"content"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}

// StringList is a []string stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, s)
}
