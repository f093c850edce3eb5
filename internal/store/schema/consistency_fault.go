package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ConsistencyFault represents the consistency_faults table - ledger state the
// chain does not recognize, surfaced for operator review. Faults are never
// auto-resolved by deleting ledger rows; an operator resolves them manually.
type ConsistencyFault struct {
	// ID is a ULID assigned at detection time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// MomentID is the moment whose ledger state diverged
	MomentID uint64 `gorm:"column:moment_id;not null;index"`
	// Detail captures both sides of the divergence as JSON
	Detail datatypes.JSON `gorm:"column:detail;type:jsonb"`
	// Resolved is flipped by an operator after manual review
	Resolved bool `gorm:"column:resolved;not null;default:false;index"`
	// CreatedAt is the timestamp when the fault was detected
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ConsistencyFault model
func (ConsistencyFault) TableName() string {
	return "consistency_faults"
}
