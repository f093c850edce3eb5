package messaging

import (
	"context"
	"time"
)

// EventType identifies a ledger lifecycle event published for downstream
// consumers (notifications, activity feeds)
type EventType string

const (
	// EventEditionCreated is published after a creation confirms and the
	// ledger row is active
	EventEditionCreated EventType = "edition.created"
	// EventMintRecorded is published after a confirmed mint is appended
	EventMintRecorded EventType = "mint.recorded"
	// EventEditionEnded is published when an edition's window closes or its
	// supply sells out
	EventEditionEnded EventType = "edition.ended"
	// EventConsistencyFault is published when reconciliation finds ledger
	// state the chain does not recognize
	EventConsistencyFault EventType = "reconcile.fault"
)

// LedgerEvent is the message body for every ledger lifecycle event
type LedgerEvent struct {
	Type        EventType `json:"type"`
	MomentID    uint64    `json:"moment_id"`
	TxHash      string    `json:"tx_hash,omitempty"`
	Quantity    uint64    `json:"quantity,omitempty"`
	MintedCount uint64    `json:"minted_count,omitempty"`
	FaultID     string    `json:"fault_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher defines the interface for publishing ledger events to the
// message broker. Publishing is best-effort: ledger writes never roll back
// because an event failed to publish.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishLedgerEvent publishes a ledger lifecycle event
	PublishLedgerEvent(ctx context.Context, event *LedgerEvent) error
	// Close closes the connection
	Close()
}

// NopPublisher discards events; used when NATS is not configured
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards events
func NewNopPublisher() Publisher {
	return &NopPublisher{}
}

func (p *NopPublisher) PublishLedgerEvent(_ context.Context, _ *LedgerEvent) error {
	return nil
}

func (p *NopPublisher) Close() {}
