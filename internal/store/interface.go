package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidID is returned for identifiers that don't match the store's
	// identifier format. Distinct from a well-formed id with no record.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound is returned for a well-formed identifier with no record.
	ErrNotFound = errors.New("document not found")
)

// Result is the durable unit produced by one successful pipeline run.
// It is created fully-formed and never mutated.
type Result struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Filename          string             `bson:"filename" json:"filename"`
	Transcription     string             `bson:"transcription" json:"transcription"`
	SummaryAndActions string             `bson:"summary_and_actions" json:"summary_and_actions"`
	Timestamp         time.Time          `bson:"timestamp" json:"timestamp"`
}

// Store persists pipeline results keyed by an opaque identifier.
type Store interface {
	// Insert assigns an identifier and UTC timestamp, persists the record
	// atomically, and returns the identifier as a hex string.
	Insert(ctx context.Context, filename, transcription, summaryAndActions string) (string, error)
	// ListRecent returns all results ordered by creation time descending.
	ListRecent(ctx context.Context) ([]Result, error)
	// GetByID resolves an identifier to its record.
	GetByID(ctx context.Context, id string) (Result, error)
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
