package vitals

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../mocks/mock_vitals_repository.go -package=mocks -mock_names=Repository=MockVitalsRepository simhealth/internal/domain/vitals Repository

// Repository persists readings and serves them ordered by timestamp descending,
// ties broken by insertion order (later insertion first).
type Repository interface {
	// Create stores reading and fills in its ID. When reading.Sequence collides with
	// a stored reading of the same device, it returns the stored reading together
	// with ErrDuplicateReading.
	Create(ctx context.Context, reading *Reading) (*Reading, error)
	// List returns at most limit readings of patientID strictly after cursor.
	List(ctx context.Context, patientID string, limit int, cursor *uuid.UUID) ([]*Reading, error)
	// Latest returns the first reading of the List ordering, or ErrReadingNotFound.
	Latest(ctx context.Context, patientID string) (*Reading, error)
	CountByDevice(ctx context.Context, deviceID string) (int64, error)
}
