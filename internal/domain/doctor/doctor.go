package doctor

import "context"

type Doctor struct {
	UID      string
	FullName string
}

//go:generate mockgen -destination=../../mocks/mock_doctor_repository.go -package=mocks -mock_names=Repository=MockDoctorRepository simhealth/internal/domain/doctor Repository

// Repository answers whether an authenticated identity is registered as a doctor.
type Repository interface {
	IsDoctor(ctx context.Context, uid string) (bool, error)
}
