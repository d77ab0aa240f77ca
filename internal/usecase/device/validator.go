package device

import (
	"context"
	domainDevice "simhealth/internal/domain/device"
	"simhealth/internal/logger"
	appErrors "simhealth/pkg/errors"

	"go.uber.org/zap"
)

// checkReassignment guards moving a device to another patient once it has
// produced readings for the current owner.
func (s *Service) checkReassignment(ctx context.Context, existing *domainDevice.Device, req *RegisterRequest) error {
	if req.ConfirmReassign {
		return nil
	}

	count, err := s.vitalsRepo.CountByDevice(ctx, existing.DeviceID)
	if err != nil {
		return appErrors.FromStore("Failed to register ESP32 device", err)
	}
	if count == 0 {
		return nil
	}

	logger.ForDevice(existing.DeviceID, existing.PatientID).Warn("Refused device reassignment",
		zap.String("requested_patient_id", req.PatientID),
		zap.Int64("readings", count),
	)
	return appErrors.Conflict("Device already has readings for another patient; set confirmReassign to move it")
}

// CanViewDevice allows doctors and the patient who owns the device.
func CanViewDevice(callerUID string, isDoctor bool, device *domainDevice.Device) error {
	if isDoctor {
		return nil
	}
	if callerUID != "" && callerUID == device.PatientID {
		return nil
	}
	return appErrors.Forbidden("Access to this device is not allowed")
}
