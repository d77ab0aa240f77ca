package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simhealth/internal/middleware"
	"simhealth/internal/usecase/device"
	"simhealth/internal/usecase/vitals"
	appErrors "simhealth/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDeviceService struct {
	registerReq *device.RegisterRequest
	registerErr error
	statusUID   string
	status      *device.StatusResponse
	statusErr   error
}

func (f *fakeDeviceService) Register(_ context.Context, req *device.RegisterRequest) (*device.RegisterResponse, error) {
	f.registerReq = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &device.RegisterResponse{DeviceID: req.DeviceID, PatientID: req.PatientID, DeviceName: "ESP32-" + req.DeviceID}, nil
}

func (f *fakeDeviceService) GetStatus(_ context.Context, callerUID, _ string) (*device.StatusResponse, error) {
	f.statusUID = callerUID
	return f.status, f.statusErr
}

type fakeVitalsService struct {
	ingestResp *vitals.IngestResponse
	ingestErr  error
	listQuery  vitals.ListQuery
	listResp   *vitals.ListResponse
	listErr    error
	latestResp *vitals.LatestResponse
	latestErr  error
}

func (f *fakeVitalsService) Ingest(context.Context, *vitals.IngestRequest) (*vitals.IngestResponse, error) {
	return f.ingestResp, f.ingestErr
}

func (f *fakeVitalsService) ListVitals(_ context.Context, _ string, q vitals.ListQuery) (*vitals.ListResponse, error) {
	f.listQuery = q
	return f.listResp, f.listErr
}

func (f *fakeVitalsService) GetLatest(context.Context, string, string) (*vitals.LatestResponse, error) {
	return f.latestResp, f.latestErr
}

func withCaller(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UIDKey, uid)
		c.Next()
	}
}

func newRouter(ds DeviceService, vs VitalsService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())

	dh := NewDeviceHandler(ds)
	vh := NewVitalsHandler(vs)

	esp32 := r.Group("/api/esp32")
	dh.RegisterDeviceRoutes(esp32)
	vh.RegisterDeviceRoutes(esp32)
	dh.RegisterProtectedRoutes(r.Group("/api/esp32", withCaller("doc-1")))
	vh.RegisterProtectedRoutes(r.Group("/api/vitals", withCaller("doc-1")))
	return r
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestRegister(t *testing.T) {
	ds := &fakeDeviceService{}
	r := newRouter(ds, &fakeVitalsService{})

	w, body := do(r, http.MethodPost, "/api/esp32/register", `{"deviceId":"esp32-001","patientId":"p1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "esp32-001", body["deviceId"])
	assert.Equal(t, "p1", body["patientId"])
	assert.Equal(t, "ESP32 device registered successfully", body["message"])
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"missing fields", appErrors.InvalidRequest("Device ID and Patient ID are required", nil), http.StatusBadRequest, "Device ID and Patient ID are required"},
		{"patient missing", appErrors.NotFound("Patient not found"), http.StatusNotFound, "Patient not found"},
		{"reassignment", appErrors.Conflict("already owned"), http.StatusConflict, "already owned"},
		{"store down", appErrors.FromStore("Failed to register ESP32 device", context.DeadlineExceeded), http.StatusServiceUnavailable, "Failed to register ESP32 device"},
		{"unexpected", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&fakeDeviceService{registerErr: tt.err}, &fakeVitalsService{})

			w, body := do(r, http.MethodPost, "/api/esp32/register", `{"deviceId":"esp32-001","patientId":"p1"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	r := newRouter(&fakeDeviceService{}, &fakeVitalsService{})

	w, body := do(r, http.MethodPost, "/api/esp32/register", `{"deviceId":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestGetStatus_PassesCaller(t *testing.T) {
	ds := &fakeDeviceService{status: &device.StatusResponse{DeviceID: "esp32-001", IsOnline: true}}
	r := newRouter(ds, &fakeVitalsService{})

	w, body := do(r, http.MethodGet, "/api/esp32/status/esp32-001", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doc-1", ds.statusUID)
	dev := body["device"].(map[string]interface{})
	assert.Equal(t, true, dev["isOnline"])
}

func TestIngest(t *testing.T) {
	id := uuid.New()
	vs := &fakeVitalsService{ingestResp: &vitals.IngestResponse{VitalsID: id}}
	r := newRouter(&fakeDeviceService{}, vs)

	w, body := do(r, http.MethodPost, "/api/esp32/vitals", `{"deviceId":"esp32-001","heartRate":72}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), body["vitalsId"])
	assert.Equal(t, false, body["duplicate"])
}

func TestIngest_WrongFieldType(t *testing.T) {
	r := newRouter(&fakeDeviceService{}, &fakeVitalsService{})

	w, body := do(r, http.MethodPost, "/api/esp32/vitals", `{"deviceId":"esp32-001","ecgData":"flat"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid vital signs payload", body["error"])
}

func TestListVitals(t *testing.T) {
	vs := &fakeVitalsService{listResp: &vitals.ListResponse{PatientID: "p1", Vitals: []*vitals.ReadingResponse{}}}
	r := newRouter(&fakeDeviceService{}, vs)

	w, body := do(r, http.MethodGet, "/api/vitals/p1?limit=10&startAfter=abc", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", vs.listQuery.PatientID)
	assert.Equal(t, "10", vs.listQuery.Limit)
	assert.Equal(t, "abc", vs.listQuery.StartAfter)
	assert.Equal(t, float64(0), body["count"])
	assert.Contains(t, body, "nextCursor")
}

func TestListVitals_Forbidden(t *testing.T) {
	r := newRouter(&fakeDeviceService{}, &fakeVitalsService{listErr: appErrors.ErrDoctorOnly})

	w, body := do(r, http.MethodGet, "/api/vitals/p1", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Doctor access required", body["error"])
}

func TestGetLatest_NoData(t *testing.T) {
	vs := &fakeVitalsService{latestResp: &vitals.LatestResponse{PatientID: "p1", Message: "No vital signs data available"}}
	r := newRouter(&fakeDeviceService{}, vs)

	w, body := do(r, http.MethodGet, "/api/vitals/p1/latest", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["latestVitals"])
	assert.Equal(t, "No vital signs data available", body["message"])
}

type fakeHealth struct{ err error }

func (f fakeHealth) Health(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewSystemHandler(fakeHealth{}, "test").Health)
	r.GET("/down", NewSystemHandler(fakeHealth{err: errors.New("refused")}, "test").Health)

	w, _ := do(r, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := do(r, http.MethodGet, "/down", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", body["status"])
}
