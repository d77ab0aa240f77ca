package handler

import (
	"context"
	"net/http"
	"simhealth/internal/middleware"
	"simhealth/internal/usecase/vitals"
	"simhealth/pkg/utils"

	"github.com/gin-gonic/gin"
)

type VitalsService interface {
	Ingest(ctx context.Context, req *vitals.IngestRequest) (*vitals.IngestResponse, error)
	ListVitals(ctx context.Context, callerUID string, q vitals.ListQuery) (*vitals.ListResponse, error)
	GetLatest(ctx context.Context, callerUID, patientID string) (*vitals.LatestResponse, error)
}

type VitalsHandler struct {
	service VitalsService
}

func NewVitalsHandler(service VitalsService) *VitalsHandler {
	return &VitalsHandler{service: service}
}

func (h *VitalsHandler) RegisterDeviceRoutes(router *gin.RouterGroup) {
	router.POST("/vitals", h.Ingest)
}

func (h *VitalsHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/:patientId", h.ListVitals)
	router.GET("/:patientId/latest", h.GetLatest)
}

func (h *VitalsHandler) Ingest(c *gin.Context) {
	var req vitals.IngestRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vital signs payload")
		return
	}

	resp, err := h.service.Ingest(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload := gin.H{
		"vitalsId":  resp.VitalsID,
		"duplicate": resp.Duplicate,
	}
	if resp.Assessment != nil {
		payload["assessment"] = resp.Assessment
	}

	message := "Vital signs data stored successfully"
	if resp.Duplicate {
		message = "Vital signs data already stored"
	}
	utils.SuccessResponse(c, http.StatusOK, message, payload)
}

func (h *VitalsHandler) ListVitals(c *gin.Context) {
	var q vitals.ListQuery

	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	q.PatientID = c.Param("patientId")

	resp, err := h.service.ListVitals(c.Request.Context(), middleware.CallerUID(c), q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"patientId":  resp.PatientID,
		"vitals":     resp.Vitals,
		"count":      resp.Count,
		"nextCursor": resp.NextCursor,
	})
}

func (h *VitalsHandler) GetLatest(c *gin.Context) {
	resp, err := h.service.GetLatest(c.Request.Context(), middleware.CallerUID(c), c.Param("patientId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, gin.H{
		"patientId":    resp.PatientID,
		"latestVitals": resp.LatestVitals,
		"assessment":   resp.Assessment,
	})
}
