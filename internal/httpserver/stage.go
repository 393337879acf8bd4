package httpserver

import (
	"log"
	"net/http"

	stagesvc "crm-backend/internal/service/stage"
	"github.com/gin-gonic/gin"
)

type updateStageRequest struct {
	StageName string `json:"stage_name"`
}

func listStagesHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stages, err := svc.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(stages), stages)
	}
}

func getStageHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		stage, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "", stage)
	}
}

func stagesByLeadHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		leadID, ok := pathID(c, "lead_id")
		if !ok {
			return
		}
		stages, err := svc.ListByLead(c.Request.Context(), leadID)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(stages), stages)
	}
}

func createStageHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in stagesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		stage, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondCreated(c, "Stage created successfully", stage)
	}
}

func updateStageHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in updateStageRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		stage, err := svc.UpdateName(c.Request.Context(), id, in.StageName)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Stage updated successfully", stage)
	}
}

func deleteStageHandler(svc StageService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		stage, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Stage deleted successfully", stage)
	}
}
