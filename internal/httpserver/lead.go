package httpserver

import (
	"log"
	"net/http"

	leadsvc "crm-backend/internal/service/lead"
	"github.com/gin-gonic/gin"
)

func listLeadsHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		leads, err := svc.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(leads), leads)
	}
}

func getLeadHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		lead, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "", lead)
	}
}

func createLeadHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in leadsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		lead, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondCreated(c, "Lead created successfully", lead)
	}
}

func updateLeadHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in leadsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		lead, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Lead updated successfully", lead)
	}
}

func deleteLeadHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		lead, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Lead deleted successfully", lead)
	}
}
