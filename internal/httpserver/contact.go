package httpserver

import (
	"log"
	"net/http"

	contactsvc "crm-backend/internal/service/contact"
	"github.com/gin-gonic/gin"
)

func listContactsHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		contacts, err := svc.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(contacts), contacts)
	}
}

func getContactHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		contact, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "", contact)
	}
}

func contactsByCustomerHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := pathID(c, "customer_id")
		if !ok {
			return
		}
		contacts, err := svc.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(contacts), contacts)
	}
}

func contactsByTypeHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		contacts, err := svc.ListByType(c.Request.Context(), c.Param("type"))
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(contacts), contacts)
	}
}

func createContactHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in contactsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		contact, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondCreated(c, "Contact created successfully", contact)
	}
}

func updateContactHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in contactsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		contact, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Contact updated successfully", contact)
	}
}

func deleteContactHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		contact, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Contact deleted successfully", contact)
	}
}
