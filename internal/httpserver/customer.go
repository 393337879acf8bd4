package httpserver

import (
	"log"
	"net/http"

	customersvc "crm-backend/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func listCustomersHandler(svc CustomerService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(customers), customers)
	}
}

func getCustomerHandler(svc CustomerService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		customer, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "", customer)
	}
}

func createCustomerHandler(svc CustomerService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		customer, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondCreated(c, "Customer created successfully", customer)
	}
}

func updateCustomerHandler(svc CustomerService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		customer, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Customer updated successfully", customer)
	}
}

func deleteCustomerHandler(svc CustomerService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		customer, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Customer deleted successfully", customer)
	}
}

func customerContactsHandler(svc ContactService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		contacts, err := svc.ListByCustomer(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(contacts), contacts)
	}
}

func customerLeadsHandler(svc LeadService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		leads, err := svc.ListByCustomer(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondList(c, len(leads), leads)
	}
}
