package httpserver

import (
	"errors"
	"log"
	"net/http"

	authsvc "crm-backend/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func registerHandler(svc AuthService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in authsvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}

		_, token, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		respondCreated(c, "User registered successfully", tokenResponse{Token: token})
	}
}

func loginHandler(svc AuthService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}

		_, token, err := svc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				respondError(c, http.StatusBadRequest, "Invalid credentials", nil)
				return
			}
			writeServiceError(c, logger, err)
			return
		}
		respondOK(c, "Login successful", tokenResponse{Token: token})
	}
}
