package httpserver

import (
	"context"
	"log"
	"path/filepath"

	"crm-backend/internal/domain"
	authsvc "crm-backend/internal/service/auth"
	contactsvc "crm-backend/internal/service/contact"
	customersvc "crm-backend/internal/service/customer"
	leadsvc "crm-backend/internal/service/lead"
	stagesvc "crm-backend/internal/service/stage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CustomerService is the customer operations surface the handlers need.
type CustomerService interface {
	Create(ctx context.Context, in customersvc.Input) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in customersvc.Input) (*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Delete(ctx context.Context, id int64) (*domain.Customer, error)
}

// ContactService is the contact operations surface the handlers need.
type ContactService interface {
	Create(ctx context.Context, in contactsvc.Input) (*domain.Contact, error)
	Update(ctx context.Context, id int64, in contactsvc.Input) (*domain.Contact, error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error)
	ListByType(ctx context.Context, contactType string) ([]domain.Contact, error)
	Delete(ctx context.Context, id int64) (*domain.Contact, error)
}

// LeadService is the lead operations surface the handlers need.
type LeadService interface {
	Create(ctx context.Context, in leadsvc.Input) (*domain.Lead, error)
	Update(ctx context.Context, id int64, in leadsvc.Input) (*domain.Lead, error)
	Get(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Lead, error)
	Delete(ctx context.Context, id int64) (*domain.Lead, error)
}

// StageService is the stage operations surface the handlers need.
type StageService interface {
	Create(ctx context.Context, in stagesvc.Input) (*domain.Stage, error)
	UpdateName(ctx context.Context, id int64, stageName string) (*domain.Stage, error)
	Get(ctx context.Context, id int64) (*domain.Stage, error)
	List(ctx context.Context) ([]domain.Stage, error)
	ListByLead(ctx context.Context, leadID int64) ([]domain.Stage, error)
	Delete(ctx context.Context, id int64) (*domain.Stage, error)
}

// AuthService is the authentication surface: register, login and the token
// verification used by the middleware.
type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	VerifyToken(token string) (int64, error)
}

// Deps bundles the services the router hands to handlers.
type Deps struct {
	CustomerSvc CustomerService
	ContactSvc  ContactService
	LeadSvc     LeadService
	StageSvc    StageService
	AuthSvc     AuthService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, staticDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))
	router.Use(metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", registerHandler(deps.AuthSvc, logger))
	authGroup.POST("/login", loginHandler(deps.AuthSvc, logger))

	protected := api.Group("", authMiddleware(deps.AuthSvc))

	customers := protected.Group("/customers")
	customers.GET("", listCustomersHandler(deps.CustomerSvc, logger))
	customers.POST("", createCustomerHandler(deps.CustomerSvc, logger))
	customers.GET("/:id", getCustomerHandler(deps.CustomerSvc, logger))
	customers.PUT("/:id", updateCustomerHandler(deps.CustomerSvc, logger))
	customers.DELETE("/:id", deleteCustomerHandler(deps.CustomerSvc, logger))
	customers.GET("/:id/contacts", customerContactsHandler(deps.ContactSvc, logger))
	customers.GET("/:id/leads", customerLeadsHandler(deps.LeadSvc, logger))

	contacts := protected.Group("/contacts")
	contacts.GET("", listContactsHandler(deps.ContactSvc, logger))
	contacts.POST("", createContactHandler(deps.ContactSvc, logger))
	contacts.GET("/customer/:customer_id", contactsByCustomerHandler(deps.ContactSvc, logger))
	contacts.GET("/type/:type", contactsByTypeHandler(deps.ContactSvc, logger))
	contacts.GET("/:id", getContactHandler(deps.ContactSvc, logger))
	contacts.PUT("/:id", updateContactHandler(deps.ContactSvc, logger))
	contacts.DELETE("/:id", deleteContactHandler(deps.ContactSvc, logger))

	leads := protected.Group("/leads")
	leads.GET("", listLeadsHandler(deps.LeadSvc, logger))
	leads.POST("", createLeadHandler(deps.LeadSvc, logger))
	leads.GET("/:id", getLeadHandler(deps.LeadSvc, logger))
	leads.PUT("/:id", updateLeadHandler(deps.LeadSvc, logger))
	leads.DELETE("/:id", deleteLeadHandler(deps.LeadSvc, logger))

	stages := protected.Group("/stages")
	stages.GET("", listStagesHandler(deps.StageSvc, logger))
	stages.POST("", createStageHandler(deps.StageSvc, logger))
	stages.GET("/lead/:lead_id", stagesByLeadHandler(deps.StageSvc, logger))
	stages.GET("/:id", getStageHandler(deps.StageSvc, logger))
	stages.PUT("/:id", updateStageHandler(deps.StageSvc, logger))
	stages.DELETE("/:id", deleteStageHandler(deps.StageSvc, logger))

	if staticDir != "" {
		router.StaticFile("/", filepath.Join(staticDir, "index.html"))
		router.Static("/js", filepath.Join(staticDir, "js"))
		router.Static("/css", filepath.Join(staticDir, "css"))
	}

	return router
}
