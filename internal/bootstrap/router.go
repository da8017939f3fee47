package bootstrap

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/appbuilder-io/appbuilder-backend/internal/api/http"
	"github.com/appbuilder-io/appbuilder-backend/internal/archive"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
	"github.com/appbuilder-io/appbuilder-backend/internal/billing"
	"github.com/appbuilder-io/appbuilder-backend/internal/codegen"
	projhttp "github.com/appbuilder-io/appbuilder-backend/internal/projects/http"
	"github.com/appbuilder-io/appbuilder-backend/internal/projects/repository"
	"github.com/appbuilder-io/appbuilder-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Verifier       auth.Verifier
	Generator      codegen.Generator
	Payments       billing.Processor
	DB             *firestore.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewRepo(dep.DB)
	userRepo := users.NewRepo(dep.DB, projectRepo)
	billingRepo := billing.NewRepo(dep.DB)

	billingHandler := billing.NewHandler(dep.Payments, billingRepo)

	api := r.Group("/api")

	// The payment processor calls back before a session exists, so verify
	// stays outside the auth middleware.
	api.POST("/billing/verify", billingHandler.Verify)

	authed := api.Group("")
	authed.Use(auth.RequireUser(dep.Verifier))

	codegen.NewHandler(dep.Generator, projectRepo).Register(authed)
	projhttp.NewHandler(projectRepo).Register(authed)
	archive.NewHandler().Register(authed)
	users.NewHandler(userRepo).Register(authed)
	billingHandler.Register(authed)

	return r
}
