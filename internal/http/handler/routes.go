package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"pollbuilder/internal/http/middleware"
	"pollbuilder/internal/service"
)

// Deps carries what the routes need. Gatherer may be nil to skip /metrics.
type Deps struct {
	Health        []Dependency
	Library       service.LibraryService
	Documents     service.DocumentService
	Templates     service.TemplateService
	Gatherer      prometheus.Gatherer
	AdminPassword string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Health...))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", Metrics(d.Gatherer))
	}

	app.Get("/questions", ListQuestions(d.Library))
	app.Get("/documents", ListDocuments(d.Documents))
	app.Get("/documents/:id", GetDocument(d.Documents))
	app.Post("/templates/export", ExportTemplate(d.Templates))

	admin := middleware.AdminAuth(d.AdminPassword)
	app.Post("/documents", admin, UploadDocument(d.Documents))
	app.Delete("/documents/:id", admin, DeleteDocument(d.Documents))
	app.Post("/documents/:id/process", admin, ProcessDocument(d.Documents))
	app.Post("/process", admin, ProcessLegacy(d.Documents))
}
