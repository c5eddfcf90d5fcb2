package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"faktura-backend/internal/handlers"
	"faktura-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	invoiceHandler *handlers.InvoiceHandler,
	templateHandler *handlers.TemplateHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Invoice generation and archive
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("/generate", invoiceHandler.Generate).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListArchive).Methods("GET")
	invoicesAPI.HandleFunc("/cache", invoiceHandler.FlushRenderCache).Methods("DELETE")

	// Reusable issuer profiles
	companyAPI := r.PathPrefix("/api/templates/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.HandleFunc("", templateHandler.ListCompany).Methods("GET")
	companyAPI.HandleFunc("", templateHandler.SaveCompany).Methods("POST")
	companyAPI.HandleFunc("/{id}", templateHandler.GetCompany).Methods("GET")
	companyAPI.HandleFunc("/{id}", templateHandler.UpdateCompany).Methods("PUT")
	companyAPI.HandleFunc("/{id}", templateHandler.DeleteCompany).Methods("DELETE")

	// Reusable recipient profiles
	clientAPI := r.PathPrefix("/api/templates/client").Subrouter()
	clientAPI.Use(authMiddleware.Authenticate)
	clientAPI.HandleFunc("", templateHandler.ListClient).Methods("GET")
	clientAPI.HandleFunc("", templateHandler.SaveClient).Methods("POST")
	clientAPI.HandleFunc("/{id}", templateHandler.GetClient).Methods("GET")
	clientAPI.HandleFunc("/{id}", templateHandler.UpdateClient).Methods("PUT")
	clientAPI.HandleFunc("/{id}", templateHandler.DeleteClient).Methods("DELETE")

	// Template backup round-trip
	templatesAPI := r.PathPrefix("/api/templates").Subrouter()
	templatesAPI.Use(authMiddleware.Authenticate)
	templatesAPI.HandleFunc("/export", templateHandler.Export).Methods("GET")
	templatesAPI.HandleFunc("/import", templateHandler.Import).Methods("POST")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
