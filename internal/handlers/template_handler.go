package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"faktura-backend/internal/models"
	"faktura-backend/internal/repositories"
	"faktura-backend/internal/services"
	"faktura-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type TemplateHandler struct {
	Service *services.TemplateService
}

func NewTemplateHandler(s *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{Service: s}
}

// SaveCompany upserts an issuer profile
func (h *TemplateHandler) SaveCompany(w http.ResponseWriter, r *http.Request) {
	var t models.CompanyTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if t.Name == "" || t.LegalName == "" {
		utils.Error(w, http.StatusBadRequest, "name and legal_name are required")
		return
	}

	if err := h.Service.SaveCompany(r.Context(), &t); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to save template")
		return
	}

	utils.JSON(w, http.StatusOK, &t)
}

// ListCompany returns all issuer profiles
func (h *TemplateHandler) ListCompany(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListCompany(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// GetCompany returns one issuer profile
func (h *TemplateHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	t, err := h.Service.GetCompany(r.Context(), id)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load template")
		return
	}

	utils.JSON(w, http.StatusOK, t)
}

// UpdateCompany rewrites an issuer profile by id
func (h *TemplateHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var t models.CompanyTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if t.Name == "" || t.LegalName == "" {
		utils.Error(w, http.StatusBadRequest, "name and legal_name are required")
		return
	}
	t.ID = id

	err = h.Service.UpdateCompany(r.Context(), &t)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	utils.JSON(w, http.StatusOK, &t)
}

// DeleteCompany removes an issuer profile
func (h *TemplateHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	err = h.Service.DeleteCompany(r.Context(), id)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SaveClient upserts a recipient profile
func (h *TemplateHandler) SaveClient(w http.ResponseWriter, r *http.Request) {
	var t models.ClientTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if t.Name == "" || t.LegalName == "" {
		utils.Error(w, http.StatusBadRequest, "name and legal_name are required")
		return
	}

	if err := h.Service.SaveClient(r.Context(), &t); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to save template")
		return
	}

	utils.JSON(w, http.StatusOK, &t)
}

// ListClient returns all recipient profiles
func (h *TemplateHandler) ListClient(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListClient(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// GetClient returns one recipient profile
func (h *TemplateHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	t, err := h.Service.GetClient(r.Context(), id)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load template")
		return
	}

	utils.JSON(w, http.StatusOK, t)
}

// UpdateClient rewrites a recipient profile by id
func (h *TemplateHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var t models.ClientTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if t.Name == "" || t.LegalName == "" {
		utils.Error(w, http.StatusBadRequest, "name and legal_name are required")
		return
	}
	t.ID = id

	err = h.Service.UpdateClient(r.Context(), &t)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	utils.JSON(w, http.StatusOK, &t)
}

// DeleteClient removes a recipient profile
func (h *TemplateHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	err = h.Service.DeleteClient(r.Context(), id)
	if errors.Is(err, repositories.ErrTemplateNotFound) {
		utils.Error(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Export streams every stored profile as a JSON download
func (h *TemplateHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.Service.Export(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to export templates")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="faktura-templates.json"`)
	json.NewEncoder(w).Encode(export)
}

// Import upserts profiles from a previously exported envelope
func (h *TemplateHandler) Import(w http.ResponseWriter, r *http.Request) {
	var export models.TemplateExport
	if err := json.NewDecoder(r.Body).Decode(&export); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Import(r.Context(), &export); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to import templates")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"imported_company": len(export.Company),
		"imported_client":  len(export.Client),
	})
}
