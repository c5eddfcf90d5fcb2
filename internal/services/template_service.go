package services

import (
	"context"
	"encoding/json"

	"faktura-backend/internal/cache"
	"faktura-backend/internal/metrics"
	"faktura-backend/internal/models"
	"faktura-backend/internal/repositories"
)

// TemplateService manages reusable issuer and recipient profiles with a
// Redis-backed list cache
type TemplateService struct {
	Repo *repositories.TemplateRepository
}

func NewTemplateService(repo *repositories.TemplateRepository) *TemplateService {
	return &TemplateService{Repo: repo}
}

func (s *TemplateService) SaveCompany(ctx context.Context, t *models.CompanyTemplate) error {
	if err := s.Repo.SaveCompany(ctx, t); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "company")
	return nil
}

func (s *TemplateService) ListCompany(ctx context.Context) ([]*models.CompanyTemplate, error) {
	if data, ok := cache.GetCachedTemplates(ctx, "company"); ok {
		var templates []*models.CompanyTemplate
		if err := json.Unmarshal(data, &templates); err == nil {
			metrics.CacheHitsTotal.WithLabelValues("template", "hit").Inc()
			return templates, nil
		}
	}
	metrics.CacheHitsTotal.WithLabelValues("template", "miss").Inc()

	templates, err := s.Repo.ListCompany(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(templates); err == nil {
		cache.CacheTemplates(ctx, "company", data)
	}
	return templates, nil
}

func (s *TemplateService) GetCompany(ctx context.Context, id int) (*models.CompanyTemplate, error) {
	return s.Repo.GetCompany(ctx, id)
}

func (s *TemplateService) UpdateCompany(ctx context.Context, t *models.CompanyTemplate) error {
	if err := s.Repo.UpdateCompany(ctx, t); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "company")
	return nil
}

func (s *TemplateService) DeleteCompany(ctx context.Context, id int) error {
	if err := s.Repo.DeleteCompany(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "company")
	return nil
}

func (s *TemplateService) SaveClient(ctx context.Context, t *models.ClientTemplate) error {
	if err := s.Repo.SaveClient(ctx, t); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "client")
	return nil
}

func (s *TemplateService) ListClient(ctx context.Context) ([]*models.ClientTemplate, error) {
	if data, ok := cache.GetCachedTemplates(ctx, "client"); ok {
		var templates []*models.ClientTemplate
		if err := json.Unmarshal(data, &templates); err == nil {
			metrics.CacheHitsTotal.WithLabelValues("template", "hit").Inc()
			return templates, nil
		}
	}
	metrics.CacheHitsTotal.WithLabelValues("template", "miss").Inc()

	templates, err := s.Repo.ListClient(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(templates); err == nil {
		cache.CacheTemplates(ctx, "client", data)
	}
	return templates, nil
}

func (s *TemplateService) GetClient(ctx context.Context, id int) (*models.ClientTemplate, error) {
	return s.Repo.GetClient(ctx, id)
}

func (s *TemplateService) UpdateClient(ctx context.Context, t *models.ClientTemplate) error {
	if err := s.Repo.UpdateClient(ctx, t); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "client")
	return nil
}

func (s *TemplateService) DeleteClient(ctx context.Context, id int) error {
	if err := s.Repo.DeleteClient(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "client")
	return nil
}

// Export bundles every stored profile for download
func (s *TemplateService) Export(ctx context.Context) (*models.TemplateExport, error) {
	company, err := s.Repo.ListCompany(ctx)
	if err != nil {
		return nil, err
	}
	client, err := s.Repo.ListClient(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TemplateExport{Company: company, Client: client}, nil
}

// Import upserts every profile from an export envelope
func (s *TemplateService) Import(ctx context.Context, export *models.TemplateExport) error {
	if err := s.Repo.ImportAll(ctx, export); err != nil {
		return err
	}
	cache.InvalidateTemplates(ctx, "company")
	cache.InvalidateTemplates(ctx, "client")
	return nil
}
