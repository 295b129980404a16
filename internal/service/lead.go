package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"conectaleads/internal/cache"
	"conectaleads/internal/events"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// LeadListResult is a page of leads.
type LeadListResult struct {
	Items []model.Lead `json:"data"`
	Total int          `json:"total"`
}

// LeadService covers the lead list and the create/edit forms.
type LeadService interface {
	List(ctx context.Context, f repository.LeadFilter, limit, offset int) (*LeadListResult, error)
	Get(ctx context.Context, id int64) (*model.Lead, error)
	// Create validates required fields before touching the store and defaults
	// the status to novo.
	Create(ctx context.Context, in model.LeadInput) (*model.Lead, error)
	Update(ctx context.Context, id int64, in model.LeadInput) (*model.Lead, error)
	Delete(ctx context.Context, id int64) error
}

type leadService struct {
	repo  repository.LeadRepository
	pub   events.Publisher
	cache cache.Cache
	log   *zap.Logger
}

func NewLeadService(repo repository.LeadRepository, pub events.Publisher, c cache.Cache, log *zap.Logger) LeadService {
	return &leadService{repo: repo, pub: pub, cache: c, log: log.With(zap.String("component", "lead_service"))}
}

func (s *leadService) List(ctx context.Context, f repository.LeadFilter, limit, offset int) (*LeadListResult, error) {
	res, err := s.repo.List(ctx, f, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &LeadListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *leadService) Get(ctx context.Context, id int64) (*model.Lead, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "lead")
	}
	return l, nil
}

func (s *leadService) Create(ctx context.Context, in model.LeadInput) (*model.Lead, error) {
	in = normalizeLead(in)
	if err := validate(in.MissingRequired()); err != nil {
		return nil, err
	}

	l, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, storeError(err, "lead")
	}

	invalidateInsights(ctx, s.cache)
	s.publish(ctx, events.RKLeadCreated, events.LeadCreated{LeadID: l.ID, Name: l.Name, Source: deref(l.Source)})
	return l, nil
}

func (s *leadService) Update(ctx context.Context, id int64, in model.LeadInput) (*model.Lead, error) {
	in = normalizeLead(in)
	if err := validate(in.MissingRequired()); err != nil {
		return nil, err
	}

	l, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, storeError(err, "lead")
	}

	invalidateInsights(ctx, s.cache)
	s.publish(ctx, events.RKLeadUpdated, events.LeadUpdated{LeadID: l.ID, Name: l.Name, Status: deref(l.Status)})
	return l, nil
}

func (s *leadService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "lead")
	}
	invalidateInsights(ctx, s.cache)
	return nil
}

// publish never fails the caller; the lead is already stored.
func (s *leadService) publish(ctx context.Context, key string, v any) {
	if err := s.pub.Publish(ctx, key, v); err != nil {
		s.log.Warn("event_publish_failed", zap.String("routing_key", key), zap.Error(err))
	}
}

// normalizeLead trims the required fields, blanks empty optional ones and
// applies the default status.
func normalizeLead(in model.LeadInput) model.LeadInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = trimOptional(in.City)
	in.PlanType = trimOptional(in.PlanType)
	in.Source = trimOptional(in.Source)
	in.Temperature = trimOptional(in.Temperature)
	in.Notes = trimOptional(in.Notes)
	if in.Status = trimOptional(in.Status); in.Status == nil {
		st := model.StatusNew
		in.Status = &st
	}
	return in
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// pageQuery applies the default page size of 10 and clamps negative offsets.
func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
