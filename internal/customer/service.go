package customer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
)

type Service struct {
	pips   PIPRepo
	logger logger.Logger
}

func NewService(pips PIPRepo, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{pips: pips, logger: log}
}

func (s *Service) Create(ctx context.Context, callerID string, req CreatePIPRequest) (*PIP, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in to manage your party")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	p := NewPIP()
	p.CustomerID = callerID
	p.Name = strings.TrimSpace(req.Name)
	p.BeforeCreate()

	if err := s.pips.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("cannot create pip: %w", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, callerID string, req UpdatePIPRequest) (*PIP, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in to manage your party")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	p, err := s.owned(ctx, callerID, req.PIPID)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.BeforeUpdate()

	if err := s.pips.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("cannot save pip: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, callerID string, req DeletePIPRequest) error {
	if callerID == "" {
		return apperr.Unauthenticatedf("sign in to manage your party")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	p, err := s.owned(ctx, callerID, req.PIPID)
	if err != nil {
		return err
	}

	if err := s.pips.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("cannot delete pip: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, callerID string) ([]*PIP, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in to manage your party")
	}

	list, err := s.pips.ListByCustomer(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("cannot list pips: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// owned hides PIPs of other customers behind not-found.
func (s *Service) owned(ctx context.Context, callerID string, id uuid.UUID) (*PIP, error) {
	p, err := s.pips.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get pip: %w", err)
	}
	if p == nil || p.CustomerID != callerID {
		return nil, apperr.NotFoundf("pip not found")
	}
	return p, nil
}
