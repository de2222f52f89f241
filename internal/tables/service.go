package tables

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/enums/tablestatus"
	"github.com/appetiteclub/dinein/pkg/event"
)

const (
	defaultCapacity  = 4
	tableEventSource = "tables"
)

type Service struct {
	tables    TableRepo
	staff     StaffAuthorizer
	publisher pkg.Publisher
	logger    logger.Logger
}

func NewService(tables TableRepo, staff StaffAuthorizer, publisher pkg.Publisher, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{tables: tables, staff: staff, publisher: publisher, logger: log}
}

// Generate creates "Table 1".."Table N" for a restaurant that has no tables yet.
func (s *Service) Generate(ctx context.Context, callerID string, req GenerateTablesRequest) ([]*Table, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	existing, err := s.tables.ListByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperr.FailedPreconditionf("restaurant already has %d tables", len(existing))
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}

	created := make([]*Table, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		t := NewTable()
		t.RestaurantID = req.RestaurantID
		t.Name = "Table " + strconv.Itoa(i)
		t.Capacity = capacity
		t.UpdatedBy = callerID
		t.BeforeCreate()
		created = append(created, t)
	}

	if err := s.tables.CreateMany(ctx, created); err != nil {
		return nil, fmt.Errorf("cannot create tables: %w", err)
	}

	s.publish(ctx, event.TableStatusEvent{
		EventType:    event.EventTablesGenerated,
		RestaurantID: req.RestaurantID.String(),
		Status:       tablestatus.Statuses.Available.Code(),
		Reason:       fmt.Sprintf("generated %d tables", len(created)),
	})
	s.logger.Info("tables generated", "restaurant_id", req.RestaurantID.String(), "count", len(created))
	return created, nil
}

// List returns the restaurant's tables in numeric name order.
func (s *Service) List(ctx context.Context, callerID string, req ListTablesRequest) ([]*Table, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	list, err := s.tables.ListByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	SortByName(list)
	return list, nil
}

func (s *Service) UpdateStatus(ctx context.Context, callerID string, req UpdateTableStatusRequest) (*Table, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, callerID, req.TableID, req.Status, "status.updated")
}

func (s *Service) Clear(ctx context.Context, callerID string, req ClearTableRequest) (*Table, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, callerID, req.TableID, tablestatus.Statuses.Available.Code(), "table.cleared")
}

// MarkOccupied seats a party at the named table. The table's current status is
// not checked; a table that was not available only produces a warning.
func (s *Service) MarkOccupied(ctx context.Context, restaurantID uuid.UUID, name, by string) error {
	t, err := s.tables.GetByName(ctx, restaurantID, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("cannot get table: %w", err)
	}
	if t == nil {
		s.logger.Warn("table not found for check-in", "restaurant_id", restaurantID.String(), "table", name)
		return nil
	}
	if !t.IsAvailable() {
		s.logger.Warn("seating party at table that is not available", "table_id", t.ID.String(), "status", t.Status)
	}

	previous := t.SetStatus(tablestatus.Statuses.Occupied.Code(), by)
	if err := s.tables.Save(ctx, t); err != nil {
		return fmt.Errorf("cannot save table: %w", err)
	}
	s.publishStatusChanged(ctx, t, previous, "checkin.accepted")
	return nil
}

func (s *Service) setStatus(ctx context.Context, callerID string, id uuid.UUID, status, reason string) (*Table, error) {
	t, err := s.tables.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get table: %w", err)
	}
	if t == nil {
		return nil, apperr.NotFoundf("table not found")
	}
	if err := s.requireStaff(ctx, t.RestaurantID, callerID); err != nil {
		return nil, err
	}

	previous := t.SetStatus(status, callerID)
	if err := s.tables.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("cannot save table: %w", err)
	}
	if previous != status {
		s.publishStatusChanged(ctx, t, previous, reason)
	}
	return t, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, t *Table, previous, reason string) {
	s.publish(ctx, event.TableStatusEvent{
		EventType:      event.EventTableStatusChanged,
		RestaurantID:   t.RestaurantID.String(),
		TableID:        t.ID.String(),
		TableName:      t.Name,
		Status:         t.Status,
		PreviousStatus: previous,
		Reason:         reason,
	})
}

func (s *Service) publish(ctx context.Context, e event.TableStatusEvent) {
	e.Source = tableEventSource
	e.OccurredAt = time.Now().UTC()
	if err := pkg.PublishJSON(ctx, s.publisher, event.TableStatusTopic, e); err != nil {
		s.logger.Error("cannot publish table status event", "error", err, "restaurant_id", e.RestaurantID)
	}
}

func (s *Service) requireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if s.staff == nil {
		return nil
	}
	return s.staff.RequireStaff(ctx, restaurantID, callerID)
}

// SortByName orders tables so that "Table 2" precedes "Table 10".
func SortByName(list []*Table) {
	sort.SliceStable(list, func(i, j int) bool {
		ni, oki := trailingNumber(list[i].Name)
		nj, okj := trailingNumber(list[j].Name)
		if oki && okj && ni != nj {
			return ni < nj
		}
		return list[i].Name < list[j].Name
	})
}

func trailingNumber(name string) (int, bool) {
	i := strings.LastIndexByte(name, ' ')
	n, err := strconv.Atoi(name[i+1:])
	return n, err == nil
}
