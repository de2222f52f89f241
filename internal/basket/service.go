package basket

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/enums/itemstatus"
	"github.com/appetiteclub/dinein/pkg/event"
)

type ServiceDeps struct {
	Items     BasketRepo
	Menu      MenuLookup
	Staff     StaffAuthorizer
	Publisher pkg.Publisher
	Logger    logger.Logger
}

type Service struct {
	items     BasketRepo
	menu      MenuLookup
	staff     StaffAuthorizer
	publisher pkg.Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	return &Service{
		items:     deps.Items,
		menu:      deps.Menu,
		staff:     deps.Staff,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// AddItem adds one unit of the dish for every selected PIP, merging into the
// unsent line with the same dish and PIP when one exists.
func (s *Service) AddItem(ctx context.Context, callerID string, req AddItemRequest) error {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	dish, err := s.resolveDish(ctx, req.RestaurantID, req.Dish)
	if err != nil {
		return err
	}

	now := s.now()
	batch := NewBatch()
	for _, pip := range req.SelectedPIPs {
		item := NewBasketItem()
		item.UserID = req.UserID
		item.RestaurantID = req.RestaurantID
		item.Dish = dish
		item.PIP = PIPRef{ID: strings.TrimSpace(pip.ID), Name: strings.TrimSpace(pip.Name)}
		item.SpecialInstructions = strings.TrimSpace(req.SpecialInstructions)
		item.TableNumber = strings.TrimSpace(req.TableNumber)
		item.BeforeCreate(now)
		batch.Merge(item)
	}

	if err := s.items.Apply(ctx, batch); err != nil {
		return fmt.Errorf("cannot add basket items: %w", err)
	}
	return nil
}

// RemoveItem takes one unit off a line, deleting it at quantity one.
func (s *Service) RemoveItem(ctx context.Context, callerID string, req RemoveItemRequest) error {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	item, err := s.ownedItem(ctx, req.UserID, req.BasketItemID)
	if err != nil {
		return err
	}
	if item.RestaurantID != req.RestaurantID {
		return apperr.NotFoundf("basket item not found")
	}
	if item.SentToChefQ {
		return apperr.FailedPreconditionf("item was already sent to the kitchen")
	}

	decremented, err := s.items.Decrement(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("cannot decrement basket item: %w", err)
	}
	if decremented {
		return nil
	}

	batch := NewBatch()
	batch.Delete(item.ID)
	if err := s.items.Apply(ctx, batch); err != nil {
		return fmt.Errorf("cannot delete basket item: %w", err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity; zero deletes the line.
func (s *Service) UpdateQuantity(ctx context.Context, callerID string, req UpdateQuantityRequest) error {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if req.NewQuantity == nil {
		return apperr.InvalidArgumentf("newQuantity is required")
	}
	if *req.NewQuantity < 0 {
		return apperr.InvalidArgumentf("newQuantity must not be negative")
	}

	item, err := s.ownedItem(ctx, req.UserID, req.BasketItemID)
	if err != nil {
		return err
	}
	if item.SentToChefQ {
		return apperr.FailedPreconditionf("item was already sent to the kitchen")
	}

	batch := NewBatch()
	if *req.NewQuantity == 0 {
		batch.Delete(item.ID)
	} else {
		batch.SetQuantity(item.ID, *req.NewQuantity)
	}

	if err := s.items.Apply(ctx, batch); err != nil {
		return fmt.Errorf("cannot update basket item: %w", err)
	}
	return nil
}

// ClearBasket deletes every unsent line of the caller at the restaurant.
func (s *Service) ClearBasket(ctx context.Context, callerID string, req ClearBasketRequest) error {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	unsent, err := s.items.ListUnsent(ctx, req.UserID, req.RestaurantID)
	if err != nil {
		return fmt.Errorf("cannot list basket: %w", err)
	}
	if len(unsent) == 0 {
		return nil
	}

	batch := NewBatch()
	for _, item := range unsent {
		batch.Delete(item.ID)
	}
	if err := s.items.Apply(ctx, batch); err != nil {
		return fmt.Errorf("cannot clear basket: %w", err)
	}
	return nil
}

// SendToKitchen moves the listed lines to the chef's queue. Lines already
// sent are left as they are, so a retried call changes nothing.
func (s *Service) SendToKitchen(ctx context.Context, callerID string, req SendToKitchenRequest) error {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	now := s.now().UTC()
	tableNumber := strings.TrimSpace(req.TableNumber)
	batch := NewBatch()
	sent := make([]*BasketItem, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))

	for _, ref := range req.Items {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true

		item, err := s.ownedItem(ctx, req.UserID, ref.ID)
		if err != nil {
			return err
		}
		if item.RestaurantID != req.RestaurantID {
			return apperr.NotFoundf("basket item not found")
		}
		if item.SentToChefQ {
			continue
		}

		table := tableNumber
		if table == "" {
			table = item.TableNumber
		}
		batch.MarkSent(item.ID, table, now)

		item.SentToChefQ = true
		item.ItemStatus = itemstatus.Statuses.Pending.Code()
		item.TableNumber = table
		item.SentAt = &now
		sent = append(sent, item)
	}

	if batch.Len() == 0 {
		return nil
	}
	if err := s.items.Apply(ctx, batch); err != nil {
		return fmt.Errorf("cannot send basket to kitchen: %w", err)
	}

	s.publishBasketSent(ctx, req.UserID, req.RestaurantID, tableNumber, sent)
	s.logger.Info("basket sent to kitchen", "restaurant_id", req.RestaurantID.String(), "items", len(sent))
	return nil
}

// ListBasket returns the caller's unsent lines, oldest first.
func (s *Service) ListBasket(ctx context.Context, callerID string, req ListBasketRequest) ([]*BasketItem, error) {
	if err := requireCaller(callerID, req.UserID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	items, err := s.items.ListUnsent(ctx, req.UserID, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list basket: %w", err)
	}
	sortByCreation(items)
	return items, nil
}

// ChefsQueue groups the restaurant's open kitchen lines by table.
func (s *Service) ChefsQueue(ctx context.Context, callerID string, req ChefsQueueRequest) ([]TableQueue, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	items, err := s.items.ListQueued(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list chef's queue: %w", err)
	}
	return GroupByTable(items), nil
}

func (s *Service) UpdateItemStatus(ctx context.Context, callerID string, req UpdateItemStatusRequest) (*BasketItem, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	item, err := s.get(ctx, req.BasketItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, item.RestaurantID, callerID); err != nil {
		return nil, err
	}
	if !item.SentToChefQ {
		return nil, apperr.FailedPreconditionf("item has not been sent to the kitchen")
	}

	previous := item.Status()
	next := itemstatus.ByName(req.ItemStatus)
	if !previous.CanAdvanceTo(*next) {
		return nil, apperr.FailedPreconditionf("cannot move item from %s to %s", previous.Code(), next.Code())
	}

	item.ItemStatus = next.Code()
	item.BeforeUpdate(s.now())
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cannot save basket item: %w", err)
	}

	s.publish(ctx, event.KitchenItemStatusChangedTopic, event.KitchenItemStatusChangedEvent{
		KitchenEventMetadata: s.metadata(event.EventKitchenItemStatusChanged, item.RestaurantID, item.TableNumber),
		Item:                 item.KitchenItem(),
		PreviousStatus:       previous.Code(),
	})
	return item, nil
}

// ApplyDiscount sets a line's discount, bounded by the line total.
func (s *Service) ApplyDiscount(ctx context.Context, callerID string, req ApplyDiscountRequest) (*BasketItem, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	item, err := s.get(ctx, req.BasketItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, item.RestaurantID, callerID); err != nil {
		return nil, err
	}
	if req.Discount > item.LineTotal() {
		return nil, apperr.InvalidArgumentf("discount %.2f exceeds line total %.2f", req.Discount, item.LineTotal())
	}

	item.Discount = req.Discount
	item.BeforeUpdate(s.now())
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cannot save basket item: %w", err)
	}
	return item, nil
}

// resolveDish prefers the menu's name and price over the client's copy.
func (s *Service) resolveDish(ctx context.Context, restaurantID uuid.UUID, dish Dish) (Dish, error) {
	dish.ID = strings.TrimSpace(dish.ID)
	dish.Name = strings.TrimSpace(dish.Name)

	if s.menu != nil {
		if dishID, err := uuid.Parse(dish.ID); err == nil {
			item, err := s.menu.Lookup(ctx, restaurantID, dishID)
			if err != nil {
				return Dish{}, fmt.Errorf("cannot look up dish: %w", err)
			}
			if item != nil {
				return Dish{ID: item.ID.String(), Name: item.Name, Price: float64(item.Price)}, nil
			}
		}
	}

	if dish.Name == "" {
		return Dish{}, apperr.InvalidArgumentf("dish.name is required for dishes not on the menu")
	}
	return dish, nil
}

func (s *Service) ownedItem(ctx context.Context, userID string, id uuid.UUID) (*BasketItem, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperr.NotFoundf("basket item not found")
	}
	return item, nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*BasketItem, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get basket item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFoundf("basket item not found")
	}
	return item, nil
}

func (s *Service) requireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if s.staff == nil {
		return nil
	}
	return s.staff.RequireStaff(ctx, restaurantID, callerID)
}

func (s *Service) publishBasketSent(ctx context.Context, userID string, restaurantID uuid.UUID, tableNumber string, sent []*BasketItem) {
	items := make([]event.KitchenItem, 0, len(sent))
	for _, item := range sent {
		items = append(items, item.KitchenItem())
	}
	if tableNumber == "" && len(sent) > 0 {
		tableNumber = sent[0].TableNumber
	}

	s.publish(ctx, event.KitchenBasketSentTopic, event.KitchenBasketSentEvent{
		KitchenEventMetadata: s.metadata(event.EventKitchenBasketSent, restaurantID, tableNumber),
		UserID:               userID,
		Items:                items,
	})
}

func (s *Service) metadata(eventType string, restaurantID uuid.UUID, tableNumber string) event.KitchenEventMetadata {
	return event.KitchenEventMetadata{
		EventType:    eventType,
		OccurredAt:   s.now().UTC(),
		RestaurantID: restaurantID.String(),
		TableNumber:  tableNumber,
	}
}

func (s *Service) publish(ctx context.Context, topic string, payload any) {
	if err := pkg.PublishJSON(ctx, s.publisher, topic, payload); err != nil {
		s.logger.Error("cannot publish kitchen event", "error", err, "topic", topic)
	}
}

func requireCaller(callerID, userID string) error {
	if callerID == "" || callerID != userID {
		return apperr.Unauthenticatedf("caller does not match userId")
	}
	return nil
}

// GroupByTable groups lines by table number. Groups are ordered by table and
// lines within a group by creation time.
func GroupByTable(items []*BasketItem) []TableQueue {
	index := make(map[string]int)
	var groups []TableQueue
	for _, item := range items {
		i, ok := index[item.TableNumber]
		if !ok {
			i = len(groups)
			index[item.TableNumber] = i
			groups = append(groups, TableQueue{TableNumber: item.TableNumber})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	for i := range groups {
		sortByCreation(groups[i].Items)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return tableLess(groups[i].TableNumber, groups[j].TableNumber)
	})
	return groups
}

func sortByCreation(items []*BasketItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

// tableLess orders "Table 2" before "Table 10"; unnamed tables go last.
func tableLess(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}
	na, oka := trailingNumber(a)
	nb, okb := trailingNumber(b)
	if oka && okb && na != nb {
		return na < nb
	}
	return a < b
}

func trailingNumber(s string) (int, bool) {
	i := strings.LastIndexAny(s, " -#")
	n := 0
	digits := s[i+1:]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
