package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
)

const dayLayout = "060102"

// IDGenerator builds {restaurantNumber}-{yymmdd}-{seq} identifiers. The day
// is the restaurant's local calendar day at generation time.
type IDGenerator struct {
	orders      OrderRepo
	counters    CounterRepo
	restaurants RestaurantFinder
	fallback    *time.Location
	now         func() time.Time
}

func NewIDGenerator(orders OrderRepo, counters CounterRepo, restaurants RestaurantFinder, fallback *time.Location) *IDGenerator {
	if fallback == nil {
		fallback = time.Local
	}
	return &IDGenerator{
		orders:      orders,
		counters:    counters,
		restaurants: restaurants,
		fallback:    fallback,
		now:         time.Now,
	}
}

// Next reserves the next identifier for the restaurant. A missing restaurant
// is an internal error since the caller already resolved it.
func (g *IDGenerator) Next(ctx context.Context, restaurantID uuid.UUID) (string, error) {
	r, err := g.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "cannot generate order id", err)
	}
	if r == nil {
		return "", apperr.New(apperr.Internal, "cannot generate order id: restaurant not found")
	}

	start, end := DayBounds(g.now(), r.Location(g.fallback))
	day := start.Format(dayLayout)

	floor := 0
	last, err := g.orders.LastBetween(ctx, restaurantID, start, end)
	if err != nil {
		return "", fmt.Errorf("cannot read last order of the day: %w", err)
	}
	if last != nil {
		floor = ParseSequence(last.OrderID)
	}

	seq, err := g.counters.Next(ctx, CounterKey(restaurantID, day), floor)
	if err != nil {
		return "", fmt.Errorf("cannot reserve order sequence: %w", err)
	}

	return FormatOrderID(r.Number, day, seq), nil
}

// DayBounds returns [midnight, next midnight) of t's calendar day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func CounterKey(restaurantID uuid.UUID, day string) string {
	return "order:" + restaurantID.String() + ":" + day
}

// FormatOrderID pads the sequence to three digits; larger values widen.
func FormatOrderID(restaurantNumber, day string, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", restaurantNumber, day, seq)
}

// ParseSequence reads the trailing numeric segment, 0 when there is none.
func ParseSequence(orderID string) int {
	i := strings.LastIndex(orderID, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(orderID[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
