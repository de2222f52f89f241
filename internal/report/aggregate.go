// Package report builds per-day sales summaries from stored orders.
package report

import (
	"sort"
	"time"

	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/order"
)

const (
	DefaultTopItems = 5
	dateLayout      = "2006-01-02"
)

type ItemSales struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DailySales struct {
	Date            string      `json:"date"`
	TotalSales      float64     `json:"totalSales"`
	TopSellingItems []ItemSales `json:"topSellingItems"`
}

type bucket struct {
	total float64
	items map[string]*ItemSales
}

// Aggregate buckets orders by their calendar date in loc. Each order line
// counts once toward its item, whatever its quantity. Days come newest first
// and each day keeps its topN items by count, ties broken by name.
func Aggregate(orders []*order.Order, loc *time.Location, topN int, log logger.Logger) []DailySales {
	if loc == nil {
		loc = time.Local
	}
	if topN <= 0 {
		topN = DefaultTopItems
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}

	days := make(map[string]*bucket)
	for _, o := range orders {
		if o == nil || o.Timestamp.IsZero() {
			if o != nil {
				log.Warn("skipping order without timestamp", "order_id", o.OrderID)
			}
			continue
		}

		date := o.Timestamp.In(loc).Format(dateLayout)
		b, ok := days[date]
		if !ok {
			b = &bucket{items: make(map[string]*ItemSales)}
			days[date] = b
		}

		b.total += o.TotalPrice
		for _, it := range o.Items {
			s, ok := b.items[it.Name]
			if !ok {
				s = &ItemSales{Name: it.Name}
				b.items[it.Name] = s
			}
			s.Count++
			s.Revenue += it.Price
		}
	}

	result := make([]DailySales, 0, len(days))
	for date, b := range days {
		result = append(result, DailySales{
			Date:            date,
			TotalSales:      b.total,
			TopSellingItems: top(b.items, topN),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result
}

func top(items map[string]*ItemSales, n int) []ItemSales {
	list := make([]ItemSales, 0, len(items))
	for _, s := range items {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
