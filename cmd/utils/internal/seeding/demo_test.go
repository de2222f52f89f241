package seeding

import (
	"testing"

	"github.com/appetiteclub/dinein/internal/menu"
)

func TestDemoOrders(t *testing.T) {
	var dishes []*menu.MenuItem
	for _, d := range demoMenu {
		item := menu.NewMenuItem()
		item.Name = d.name
		item.Price = d.price
		dishes = append(dishes, item)
	}

	orders := demoOrders(dishes)
	if len(orders) != 3 {
		t.Fatalf("len(orders) = %d, want 3", len(orders))
	}

	pizzas := 0
	for _, lines := range orders {
		for _, l := range lines {
			if l.Quantity != 1 {
				t.Errorf("%s quantity = %d, want 1", l.Name, l.Quantity)
			}
			if l.Name == "Margherita Pizza" {
				pizzas++
			}
		}
	}
	if pizzas != 3 {
		t.Errorf("pizza lines = %d, want 3", pizzas)
	}

	if got := total(orders[0]); got != 22.5 {
		t.Errorf("total(first order) = %v, want 22.5", got)
	}
}
