package seeding

import (
	"context"
	"fmt"

	"github.com/appetiteclub/dinein/internal/customer"
	"github.com/appetiteclub/dinein/internal/menu"
	"github.com/appetiteclub/dinein/internal/order"
	"github.com/appetiteclub/dinein/internal/restaurant"
	"github.com/appetiteclub/dinein/internal/tables"
)

const (
	DemoSeedID     = "demo_restaurant_v1"
	DemoNumber     = "R100"
	DemoOwnerID    = "demo-owner"
	DemoChefID     = "demo-chef"
	DemoServerID   = "demo-server"
	DemoCustomerID = "demo-customer"
)

// Services are the domain services the demo is created through, so seeded
// data passes the same validation as live traffic.
type Services struct {
	Restaurants *restaurant.Service
	Menu        *menu.Service
	Tables      *tables.Service
	PIPs        *customer.Service
	Orders      *order.Service
}

type Demo struct {
	Restaurant *restaurant.Restaurant
	Dishes     []*menu.MenuItem
	Tables     []*tables.Table
	PIPs       []*customer.PIP
	Orders     []*order.Order
}

type dish struct {
	name     string
	price    float64
	category string
	special  bool
}

var demoMenu = []dish{
	{name: "Bruschetta", price: 7.5, category: "Starters"},
	{name: "Burrata", price: 11, category: "Starters"},
	{name: "Margherita Pizza", price: 10, category: "Mains", special: true},
	{name: "Pasta Carbonara", price: 14, category: "Mains"},
	{name: "Risotto ai Funghi", price: 15.5, category: "Mains"},
	{name: "Tiramisu", price: 6.5, category: "Desserts"},
	{name: "Espresso", price: 2.5, category: "Drinks"},
	{name: "Lemonade", price: 3.75, category: "Drinks"},
}

var demoStaff = []restaurant.AddEmployeeRequest{
	{UserID: DemoChefID, Name: "Chef Giulia", Role: "chef"},
	{UserID: DemoServerID, Name: "Marco", Role: "server"},
}

var demoParty = []string{"Me", "Alex", "Sam"}

// Seed creates the demo restaurant with staff, menu, tables, the demo
// customer's party and a few submitted orders.
func Seed(ctx context.Context, svc Services) (*Demo, error) {
	r, err := svc.Restaurants.Register(ctx, DemoOwnerID, restaurant.RegisterRequest{
		Name:     "Trattoria Demo",
		Number:   DemoNumber,
		Address:  "1 Demo Street",
		Timezone: "UTC",
	})
	if err != nil {
		return nil, fmt.Errorf("cannot register demo restaurant: %w", err)
	}
	demo := &Demo{Restaurant: r}

	for _, e := range demoStaff {
		e.RestaurantID = r.ID
		if _, err := svc.Restaurants.AddEmployee(ctx, DemoOwnerID, e); err != nil {
			return demo, fmt.Errorf("cannot add employee %s: %w", e.UserID, err)
		}
	}

	for _, d := range demoMenu {
		item, err := svc.Menu.Create(ctx, DemoOwnerID, menu.CreateMenuItemRequest{
			RestaurantID:   r.ID,
			Name:           d.name,
			Price:          menu.Price(d.price),
			Category:       d.category,
			IsDailySpecial: d.special,
		})
		if err != nil {
			return demo, fmt.Errorf("cannot create dish %s: %w", d.name, err)
		}
		demo.Dishes = append(demo.Dishes, item)
	}

	demo.Tables, err = svc.Tables.Generate(ctx, DemoOwnerID, tables.GenerateTablesRequest{
		RestaurantID: r.ID,
		Count:        8,
		Capacity:     4,
	})
	if err != nil {
		return demo, fmt.Errorf("cannot generate demo tables: %w", err)
	}

	for _, name := range demoParty {
		p, err := svc.PIPs.Create(ctx, DemoCustomerID, customer.CreatePIPRequest{Name: name})
		if err != nil {
			return demo, fmt.Errorf("cannot create pip %s: %w", name, err)
		}
		demo.PIPs = append(demo.PIPs, p)
	}

	for i, lines := range demoOrders(demo.Dishes) {
		o, err := svc.Orders.Create(ctx, DemoCustomerID, order.CreateOrderRequest{
			UserID:       DemoCustomerID,
			RestaurantID: r.ID,
			TableNumber:  demo.Tables[i%len(demo.Tables)].Name,
			Items:        lines,
			TotalPrice:   total(lines),
		})
		if err != nil {
			return demo, fmt.Errorf("cannot create demo order: %w", err)
		}
		demo.Orders = append(demo.Orders, o)
	}

	return demo, nil
}

// demoOrders picks dishes by position so the daily report has a clear
// best seller.
func demoOrders(dishes []*menu.MenuItem) [][]order.OrderItem {
	picks := [][]int{
		{2, 2, 6},
		{0, 3, 7},
		{2, 4, 5, 6},
	}

	out := make([][]order.OrderItem, 0, len(picks))
	for _, p := range picks {
		var lines []order.OrderItem
		for j, idx := range p {
			d := dishes[idx]
			lines = append(lines, order.OrderItem{
				DishID:   d.ID.String(),
				Name:     d.Name,
				Price:    d.Price,
				Quantity: 1,
				PIPName:  demoParty[j%len(demoParty)],
			})
		}
		out = append(out, lines)
	}
	return out
}

func total(lines []order.OrderItem) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}
