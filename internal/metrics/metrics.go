package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the application collectors behind a single registry.
type Metrics struct {
	Registry *prometheus.Registry

	LoginsTotal       *prometheus.CounterVec
	SignupsTotal      prometheus.Counter
	OrdersPlacedTotal prometheus.Counter
	OrdersTotalValue  prometheus.Counter
	CartItemsAdded    prometheus.Counter
}

// New builds a registry with process/runtime collectors plus the
// application counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookstore_logins_total",
			Help: "Login attempts by outcome (success, legacy, failure).",
		}, []string{"outcome"}),
		SignupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_signups_total",
			Help: "Accounts registered.",
		}),
		OrdersPlacedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_orders_placed_total",
			Help: "Orders successfully placed.",
		}),
		OrdersTotalValue: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_orders_value_total",
			Help: "Cumulative order value in currency units.",
		}),
		CartItemsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_cart_items_added_total",
			Help: "Items added to carts.",
		}),
	}
}
