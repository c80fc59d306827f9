// Package listpos provides typed, user-facing list/text/outline wrappers
// over an order.Order and itemlist.ItemList, plus position-keyed set and
// map containers built on the same primitives.
package listpos

import (
	"go.uber.org/zap"

	"github.com/replistruct/listpos/order"
)

// Config configures a wrapper. Order is optional: if nil, a new one is
// constructed with order.New(order.Config{Logger: Logger}). Passing the
// same Order to multiple wrappers lets them share one replicated tree and
// metadata stream.
type Config struct {
	Order  *order.Order
	Logger *zap.Logger
}

func (c Config) resolveOrder() *order.Order {
	if c.Order != nil {
		return c.Order
	}
	return order.New(order.Config{Logger: c.Logger})
}
