package orders

import (
	"context"
	"strings"

	"service-rider-dispatch/internal/domain"
)

type actionFunc func(context.Context, Event) error

type action struct {
	status domain.OrderStatus
	run    actionFunc
}

type actionFactory struct {
	byStatus map[string]action
}

func newActionFactory(onSnapshot, onReady, onCancelled, onDelivered actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]action{
			"pending":   {domain.OrderPending, onSnapshot},
			"confirmed": {domain.OrderConfirmed, onSnapshot},
			"preparing": {domain.OrderPreparing, onSnapshot},
			"ready":     {domain.OrderReady, onReady},
			"cancelled": {domain.OrderCancelled, onCancelled},
			"canceled":  {domain.OrderCancelled, onCancelled},
			"delivered": {domain.OrderDelivered, onDelivered},
		},
	}
}

func (f *actionFactory) get(status string) (action, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	a, ok := f.byStatus[status]
	return a, ok
}
