package orders

import "lamp_catalog/internal/domain"

var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:    {domain.OrderStatusProcessing, domain.OrderStatusCancelled},
	domain.OrderStatusProcessing: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:    {domain.OrderStatusDelivered, domain.OrderStatusCancelled},
}

// IsTerminal reports whether no transition leaves status
func IsTerminal(status domain.OrderStatus) bool {
	return len(transitions[status]) == 0
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
