package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"pending to shipped", OrderPending, OrderShipped, true},
		{"shipped to delivered", OrderShipped, OrderDelivered, true},
		{"pending skips to delivered", OrderPending, OrderDelivered, false},
		{"shipped back to pending", OrderShipped, OrderPending, false},
		{"delivered is terminal", OrderDelivered, OrderShipped, false},
		{"delivered repeated", OrderDelivered, OrderDelivered, false},
		{"unknown status", "cancelled", OrderShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOrderStatus(tt.current, tt.next))
		})
	}
}
