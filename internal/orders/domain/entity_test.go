package domain

import (
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestTransitionTo_Applies(t *testing.T) {
	// Arrange
	order := NewOrder(1, 10.0, "1 Main St")
	before := order.UpdatedAt
	time.Sleep(time.Millisecond)

	// Act
	err := order.TransitionTo(OrderStatusProcessing)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.Status != OrderStatusProcessing {
		t.Errorf("expected status PROCESSING, got %s", order.Status)
	}
	if !order.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestTransitionTo_RejectsInvalid(t *testing.T) {
	// Arrange
	order := NewOrder(1, 10.0, "1 Main St")

	// Act
	err := order.TransitionTo(OrderStatusDelivered)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if order.Status != OrderStatusPending {
		t.Errorf("expected status unchanged at PENDING, got %s", order.Status)
	}
}

func TestValidateTransition_CancelledIsTerminal(t *testing.T) {
	// Arrange
	order := NewOrder(1, 10.0, "1 Main St")
	order.Status = OrderStatusCancelled

	// Act
	err := order.ValidateTransition(OrderStatusProcessing)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	// Arrange
	order := NewOrder(1, 10.0, "1 Main St")

	// Act
	err := order.ValidateTransition(OrderStatus("SHIPPING"))

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
