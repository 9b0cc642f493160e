package models

import "testing"

func TestCanTransitionForward(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusPacked},
		{StatusPending, StatusCancelled},
		{StatusPacked, StatusShipped},
		{StatusPacked, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
}

func TestCanTransitionRejectsBackwardJumps(t *testing.T) {
	rejected := [][2]string{
		{StatusDelivered, StatusPending},
		{StatusShipped, StatusPacked},
		{StatusShipped, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusPending, StatusDelivered},
		{StatusPending, StatusPending},
	}
	for _, pair := range rejected {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusPacked, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidStatus("returned") {
		t.Fatal("expected unknown status to be invalid")
	}
}
