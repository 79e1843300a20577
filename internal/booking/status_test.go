package booking

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Confirmed", "Cancelled", "Completed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("unexpected error for %s: %v", s, err)
		}
	}
	if _, err := ParseStatus("pending"); err == nil {
		t.Fatalf("expected lowercase to be rejected")
	}
	if _, err := ParseStatus("Archived"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestCanTransition_FromPending(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatalf("expected Pending -> Confirmed to be allowed")
	}
	if !CanTransition(StatusPending, StatusCancelled) {
		t.Fatalf("expected Pending -> Cancelled to be allowed")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatalf("expected Pending -> Completed to be rejected")
	}
}

func TestCanTransition_ConfirmedOnlyCompletes(t *testing.T) {
	if !CanTransition(StatusConfirmed, StatusCompleted) {
		t.Fatalf("expected Confirmed -> Completed to be allowed")
	}
	if CanTransition(StatusConfirmed, StatusPending) {
		t.Fatalf("expected Confirmed -> Pending to be rejected")
	}
	if CanTransition(StatusConfirmed, StatusCancelled) {
		t.Fatalf("expected Confirmed -> Cancelled to be rejected")
	}
}

func TestConfirmationAfter_FlipsOnConfirm(t *testing.T) {
	sent, notify := ConfirmationAfter(StatusConfirmed, false)
	if !sent {
		t.Fatalf("expected confirmation_sent=true after confirming")
	}
	if !notify {
		t.Fatalf("expected the confirmation notice to fire on entering Confirmed")
	}
}

func TestConfirmationAfter_PreservedOnOtherTransitions(t *testing.T) {
	// Pending -> Cancelled: flag was never set and must stay unset.
	if sent, notify := ConfirmationAfter(StatusCancelled, false); sent || notify {
		t.Fatalf("expected cancel to leave confirmation_sent=false and stay silent, got sent=%v notify=%v", sent, notify)
	}
	// Confirmed -> Completed: the flag set at confirmation must survive.
	if sent, notify := ConfirmationAfter(StatusCompleted, true); !sent || notify {
		t.Fatalf("expected completion to preserve confirmation_sent=true without notifying, got sent=%v notify=%v", sent, notify)
	}
	// Pending -> Confirmed with notes is the confirm-with-notes flow; the flag
	// outcome does not depend on prior state.
	if sent, _ := ConfirmationAfter(StatusConfirmed, true); !sent {
		t.Fatalf("expected confirmation_sent to stay true on confirm")
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []Status{StatusCancelled, StatusCompleted} {
		for _, to := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
			if CanTransition(terminal, to) {
				t.Fatalf("expected no transition out of %s, got %s allowed", terminal, to)
			}
		}
	}
}
