package enums

import "testing"

func TestParseQuotationStatus(t *testing.T) {
	status, err := ParseQuotationStatus("responded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != QuotationStatusResponded {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseQuotationStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestQuotationStatusTransitions(t *testing.T) {
	if !QuotationStatusDraft.CanTransitionTo(QuotationStatusCompleted) {
		t.Fatal("draft should reach completed")
	}
	if !QuotationStatusSent.CanTransitionTo(QuotationStatusResponded) {
		t.Fatal("sent should reach responded")
	}
	if QuotationStatusSent.CanTransitionTo(QuotationStatusDraft) {
		t.Fatal("sent must not return to draft")
	}
	if QuotationStatusDraft.CanTransitionTo(QuotationStatusAccepted) {
		t.Fatal("draft must not skip to accepted")
	}
	if QuotationStatusAccepted.CanTransitionTo(QuotationStatusRejected) {
		t.Fatal("accepted is terminal")
	}
}

func TestQuotationStatusEditability(t *testing.T) {
	editable := []QuotationStatus{QuotationStatusDraft, QuotationStatusCompleted}
	for _, status := range editable {
		if !status.IsEditable() {
			t.Fatalf("%s should be editable", status)
		}
	}
	frozen := []QuotationStatus{
		QuotationStatusSent,
		QuotationStatusResponded,
		QuotationStatusAccepted,
		QuotationStatusRejected,
		QuotationStatusExpired,
	}
	for _, status := range frozen {
		if status.IsEditable() {
			t.Fatalf("%s should be frozen", status)
		}
	}
}

func TestQuotationStatusTerminal(t *testing.T) {
	if QuotationStatusSent.IsTerminal() {
		t.Fatal("sent is not terminal")
	}
	for _, status := range []QuotationStatus{QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired} {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
}
