package domain

import "testing"

func TestComputeBalance_Empty(t *testing.T) {
	report := ComputeBalance("alice", nil)

	if !report.TotalOwedToUser.IsZero() || !report.TotalUserOwes.IsZero() || !report.Net.IsZero() {
		t.Errorf("expected zero report, got %+v", report)
	}
}

func TestComputeBalance_ExcludesSettled(t *testing.T) {
	// One unsettled split of 50 owed by alice and one settled payment of 50
	// from alice to the same creditor: the settled payment is discharged and
	// does not offset the outstanding split.
	records := []ObligationRecord{
		{Kind: ObligationKindSplit, Debtor: "alice", Creditor: "bob", Amount: 50},
		{Kind: ObligationKindPayment, Debtor: "alice", Creditor: "bob", Amount: 50, Settled: true},
	}

	report := ComputeBalance("alice", records)

	if report.TotalUserOwes != 50 {
		t.Errorf("expected alice to owe 50, got %d", report.TotalUserOwes)
	}
	if report.TotalOwedToUser != 0 {
		t.Errorf("expected nothing owed to alice, got %d", report.TotalOwedToUser)
	}
	if report.Net != -50 {
		t.Errorf("expected net -50, got %d", report.Net)
	}
}

func TestComputeBalance_BothDirections(t *testing.T) {
	// No counterparty netting: both directions are totaled independently.
	records := []ObligationRecord{
		{Kind: ObligationKindSplit, Debtor: "alice", Creditor: "bob", Amount: 1000},
		{Kind: ObligationKindSplit, Debtor: "bob", Creditor: "alice", Amount: 400},
		{Kind: ObligationKindSplit, Debtor: "carol", Creditor: "alice", Amount: 250},
	}

	report := ComputeBalance("alice", records)

	if report.TotalUserOwes != 1000 {
		t.Errorf("expected owes 1000, got %d", report.TotalUserOwes)
	}
	if report.TotalOwedToUser != 650 {
		t.Errorf("expected owed 650, got %d", report.TotalOwedToUser)
	}
	if report.Net != -350 {
		t.Errorf("expected net -350, got %d", report.Net)
	}
}

func TestComputeBalance_SkipsSelfObligation(t *testing.T) {
	records := []ObligationRecord{
		{Kind: ObligationKindSplit, Debtor: "alice", Creditor: "alice", Amount: 300},
		{Kind: ObligationKindSplit, Debtor: "bob", Creditor: "alice", Amount: 300},
	}

	report := ComputeBalance("alice", records)

	if report.TotalUserOwes != 0 {
		t.Errorf("self-obligation counted as debt: %d", report.TotalUserOwes)
	}
	if report.TotalOwedToUser != 300 {
		t.Errorf("expected owed 300, got %d", report.TotalOwedToUser)
	}
}

func TestComputeBalance_IgnoresUnrelatedRecords(t *testing.T) {
	records := []ObligationRecord{
		{Kind: ObligationKindSplit, Debtor: "bob", Creditor: "carol", Amount: 700},
	}

	report := ComputeBalance("alice", records)

	if !report.Net.IsZero() {
		t.Errorf("unrelated records leaked into balance: %+v", report)
	}
}

func TestComputeBalance_SettleRoundTrip(t *testing.T) {
	// Allocating an expenditure and settling every resulting split leaves
	// zero net contribution from that expenditure for everyone involved.
	splits, err := AllocateSplits("exp-1", Money(1000), SplitTypeEqual,
		[]string{"payer", "bob", "carol"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := make([]ObligationRecord, 0, len(splits))
	for _, s := range splits {
		if err := s.Settle(); err != nil {
			t.Fatalf("settle failed: %v", err)
		}
		records = append(records, s.Obligation("payer"))
	}

	for _, user := range []string{"payer", "bob", "carol"} {
		report := ComputeBalance(user, records)
		if !report.Net.IsZero() {
			t.Errorf("user %s: expected zero net after full settlement, got %d", user, report.Net)
		}
	}
}

func TestSplitObligation(t *testing.T) {
	s := &Split{ID: "split-1", ExpenditureID: "exp-1", UserID: "bob", Amount: 450}

	rec := s.Obligation("alice")

	if rec.Debtor != "bob" || rec.Creditor != "alice" {
		t.Errorf("expected bob owes alice, got %s owes %s", rec.Debtor, rec.Creditor)
	}
	if rec.Kind != ObligationKindSplit {
		t.Errorf("expected split kind, got %s", rec.Kind)
	}
	if rec.Amount != 450 {
		t.Errorf("expected amount 450, got %d", rec.Amount)
	}
}

func TestPaymentObligation(t *testing.T) {
	p := &Payment{ID: "pay-1", FromUser: "bob", ToUser: "alice", Amount: 450, Settled: true}

	rec := p.Obligation()

	if rec.Debtor != "bob" || rec.Creditor != "alice" {
		t.Errorf("expected bob owes alice, got %s owes %s", rec.Debtor, rec.Creditor)
	}
	if rec.Kind != ObligationKindPayment {
		t.Errorf("expected payment kind, got %s", rec.Kind)
	}
	if !rec.Settled {
		t.Error("settled flag not carried over")
	}
}
