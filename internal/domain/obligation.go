package domain

// ObligationKind distinguishes the source record of an obligation.
type ObligationKind string

const (
	ObligationKindSplit   ObligationKind = "split"
	ObligationKindPayment ObligationKind = "payment"
)

// ObligationRecord is the unified shape that both splits and payments reduce
// to for balance computation: a split becomes debtor=participant /
// creditor=payer, a payment becomes debtor=from / creditor=to.
type ObligationRecord struct {
	ID       string
	Kind     ObligationKind
	Debtor   string
	Creditor string
	Amount   Money
	Settled  bool
}

// BalanceReport is a user's aggregate position across all counterparties.
// Net is TotalOwedToUser minus TotalUserOwes; obligations between pairs are
// not netted against each other.
type BalanceReport struct {
	UserID          string
	TotalOwedToUser Money
	TotalUserOwes   Money
	Net             Money
}

// ComputeBalance totals the unsettled obligations touching user. Settled
// records are discharged and contribute nothing. Self-obligations
// (debtor == creditor) are skipped; allocation produces such a row when a
// payer is listed among their own participants, and it has no economic
// effect.
func ComputeBalance(userID string, records []ObligationRecord) BalanceReport {
	report := BalanceReport{UserID: userID}

	for _, rec := range records {
		if rec.Settled || rec.Debtor == rec.Creditor {
			continue
		}
		if rec.Debtor == userID {
			report.TotalUserOwes = report.TotalUserOwes.Add(rec.Amount)
		}
		if rec.Creditor == userID {
			report.TotalOwedToUser = report.TotalOwedToUser.Add(rec.Amount)
		}
	}

	report.Net = report.TotalOwedToUser.Sub(report.TotalUserOwes)

	return report
}

// Obligation reinterprets the split as an obligation record given the payer
// of its parent expenditure.
func (s *Split) Obligation(paidBy string) ObligationRecord {
	return ObligationRecord{
		ID:       s.ID,
		Kind:     ObligationKindSplit,
		Debtor:   s.UserID,
		Creditor: paidBy,
		Amount:   s.Amount,
		Settled:  s.Settled,
	}
}

// Obligation reinterprets the payment as an obligation record.
func (p *Payment) Obligation() ObligationRecord {
	return ObligationRecord{
		ID:       p.ID,
		Kind:     ObligationKindPayment,
		Debtor:   p.FromUser,
		Creditor: p.ToUser,
		Amount:   p.Amount,
		Settled:  p.Settled,
	}
}
