package domain

import (
	"errors"
	"testing"
)

func TestNewExpenditure_Validate(t *testing.T) {
	tests := []struct {
		name    string
		exp     NewExpenditure
		wantErr error
	}{
		{
			name: "valid equal split",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       1000,
				SplitType:    SplitTypeEqual,
				Participants: []string{"alice", "bob"},
			},
		},
		{
			name: "valid custom split",
			exp: NewExpenditure{
				PaidBy:        "alice",
				Amount:        1000,
				SplitType:     SplitTypeCustom,
				Participants:  []string{"alice", "bob"},
				CustomAmounts: []Money{600, 400},
			},
		},
		{
			name: "payer outside participants is allowed",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       1000,
				SplitType:    SplitTypeEqual,
				Participants: []string{"bob", "carol"},
			},
		},
		{
			name: "zero amount",
			exp: NewExpenditure{
				PaidBy:       "alice",
				SplitType:    SplitTypeEqual,
				Participants: []string{"bob"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       -100,
				SplitType:    SplitTypeEqual,
				Participants: []string{"bob"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "no participants",
			exp: NewExpenditure{
				PaidBy:    "alice",
				Amount:    1000,
				SplitType: SplitTypeEqual,
			},
			wantErr: ErrEmptyParticipants,
		},
		{
			name: "duplicate participants",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       1000,
				SplitType:    SplitTypeEqual,
				Participants: []string{"bob", "bob"},
			},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name: "unknown split type",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       1000,
				SplitType:    SplitType("shares"),
				Participants: []string{"bob"},
			},
			wantErr: ErrInvalidSplitType,
		},
		{
			name: "custom without amounts",
			exp: NewExpenditure{
				PaidBy:       "alice",
				Amount:       1000,
				SplitType:    SplitTypeCustom,
				Participants: []string{"bob", "carol"},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name: "custom cardinality mismatch",
			exp: NewExpenditure{
				PaidBy:        "alice",
				Amount:        1000,
				SplitType:     SplitTypeCustom,
				Participants:  []string{"bob", "carol"},
				CustomAmounts: []Money{1000},
			},
			wantErr: ErrSplitMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.exp.Validate()

			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewExpenditure_ValidateShortCircuits(t *testing.T) {
	// Multiple problems at once: the amount check fires first.
	exp := NewExpenditure{
		PaidBy:    "alice",
		Amount:    -5,
		SplitType: SplitTypeCustom,
	}

	if err := exp.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount first, got %v", err)
	}
}

func TestSplit_Settle(t *testing.T) {
	s := &Split{ID: "split-1", Amount: 500}

	if err := s.Settle(); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if !s.Settled {
		t.Fatal("split not marked settled")
	}

	if err := s.Settle(); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("second settle: expected ErrAlreadySettled, got %v", err)
	}
	if s.Amount != 500 {
		t.Error("settlement must never mutate the amount")
	}
}

func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr error
	}{
		{name: "valid", payment: Payment{FromUser: "a", ToUser: "b", Amount: 100}},
		{name: "self payment", payment: Payment{FromUser: "a", ToUser: "a", Amount: 100}, wantErr: ErrSelfPayment},
		{name: "zero amount", payment: Payment{FromUser: "a", ToUser: "b"}, wantErr: ErrInvalidAmount},
		{name: "negative amount", payment: Payment{FromUser: "a", ToUser: "b", Amount: -100}, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()

			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPayment_Settle(t *testing.T) {
	p := &Payment{ID: "pay-1", FromUser: "a", ToUser: "b", Amount: 100}

	if err := p.Settle(); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if err := p.Settle(); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("second settle: expected ErrAlreadySettled, got %v", err)
	}
}
