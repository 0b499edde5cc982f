package cash

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

type CreateInput struct {
	Amount  float64 `json:"amount" validate:"gt=0"`
	Concept string  `json:"concept" validate:"required,min=1,max=100"`
	Method  string  `json:"method" validate:"required,oneof=cash transfer"`
	Type    string  `json:"type" validate:"required,oneof=income expense"`
	Date    string  `json:"date" validate:"omitempty,ymd"`
}

type Summary struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	IncomeCash      float64 `json:"income_cash"`
	IncomeTransfer  float64 `json:"income_transfer"`
	ExpenseCash     float64 `json:"expense_cash"`
	ExpenseTransfer float64 `json:"expense_transfer"`
	TotalIncome     float64 `json:"total_income"`
	TotalExpense    float64 `json:"total_expense"`
	Net             float64 `json:"net"`
	Count           int     `json:"count"`
}

func ComputeSummary(from, to string, txs []models.CashTransaction) Summary {
	s := Summary{From: from, To: to, Count: len(txs)}

	for _, tx := range txs {
		switch Type(tx.Type) {
		case TypeIncome:
			s.TotalIncome += tx.Amount
			if tx.Method == "cash" {
				s.IncomeCash += tx.Amount
			} else {
				s.IncomeTransfer += tx.Amount
			}
		case TypeExpense:
			s.TotalExpense += tx.Amount
			if tx.Method == "cash" {
				s.ExpenseCash += tx.Amount
			} else {
				s.ExpenseTransfer += tx.Amount
			}
		}
	}

	s.Net = s.TotalIncome - s.TotalExpense
	return s
}

type Repository interface {
	Create(ctx context.Context, tx *models.CashTransaction) error
	ListRange(ctx context.Context, from, to string) ([]models.CashTransaction, error)
}
