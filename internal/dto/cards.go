package dto

import (
	"time"

	"github.com/GlebRadaev/cardguard/internal/domain"
)

type EvaluateRequestDTO struct {
	Amount          float64 `json:"amount" example:"100"`
	TransactionType string  `json:"transactionType" example:"purchase"`
	CardID          string  `json:"cardId,omitempty" example:"5f1c2b8e-2a47-4d61-9d1e-8c0f8e2b1a90"`
}

type IssueCardRequestDTO struct {
	Amount     float64 `json:"amount" example:"100"`
	Reloadable bool    `json:"reloadable" example:"true"`
	MaxReloads int     `json:"maxReloads" example:"3"`
}

type ReloadCardRequestDTO struct {
	Amount float64 `json:"amount" example:"25"`
}

type ChargebackRequestDTO struct {
	Notes string `json:"notes" example:"Dispute opened by issuer"`
}

type CardDTO struct {
	ID             string    `json:"id" example:"5f1c2b8e-2a47-4d61-9d1e-8c0f8e2b1a90"`
	Status         string    `json:"status" example:"active"`
	InitialBalance float64   `json:"initialBalance" example:"100"`
	CurrentBalance float64   `json:"currentBalance" example:"100"`
	Reloadable     bool      `json:"reloadable" example:"true"`
	MaxReloads     int       `json:"maxReloads" example:"3"`
	ReloadCount    int       `json:"reloadCount" example:"0"`
	CreatedAt      time.Time `json:"createdAt" example:"2026-03-15T14:00:00Z"`
}

type CardResponseDTO struct {
	Card     *CardDTO         `json:"card,omitempty"`
	Decision *domain.Decision `json:"decision"`
}

func NewCardDTO(card *domain.Card) *CardDTO {
	if card == nil {
		return nil
	}
	return &CardDTO{
		ID:             card.ID,
		Status:         string(card.Status),
		InitialBalance: card.Balance.Initial,
		CurrentBalance: card.Balance.Current,
		Reloadable:     card.Reloadable.Enabled,
		MaxReloads:     card.Reloadable.MaxReloads,
		ReloadCount:    card.Reloadable.ReloadCount,
		CreatedAt:      card.CreatedAt,
	}
}
