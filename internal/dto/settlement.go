package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// RecordSettlementRequest defines the payload for recording a settlement
// payment. The debtor is always the authenticated user.
type RecordSettlementRequest struct {
	ToUserID string          `json:"toUserID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note"`
}

// BalanceResponse defines one member's derived balance.
type BalanceResponse struct {
	MemberID   string          `json:"memberID"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	TotalLent  decimal.Decimal `json:"totalLent"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// GroupBalancesResponse wraps a group's derived balances.
type GroupBalancesResponse struct {
	GroupID  string            `json:"groupID"`
	Balances []BalanceResponse `json:"balances"`
}

// SettlementResponse defines a settlement (suggestion or record) returned
// to clients. SettlementID and CreatedAt are empty on suggestions.
type SettlementResponse struct {
	SettlementID string          `json:"settlementID,omitempty"`
	GroupID      string          `json:"groupID"`
	FromUserID   string          `json:"fromUserID"`
	ToUserID     string          `json:"toUserID"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
}

// ListSettlementsResponse wraps settlement suggestions or records.
type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse DTO.
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		MemberID:   b.MemberID,
		TotalOwed:  b.TotalOwed,
		TotalLent:  b.TotalLent,
		NetBalance: b.NetBalance,
	}
}

// ToBalanceResponses converts a slice of domain.Balance to []BalanceResponse.
func ToBalanceResponses(balances []domain.Balance) []BalanceResponse {
	responses := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = ToBalanceResponse(b)
	}
	return responses
}

// ToSettlementResponse converts a domain.Settlement to SettlementResponse DTO.
func ToSettlementResponse(s domain.Settlement) SettlementResponse {
	resp := SettlementResponse{
		SettlementID: s.SettlementID,
		GroupID:      s.GroupID,
		FromUserID:   s.FromUserID,
		ToUserID:     s.ToUserID,
		Amount:       s.Amount,
		Note:         s.Note,
	}
	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ToSettlementResponses converts a slice of domain.Settlement to []SettlementResponse.
func ToSettlementResponses(settlements []domain.Settlement) []SettlementResponse {
	responses := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = ToSettlementResponse(s)
	}
	return responses
}
