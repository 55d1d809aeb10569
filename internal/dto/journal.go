package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit-or-credit line of a manual journal entry.
type EntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// RecordEntryRequest defines a manual journal entry. Lines must balance
// within the ledger tolerance or the whole request is rejected.
type RecordEntryRequest struct {
	Date            time.Time          `json:"date" binding:"required"`
	Description     string             `json:"description" binding:"required"`
	Reference       string             `json:"reference"`
	RelatedEntityID string             `json:"relatedEntityID"`
	Lines           []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomainLines converts request lines to domain journal lines.
func (r RecordEntryRequest) ToDomainLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
		}
	}
	return lines
}

// JournalLineResponse mirrors domain.JournalLine.
type JournalLineResponse struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
}

// JournalEntryResponse mirrors domain.JournalEntry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	DocumentNumber  int64                 `json:"documentNumber"`
	EntryDate       time.Time             `json:"entryDate"`
	Description     string                `json:"description"`
	Reference       string                `json:"reference,omitempty"`
	RelatedEntityID string                `json:"relatedEntityID,omitempty"`
	Status          domain.EntryStatus    `json:"status"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain entry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
		}
	}
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		DocumentNumber:  e.DocumentNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		Reference:       e.Reference,
		RelatedEntityID: e.RelatedEntityID,
		Status:          e.Status,
		Lines:           lines,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}

// ListParams is the shared pagination query shape.
type ListParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
