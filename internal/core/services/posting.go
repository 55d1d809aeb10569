package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	"github.com/clubops/clubledger/internal/utils/accounting"
)

// newEntry assembles a balanced journal entry ready for posting. The document
// number is assigned by the repository at insert time.
func newEntry(description, reference, relatedEntityID, actorUserID string, entryDate time.Time, lines []domain.JournalLine) domain.JournalEntry {
	now := time.Now().UTC()
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}
	return domain.JournalEntry{
		EntryID:         entryID,
		EntryDate:       entryDate,
		Description:     description,
		Reference:       reference,
		RelatedEntityID: relatedEntityID,
		Status:          domain.Posted,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
}

// postEntry validates the entry's lines and inserts it within the caller's
// transaction, returning the entry with its assigned document number.
func postEntry(ctx context.Context, journalRepo portsrepo.JournalWriter, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return nil, fmt.Errorf("entry validation failed: %w", err)
	}
	return journalRepo.SaveEntryInTx(ctx, tx, entry)
}
