package mapping

import (
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/models"
)

// ToDomainAuditFields builds domain audit fields from stored timestamps.
func ToDomainAuditFields(created, updated models.Timestamp) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     created.Time,
		LastUpdatedAt: updated.Time,
	}
}
