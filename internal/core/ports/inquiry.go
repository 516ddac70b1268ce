package ports

import (
	"context"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

type InquiryRepository interface {
	Store[domain.Inquiry]
	List(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int64, error)
	// FindByIDs returns the matching inquiries in the order of ids, skipping missing ones.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Inquiry, error)
}

// InquiryIndex is an optional full-text index over inquiries.
type InquiryIndex interface {
	Index(ctx context.Context, inquiry *domain.Inquiry) error
	Remove(ctx context.Context, id string) error
	// Search returns the ids of one page of matches plus the total hit count.
	Search(ctx context.Context, filter domain.InquiryFilter) ([]string, int64, error)
}

// InquiryInput carries the inquiry form. Empty ConsultantID means none.
type InquiryInput struct {
	Project      string
	ConsumerID   string
	ProductID    string
	ConsultantID string
	Quantity     int
	Status       string
	Description  string
}

// AssignFollowUpInput assigns an inquiry and schedules its follow-up.
type AssignFollowUpInput struct {
	AssignedTo  string
	DueDate     time.Time
	Description string
}

type InquiryService interface {
	List(ctx context.Context, filter domain.InquiryFilter) (domain.Page[domain.Inquiry], error)
	Get(ctx context.Context, id string) (*domain.Inquiry, error)
	Create(ctx context.Context, actor Actor, in InquiryInput) (*domain.Inquiry, error)
	Update(ctx context.Context, actor Actor, id string, in InquiryInput) (*domain.Inquiry, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, actor Actor, id, status string) (*domain.Inquiry, error)
	AddComment(ctx context.Context, actor Actor, id, text string) (*domain.Comment, error)
	AssignFollowUp(ctx context.Context, actor Actor, id string, in AssignFollowUpInput) (*domain.Inquiry, *domain.FollowUp, error)
}
