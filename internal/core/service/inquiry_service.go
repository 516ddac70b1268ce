package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/pkg/metrics"
)

// InquiryDeps groups the collaborators of InquiryService.
type InquiryDeps struct {
	Inquiries   ports.InquiryRepository
	Consumers   ports.CatalogRepository[domain.Consumer]
	Products    ports.CatalogRepository[domain.Product]
	Consultants ports.CatalogRepository[domain.Consultant]
	Users       ports.UserRepository
	FollowUps   ports.FollowUpRepository
	Notifier    ports.Notifier
	// Index is optional; when nil, search runs against the repository.
	Index ports.InquiryIndex
}

type InquiryService struct {
	InquiryDeps
	log zerolog.Logger
}

func NewInquiryService(deps InquiryDeps, log zerolog.Logger) *InquiryService {
	return &InquiryService{InquiryDeps: deps, log: log}
}

func (s *InquiryService) List(ctx context.Context, filter domain.InquiryFilter) (domain.Page[domain.Inquiry], error) {
	filter.ListQuery = filter.Normalize()

	if s.Index != nil && filter.Search != "" {
		ids, total, err := s.Index.Search(ctx, filter)
		if err == nil {
			items, err := s.Inquiries.FindByIDs(ctx, ids)
			if err != nil {
				return domain.Page[domain.Inquiry]{}, fmt.Errorf("list inquiries: %w", err)
			}
			return domain.NewPage(items, total, filter.ListQuery), nil
		}
		metrics.InquiryIndexErrorsTotal.WithLabelValues("search").Inc()
		s.log.Warn().Err(err).Msg("inquiry index search failed, falling back to database")
	}

	items, total, err := s.Inquiries.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.Inquiry]{}, fmt.Errorf("list inquiries: %w", err)
	}
	return domain.NewPage(items, total, filter.ListQuery), nil
}

func (s *InquiryService) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	return s.Inquiries.FindByID(ctx, id)
}

// Create records a new inquiry. Status defaults to tender and a non-empty
// description becomes the first history entry.
func (s *InquiryService) Create(ctx context.Context, actor ports.Actor, in ports.InquiryInput) (*domain.Inquiry, error) {
	status := domain.InquiryTender
	if in.Status != "" {
		parsed, err := domain.ParseInquiryStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	inq := &domain.Inquiry{
		Project:      strings.TrimSpace(in.Project),
		Quantity:     in.Quantity,
		Status:       status,
		Descriptions: []domain.Comment{},
		CreatedBy:    actor.Ref(),
	}
	if err := s.resolveRefs(ctx, inq, in); err != nil {
		return nil, err
	}

	now := utcNow()
	stampNew(&inq.Meta, now)
	if strings.TrimSpace(in.Description) != "" {
		inq.AddComment(in.Description, actor.Ref(), now)
	}

	if err := s.Inquiries.Create(ctx, inq); err != nil {
		return nil, err
	}
	metrics.InquiriesCreatedTotal.WithLabelValues(string(status)).Inc()
	s.reindex(ctx, inq)

	s.log.Info().Str("inquiry_id", inq.ID).Str("status", string(status)).Str("by", actor.ID).Msg("inquiry created")
	return inq, nil
}

// Update replaces the form fields. A description that differs from the latest
// history entry is appended to the history.
func (s *InquiryService) Update(ctx context.Context, actor ports.Actor, id string, in ports.InquiryInput) (*domain.Inquiry, error) {
	inq, err := s.Inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != "" {
		status, err := domain.ParseInquiryStatus(in.Status)
		if err != nil {
			return nil, err
		}
		inq.Status = status
	}
	if err := s.resolveRefs(ctx, inq, in); err != nil {
		return nil, err
	}
	inq.Project = strings.TrimSpace(in.Project)
	inq.Quantity = in.Quantity

	now := utcNow()
	inq.UpdatedAt = now
	if desc := strings.TrimSpace(in.Description); desc != "" && desc != latestComment(inq) {
		inq.AddComment(desc, actor.Ref(), now)
	}

	if err := s.Inquiries.Update(ctx, id, inq); err != nil {
		return nil, err
	}
	s.reindex(ctx, inq)
	return inq, nil
}

func (s *InquiryService) Delete(ctx context.Context, id string) error {
	if err := s.Inquiries.Delete(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			metrics.InquiryIndexErrorsTotal.WithLabelValues("remove").Inc()
			s.log.Warn().Err(err).Str("inquiry_id", id).Msg("failed to remove inquiry from index")
		}
	}
	s.log.Info().Str("inquiry_id", id).Msg("inquiry deleted")
	return nil
}

// UpdateStatus moves the inquiry to another status and tells the assignee.
func (s *InquiryService) UpdateStatus(ctx context.Context, actor ports.Actor, id, raw string) (*domain.Inquiry, error) {
	status, err := domain.ParseInquiryStatus(raw)
	if err != nil {
		return nil, err
	}
	inq, err := s.Inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inq.Status == status {
		return inq, nil
	}

	previous := inq.Status
	inq.Status = status
	inq.UpdatedAt = utcNow()
	if err := s.Inquiries.Update(ctx, id, inq); err != nil {
		return nil, err
	}
	s.reindex(ctx, inq)

	if inq.AssignedTo != nil && inq.AssignedTo.ID != actor.ID {
		s.Notifier.Notify(ports.NotificationInput{
			UserID:  inq.AssignedTo.ID,
			Kind:    domain.NotifyInquiryStatus,
			Title:   "Inquiry status changed",
			Message: fmt.Sprintf("%s moved %s from %s to %s", actor.Name, inq.Project, previous, status),
			Link:    inquiryLink(inq.ID),
		})
	}
	return inq, nil
}

// AddComment appends an entry to the description history.
func (s *InquiryService) AddComment(ctx context.Context, actor ports.Actor, id, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Invalid("comment text is required")
	}
	inq, err := s.Inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := inq.AddComment(text, actor.Ref(), utcNow())
	if err := s.Inquiries.Update(ctx, id, inq); err != nil {
		return nil, err
	}
	s.reindex(ctx, inq)
	return &c, nil
}

// AssignFollowUp assigns the inquiry to a user and schedules a linked follow-up.
func (s *InquiryService) AssignFollowUp(ctx context.Context, actor ports.Actor, id string, in ports.AssignFollowUpInput) (*domain.Inquiry, *domain.FollowUp, error) {
	inq, err := s.Inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	assignee, err := activeAssignee(ctx, s.Users, in.AssignedTo)
	if err != nil {
		return nil, nil, err
	}

	now := utcNow()
	due := in.DueDate.UTC()
	inq.Assign(assignee.Ref(), due, now)
	if err := s.Inquiries.Update(ctx, id, inq); err != nil {
		return nil, nil, err
	}
	s.reindex(ctx, inq)

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "Follow up on inquiry " + inq.Project
	}
	fu := &domain.FollowUp{
		Name:        "Inquiry: " + inq.Project,
		Description: description,
		DueDate:     due,
		Status:      domain.FollowUpPending,
		AssignedTo:  assignee.Ref(),
		InquiryID:   inq.ID,
		CreatedBy:   actor.Ref(),
	}
	stampNew(&fu.Meta, now)
	if err := s.FollowUps.Create(ctx, fu); err != nil {
		return nil, nil, fmt.Errorf("create follow-up: %w", err)
	}

	s.Notifier.Notify(ports.NotificationInput{
		UserID:  assignee.ID,
		Kind:    domain.NotifyInquiryAssigned,
		Title:   "Inquiry assigned to you",
		Message: fmt.Sprintf("%s assigned %s to you, follow up by %s", actor.Name, inq.Project, due.Format("02 Jan 2006")),
		Link:    inquiryLink(inq.ID),
	})

	s.log.Info().Str("inquiry_id", inq.ID).Str("assigned_to", assignee.ID).Msg("inquiry assigned")
	return inq, fu, nil
}

func (s *InquiryService) resolveRefs(ctx context.Context, inq *domain.Inquiry, in ports.InquiryInput) error {
	consumer, err := s.Consumers.FindByID(ctx, in.ConsumerID)
	if err != nil {
		return resolveRef(err, "consumer_id")
	}
	product, err := s.Products.FindByID(ctx, in.ProductID)
	if err != nil {
		return resolveRef(err, "product_id")
	}
	inq.Consumer = consumer.Ref()
	inq.Product = product.Ref()

	inq.Consultant = nil
	if in.ConsultantID != "" {
		consultant, err := s.Consultants.FindByID(ctx, in.ConsultantID)
		if err != nil {
			return resolveRef(err, "consultant_id")
		}
		ref := consultant.Ref()
		inq.Consultant = &ref
	}
	return nil
}

// reindex keeps the search index in step; failures are logged only.
func (s *InquiryService) reindex(ctx context.Context, inq *domain.Inquiry) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, inq); err != nil {
		metrics.InquiryIndexErrorsTotal.WithLabelValues("index").Inc()
		s.log.Warn().Err(err).Str("inquiry_id", inq.ID).Msg("failed to index inquiry")
	}
}

func latestComment(inq *domain.Inquiry) string {
	if len(inq.Descriptions) == 0 {
		return ""
	}
	return inq.Descriptions[len(inq.Descriptions)-1].Text
}

func inquiryLink(id string) string { return "/inquiries/" + id }

// activeAssignee loads the user a task is handed to; it must exist and be active.
func activeAssignee(ctx context.Context, users ports.UserRepository, id string) (*domain.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, resolveRef(err, "assigned_to")
	}
	if !user.Active {
		return nil, domain.Invalid("assignee is inactive")
	}
	return user, nil
}
