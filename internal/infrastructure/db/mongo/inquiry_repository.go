package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// InquiryRepository implements ports.InquiryRepository.
type InquiryRepository struct {
	*collection[domain.Inquiry]
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{
		newCollection[domain.Inquiry](db, collectionInquiries, "inquiry",
			"project", "consumer.name", "product.name", "consultant.name"),
	}
}

func (r *InquiryRepository) List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, int64, error) {
	return r.find(ctx, inquiryFilter(f), f.ListQuery)
}

func inquiryFilter(f domain.InquiryFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AssignedTo != "" {
		filter["assigned_to.id"] = f.AssignedTo
	}
	return filter
}

func (r *InquiryRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Inquiry, error) {
	if len(ids) == 0 {
		return []domain.Inquiry{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find inquiries by ids: %w", err)
	}
	var found []domain.Inquiry
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode inquiries: %w", err)
	}

	byID := make(map[string]domain.Inquiry, len(found))
	for _, inq := range found {
		byID[inq.ID] = inq
	}
	ordered := make([]domain.Inquiry, 0, len(ids))
	for _, id := range ids {
		if inq, ok := byID[id]; ok {
			ordered = append(ordered, inq)
		}
	}
	return ordered, nil
}
