package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// AnalyticsRepository computes the dashboard summary straight from the
// collections with counts and aggregation pipelines.
type AnalyticsRepository struct {
	db *mongo.Database
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Summary(ctx context.Context, now time.Time, months int) (*domain.AnalyticsSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	s := &domain.AnalyticsSummary{GeneratedAt: now}

	counts := []struct {
		dst        *int64
		collection string
		filter     bson.M
	}{
		{&s.Inquiries, collectionInquiries, bson.M{}},
		{&s.Products, collectionProducts, bson.M{}},
		{&s.Brands, collectionBrands, bson.M{}},
		{&s.Consumers, collectionConsumers, bson.M{}},
		{&s.Consultants, collectionConsultants, bson.M{}},
		{&s.ActiveUsers, collectionUsers, bson.M{"active": true}},
		{&s.FollowUps.Pending, collectionFollowUps, bson.M{"status": domain.FollowUpPending}},
		{&s.FollowUps.Completed, collectionFollowUps, bson.M{"status": domain.FollowUpCompleted}},
		{&s.FollowUps.Overdue, collectionFollowUps, bson.M{"status": domain.FollowUpPending, "due_date": bson.M{"$lt": now}}},
	}
	for _, c := range counts {
		n, err := r.db.Collection(c.collection).CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.collection, err)
		}
		*c.dst = n
	}

	byStatus, err := r.inquiriesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	s.InquiriesByStatus = byStatus

	byMonth, err := r.inquiriesByMonth(ctx, now, months)
	if err != nil {
		return nil, err
	}
	s.InquiriesByMonth = byMonth

	return s, nil
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *AnalyticsRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]groupCount, error) {
	cur, err := r.db.Collection(collectionInquiries).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate inquiries: %w", err)
	}
	var rows []groupCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode aggregation: %w", err)
	}
	return rows, nil
}

// inquiriesByStatus reports every known status, including those with no inquiries.
func (r *AnalyticsRepository) inquiriesByStatus(ctx context.Context) (map[domain.InquiryStatus]int64, error) {
	rows, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}

	out := make(map[domain.InquiryStatus]int64, len(domain.InquiryStatuses))
	for _, s := range domain.InquiryStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[domain.InquiryStatus(row.Key)] += row.Count
	}
	return out, nil
}

func (r *AnalyticsRepository) inquiriesByMonth(ctx context.Context, now time.Time, months int) ([]domain.MonthCount, error) {
	labels := monthLabels(now, months)
	start, _ := time.Parse("2006-01", labels[0])

	rows, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": start}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	out := make([]domain.MonthCount, 0, len(labels))
	for _, m := range labels {
		out = append(out, domain.MonthCount{Month: m, Count: counts[m]})
	}
	return out, nil
}

// monthLabels returns the last n calendar months ending with now's, oldest first.
func monthLabels(now time.Time, n int) []string {
	if n < 1 {
		n = 1
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = first.AddDate(0, i-(n-1), 0).Format("2006-01")
	}
	return labels
}
