package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

const reportsCollection = "reports"

// ReportRepository implements ports.ReportRepository on the reports collection.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportsCollection)}
}

type reportDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID   primitive.ObjectID `bson:"employee_id"`
	EmployeeName string             `bson:"employee_name"`
	Date         time.Time          `bson:"date"`
	SaleCount    int                `bson:"sale_count"`
	SaleAmount   float64            `bson:"sale_amount"`
	Description  string             `bson:"description"`
	Comments     string             `bson:"comments"`
	LeaderID     string             `bson:"leader_id"`
	LeaderName   string             `bson:"leader_name"`
	Department   string             `bson:"department"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d reportDoc) toDomain() *domain.Report {
	return &domain.Report{
		ID:           d.ID.Hex(),
		EmployeeID:   d.EmployeeID.Hex(),
		EmployeeName: d.EmployeeName,
		Date:         d.Date,
		SaleCount:    d.SaleCount,
		SaleAmount:   d.SaleAmount,
		Description:  d.Description,
		Comments:     d.Comments,
		LeaderID:     d.LeaderID,
		LeaderName:   d.LeaderName,
		Department:   d.Department,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Upsert inserts or overwrites the report for (employee_id, date, leader_id)
// in a single atomic operation. Together with the unique compound index from
// EnsureIndexes this closes the find-then-write race: two concurrent
// submissions for the same key resolve to one insert and one update.
func (r *ReportRepository) Upsert(ctx context.Context, report *domain.Report) (*domain.Report, bool, error) {
	employeeOID, err := primitive.ObjectIDFromHex(report.EmployeeID)
	if err != nil {
		return nil, false, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"employee_id": employeeOID,
		"date":        report.Date,
		"leader_id":   report.LeaderID,
	}
	update := bson.M{
		"$set": bson.M{
			"employee_name": report.EmployeeName,
			"sale_count":    report.SaleCount,
			"sale_amount":   report.SaleAmount,
			"description":   report.Description,
			"comments":      report.Comments,
			"leader_name":   report.LeaderName,
			"department":    report.Department,
			"updated_at":    report.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": report.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("upsert report: %w", err)
	}
	created := res.UpsertedCount > 0

	var doc reportDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, fmt.Errorf("upsert report: stored document not found")
		}
		return nil, false, fmt.Errorf("upsert report: %w", err)
	}

	return doc.toDomain(), created, nil
}

// List returns reports matching filter, sorted by date descending.
func (r *ReportRepository) List(ctx context.Context, filter ports.ListReportsFilter) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.LeaderID != "" {
		query["leader_id"] = filter.LeaderID
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.LeaderSearch != "" {
		query["leader_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.LeaderSearch), Options: "i"}
	}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lt"] = filter.DateTo
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*domain.Report
	for cursor.Next(ctx) {
		var doc reportDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, doc.toDomain())
	}
	return reports, cursor.Err()
}

// EnsureIndexes creates the unique compound index enforcing
// one-report-per-employee-per-day-per-leader at the storage layer, plus the
// date index backing range queries and the default sort.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "employee_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "leader_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "leader_id", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
