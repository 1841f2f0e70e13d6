package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intervuehub/models"
)

const reportsCollection = "feedback_reports"

// SaveFeedbackReport stores a generated report for later viewing
func SaveFeedbackReport(sessionID string, report models.FeedbackReport) error {
	if MongoDatabase == nil {
		return fmt.Errorf("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := models.SavedFeedbackReport{
		SessionID: sessionID,
		PersonaID: report.PersonaID,
		Report:    report,
		CreatedAt: time.Now(),
	}

	_, err := MongoDatabase.Collection(reportsCollection).InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReportsByPersona retrieves saved reports for a persona, most recent first
func GetReportsByPersona(personaID string, limit int64) ([]models.SavedFeedbackReport, error) {
	if MongoDatabase == nil {
		return nil, fmt.Errorf("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := MongoDatabase.Collection(reportsCollection).Find(ctx, bson.M{"personaId": personaID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.SavedFeedbackReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// GetReportByID retrieves a single saved report
func GetReportByID(id primitive.ObjectID) (*models.SavedFeedbackReport, error) {
	if MongoDatabase == nil {
		return nil, fmt.Errorf("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var record models.SavedFeedbackReport
	err := MongoDatabase.Collection(reportsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("report not found")
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &record, nil
}
