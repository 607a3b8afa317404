package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectHoursRow is one result of the total-hours aggregation.
type ProjectHoursRow struct {
	Key struct {
		UserID    string `bson:"userId"`
		ProjectID string `bson:"projectId"`
	} `bson:"_id"`
	// Hours arrives as Decimal128 because the builder casts before summing.
	Hours primitive.Decimal128 `bson:"hours"`
}

// DailyHoursRow is one result of the daily-hours aggregation.
type DailyHoursRow struct {
	Key struct {
		UserID    string    `bson:"userId"`
		ProjectID string    `bson:"projectId"`
		Date      time.Time `bson:"date"`
	} `bson:"_id"`
	Hours float64 `bson:"hours"`
}

// WorkingTimeRow is one result of the working-time aggregation, the
// input to MapSchedule.
type WorkingTimeRow struct {
	Key struct {
		UserID string    `bson:"userId"`
		Date   time.Time `bson:"date"`
	} `bson:"_id"`
	TotalTime float64 `bson:"totalTime"`
}
