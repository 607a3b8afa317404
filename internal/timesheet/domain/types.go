// Package domain holds the document shapes shared across the timesheet
// repositories, report builders and services.
package domain

import (
	"time"
)

// TimeEntry is one logged unit of work against a project task.
type TimeEntry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ProjectID string    `bson:"projectId" json:"projectId"`
	Task      string    `bson:"task" json:"task"`
	Date      time.Time `bson:"date" json:"date"` // UTC-normalized calendar day
	Hours     float64   `bson:"hours" json:"hours"`
	UserID    string    `bson:"userId" json:"userId"`
}

// Project is a container for time entries with shared visibility.
type Project struct {
	ID       string   `bson:"_id,omitempty" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Color    string   `bson:"color,omitempty" json:"color,omitempty"`
	Customer string   `bson:"customer,omitempty" json:"customer,omitempty"`
	UserID   string   `bson:"userId" json:"userId"`
	Public   bool     `bson:"public,omitempty" json:"public"`
	Team     []string `bson:"team,omitempty" json:"team,omitempty"`
	Archived bool     `bson:"archived,omitempty" json:"archived"`
}

// User is a registered account. Demo accounts carry a generated name.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Emails       []string  `bson:"emails,omitempty" json:"emails,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Admin        bool      `bson:"isAdmin,omitempty" json:"admin"`
	Inactive     bool      `bson:"inactive,omitempty" json:"inactive"`
	Demo         bool      `bson:"demo,omitempty" json:"demo"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// TransactionUser is the actor snapshot embedded in a Transaction.
type TransactionUser struct {
	ID     string   `bson:"_id" json:"id"`
	Name   string   `bson:"name" json:"name"`
	Emails []string `bson:"emails,omitempty" json:"emails,omitempty"`
	Admin  bool     `bson:"isAdmin,omitempty" json:"admin"`
}

// Transaction is an audit record of one invoked operation. Records are
// written once and never mutated or deleted by this service.
type Transaction struct {
	ID        string          `bson:"_id,omitempty" json:"id"`
	User      TransactionUser `bson:"user" json:"user"`
	Method    string          `bson:"method" json:"method"`
	Args      string          `bson:"args" json:"args"` // serialized parameters
	Timestamp time.Time       `bson:"timestamp" json:"timestamp"`
}

// Range is an inclusive date interval bounding a report.
type Range struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Settings keys recognized by the settings provider. User documents may
// override any of them; globals provide the process-wide default.
const (
	SettingStartOfWeek           = "startOfWeek"
	SettingTimeUnit              = "timeunit"
	SettingHoursToDays           = "hoursToDays"
	SettingWeekviewDateFormat    = "weekviewDateFormat"
	SettingDateFormat            = "dateformat"
	SettingDailyStartTime        = "dailyStartTime"
	SettingBreakStartTime        = "breakStartTime"
	SettingBreakDuration         = "breakDuration"
	SettingRegularWorkingTime    = "regularWorkingTime"
	SettingAddBreakToWorkingTime = "addBreakToWorkingTime"
	SettingEnableTransactions    = "enableTransactions"
)
