package types

import "time"

// QATransactionRequest is the body of POST /qa_transaction. Option codes start
// at 1, so a zero code is treated as missing.
type QATransactionRequest struct {
	Latitude           *float64 `json:"latitude" validate:"required,latitude"`
	Longitude          *float64 `json:"longitude" validate:"required,longitude"`
	TripID             int      `json:"trip_id" validate:"required"`
	DistanceID         int      `json:"distance_id" validate:"required"`
	ValueID            int      `json:"value_id" validate:"required"`
	LocationInterestID int      `json:"location_interest_id" validate:"required"`
	ActivityID         []int    `json:"activity_id" validate:"required"`
	EmotionalID        int      `json:"emotional_id" validate:"required"`
}

// QuestionnaireAnswer is one stored submission. AccountID is stamped with the
// row's own generated id once the insert succeeds.
type QuestionnaireAnswer struct {
	ID                 int64     `json:"transaction_id"`
	AccountID          int64     `json:"account_id"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	TripID             int       `json:"trip_id"`
	DistanceID         int       `json:"distance_id"`
	ValueID            int       `json:"value_id"`
	LocationInterestID int       `json:"location_interest_id"`
	ActivityID         []int     `json:"activity_id"`
	EmotionalID        int       `json:"emotional_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// QATransactionResult echoes the submitted answer with its generated account
// identifier and whatever recommendations were produced.
type QATransactionResult struct {
	AccountID          int64              `json:"account_id"`
	Latitude           float64            `json:"latitude"`
	Longitude          float64            `json:"longitude"`
	TripID             int                `json:"trip_id"`
	DistanceID         int                `json:"distance_id"`
	ValueID            int                `json:"value_id"`
	LocationInterestID int                `json:"location_interest_id"`
	ActivityID         []int              `json:"activity_id"`
	EmotionalID        int                `json:"emotional_id"`
	Recommendations    []RecommendedPlace `json:"recommendations"`
}

// QATransactionView is a stored answer joined with the option names.
type QATransactionView struct {
	TransactionID    int64     `json:"transaction_id"`
	AccountID        int64     `json:"account_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	TripName         string    `json:"trip_name"`
	DistanceName     string    `json:"distance_name"`
	ValueName        string    `json:"value_name"`
	LocationInterest string    `json:"location_interest"`
	ActivityNames    []string  `json:"activity_names"`
	EmotionalName    string    `json:"emotional_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// RecommendedPlace is one generated suggestion, numbered 1..5 within a batch.
type RecommendedPlace struct {
	ResultID         int    `json:"result_id"`
	AccountID        int64  `json:"account_id"`
	EventName        string `json:"event_name"`
	EventDescription string `json:"event_description"`
	OpenDay          string `json:"open_day"`
	TimeSchedule     string `json:"time_schedule"`
	Location         string `json:"location"`
	ImageURL         string `json:"image_url"`
	Distance         string `json:"distance"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}
