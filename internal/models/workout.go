package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayType is the categorical label for a training day. Used for session
// titling and for the workout digest sent to the model.
type DayType string

const (
	DayTypePush      DayType = "Push"
	DayTypePull      DayType = "Pull"
	DayTypeLegs      DayType = "Legs"
	DayTypeShoulders DayType = "Shoulders"
	DayTypeChest     DayType = "Chest"
	DayTypeBack      DayType = "Back"
	DayTypeArms      DayType = "Arms"
	DayTypeCardio    DayType = "Cardio"
	DayTypeRest      DayType = "Rest"
)

// DayTypes lists every recognized day type.
var DayTypes = []DayType{
	DayTypePush, DayTypePull, DayTypeLegs, DayTypeShoulders,
	DayTypeChest, DayTypeBack, DayTypeArms, DayTypeCardio, DayTypeRest,
}

// ParseDayType matches s against the known day types, case-insensitively.
// Returns the empty DayType when s is unrecognized.
func ParseDayType(s string) DayType {
	for _, dt := range DayTypes {
		if strings.EqualFold(string(dt), s) {
			return dt
		}
	}
	return ""
}

// Emoji returns the display emoji for a day type.
func (d DayType) Emoji() string {
	switch d {
	case DayTypePush, DayTypeArms:
		return "💪"
	case DayTypePull:
		return "🏋️"
	case DayTypeLegs:
		return "🦵"
	case DayTypeShoulders:
		return "🤸"
	case DayTypeChest:
		return "💯"
	case DayTypeBack:
		return "🔥"
	case DayTypeCardio:
		return "🏃"
	case DayTypeRest:
		return "😴"
	default:
		return "💪"
	}
}

// Workout is one logged training session. Immutable after creation; deleting
// a workout deletes its exercises.
type Workout struct {
	ID        uuid.UUID  `json:"id"`
	Date      time.Time  `json:"date"`
	DayType   string     `json:"day_type"`
	Notes     string     `json:"notes"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// Exercise is a single movement inside a workout. Name is the dedup key for
// history lookups and PR evaluation. Weight is in pounds.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	WorkoutID   uuid.UUID `json:"workout_id"`
	Name        string    `json:"name"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	TotalWeight float64   `json:"total_weight"`
	IsPR        bool      `json:"is_pr"`
	CreatedAt   time.Time `json:"created_at"`
}

// TotalWeight is the volume lifted: sets × reps × weight.
func TotalWeight(sets, reps int, weight float64) float64 {
	return float64(sets) * float64(reps) * weight
}

// WorkoutData is the structured payload extracted from a model reply.
type WorkoutData struct {
	Exercises []ExerciseData `json:"exercises"`
	DayType   string         `json:"dayType"`
	Notes     string         `json:"notes"`
}

// ExerciseData is one exercise as reported by the model. IsPR here is the
// model's guess; the stored flag is recomputed against history at save time.
type ExerciseData struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	IsPR   bool    `json:"isPR"`
}
