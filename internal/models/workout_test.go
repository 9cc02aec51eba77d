package models

import (
	"encoding/json"
	"testing"
)

// TestTotalWeight verifies the volume invariant: sets × reps × weight.
func TestTotalWeight(t *testing.T) {
	tests := []struct {
		sets, reps int
		weight     float64
		want       float64
	}{
		{3, 8, 135.0, 3240.0},
		{3, 10, 115.0, 3450.0},
		{0, 8, 135.0, 0},
		{5, 5, 225.5, 5637.5},
	}
	for _, tt := range tests {
		if got := TotalWeight(tt.sets, tt.reps, tt.weight); got != tt.want {
			t.Errorf("TotalWeight(%d, %d, %v) = %v, want %v",
				tt.sets, tt.reps, tt.weight, got, tt.want)
		}
	}
}

// TestParseDayType verifies case-insensitive matching and rejection of
// unknown labels.
func TestParseDayType(t *testing.T) {
	tests := []struct {
		in   string
		want DayType
	}{
		{"Push", DayTypePush},
		{"push", DayTypePush},
		{"LEGS", DayTypeLegs},
		{"cardio", DayTypeCardio},
		{"upper body", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseDayType(tt.in); got != tt.want {
			t.Errorf("ParseDayType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestWorkoutDataRoundTrip verifies that the wire format survives a
// marshal/unmarshal cycle with exercise order and field values intact.
func TestWorkoutDataRoundTrip(t *testing.T) {
	in := WorkoutData{
		Exercises: []ExerciseData{
			{Name: "Bench Press", Sets: 3, Reps: 8, Weight: 135.0, IsPR: false},
			{Name: "Incline Press", Sets: 3, Reps: 10, Weight: 115.0, IsPR: true},
		},
		DayType: "Push",
		Notes:   "felt strong",
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var out WorkoutData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if len(out.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(out.Exercises))
	}
	if out.Exercises[0] != in.Exercises[0] || out.Exercises[1] != in.Exercises[1] {
		t.Errorf("exercises changed in round trip: %+v", out.Exercises)
	}
	if out.DayType != "Push" || out.Notes != "felt strong" {
		t.Errorf("dayType/notes = %q/%q, want Push/felt strong", out.DayType, out.Notes)
	}
}

// TestNullDayTypeDecodes verifies that a JSON null dayType decodes to the
// empty string rather than failing the whole payload.
func TestNullDayTypeDecodes(t *testing.T) {
	var out WorkoutData
	raw := `{"exercises":[{"name":"Squat","sets":5,"reps":5,"weight":225}],"dayType":null,"notes":null}`
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.DayType != "" {
		t.Errorf("dayType = %q, want empty", out.DayType)
	}
	if len(out.Exercises) != 1 || out.Exercises[0].Name != "Squat" {
		t.Errorf("exercises = %+v, want one Squat entry", out.Exercises)
	}
}
