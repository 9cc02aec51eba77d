package ai

import (
	"encoding/json"
	"strings"

	"github.com/claude/spotme/internal/models"
)

// Marker introducing the structured payload inside a model reply.
const workoutDataMarker = "WORKOUT_DATA:"

// ExtractWorkoutData locates the structured block in a reply and decodes it.
// Parsing is permissive: a missing marker, malformed JSON, or a truncated
// object all yield nil so the plain-text reply still reaches the user.
func ExtractWorkoutData(message string) *models.WorkoutData {
	idx := strings.Index(message, workoutDataMarker)
	if idx < 0 {
		return nil
	}

	raw := extractJSONObject(message[idx+len(workoutDataMarker):])
	if raw == "" {
		return nil
	}

	var data models.WorkoutData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	return sanitize(&data)
}

// extractJSONObject returns the first brace-balanced object in s, tracking
// string literals and escapes so braces inside values don't end the scan.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitize drops unusable exercise entries and clamps negative numerics to
// zero so a sloppy model reply can't violate the stored invariants.
func sanitize(data *models.WorkoutData) *models.WorkoutData {
	kept := data.Exercises[:0]
	for _, ex := range data.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		if ex.Sets < 0 {
			ex.Sets = 0
		}
		if ex.Reps < 0 {
			ex.Reps = 0
		}
		if ex.Weight < 0 {
			ex.Weight = 0
		}
		kept = append(kept, ex)
	}
	data.Exercises = kept
	return data
}
