package ai

import (
	"strings"

	"github.com/claude/spotme/internal/models"
)

// contextWorkouts caps how many recent workouts are digested into the prompt.
const contextWorkouts = 3

const personaPrompt = `You are a Gen Z fitness coach and accountability buddy named SpotMe. Be casual, motivational, and slightly playful.
Use short, chatty messages with occasional emojis. Your personality:
- Encouraging but not over-the-top
- Uses fitness slang naturally
- Remembers past workouts and celebrates progress
- Gives practical advice about weights, sets, reps
- Suggests rest days when needed
- Celebrates PRs and milestones
`

const formatPrompt = `When users log workouts, extract exercise names (handle synonyms), sets, reps, weight, and the day type (push/pull/legs/shoulders/etc).

Always respond with the extracted data in this format:
WORKOUT_DATA: {
  "exercises": [
    {"name": "Exercise Name", "sets": 3, "reps": 8, "weight": 135.0, "isPR": false}
  ],
  "dayType": "Push",
  "notes": "Optional notes"
}

Keep responses under 100 words. Be helpful but concise.`

// SystemPrompt builds the per-turn system prompt: the fixed persona plus a
// digest of the most recent workouts. This digest is the only state carried
// between turns.
func SystemPrompt(recent []models.Workout) string {
	var b strings.Builder
	b.WriteString(personaPrompt)

	if len(recent) > 0 {
		b.WriteString("\nRecent workouts:\n")
		for i, w := range recent {
			if i == contextWorkouts {
				break
			}
			b.WriteString("- ")
			b.WriteString(w.Date.Format("1/2/06"))
			b.WriteString(": ")
			b.WriteString(w.DayType)
			if len(w.Exercises) > 0 {
				names := make([]string, len(w.Exercises))
				for j, ex := range w.Exercises {
					names[j] = ex.Name
				}
				b.WriteString(" (")
				b.WriteString(strings.Join(names, ", "))
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatPrompt)
	return b.String()
}
