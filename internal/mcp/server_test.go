package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/spotme/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeSource struct {
	recent  []models.Workout
	all     []models.Workout
	records []models.Exercise
	last    *models.Exercise

	recentDays int
}

func (f *fakeSource) FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error) {
	f.recentDays = days
	return f.recent, nil
}

func (f *fakeSource) FetchAllWorkouts(ctx context.Context) ([]models.Workout, error) {
	return f.all, nil
}

func (f *fakeSource) FetchPersonalRecords(ctx context.Context, name string) ([]models.Exercise, error) {
	return f.records, nil
}

func (f *fakeSource) FetchLastExercise(ctx context.Context, name string) (*models.Exercise, error) {
	return f.last, nil
}

func testHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestGetWorkoutsTool verifies the days argument selects the recent window and
// its absence returns full history.
func TestGetWorkoutsTool(t *testing.T) {
	ds := &fakeSource{
		recent: []models.Workout{{DayType: "Push"}},
		all:    []models.Workout{{DayType: "Push"}, {DayType: "Legs"}},
	}
	h := testHandlers(ds)

	res, err := h.getWorkouts(context.Background(), callRequest(map[string]any{"days": 7}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if ds.recentDays != 7 {
		t.Errorf("days = %d, want 7", ds.recentDays)
	}
	var got []models.Workout
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("recent = %d workouts, want 1", len(got))
	}

	res, err = h.getWorkouts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("all = %d workouts, want 2", len(got))
	}
}

// TestGetPersonalRecordsTool verifies the required exercise argument and the
// JSON payload.
func TestGetPersonalRecordsTool(t *testing.T) {
	ds := &fakeSource{records: []models.Exercise{{Name: "Bench Press", Weight: 155, IsPR: true}}}
	h := testHandlers(ds)

	res, err := h.getPersonalRecords(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("missing exercise should be a tool error")
	}

	res, err = h.getPersonalRecords(context.Background(), callRequest(map[string]any{"exercise": "Bench Press"}))
	if err != nil {
		t.Fatal(err)
	}
	var got []models.Exercise
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Weight != 155 {
		t.Errorf("records = %+v", got)
	}
}

// TestGetLastExerciseTool verifies the never-logged case surfaces as a tool
// error rather than an empty payload.
func TestGetLastExerciseTool(t *testing.T) {
	h := testHandlers(&fakeSource{})

	res, err := h.getLastExercise(context.Background(), callRequest(map[string]any{"exercise": "Deadlift"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("never-logged exercise should be a tool error")
	}

	h = testHandlers(&fakeSource{last: &models.Exercise{Name: "Deadlift", Weight: 315, CreatedAt: time.Now()}})
	res, err = h.getLastExercise(context.Background(), callRequest(map[string]any{"exercise": "Deadlift"}))
	if err != nil {
		t.Fatal(err)
	}
	var got models.Exercise
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Weight != 315 {
		t.Errorf("weight = %v, want 315", got.Weight)
	}
}

// TestRecentWorkoutsResource verifies the resource serves the 7-day window as
// JSON.
func TestRecentWorkoutsResource(t *testing.T) {
	ds := &fakeSource{recent: []models.Workout{{DayType: "Pull"}}}
	h := testHandlers(ds)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "spotme://recent_workouts"

	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if ds.recentDays != recentWorkoutDays {
		t.Errorf("days = %d, want %d", ds.recentDays, recentWorkoutDays)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type %T", contents[0])
	}
	var got []models.Workout
	if err := json.Unmarshal([]byte(tc.Text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].DayType != "Pull" {
		t.Errorf("workouts = %+v", got)
	}
}
