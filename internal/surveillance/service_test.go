package surveillance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/testutil"
)

// fixedClock pins today's date so schedule arithmetic is deterministic
type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time {
	return c.today
}

// TestCreate_Success tests creating a plan with the first analysis due at the
// start date
func TestCreate_Success(t *testing.T) {
	var created *Plan
	mockRepo := &mockRepository{
		createFunc: func(ctx context.Context, plan *Plan) error {
			plan.ID = "plan-123"
			plan.Version = 1
			created = plan
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, publisher)

	plan, err := service.Create(context.Background(), CreatePlanRequest{
		PatientID:       "patient-1",
		Kind:            "hepatic",
		Parameters:      []string{"ALAT", "ASAT", "GGT"},
		FrequencyMonths: 3,
		StartDate:       "2024-01-10",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan == nil {
		t.Fatal("Expected plan, got nil")
	}
	if created == nil {
		t.Fatal("Expected repository create to be called")
	}
	if plan.Status != StatusActive {
		t.Errorf("Expected status 'active', got '%s'", plan.Status)
	}
	if plan.Priority != PriorityNormal {
		t.Errorf("Expected default priority 'normal', got '%s'", plan.Priority)
	}
	if !plan.NextDueDate.Equal(date(2024, time.January, 10)) {
		t.Errorf("Expected first due date to equal start date 2024-01-10, got %s",
			plan.NextDueDate.Format("2006-01-02"))
	}
	publisher.AssertEventCount(t, messaging.EventSurveillanceCreated, 1)
}

// TestCreate_FirstDueDateOverride tests deferring the first analysis
func TestCreate_FirstDueDateOverride(t *testing.T) {
	mockRepo := &mockRepository{
		createFunc: func(ctx context.Context, plan *Plan) error { return nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, nil)

	plan, err := service.Create(context.Background(), CreatePlanRequest{
		PatientID:       "patient-1",
		Kind:            "renal",
		Parameters:      []string{"creatinine"},
		FrequencyMonths: 6,
		StartDate:       "2024-01-10",
		FirstDueDate:    "2024-02-01",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !plan.NextDueDate.Equal(date(2024, time.February, 1)) {
		t.Errorf("Expected first due date 2024-02-01, got %s", plan.NextDueDate.Format("2006-01-02"))
	}
}

// TestCreate_ValidationErrors tests each rejected request shape
func TestCreate_ValidationErrors(t *testing.T) {
	valid := CreatePlanRequest{
		PatientID:       "patient-1",
		Kind:            "hepatic",
		Parameters:      []string{"ALAT"},
		FrequencyMonths: 3,
		StartDate:       "2024-01-10",
	}

	testCases := []struct {
		name     string
		mutate   func(req *CreatePlanRequest)
		expected error
	}{
		{"Missing patient ID", func(r *CreatePlanRequest) { r.PatientID = "" }, ErrMissingPatientID},
		{"No parameters", func(r *CreatePlanRequest) { r.Parameters = nil }, ErrMissingParameters},
		{"Zero frequency", func(r *CreatePlanRequest) { r.FrequencyMonths = 0 }, ErrInvalidFrequency},
		{"Negative frequency", func(r *CreatePlanRequest) { r.FrequencyMonths = -2 }, ErrInvalidFrequency},
		{"Unknown kind", func(r *CreatePlanRequest) { r.Kind = "cardiac" }, ErrInvalidKind},
		{"Unknown priority", func(r *CreatePlanRequest) { r.Priority = "critical" }, ErrInvalidPriority},
		{"Malformed start date", func(r *CreatePlanRequest) { r.StartDate = "10/01/2024" }, ErrInvalidDate},
		{"Start date in future", func(r *CreatePlanRequest) { r.StartDate = "2024-02-01" }, ErrStartDateInFuture},
		{"First due before start", func(r *CreatePlanRequest) { r.FirstDueDate = "2024-01-05" }, ErrFirstDueTooEarly},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &mockRepository{}
			service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, nil)

			req := valid
			tc.mutate(&req)

			plan, err := service.Create(context.Background(), req)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
			if plan != nil {
				t.Error("Expected nil plan")
			}
		})
	}
}

// TestRecordResult_AdvancesSchedule tests the normal reporting flow: a plan
// started 2024-01-10 with a 3-month frequency, analysis done 2024-01-12,
// rolls forward to 2024-04-12
func TestRecordResult_AdvancesSchedule(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		PatientID:       "patient-1",
		Kind:            KindHepatic,
		Parameters:      []string{"ALAT", "ASAT"},
		FrequencyMonths: 3,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.January, 10),
		Status:          StatusActive,
		Priority:        PriorityNormal,
		Version:         1,
	}
	var updated *Plan
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc: func(ctx context.Context, plan *Plan) error {
			updated = plan
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, publisher)

	plan, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-01-12",
		Results:      map[string]string{"ALAT": "28 UI/L", "ASAT": "24 UI/L"},
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updated == nil {
		t.Fatal("Expected repository update to be called")
	}
	if !plan.NextDueDate.Equal(date(2024, time.April, 12)) {
		t.Errorf("Expected next due date 2024-04-12, got %s", plan.NextDueDate.Format("2006-01-02"))
	}
	if plan.LastAnalysisDate == nil || !plan.LastAnalysisDate.Equal(date(2024, time.January, 12)) {
		t.Error("Expected last analysis date 2024-01-12")
	}
	if plan.Status != StatusActive {
		t.Errorf("Expected plan to stay active, got '%s'", plan.Status)
	}
	publisher.AssertEventCount(t, messaging.EventSurveillanceResultRecorded, 1)
	publisher.AssertEventNotPublished(t, messaging.EventSurveillanceStatusChanged)
}

// TestRecordResult_Complete tests closing the plan together with the final
// result
func TestRecordResult_Complete(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		PatientID:       "patient-1",
		Kind:            KindRenal,
		FrequencyMonths: 6,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.July, 10),
		Status:          StatusActive,
		Version:         2,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.July, 11)}, publisher)

	plan, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-07-10",
		Complete:     true,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Status != StatusCompleted {
		t.Errorf("Expected status 'completed', got '%s'", plan.Status)
	}
	publisher.AssertEventPublished(t, messaging.EventSurveillanceStatusChanged)
}

// TestRecordResult_DuplicateAnalysisDate tests that re-submitting the same
// analysis date is a no-op and cannot double-advance the schedule
func TestRecordResult_DuplicateAnalysisDate(t *testing.T) {
	lastAnalysis := date(2024, time.January, 12)
	stored := &Plan{
		ID:               "plan-123",
		PatientID:        "patient-1",
		FrequencyMonths:  3,
		StartDate:        date(2024, time.January, 10),
		NextDueDate:      date(2024, time.April, 12),
		LastAnalysisDate: &lastAnalysis,
		Status:           StatusActive,
		Version:          2,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc: func(ctx context.Context, plan *Plan) error {
			t.Error("Expected no update for duplicate analysis date")
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 20)}, publisher)

	plan, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-01-12",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !plan.NextDueDate.Equal(date(2024, time.April, 12)) {
		t.Errorf("Expected due date unchanged at 2024-04-12, got %s", plan.NextDueDate.Format("2006-01-02"))
	}
	if publisher.GetEventCount() != 0 {
		t.Errorf("Expected no events for a no-op, got %d", publisher.GetEventCount())
	}
}

// TestRecordResult_FutureAnalysisDate tests rejection of results dated after
// today
func TestRecordResult_FutureAnalysisDate(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		FrequencyMonths: 3,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.April, 10),
		Status:          StatusActive,
		Version:         1,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, nil)

	_, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-01-16",
	})

	if !errors.Is(err, ErrFutureAnalysisDate) {
		t.Errorf("Expected ErrFutureAnalysisDate, got %v", err)
	}
}

// TestRecordResult_TerminalPlan tests that completed and cancelled plans
// reject further results
func TestRecordResult_TerminalPlan(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			stored := &Plan{
				ID:              "plan-123",
				FrequencyMonths: 3,
				Status:          status,
				Version:         3,
			}
			mockRepo := &mockRepository{
				getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
			}
			service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, nil)

			_, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
				AnalysisDate: "2024-01-12",
			})

			if !errors.Is(err, ErrPlanTerminal) {
				t.Errorf("Expected ErrPlanTerminal, got %v", err)
			}
		})
	}
}

// TestRecordResult_ResumesSuspendedPlan tests that reporting a result on a
// suspended plan reactivates it
func TestRecordResult_ResumesSuspendedPlan(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		PatientID:       "patient-1",
		FrequencyMonths: 3,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.April, 10),
		Status:          StatusPending,
		Version:         2,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.May, 2)}, publisher)

	plan, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-05-01",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Status != StatusActive {
		t.Errorf("Expected status 'active', got '%s'", plan.Status)
	}
	if !plan.NextDueDate.Equal(date(2024, time.August, 1)) {
		t.Errorf("Expected next due date 2024-08-01, got %s", plan.NextDueDate.Format("2006-01-02"))
	}
	publisher.AssertEventPublished(t, messaging.EventSurveillanceStatusChanged)
}

// TestRecordResult_VersionConflict tests that a concurrent write surfaces as
// ErrVersionConflict
func TestRecordResult_VersionConflict(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		FrequencyMonths: 3,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.April, 10),
		Status:          StatusActive,
		Version:         1,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, plan *Plan) error { return ErrVersionConflict },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.January, 15)}, nil)

	_, err := service.RecordResult(context.Background(), "plan-123", RecordResultRequest{
		AnalysisDate: "2024-01-12",
	})

	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("Expected ErrVersionConflict, got %v", err)
	}
}

// TestSuspend tests the active to pending transition with the due date frozen
func TestSuspend(t *testing.T) {
	stored := &Plan{
		ID:              "plan-123",
		PatientID:       "patient-1",
		FrequencyMonths: 3,
		StartDate:       date(2024, time.January, 10),
		NextDueDate:     date(2024, time.April, 10),
		Status:          StatusActive,
		Version:         1,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, publisher)

	plan, err := service.Suspend(context.Background(), "plan-123")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Status != StatusPending {
		t.Errorf("Expected status 'pending', got '%s'", plan.Status)
	}
	if !plan.NextDueDate.Equal(date(2024, time.April, 10)) {
		t.Error("Expected due date untouched by suspension")
	}
	publisher.AssertEventPublished(t, messaging.EventSurveillanceStatusChanged)
}

// TestSuspend_NotActive tests that only active plans can be suspended
func TestSuspend_NotActive(t *testing.T) {
	stored := &Plan{ID: "plan-123", Status: StatusPending, Version: 1}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

	_, err := service.Suspend(context.Background(), "plan-123")

	if !errors.Is(err, ErrPlanNotActive) {
		t.Errorf("Expected ErrPlanNotActive, got %v", err)
	}
}

// TestResume tests reactivation with the due date recomputed from the anchor
// so a long suspension does not resurface deeply overdue
func TestResume(t *testing.T) {
	lastAnalysis := date(2024, time.January, 12)
	stored := &Plan{
		ID:               "plan-123",
		PatientID:        "patient-1",
		FrequencyMonths:  3,
		StartDate:        date(2024, time.January, 10),
		NextDueDate:      date(2024, time.April, 12),
		LastAnalysisDate: &lastAnalysis,
		Status:           StatusPending,
		Version:          2,
	}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.September, 1)}, nil)

	plan, err := service.Resume(context.Background(), "plan-123")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Status != StatusActive {
		t.Errorf("Expected status 'active', got '%s'", plan.Status)
	}
	// Anchor 2024-01-12, 3-month steps: Apr 12, Jul 12, Oct 12. The first
	// date on or after today lands on Oct 12.
	if !plan.NextDueDate.Equal(date(2024, time.October, 12)) {
		t.Errorf("Expected next due date 2024-10-12, got %s", plan.NextDueDate.Format("2006-01-02"))
	}
}

// TestResume_NotSuspended tests that only suspended plans can be resumed
func TestResume_NotSuspended(t *testing.T) {
	stored := &Plan{ID: "plan-123", Status: StatusActive, Version: 1}
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

	_, err := service.Resume(context.Background(), "plan-123")

	if !errors.Is(err, ErrPlanNotSuspended) {
		t.Errorf("Expected ErrPlanNotSuspended, got %v", err)
	}
}

// TestCancelAndComplete tests the terminal transitions and the absorbing
// guard
func TestCancelAndComplete(t *testing.T) {
	t.Run("Cancel active plan", func(t *testing.T) {
		stored := &Plan{ID: "plan-123", PatientID: "patient-1", Status: StatusActive, Version: 1}
		mockRepo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
			updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
		}
		service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

		plan, err := service.Cancel(context.Background(), "plan-123")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if plan.Status != StatusCancelled {
			t.Errorf("Expected status 'cancelled', got '%s'", plan.Status)
		}
	})

	t.Run("Complete suspended plan", func(t *testing.T) {
		stored := &Plan{ID: "plan-123", PatientID: "patient-1", Status: StatusPending, Version: 1}
		mockRepo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
			updateFunc:  func(ctx context.Context, plan *Plan) error { return nil },
		}
		service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

		plan, err := service.Complete(context.Background(), "plan-123")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if plan.Status != StatusCompleted {
			t.Errorf("Expected status 'completed', got '%s'", plan.Status)
		}
	})

	t.Run("Cancel terminal plan", func(t *testing.T) {
		stored := &Plan{ID: "plan-123", Status: StatusCompleted, Version: 2}
		mockRepo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return stored, nil },
		}
		service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

		_, err := service.Cancel(context.Background(), "plan-123")
		if !errors.Is(err, ErrPlanTerminal) {
			t.Errorf("Expected ErrPlanTerminal, got %v", err)
		}
	})
}

// TestListUrgent tests tier computation and the most-pressing-first ordering
func TestListUrgent(t *testing.T) {
	plans := []Plan{
		{ID: "normal", NextDueDate: date(2024, time.April, 23), Status: StatusActive, Priority: PriorityUrgent},
		{ID: "upcoming", NextDueDate: date(2024, time.April, 19), Status: StatusActive, Priority: PriorityNormal},
		{ID: "overdue", NextDueDate: date(2024, time.April, 10), Status: StatusActive, Priority: PriorityLow},
		{ID: "urgent", NextDueDate: date(2024, time.April, 15), Status: StatusActive, Priority: PriorityNormal},
	}
	mockRepo := &mockRepository{
		listFunc: func(ctx context.Context, filter ListFilter) ([]Plan, error) {
			if filter.Status != StatusActive {
				t.Errorf("Expected repository filter on active plans, got '%s'", filter.Status)
			}
			return plans, nil
		},
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.April, 15)}, nil)

	result, err := service.ListUrgent(context.Background(), UrgentFilter{})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("Expected 4 plans, got %d", len(result))
	}

	// A low-priority overdue plan still outranks a clinically urgent plan
	// that is not yet due.
	expectedOrder := []string{"overdue", "urgent", "upcoming", "normal"}
	for i, id := range expectedOrder {
		if result[i].Plan.ID != id {
			t.Errorf("Position %d: expected plan '%s', got '%s'", i, id, result[i].Plan.ID)
		}
	}
	if result[0].Tier != TierOverdue || result[0].DaysUntil != -5 {
		t.Errorf("Expected overdue plan at -5 days, got tier '%s' at %d days", result[0].Tier, result[0].DaysUntil)
	}
	if result[1].Tier != TierUrgent || result[1].DaysUntil != 0 {
		t.Errorf("Expected urgent plan at 0 days, got tier '%s' at %d days", result[1].Tier, result[1].DaysUntil)
	}
}

// TestListUrgent_MinUrgency tests filtering out tiers below the requested
// threshold
func TestListUrgent_MinUrgency(t *testing.T) {
	plans := []Plan{
		{ID: "overdue", NextDueDate: date(2024, time.April, 10), Status: StatusActive},
		{ID: "urgent", NextDueDate: date(2024, time.April, 16), Status: StatusActive},
		{ID: "upcoming", NextDueDate: date(2024, time.April, 20), Status: StatusActive},
		{ID: "normal", NextDueDate: date(2024, time.June, 1), Status: StatusActive},
	}
	mockRepo := &mockRepository{
		listFunc: func(ctx context.Context, filter ListFilter) ([]Plan, error) { return plans, nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.April, 15)}, nil)

	result, err := service.ListUrgent(context.Background(), UrgentFilter{MinUrgency: TierUrgent})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 plans at tier urgent or worse, got %d", len(result))
	}
	for _, pu := range result {
		if pu.Tier != TierOverdue && pu.Tier != TierUrgent {
			t.Errorf("Unexpected tier '%s' above the minimum", pu.Tier)
		}
	}
}

// TestListUrgent_TieBreakByPriority tests that exact due-date ties within a
// tier fall back to clinical priority
func TestListUrgent_TieBreakByPriority(t *testing.T) {
	due := date(2024, time.April, 16)
	plans := []Plan{
		{ID: "low", NextDueDate: due, Status: StatusActive, Priority: PriorityLow},
		{ID: "high", NextDueDate: due, Status: StatusActive, Priority: PriorityHigh},
		{ID: "normal", NextDueDate: due, Status: StatusActive, Priority: PriorityNormal},
	}
	mockRepo := &mockRepository{
		listFunc: func(ctx context.Context, filter ListFilter) ([]Plan, error) { return plans, nil },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.April, 15)}, nil)

	result, err := service.ListUrgent(context.Background(), UrgentFilter{})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expectedOrder := []string{"high", "normal", "low"}
	for i, id := range expectedOrder {
		if result[i].Plan.ID != id {
			t.Errorf("Position %d: expected plan '%s', got '%s'", i, id, result[i].Plan.ID)
		}
	}
}

// TestGet_NotFound tests lookup error passthrough
func TestGet_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Plan, error) { return nil, ErrPlanNotFound },
	}
	service := NewService(mockRepo, fixedClock{today: date(2024, time.February, 1)}, nil)

	plan, err := service.Get(context.Background(), "missing")

	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Expected ErrPlanNotFound, got %v", err)
	}
	if plan != nil {
		t.Error("Expected nil plan")
	}
}

// mockRepository implements RepositoryInterface with overridable functions
type mockRepository struct {
	createFunc             func(ctx context.Context, plan *Plan) error
	getByIDFunc            func(ctx context.Context, id string) (*Plan, error)
	listFunc               func(ctx context.Context, filter ListFilter) ([]Plan, error)
	listWithPaginationFunc func(ctx context.Context, limit, offset int) ([]Plan, int, error)
	updateFunc             func(ctx context.Context, plan *Plan) error
}

func (m *mockRepository) Create(ctx context.Context, plan *Plan) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, plan)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Plan, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Plan, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListWithPagination(ctx context.Context, limit, offset int) ([]Plan, int, error) {
	if m.listWithPaginationFunc != nil {
		return m.listWithPaginationFunc(ctx, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) Update(ctx context.Context, plan *Plan) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, plan)
	}
	return errors.New("not implemented")
}
