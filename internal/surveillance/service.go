package surveillance

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// Service is the lifecycle controller for surveillance plans. It owns every
// schedule recomputation so handlers and dashboards only display the dates
// and tiers it returns.
type Service struct {
	repo      RepositoryInterface
	clock     Clock
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, clock Clock, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, clock: clock, publisher: publisher}
}

// Create validates the request and persists a new active plan. The first
// analysis is due at the start date itself unless the caller supplies a
// later first due date.
func (s *Service) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if len(req.Parameters) == 0 {
		return nil, ErrMissingParameters
	}
	if req.FrequencyMonths < 1 {
		return nil, ErrInvalidFrequency
	}

	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	if startDate.After(today) {
		return nil, ErrStartDateInFuture
	}

	nextDue := startDate
	if req.FirstDueDate != "" {
		nextDue, err = ParseDate(req.FirstDueDate)
		if err != nil {
			return nil, err
		}
		if nextDue.Before(startDate) {
			return nil, ErrFirstDueTooEarly
		}
	}

	plan := &Plan{
		PatientID:       req.PatientID,
		MedicationID:    req.MedicationID,
		Kind:            kind,
		Parameters:      req.Parameters,
		FrequencyMonths: req.FrequencyMonths,
		StartDate:       startDate,
		NextDueDate:     nextDue,
		Status:          StatusActive,
		Priority:        priority,
		Notes:           req.Notes,
		Lab:             req.Lab,
		LabContact:      req.LabContact,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create surveillance plan: %w", err)
	}

	s.publishCreated(ctx, plan)

	return plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// List retrieves plans for the dashboard table with pagination.
func (s *Service) List(ctx context.Context, params pagination.Params) (*PaginatedPlansResponse, error) {
	params.Validate()

	plans, totalCount, err := s.repo.ListWithPagination(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list surveillance plans: %w", err)
	}

	return &PaginatedPlansResponse{
		Success:    true,
		Plans:      plans,
		Pagination: params.CalculateMeta(totalCount),
	}, nil
}

// ListUrgent is the read-only alert surface: active plans classified by
// urgency and ordered most-pressing first. Tiers are computed fresh against
// today's date on every call; nothing is cached or persisted.
func (s *Service) ListUrgent(ctx context.Context, filter UrgentFilter) ([]PlanUrgency, error) {
	plans, err := s.repo.List(ctx, ListFilter{
		Status:    StatusActive,
		PatientID: filter.PatientID,
		Kind:      filter.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active surveillance plans: %w", err)
	}

	today := s.clock.Today()

	result := make([]PlanUrgency, 0, len(plans))
	for _, plan := range plans {
		tier := Classify(plan.NextDueDate, today)
		if filter.MinUrgency != "" && tierRank(tier) > tierRank(filter.MinUrgency) {
			continue
		}
		result = append(result, PlanUrgency{
			Plan:      plan,
			Tier:      tier,
			DaysUntil: DaysUntil(plan.NextDueDate, today),
		})
	}

	// Overdue first, then urgent, upcoming, normal. Within a tier the
	// soonest due date wins; exact ties fall back to clinical priority.
	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := tierRank(result[i].Tier), tierRank(result[j].Tier)
		if ri != rj {
			return ri < rj
		}
		if !result[i].Plan.NextDueDate.Equal(result[j].Plan.NextDueDate) {
			return result[i].Plan.NextDueDate.Before(result[j].Plan.NextDueDate)
		}
		return priorityRank(result[i].Plan.Priority) < priorityRank(result[j].Plan.Priority)
	})

	return result, nil
}

// RecordResult logs a lab analysis against the plan and rolls the schedule
// forward from the new anchor. Re-submitting the analysis date already on
// file is a no-op so retried requests cannot double-advance the schedule.
func (s *Service) RecordResult(ctx context.Context, id string, req RecordResultRequest) (*Plan, error) {
	analysisDate, err := ParseDate(req.AnalysisDate)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Terminal() {
		return nil, ErrPlanTerminal
	}

	today := s.clock.Today()
	if analysisDate.After(today) {
		return nil, ErrFutureAnalysisDate
	}

	if plan.LastAnalysisDate != nil && plan.LastAnalysisDate.Equal(analysisDate) {
		log.Printf("Ignoring duplicate result for surveillance plan %s (analysis date %s)",
			plan.ID, req.AnalysisDate)
		return plan, nil
	}

	oldStatus := plan.Status
	plan.LastAnalysisDate = &analysisDate
	plan.LastResults = req.Results

	if req.Complete {
		plan.Status = StatusCompleted
	} else {
		// Monitoring continues: the schedule advances from the new anchor
		// and a suspended plan resumes.
		plan.Status = StatusActive
		plan.NextDueDate = NextDueDate(analysisDate, plan.FrequencyMonths, today)
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.publishResultRecorded(ctx, plan, req.AnalysisDate)
	if plan.Status != oldStatus {
		s.publishStatusChanged(ctx, plan, oldStatus)
	}

	return plan, nil
}

// Suspend freezes an active plan. The due date is left untouched; Resume
// recomputes it so a long suspension does not resurface deeply overdue.
func (s *Service) Suspend(ctx context.Context, id string) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Terminal() {
		return nil, ErrPlanTerminal
	}
	if plan.Status != StatusActive {
		return nil, ErrPlanNotActive
	}

	oldStatus := plan.Status
	plan.Status = StatusPending

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, plan, oldStatus)
	return plan, nil
}

// Resume reactivates a suspended plan and recomputes the due date relative
// to today from the existing anchor, applying the catch-up rule.
func (s *Service) Resume(ctx context.Context, id string) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Terminal() {
		return nil, ErrPlanTerminal
	}
	if plan.Status != StatusPending {
		return nil, ErrPlanNotSuspended
	}

	oldStatus := plan.Status
	plan.Status = StatusActive
	plan.NextDueDate = NextDueDate(plan.AnchorDate(), plan.FrequencyMonths, s.clock.Today())

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, plan, oldStatus)
	return plan, nil
}

// Cancel moves the plan to its cancelled terminal state.
func (s *Service) Cancel(ctx context.Context, id string) (*Plan, error) {
	return s.terminate(ctx, id, StatusCancelled)
}

// Complete moves the plan to its completed terminal state.
func (s *Service) Complete(ctx context.Context, id string) (*Plan, error) {
	return s.terminate(ctx, id, StatusCompleted)
}

func (s *Service) terminate(ctx context.Context, id string, target Status) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Terminal() {
		return nil, ErrPlanTerminal
	}

	oldStatus := plan.Status
	plan.Status = target

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, plan, oldStatus)
	return plan, nil
}

func (s *Service) publishCreated(ctx context.Context, plan *Plan) {
	if s.publisher == nil {
		return
	}
	event := messaging.SurveillanceCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventSurveillanceCreated),
		Data: messaging.SurveillanceCreatedData{
			PlanID:          plan.ID,
			PatientID:       plan.PatientID,
			Kind:            string(plan.Kind),
			FrequencyMonths: plan.FrequencyMonths,
			NextDueDate:     plan.NextDueDate.Format("2006-01-02"),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventSurveillanceCreated, event); err != nil {
		log.Printf("Warning: failed to publish surveillance.created event: %v", err)
	}
}

func (s *Service) publishResultRecorded(ctx context.Context, plan *Plan, analysisDate string) {
	if s.publisher == nil {
		return
	}
	event := messaging.SurveillanceResultRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventSurveillanceResultRecorded),
		Data: messaging.SurveillanceResultRecordedData{
			PlanID:       plan.ID,
			PatientID:    plan.PatientID,
			AnalysisDate: analysisDate,
			NextDueDate:  plan.NextDueDate.Format("2006-01-02"),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventSurveillanceResultRecorded, event); err != nil {
		log.Printf("Warning: failed to publish surveillance.result_recorded event: %v", err)
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, plan *Plan, oldStatus Status) {
	if s.publisher == nil {
		return
	}
	event := messaging.SurveillanceStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventSurveillanceStatusChanged),
		Data: messaging.SurveillanceStatusChangedData{
			PlanID:    plan.ID,
			PatientID: plan.PatientID,
			OldStatus: string(oldStatus),
			NewStatus: string(plan.Status),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventSurveillanceStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish surveillance.status_changed event: %v", err)
	}
}

func parseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindHepatic, KindRenal, KindMixed, KindOther:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

func parsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", ErrInvalidPriority
	}
}

func parseTier(s string) (Tier, error) {
	if s == "" {
		return "", nil
	}
	switch Tier(s) {
	case TierOverdue, TierUrgent, TierUpcoming, TierNormal:
		return Tier(s), nil
	default:
		return "", ErrInvalidTier
	}
}
