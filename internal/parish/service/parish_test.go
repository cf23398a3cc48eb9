package service

import (
	"context"
	"testing"
	"time"

	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/kafka"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"
)

type mockParishRepo struct {
	events     []*model.Event
	donations  []*model.Donation
	volunteers []*model.Volunteer
}

func (m *mockParishRepo) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = "event-1"
	m.events = append(m.events, event)
	return nil
}

func (m *mockParishRepo) FindUpcomingEvents(ctx context.Context, from time.Time, limit int, offset int64) ([]*model.Event, error) {
	return m.events, nil
}

func (m *mockParishRepo) CountUpcomingEvents(ctx context.Context, from time.Time) (int64, error) {
	return int64(len(m.events)), nil
}

func (m *mockParishRepo) CreateDonation(ctx context.Context, donation *model.Donation) error {
	donation.ID = "donation-1"
	m.donations = append(m.donations, donation)
	return nil
}

func (m *mockParishRepo) FindDonationsForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Donation, error) {
	return m.donations, nil
}

func (m *mockParishRepo) CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	volunteer.ID = "volunteer-1"
	m.volunteers = append(m.volunteers, volunteer)
	return nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func TestRecordDonation(t *testing.T) {
	repo := &mockParishRepo{}
	publisher := &mockPublisher{}
	svc := NewParishService(repo, publisher, testConfig())

	donation := &model.Donation{
		UserID: "user-1",
		Amount: 500,
		Method: "gcash",
	}

	if err := svc.RecordDonation(context.Background(), donation); err != nil {
		t.Fatalf("RecordDonation() error = %v", err)
	}
	if len(repo.donations) != 1 {
		t.Fatalf("donations stored = %d, want 1", len(repo.donations))
	}
	if len(publisher.published) != 1 {
		t.Fatalf("events published = %d, want 1", len(publisher.published))
	}
	if got := publisher.published[0].GetEventType(); got != kafka.EventDonationRecorded {
		t.Errorf("event type = %q, want %q", got, kafka.EventDonationRecorded)
	}
}

func TestRecordDonationRejectsBadInput(t *testing.T) {
	svc := NewParishService(&mockParishRepo{}, nil, testConfig())

	tests := []struct {
		name     string
		donation *model.Donation
		wantCode string
	}{
		{
			name:     "zero amount",
			donation: &model.Donation{UserID: "user-1", Amount: 0, Method: "cash"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "negative amount",
			donation: &model.Donation{UserID: "user-1", Amount: -20, Method: "cash"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "unknown method",
			donation: &model.Donation{UserID: "user-1", Amount: 100, Method: "crypto"},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordDonation(context.Background(), tt.donation)
			if err == nil {
				t.Fatal("RecordDonation() accepted bad input")
			}
			if got := apperrors.AsAppError(err).Code; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestRegisterVolunteer(t *testing.T) {
	repo := &mockParishRepo{}
	svc := NewParishService(repo, nil, testConfig())

	volunteer := &model.Volunteer{
		UserID:        "user-1",
		FullName:      "  Ana   Reyes  ",
		ContactNumber: "09171234567",
		Ministry:      "Choir",
	}

	if err := svc.RegisterVolunteer(context.Background(), volunteer); err != nil {
		t.Fatalf("RegisterVolunteer() error = %v", err)
	}
	if volunteer.FullName != "Ana Reyes" {
		t.Errorf("full name = %q, want normalized %q", volunteer.FullName, "Ana Reyes")
	}

	bad := &model.Volunteer{
		UserID:        "user-1",
		FullName:      "Ana Reyes",
		ContactNumber: "12345",
		Ministry:      "Choir",
	}
	err := svc.RegisterVolunteer(context.Background(), bad)
	if err == nil {
		t.Fatal("RegisterVolunteer() accepted a malformed contact number")
	}
	if got := apperrors.AsAppError(err).Code; got != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", got, apperrors.CodeValidation)
	}
}

func TestCreateEventRejectsInvertedTimes(t *testing.T) {
	svc := NewParishService(&mockParishRepo{}, nil, testConfig())

	start := time.Now().Add(48 * time.Hour)
	event := &model.Event{
		Title:     "Parish Fiesta",
		Location:  "Parish Grounds",
		StartTime: start,
		EndTime:   start.Add(-2 * time.Hour),
	}

	err := svc.CreateEvent(context.Background(), event)
	if err == nil {
		t.Fatal("CreateEvent() accepted end before start")
	}
	if got := apperrors.AsAppError(err).Code; got != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", got, apperrors.CodeValidation)
	}
}
