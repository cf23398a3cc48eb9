package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"sagradago/internal/parish/repository"
	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/kafka"
	"sagradago/pkg/model"
	"sagradago/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

var phMobilePattern = regexp.MustCompile(`^09\d{9}$`)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ParishService interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	ListUpcomingEvents(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error)

	RecordDonation(ctx context.Context, donation *model.Donation) error
	ListDonationsForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Donation, error)

	RegisterVolunteer(ctx context.Context, volunteer *model.Volunteer) error
}

type parishService struct {
	repo      repository.ParishRepository
	publisher EventPublisher
	validate  *validator.Validate
	cfg       *config.Config
}

func NewParishService(repo repository.ParishRepository, publisher EventPublisher, cfg *config.Config) ParishService {
	v := validator.New()
	_ = v.RegisterValidation("ph_mobile", func(fl validator.FieldLevel) bool {
		return phMobilePattern.MatchString(fl.Field().String())
	})

	return &parishService{
		repo:      repo,
		publisher: publisher,
		validate:  v,
		cfg:       cfg,
	}
}

func (s *parishService) CreateEvent(ctx context.Context, event *model.Event) error {
	event.Title = sanitizer.TrimAndNormalize(event.Title)
	event.Location = sanitizer.NormalizeAddress(event.Location)

	if err := s.validateStruct(event); err != nil {
		return err
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to create event", "title", event.Title, "error", err)
		return apperrors.Internal("Failed to create event", err)
	}

	s.cfg.Log.Info("Event created", "id", event.ID, "title", event.Title, "start_time", event.StartTime)
	return nil
}

func (s *parishService) ListUpcomingEvents(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	now := time.Now()

	count, err := s.repo.CountUpcomingEvents(ctx, now)
	if err != nil {
		s.cfg.Log.Error("Failed to count events", "error", err)
		return nil, 0, apperrors.Internal("Failed to count events", err)
	}

	events, err := s.repo.FindUpcomingEvents(ctx, now, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list events", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve events", err)
	}

	return events, count, nil
}

func (s *parishService) RecordDonation(ctx context.Context, donation *model.Donation) error {
	donation.Intention = sanitizer.TrimAndNormalize(donation.Intention)

	if donation.Amount <= 0 {
		return apperrors.InvalidInput("Please enter a valid donation amount.")
	}
	if err := s.validateStruct(donation); err != nil {
		return err
	}

	if err := s.repo.CreateDonation(ctx, donation); err != nil {
		s.cfg.Log.Error("Failed to record donation", "user_id", donation.UserID, "error", err)
		return apperrors.Internal("Failed to record donation", err)
	}

	s.publishDonation(ctx, donation)

	s.cfg.Log.Info("Donation recorded",
		"id", donation.ID,
		"user_id", donation.UserID,
		"amount", donation.Amount,
		"method", donation.Method,
	)
	return nil
}

func (s *parishService) ListDonationsForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Donation, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID is required")
	}

	donations, err := s.repo.FindDonationsForUser(ctx, userID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list donations", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve donations", err)
	}

	return donations, nil
}

func (s *parishService) RegisterVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	volunteer.FullName = sanitizer.NormalizeName(volunteer.FullName)
	volunteer.ContactNumber = sanitizer.NormalizePhone(volunteer.ContactNumber)
	volunteer.Ministry = sanitizer.TrimAndNormalize(volunteer.Ministry)
	volunteer.Availability = sanitizer.TrimAndNormalize(volunteer.Availability)

	if err := s.validateStruct(volunteer); err != nil {
		return err
	}

	if err := s.repo.CreateVolunteer(ctx, volunteer); err != nil {
		s.cfg.Log.Error("Failed to register volunteer", "user_id", volunteer.UserID, "error", err)
		return apperrors.Internal("Failed to register volunteer", err)
	}

	s.cfg.Log.Info("Volunteer registered", "id", volunteer.ID, "ministry", volunteer.Ministry)
	return nil
}

func (s *parishService) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return apperrors.Validation("Please fill in all required fields.", map[string]any{
			"field": first.Field(),
			"rule":  first.Tag(),
		})
	}
	return apperrors.Internal("Validation failed", err)
}

func (s *parishService) publishDonation(ctx context.Context, donation *model.Donation) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(donation.UserID).
		WithValue(donation).
		WithEventType(kafka.EventDonationRecorded).
		WithSource("parish").
		WithSchemaVersion("1").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish donation.recorded event", "donation_id", donation.ID, "error", err)
	}
}
