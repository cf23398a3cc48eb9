package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "sagradago/internal/bookings/errors"
	"sagradago/internal/bookings/leadtime"
	"sagradago/internal/bookings/repository"
	"sagradago/internal/bookings/validator"
	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/kafka"
	"sagradago/pkg/model"
	"sagradago/pkg/sanitizer"
	"sagradago/pkg/sealer"

	"github.com/google/uuid"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// ProfileProvider supplies the saved profile used to pre-fill a missing
// contact number. A nil provider disables pre-fill.
type ProfileProvider interface {
	FindByID(ctx context.Context, userID string) (*model.UserProfile, error)
}

type BookingService interface {
	Submit(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, string, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAllForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	docRepo   repository.DocumentRepository
	rule      *leadtime.Rule
	validator *validator.SacramentValidator
	profiles  ProfileProvider
	publisher EventPublisher
	sealer    *sealer.Sealer
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	docRepo repository.DocumentRepository,
	rule *leadtime.Rule,
	v *validator.SacramentValidator,
	profiles ProfileProvider,
	publisher EventPublisher,
	tokenSealer *sealer.Sealer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		docRepo:   docRepo,
		rule:      rule,
		validator: v,
		profiles:  profiles,
		publisher: publisher,
		sealer:    tokenSealer,
		cfg:       cfg,
	}
}

// Submit runs the booking pipeline: lead-time check, field validation,
// then the document and booking inserts in one transaction. The first
// failure aborts the whole attempt. On success it returns the stored
// booking plus an opaque tracking token.
func (s *bookingService) Submit(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, string, error) {
	if req == nil {
		return nil, "", apperrors.InvalidInput("Booking request cannot be empty")
	}

	booking := &req.Booking
	booking.UserID = userID
	s.sanitize(req)

	if reason := s.rule.CheckDate(booking.Sacrament, booking.Date); reason != "" {
		s.cfg.Log.Info("Booking rejected by lead-time rule",
			"user_id", userID,
			"sacrament", booking.Sacrament,
			"date", booking.Date,
		)
		return nil, "", apperrors.DateRestriction(reason)
	}

	s.prefillContact(ctx, userID, req)

	if booking.Sacrament.RequiresDocument() {
		if reason := s.validator.ValidateDocument(booking.Sacrament, req); reason != "" {
			s.cfg.Log.Info("Booking rejected by field validation",
				"user_id", userID,
				"sacrament", booking.Sacrament,
				"reason", reason,
			)
			return nil, "", apperrors.Validation(reason, nil)
		}
	} else {
		if reason := s.validator.ValidateCommon(booking.ContactNumber, booking.CurrentAddress); reason != "" {
			return nil, "", apperrors.Validation(reason, nil)
		}
	}

	if req.Baptism != nil {
		req.Baptism.AdditionalGodparents = FilterSparseGodparents(req.Baptism.AdditionalGodparents)
	}

	booking.Status = model.StatusPending
	booking.TransactionID = newTransactionID()

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx context.Context) error {
		// Document goes in first so the booking never references a
		// document that failed to persist.
		docID, writeErr := s.writeDocument(sessCtx, booking.Sacrament, req)
		if writeErr != nil {
			return writeErr
		}
		booking.SpecificDocumentID = docID

		if createErr := s.repo.Create(sessCtx, booking); createErr != nil {
			return apperrors.Internal("Failed to create booking. Please try again.", createErr)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to submit booking",
			"user_id", userID,
			"sacrament", booking.Sacrament,
			"transaction_id", booking.TransactionID,
			"error", err,
		)
		return nil, "", err
	}

	s.publishCreated(ctx, booking)

	token := ""
	if s.sealer != nil {
		token, err = s.sealer.SealBookingToken(booking.ID, booking.TransactionID)
		if err != nil {
			// The booking is committed; a missing token is not worth failing over.
			s.cfg.Log.Warn("Failed to seal tracking token", "booking_id", booking.ID, "error", err)
			token = ""
		}
	}

	s.cfg.Log.Info("Booking submitted successfully",
		"booking_id", booking.ID,
		"user_id", userID,
		"sacrament", booking.Sacrament,
		"transaction_id", booking.TransactionID,
		"specific_document_id", booking.SpecificDocumentID,
	)
	return booking, token, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAllForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID is required")
	}

	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings", "user_id", userID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	bookings, err := s.repo.FindAllForUser(ctx, userID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user_id", userID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, count, nil
}

// --- Helpers ---

// FilterSparseGodparents drops additional-godparent rows where neither
// name was filled in. The form adds blank rows freely; only rows with at
// least one name are worth persisting.
func FilterSparseGodparents(rows []model.AdditionalGodparent) []model.AdditionalGodparent {
	if len(rows) == 0 {
		return rows
	}
	kept := make([]model.AdditionalGodparent, 0, len(rows))
	for _, row := range rows {
		if row.GodfatherName == "" && row.GodmotherName == "" {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

func newTransactionID() string {
	return fmt.Sprintf("TRX-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	b := &req.Booking
	b.ContactNumber = sanitizer.NormalizePhone(b.ContactNumber)
	b.CurrentAddress = sanitizer.NormalizeAddress(b.CurrentAddress)
	b.Time = sanitizer.TrimAndNormalize(b.Time)

	if req.Baptism != nil {
		req.Baptism.BabyName = sanitizer.NormalizeName(req.Baptism.BabyName)
		req.Baptism.MotherName = sanitizer.NormalizeName(req.Baptism.MotherName)
		req.Baptism.FatherName = sanitizer.NormalizeName(req.Baptism.FatherName)
		req.Baptism.ContactNumber = sanitizer.NormalizePhone(req.Baptism.ContactNumber)
		req.Baptism.CurrentAddress = sanitizer.NormalizeAddress(req.Baptism.CurrentAddress)
	}
	if req.Wedding != nil {
		req.Wedding.GroomFullName = sanitizer.NormalizeName(req.Wedding.GroomFullName)
		req.Wedding.BrideFullName = sanitizer.NormalizeName(req.Wedding.BrideFullName)
		req.Wedding.ContactNumber = sanitizer.NormalizePhone(req.Wedding.ContactNumber)
	}
	if req.Burial != nil {
		req.Burial.DeceasedName = sanitizer.NormalizeName(req.Burial.DeceasedName)
		req.Burial.RequestedBy = sanitizer.NormalizeName(req.Burial.RequestedBy)
		req.Burial.ContactNumber = sanitizer.NormalizePhone(req.Burial.ContactNumber)
		req.Burial.Address = sanitizer.NormalizeAddress(req.Burial.Address)
	}
}

// prefillContact fills a missing contact number from the user's saved
// profile. A lookup failure is not fatal; the validators will reject the
// form if the number stays empty.
func (s *bookingService) prefillContact(ctx context.Context, userID string, req *model.BookingRequest) {
	if s.profiles == nil {
		return
	}

	needsBooking := req.Booking.ContactNumber == ""
	needsBaptism := req.Baptism != nil && req.Baptism.ContactNumber == ""
	needsBurial := req.Burial != nil && req.Burial.ContactNumber == ""
	needsWedding := req.Wedding != nil && req.Wedding.ContactNumber == ""
	if !needsBooking && !needsBaptism && !needsBurial && !needsWedding {
		return
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil || profile == nil || profile.Mobile == "" {
		if err != nil {
			s.cfg.Log.Warn("Failed to load profile for contact pre-fill", "user_id", userID, "error", err)
		}
		return
	}

	mobile := sanitizer.NormalizePhone(profile.Mobile)
	if needsBooking {
		req.Booking.ContactNumber = mobile
	}
	if needsBaptism {
		req.Baptism.ContactNumber = mobile
	}
	if needsBurial {
		req.Burial.ContactNumber = mobile
	}
	if needsWedding {
		req.Wedding.ContactNumber = mobile
	}
}

// writeDocument persists the sacrament-specific document and returns its
// identifier. Sacraments without a document shape return "" with no error.
func (s *bookingService) writeDocument(ctx context.Context, sacrament model.Sacrament, req *model.BookingRequest) (string, error) {
	var (
		docID string
		err   error
	)

	switch sacrament {
	case model.SacramentBaptism:
		docID, err = s.docRepo.InsertBaptism(ctx, req.Baptism)
	case model.SacramentWedding:
		docID, err = s.docRepo.InsertWedding(ctx, req.Wedding)
	case model.SacramentBurial:
		docID, err = s.docRepo.InsertBurial(ctx, req.Burial)
	default:
		return "", nil
	}

	if err != nil {
		msg := fmt.Sprintf("Failed to insert %s documents. Please try again.", strings.ToLower(string(sacrament)))
		return "", apperrors.Internal(msg, err)
	}
	if docID == "" {
		msg := fmt.Sprintf("Failed to insert %s documents. Please try again.", strings.ToLower(string(sacrament)))
		return "", apperrors.Internal(msg, bookingserrors.ErrDocumentNotInserted)
	}

	return docID, nil
}

// publishCreated emits a booking.created event. Publishing is best
// effort: the booking is already committed and the notifier catches up
// from the topic later if the broker is down.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.UserID).
		WithValue(booking).
		WithEventType(kafka.EventBookingCreated).
		WithSource("bookings").
		WithSchemaVersion("1").
		WithCorrelationID(booking.TransactionID).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking.created event",
			"booking_id", booking.ID,
			"transaction_id", booking.TransactionID,
			"error", err,
		)
	}
}
