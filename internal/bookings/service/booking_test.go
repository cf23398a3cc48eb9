package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	bookingserrors "sagradago/internal/bookings/errors"
	"sagradago/internal/bookings/leadtime"
	"sagradago/internal/bookings/validator"
	"sagradago/pkg/config"
	mongotx "sagradago/pkg/db/mongo"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/kafka"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"
	"sagradago/pkg/sealer"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type mockBookingRepo struct {
	created   []*model.Booking
	createErr error
	found     *model.Booking
	findErr   error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	booking.ID = "665f1c0a2f8b9a0012345678"
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

func (m *mockBookingRepo) FindAllForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return []*model.Booking{m.found}, nil
}

func (m *mockBookingRepo) CountForUser(ctx context.Context, userID string) (int64, error) {
	return 1, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type mockDocRepo struct {
	baptismErr error
	weddingErr error
	burialErr  error
	inserted   int
}

func (m *mockDocRepo) InsertBaptism(ctx context.Context, doc *model.BaptismDocument) (string, error) {
	if m.baptismErr != nil {
		return "", m.baptismErr
	}
	m.inserted++
	return "doc-baptism-1", nil
}

func (m *mockDocRepo) InsertWedding(ctx context.Context, doc *model.WeddingDocument) (string, error) {
	if m.weddingErr != nil {
		return "", m.weddingErr
	}
	m.inserted++
	return "doc-wedding-1", nil
}

func (m *mockDocRepo) InsertBurial(ctx context.Context, doc *model.BurialDocument) (string, error) {
	if m.burialErr != nil {
		return "", m.burialErr
	}
	m.inserted++
	return "doc-burial-1", nil
}

type mockProfiles struct {
	profile *model.UserProfile
	err     error
}

func (m *mockProfiles) FindByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	return m.profile, m.err
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
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

func testSealer(t *testing.T) *sealer.Sealer {
	t.Helper()
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	s, err := sealer.New(key)
	if err != nil {
		t.Fatalf("sealer.New() error = %v", err)
	}
	return s
}

func newTestService(repo *mockBookingRepo, docRepo *mockDocRepo, profiles ProfileProvider, publisher EventPublisher, tokenSealer *sealer.Sealer, now time.Time) BookingService {
	return NewBookingService(
		repo,
		docRepo,
		leadtime.NewRule(fixedClock{now: now}),
		validator.New(),
		profiles,
		publisher,
		tokenSealer,
		testConfig(),
	)
}

func weddingRequest(now time.Time) *model.BookingRequest {
	return &model.BookingRequest{
		Booking: model.Booking{
			Sacrament:      model.SacramentWedding,
			Date:           now.Add(60 * 24 * time.Hour),
			Time:           "10:00",
			Pax:            80,
			ContactNumber:  "09171234567",
			CurrentAddress: "123 Rizal St, Manila",
		},
		Wedding: &model.WeddingDocument{
			GroomFullName:         "Marco Reyes",
			BrideFullName:         "Elena Torres",
			ContactNumber:         "09171234567",
			Groom1x1:              "uploads/groom_1x1.jpg",
			Bride1x1:              "uploads/bride_1x1.jpg",
			GroomBaptismalCert:    "uploads/groom_baptismal.jpg",
			BrideBaptismalCert:    "uploads/bride_baptismal.jpg",
			GroomConfirmationCert: "uploads/groom_confirmation.jpg",
			BrideConfirmationCert: "uploads/bride_confirmation.jpg",
		},
	}
}

func TestSubmitWedding(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	publisher := &mockPublisher{}
	tokenSealer := testSealer(t)
	svc := newTestService(repo, docRepo, nil, publisher, tokenSealer, now)

	booking, token, err := svc.Submit(context.Background(), "user-1", weddingRequest(now))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if booking.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", booking.Status, model.StatusPending)
	}
	if booking.SpecificDocumentID != "doc-wedding-1" {
		t.Errorf("specific_document_id = %q, want doc-wedding-1", booking.SpecificDocumentID)
	}
	if !strings.HasPrefix(booking.TransactionID, "TRX-") {
		t.Errorf("transaction_id = %q, want TRX- prefix", booking.TransactionID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("booking inserts = %d, want 1", len(repo.created))
	}
	if docRepo.inserted != 1 {
		t.Errorf("document inserts = %d, want 1", docRepo.inserted)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(publisher.published))
	}
	if got := publisher.published[0].GetEventType(); got != kafka.EventBookingCreated {
		t.Errorf("event type = %q, want %q", got, kafka.EventBookingCreated)
	}

	if token == "" {
		t.Fatal("expected a tracking token")
	}
	gotID, gotTrx, err := tokenSealer.ParseBookingToken(token)
	if err != nil {
		t.Fatalf("ParseBookingToken() error = %v", err)
	}
	if gotID != booking.ID || gotTrx != booking.TransactionID {
		t.Errorf("token payload = (%q, %q), want (%q, %q)", gotID, gotTrx, booking.ID, booking.TransactionID)
	}
}

func TestSubmitRejectsShortLeadTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	svc := newTestService(repo, docRepo, nil, nil, nil, now)

	req := weddingRequest(now)
	req.Booking.Date = now.Add(10 * 24 * time.Hour)

	_, _, err := svc.Submit(context.Background(), "user-1", req)
	if err == nil {
		t.Fatal("Submit() accepted a wedding 10 days out")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeDateRestriction {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeDateRestriction)
	}
	if appErr.Message != "Wedding bookings must be at least 1 month in advance." {
		t.Errorf("message = %q", appErr.Message)
	}

	// Lead-time failure short-circuits before any write.
	if len(repo.created) != 0 || docRepo.inserted != 0 {
		t.Errorf("writes happened after lead-time rejection: bookings=%d documents=%d", len(repo.created), docRepo.inserted)
	}
}

func TestSubmitRejectsIncompleteDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	svc := newTestService(repo, docRepo, nil, nil, nil, now)

	req := weddingRequest(now)
	req.Wedding.GroomBaptismalCert = ""

	_, _, err := svc.Submit(context.Background(), "user-1", req)
	if err == nil {
		t.Fatal("Submit() accepted a wedding without baptismal certificates")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeValidation)
	}
	if appErr.Message != validator.MsgBaptismCertsRequired {
		t.Errorf("message = %q, want %q", appErr.Message, validator.MsgBaptismCertsRequired)
	}
	if len(repo.created) != 0 || docRepo.inserted != 0 {
		t.Errorf("writes happened after validation rejection: bookings=%d documents=%d", len(repo.created), docRepo.inserted)
	}
}

// A failed document insert must abort before the booking insert so no
// booking ever references a document that does not exist.
func TestSubmitNoBookingOnDocumentFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{weddingErr: errors.New("write concern error")}
	svc := newTestService(repo, docRepo, nil, nil, nil, now)

	_, _, err := svc.Submit(context.Background(), "user-1", weddingRequest(now))
	if err == nil {
		t.Fatal("Submit() succeeded despite document insert failure")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Message != "Failed to insert wedding documents. Please try again." {
		t.Errorf("message = %q", appErr.Message)
	}
	if len(repo.created) != 0 {
		t.Errorf("booking inserts = %d, want 0", len(repo.created))
	}
}

func TestSubmitSimpleSacramentSkipsDocumentWrite(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	svc := newTestService(repo, docRepo, nil, nil, nil, now)

	req := &model.BookingRequest{
		Booking: model.Booking{
			Sacrament:      model.SacramentConfession,
			Date:           now.Add(5 * 24 * time.Hour),
			Time:           "15:00",
			Pax:            1,
			ContactNumber:  "09171234567",
			CurrentAddress: "123 Rizal St, Manila",
		},
	}

	booking, _, err := svc.Submit(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if booking.SpecificDocumentID != "" {
		t.Errorf("specific_document_id = %q, want empty", booking.SpecificDocumentID)
	}
	if docRepo.inserted != 0 {
		t.Errorf("document inserts = %d, want 0", docRepo.inserted)
	}
	if len(repo.created) != 1 {
		t.Errorf("booking inserts = %d, want 1", len(repo.created))
	}
}

func TestSubmitPrefillsContactFromProfile(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	profiles := &mockProfiles{profile: &model.UserProfile{ID: "user-1", Mobile: "09998887766"}}
	svc := newTestService(repo, docRepo, profiles, nil, nil, now)

	req := weddingRequest(now)
	req.Booking.ContactNumber = ""
	req.Wedding.ContactNumber = ""

	booking, _, err := svc.Submit(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if booking.ContactNumber != "09998887766" {
		t.Errorf("booking contact = %q, want profile mobile", booking.ContactNumber)
	}
	if req.Wedding.ContactNumber != "09998887766" {
		t.Errorf("document contact = %q, want profile mobile", req.Wedding.ContactNumber)
	}
}

func TestSubmitFiltersSparseGodparents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	svc := newTestService(repo, docRepo, nil, nil, nil, now)

	bday := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := &model.BookingRequest{
		Booking: model.Booking{
			Sacrament:      model.SacramentBaptism,
			Date:           now.Add(60 * 24 * time.Hour),
			Time:           "09:00",
			Pax:            20,
			ContactNumber:  "09171234567",
			CurrentAddress: "123 Rizal St, Manila",
		},
		Baptism: &model.BaptismDocument{
			BabyName:         "Maria Santos",
			BabyBirthDate:    &bday,
			BabyBirthplace:   "Manila",
			MotherName:       "Ana Santos",
			MotherBirthplace: "Manila",
			FatherName:       "Jose Santos",
			FatherBirthplace: "Cebu",
			MarriageType:     model.MarriageCatholic,
			ContactNumber:    "09171234567",
			CurrentAddress:   "123 Rizal St, Manila",
			MainGodfather:    model.Godparent{Name: "Pedro Cruz", Age: "45", Address: "Quezon City"},
			MainGodmother:    model.Godparent{Name: "Luisa Cruz", Age: "42", Address: "Quezon City"},
			AdditionalGodparents: []model.AdditionalGodparent{
				{GodfatherName: "", GodmotherName: ""},
				{GodfatherName: "Juan", GodmotherName: ""},
			},
		},
	}

	_, _, err := svc.Submit(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(req.Baptism.AdditionalGodparents) != 1 {
		t.Fatalf("additional godparents = %d, want 1", len(req.Baptism.AdditionalGodparents))
	}
	if req.Baptism.AdditionalGodparents[0].GodfatherName != "Juan" {
		t.Errorf("kept row godfather = %q, want Juan", req.Baptism.AdditionalGodparents[0].GodfatherName)
	}
}

func TestSubmitSucceedsWhenPublishFails(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	docRepo := &mockDocRepo{}
	publisher := &mockPublisher{err: errors.New("broker unreachable")}
	svc := newTestService(repo, docRepo, nil, publisher, nil, now)

	_, _, err := svc.Submit(context.Background(), "user-1", weddingRequest(now))
	if err != nil {
		t.Fatalf("Submit() error = %v, want success despite publish failure", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("booking inserts = %d, want 1", len(repo.created))
	}
}

func TestGetByID(t *testing.T) {
	repo := &mockBookingRepo{found: &model.Booking{ID: "665f1c0a2f8b9a0012345678", Sacrament: model.SacramentBurial}}
	svc := newTestService(repo, &mockDocRepo{}, nil, nil, nil, time.Now())

	booking, err := svc.GetByID(context.Background(), "665f1c0a2f8b9a0012345678")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if booking.Sacrament != model.SacramentBurial {
		t.Errorf("sacrament = %q, want Burial", booking.Sacrament)
	}

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Error("GetByID(\"\") did not fail")
	}

	repo.findErr = bookingserrors.ErrNotFound
	_, err = svc.GetByID(context.Background(), "665f1c0a2f8b9a0012345678")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestFilterSparseGodparents(t *testing.T) {
	rows := []model.AdditionalGodparent{
		{GodfatherName: "", GodmotherName: ""},
		{GodfatherName: "Juan", GodmotherName: ""},
		{GodfatherName: "", GodmotherName: "Rosa"},
		{GodfatherName: "", GodmotherName: "", GodfatherAge: "50"},
	}

	kept := FilterSparseGodparents(rows)
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(kept))
	}
	if kept[0].GodfatherName != "Juan" || kept[1].GodmotherName != "Rosa" {
		t.Errorf("unexpected rows kept: %+v", kept)
	}
}
