package sealer

import (
	"encoding/base64"
	"testing"
)

func testKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestSealAndParseRoundtrip(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	token, err := s.SealBookingToken("665f1c0a2f8b9a0012345678", "TRX-1700000000000-abcd1234")
	if err != nil {
		t.Fatalf("SealBookingToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("token is empty")
	}

	bookingID, transactionID, err := s.ParseBookingToken(token)
	if err != nil {
		t.Fatalf("ParseBookingToken returned error: %v", err)
	}
	if bookingID != "665f1c0a2f8b9a0012345678" {
		t.Errorf("bookingID = %q", bookingID)
	}
	if transactionID != "TRX-1700000000000-abcd1234" {
		t.Errorf("transactionID = %q", transactionID)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	first, _ := s.SealBookingToken("id", "trx")
	second, _ := s.SealBookingToken("id", "trx")
	if first == second {
		t.Error("two seals of the same payload produced the same token")
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.key); err == nil {
				t.Errorf("New(%q) succeeded, want error", tt.key)
			}
		})
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	token, err := s.SealBookingToken("booking", "trx")
	if err != nil {
		t.Fatalf("SealBookingToken returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, _, err := s.ParseBookingToken(tampered); err == nil {
		t.Error("tampered token parsed without error")
	}

	other, err := New(base64.StdEncoding.EncodeToString([]byte("another-32-byte-key-for-testing!")))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, _, err := other.ParseBookingToken(token); err == nil {
		t.Error("token sealed with a different key parsed without error")
	}
}
