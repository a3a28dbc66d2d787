package models

import (
	"errors"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestTurnRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     TurnRequest
		wantErr error
	}{
		{"valid", TurnRequest{Utterance: "Why does it rain?"}, nil},
		{"empty", TurnRequest{}, ErrEmptyUtterance},
		{"whitespace only", TurnRequest{Utterance: "   "}, ErrEmptyUtterance},
		{"too long", TurnRequest{Utterance: strings.Repeat("a", MaxUtteranceLength+1)}, ErrUtteranceTooLong},
		{"too much history", TurnRequest{
			Utterance: "Why?",
			History:   make([]ConversationMessage, MaxHistoryMessages+1),
		}, ErrTooManyMessages},
		{"history at limit", TurnRequest{
			Utterance: "Why?",
			History:   make([]ConversationMessage, MaxHistoryMessages),
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInterestUpdateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     InterestUpdateRequest
		wantErr error
	}{
		{"valid", InterestUpdateRequest{Interests: []string{"dogs", "space"}}, nil},
		{"empty list", InterestUpdateRequest{}, nil},
		{"blank label", InterestUpdateRequest{Interests: []string{"dogs", "  "}}, ErrEmptyInterest},
		{"label too long", InterestUpdateRequest{Interests: []string{strings.Repeat("x", MaxInterestLabelLength+1)}}, ErrInterestTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPinRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr error
	}{
		{"valid four digits", "4321", nil},
		{"valid long", "123456789012", nil},
		{"too short", "123", ErrInvalidPin},
		{"too long", "1234567890123", ErrInvalidPin},
		{"non-numeric", "12ab", ErrInvalidPin},
		{"empty", "", ErrInvalidPin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PinRequest{Pin: tt.pin}
			if err := req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestProfileUpdateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ProfileUpdateRequest
		wantErr error
	}{
		{"valid", ProfileUpdateRequest{Age: intPtr(9), Gender: "girl"}, nil},
		{"nil age is allowed", ProfileUpdateRequest{}, nil},
		{"age below range", ProfileUpdateRequest{Age: intPtr(1)}, ErrProfileAgeRange},
		{"age above range", ProfileUpdateRequest{Age: intPtr(18)}, ErrProfileAgeRange},
		{"age at lower bound", ProfileUpdateRequest{Age: intPtr(2)}, nil},
		{"age at upper bound", ProfileUpdateRequest{Age: intPtr(17)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIResponseBuilders(t *testing.T) {
	ok := Success(map[string]int{"count": 1})
	if ok.Status != string(APIStatusOK) || ok.Result == nil || ok.Message != "" {
		t.Errorf("Unexpected success response: %+v", ok)
	}

	withMsg := SuccessWithMessage("Profile updated", nil)
	if withMsg.Status != string(APIStatusOK) || withMsg.Message != "Profile updated" {
		t.Errorf("Unexpected success-with-message response: %+v", withMsg)
	}

	fail := Error("bad input")
	if fail.Status != string(APIStatusError) || fail.Message != "bad input" {
		t.Errorf("Unexpected error response: %+v", fail)
	}
}
