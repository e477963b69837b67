package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birthdaywisher/wisher-server/internal/errors"
	"github.com/birthdaywisher/wisher-server/internal/validation"
)

func setupContactTest(adminEmail string) (*ContactService, *recordingSender) {
	sender := &recordingSender{}
	svc := NewContactService(sender, validation.New(), slog.New(slog.DiscardHandler), adminEmail)
	return svc, sender
}

func TestContactService_Submit(t *testing.T) {
	svc, sender := setupContactTest("admin@example.com")

	err := svc.Submit(context.Background(), SubmitContactRequest{
		Email:   "visitor@example.com",
		Message: "love the site",
	})
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "admin@example.com", sender.messages[0].To)
	assert.Contains(t, sender.messages[0].Text, "love the site")
}

func TestContactService_Submit_Validation(t *testing.T) {
	svc, sender := setupContactTest("admin@example.com")
	ctx := context.Background()

	tests := []struct {
		name string
		req  SubmitContactRequest
	}{
		{"missing email", SubmitContactRequest{Message: "hi"}},
		{"missing message", SubmitContactRequest{Email: "x@example.com"}},
		{"bad email", SubmitContactRequest{Email: "nope", Message: "hi"}},
		{"whitespace message", SubmitContactRequest{Email: "x@example.com", Message: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
		})
	}

	assert.Empty(t, sender.messages)
}

func TestContactService_Submit_NoAdminConfigured(t *testing.T) {
	svc, sender := setupContactTest("")

	err := svc.Submit(context.Background(), SubmitContactRequest{
		Email:   "visitor@example.com",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Empty(t, sender.messages)
}
