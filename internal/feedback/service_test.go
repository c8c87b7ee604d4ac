package feedback_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/feedback"
)

func TestService_Submit(t *testing.T) {
	repo := feedback.NewInMemoryRepository()
	svc := feedback.NewService(repo)

	fb, err := svc.Submit(context.Background(), "user123", "frm_1", feedback.SubmitInput{
		ActualYield: 19.4,
		Issues:      []string{"pest_damage", "late_rains"},
		Rating:      4,
		Comments:    "Better than last year despite the aphids.",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fb.ID, "fbk_"))
	assert.Equal(t, "frm_1", fb.FarmID)
	assert.False(t, fb.CreatedAt.IsZero())

	records, err := svc.ListByFarm(context.Background(), "frm_1")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestService_Submit_NoActiveUser(t *testing.T) {
	svc := feedback.NewService(feedback.NewInMemoryRepository())

	_, err := svc.Submit(context.Background(), "", "frm_1", feedback.SubmitInput{Rating: 4})
	assert.ErrorIs(t, err, feedback.ErrNoActiveUser)
}

func TestService_Submit_Validation(t *testing.T) {
	svc := feedback.NewService(feedback.NewInMemoryRepository())

	tests := []struct {
		name      string
		input     feedback.SubmitInput
		wantField string
	}{
		{name: "rating too low", input: feedback.SubmitInput{Rating: 0}, wantField: "rating"},
		{name: "rating too high", input: feedback.SubmitInput{Rating: 6}, wantField: "rating"},
		{name: "negative yield", input: feedback.SubmitInput{Rating: 3, ActualYield: -1}, wantField: "actualYield"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), "user123", "frm_1", tt.input)

			var validationErr *feedback.ValidationError
			require.ErrorAs(t, err, &validationErr)

			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected field error for %q", tt.wantField)
		})
	}
}

func TestService_LastSeasonYield(t *testing.T) {
	repo := feedback.NewInMemoryRepository()
	svc := feedback.NewService(repo)

	// No feedback yet: zero baseline, no error
	yield, err := svc.LastSeasonYield(context.Background(), "frm_1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, yield)

	_, err = svc.Submit(context.Background(), "user123", "frm_1", feedback.SubmitInput{ActualYield: 18.2, Rating: 3})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "user123", "frm_1", feedback.SubmitInput{ActualYield: 21.0, Rating: 5})
	require.NoError(t, err)

	yield, err = svc.LastSeasonYield(context.Background(), "frm_1")
	require.NoError(t, err)
	assert.Equal(t, 21.0, yield)
}

func TestRepository_LatestByFarm_NotFound(t *testing.T) {
	repo := feedback.NewInMemoryRepository()

	_, err := repo.LatestByFarm(context.Background(), "frm_missing")
	assert.True(t, errors.Is(err, feedback.ErrFeedbackNotFound))
}
