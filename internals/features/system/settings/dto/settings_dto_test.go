package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readingroom_backend/internals/features/system/settings/model"
	helper "readingroom_backend/internals/helpers"
)

func ptr(s string) *string { return &s }

func TestUpdateSettingsRequest_ToPatch(t *testing.T) {
	patch, err := UpdateSettingsRequest{Currency: ptr("idr"), ClosingTime: ptr("23:30")}.ToPatch("08:00", "22:00")
	require.NoError(t, err)
	assert.Equal(t, "IDR", patch["currency"])
	assert.Equal(t, "23:30", patch["closing_time"])
	assert.NotContains(t, patch, "opening_time")
}

func TestUpdateSettingsRequest_RejectsClosingBeforeOpening(t *testing.T) {
	_, err := UpdateSettingsRequest{OpeningTime: ptr("23:00")}.ToPatch("08:00", "22:00")
	require.Error(t, err)
	msgs, ok := helper.ValidationMessages(err)
	require.True(t, ok)
	assert.Contains(t, msgs, "closing_time")
}

func TestUpdateSettingsRequest_TagValidation(t *testing.T) {
	err := helper.ValidateStruct(UpdateSettingsRequest{OpeningTime: ptr("8am"), Currency: ptr("RUPIAH")})
	msgs, ok := helper.ValidationMessages(err)
	require.True(t, ok)
	assert.Contains(t, msgs, "opening_time")
	assert.Contains(t, msgs, "currency")
}

func TestNewSettingsResponse(t *testing.T) {
	s := model.Defaults(time.Now())
	at := func(h int) time.Time { return time.Date(2026, 1, 2, h, 0, 0, 0, time.Local) }

	assert.True(t, NewSettingsResponse(s, at(9)).IsOpenNow)
	assert.False(t, NewSettingsResponse(s, at(23)).IsOpenNow)

	s.OpeningTime = "garbage"
	assert.False(t, NewSettingsResponse(s, at(9)).IsOpenNow)
}
