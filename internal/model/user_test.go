package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBirthday(t *testing.T) {
	on := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate string
		want      bool
	}{
		{"matching month and day", "1990-06-15", true},
		{"year is ignored", "2001-06-15", true},
		{"different day", "1990-06-14", false},
		{"different month", "1990-07-15", false},
		{"empty", "", false},
		{"malformed", "15/06/1990", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{BirthDate: tt.birthDate}
			assert.Equal(t, tt.want, u.Birthday(on))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleClient}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestValidBookingStatus(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusCompleted,
		BookingStatusNoShow,
	} {
		assert.True(t, ValidBookingStatus(status), string(status))
	}
	assert.False(t, ValidBookingStatus("pending"))
	assert.False(t, ValidBookingStatus(""))
}
