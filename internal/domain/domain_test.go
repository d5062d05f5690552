package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

func TestSlotType(t *testing.T) {
	assert.True(t, SlotFuneral.IsValid())
	assert.True(t, SlotWake.IsValid())
	assert.False(t, SlotType("告別式").IsValid())

	assert.Equal(t, SlotWake, SlotFuneral.Opposite())
	assert.Equal(t, SlotFuneral, SlotWake.Opposite())
}

func TestBooking_RequiresFamilyName(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusOccupied}).RequiresFamilyName())
	assert.True(t, (&Booking{Status: StatusAvailable}).RequiresFamilyName())
	assert.False(t, (&Booking{Status: StatusExternal}).RequiresFamilyName())
}

func TestFacilityTurnoverConfig_EffectiveIntervalHours(t *testing.T) {
	assert.Equal(t, DefaultIntervalHours, (&FacilityTurnoverConfig{}).EffectiveIntervalHours())
	assert.Equal(t, 0, (&FacilityTurnoverConfig{IntervalHours: ptr.Ptr(0)}).EffectiveIntervalHours())
}

func TestFacility_BusinessHours(t *testing.T) {
	start, end := (&Facility{StartHour: 8, EndHour: 20}).BusinessHours()
	assert.Equal(t, 8, start)
	assert.Equal(t, 20, end)

	start, end = (&Facility{}).BusinessHours()
	assert.Equal(t, DefaultStartHour, start)
	assert.Equal(t, DefaultEndHour, end)

	start, end = (&Facility{StartHour: 19, EndHour: 9}).BusinessHours()
	assert.Equal(t, DefaultStartHour, start)
	assert.Equal(t, DefaultEndHour, end)
}

func TestDayType_Tomobiki(t *testing.T) {
	var nilDay *DayType
	assert.False(t, nilDay.Tomobiki())
	assert.True(t, (&DayType{IsTomobiki: true}).Tomobiki())
	assert.False(t, (&DayType{Rokuyo: "仏滅"}).Tomobiki())
}

func TestBooking_Validate(t *testing.T) {
	valid := func() *Booking {
		return &Booking{
			HallID:     1,
			Date:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			SlotType:   SlotFuneral,
			Status:     StatusOccupied,
			FamilyName: ptr.Ptr("佐藤"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(b *Booking)
		wantErr bool
	}{
		{name: "valid", mutate: func(b *Booking) {}},
		{name: "external without family name", mutate: func(b *Booking) { b.Status = StatusExternal; b.FamilyName = nil }},
		{name: "missing family name", mutate: func(b *Booking) { b.FamilyName = ptr.Ptr("  ") }, wantErr: true},
		{name: "no hall", mutate: func(b *Booking) { b.HallID = 0 }, wantErr: true},
		{name: "no date", mutate: func(b *Booking) { b.Date = time.Time{} }, wantErr: true},
		{name: "unknown slot", mutate: func(b *Booking) { b.SlotType = "告別式" }, wantErr: true},
		{name: "unknown status", mutate: func(b *Booking) { b.Status = "cancelled" }, wantErr: true},
		{name: "bad ceremony time", mutate: func(b *Booking) { b.CeremonyTime = ptr.Ptr(types.TimeString("26:00")) }, wantErr: true},
		{name: "long notes", mutate: func(b *Booking) { b.Notes = ptr.Ptr(strings.Repeat("あ", MaxNotesLength+1)) }, wantErr: true},
		{name: "notes at limit", mutate: func(b *Booking) { b.Notes = ptr.Ptr(strings.Repeat("あ", MaxNotesLength)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := b.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBooking)
				return
			}
			assert.NoError(t, err)
		})
	}
}
