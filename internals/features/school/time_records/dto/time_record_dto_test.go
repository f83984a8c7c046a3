package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func f64(v float64) *float64 { return &v }

func TestClockRequest_Validasi(t *testing.T) {
	v := validator.New()
	rotID := uuid.New()
	recID := uuid.New()

	cases := []struct {
		name    string
		req     ClockRequest
		wantErr bool
	}{
		{
			name:    "clock-in valid",
			req:     ClockRequest{Action: ActionClockIn, RotationID: &rotID},
			wantErr: false,
		},
		{
			name:    "clock-in tanpa rotation_id",
			req:     ClockRequest{Action: ActionClockIn},
			wantErr: true,
		},
		{
			name:    "clock-out valid",
			req:     ClockRequest{Action: ActionClockOut, TimeRecordID: &recID},
			wantErr: false,
		},
		{
			name:    "clock-out tanpa time_record_id",
			req:     ClockRequest{Action: ActionClockOut},
			wantErr: true,
		},
		{
			name:    "action di luar enumerasi",
			req:     ClockRequest{Action: "pause", RotationID: &rotID},
			wantErr: true,
		},
		{
			name:    "latitude di luar jangkauan",
			req:     ClockRequest{Action: ActionClockIn, RotationID: &rotID, Latitude: f64(91), Longitude: f64(100)},
			wantErr: true,
		},
		{
			name:    "koordinat valid",
			req:     ClockRequest{Action: ActionClockIn, RotationID: &rotID, Latitude: f64(-6.2), Longitude: f64(106.8)},
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if (err != nil) != tc.wantErr {
				t.Errorf("Struct() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// Snapshot lokasi hanya terbentuk kalau latitude & longitude lengkap.
func TestClockRequest_LocationParsial(t *testing.T) {
	rotID := uuid.New()

	req := ClockRequest{Action: ActionClockIn, RotationID: &rotID, Latitude: f64(-6.2)}
	if req.Location() != nil {
		t.Error("latitude tanpa longitude tidak boleh membentuk snapshot")
	}

	req.Longitude = f64(106.8)
	loc := req.Location()
	if loc == nil {
		t.Fatal("koordinat lengkap harus membentuk snapshot")
	}
	if loc.Latitude != -6.2 || loc.Longitude != 106.8 {
		t.Errorf("snapshot tidak sesuai input: %+v", loc)
	}
}
