package domain

import (
	"errors"
	"testing"
)

func TestParseLineStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"reserved", LineReserved, false},
		{"returned", LineReturned, false},
		{"damaged", LineDamaged, false},
		{" Returned ", LineReturned, false},
		{"broken", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLineStatus(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseLineStatus(%q): expected ErrInvalidStatus, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLineStatus(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLineStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanTransitionLine(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{LineReserved, LineReturned, true},
		{LineReserved, LineDamaged, true},
		{LineReturned, LineReserved, false},
		{LineReturned, LineDamaged, false},
		{LineDamaged, LineReserved, false},
		{LineDamaged, LineReturned, false},
	}

	for _, tt := range tests {
		if got := CanTransitionLine(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionLine(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOutstanding(t *testing.T) {
	line := ReservationMaterial{Quantity: 5, ReturnedQuantity: 2}
	if got := line.Outstanding(); got != 3 {
		t.Errorf("Outstanding() = %d, want 3", got)
	}

	line.ReturnedQuantity = 5
	if got := line.Outstanding(); got != 0 {
		t.Errorf("fully returned line: Outstanding() = %d, want 0", got)
	}
}

func TestReleaseOnDelete(t *testing.T) {
	tests := []struct {
		name string
		line ReservationMaterial
		want int
	}{
		{"reserved line releases outstanding", ReservationMaterial{Quantity: 4, Status: LineReserved}, 4},
		{"partially returned reserved line", ReservationMaterial{Quantity: 4, ReturnedQuantity: 1, Status: LineReserved}, 3},
		{"returned line releases remainder", ReservationMaterial{Quantity: 4, ReturnedQuantity: 3, Status: LineReturned}, 1},
		{"damaged line releases nothing", ReservationMaterial{Quantity: 4, ReturnedQuantity: 1, Status: LineDamaged}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.ReleaseOnDelete(); got != tt.want {
				t.Errorf("ReleaseOnDelete() = %d, want %d", got, tt.want)
			}
		})
	}
}
