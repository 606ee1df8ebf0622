package connmon

import (
	"context"
	"testing"
	"time"
)

func alwaysUp(ctx context.Context) (bool, error) { return true, nil }

func TestWithInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		wantErr  bool
	}{
		{"positive", 30 * time.Second, false},
		{"sub-second", 50 * time.Millisecond, false},
		{"zero", 0, true},
		{"negative", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(alwaysUp, WithInterval(tt.interval))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New() with interval %v should fail", tt.interval)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if m.Interval() != tt.interval {
				t.Errorf("Interval() = %v, want %v", m.Interval(), tt.interval)
			}
		})
	}
}

func TestWithLogger_Nil(t *testing.T) {
	if _, err := New(alwaysUp, WithLogger(nil)); err == nil {
		t.Fatal("New() with nil logger should fail")
	}
}

func TestWithOnChange_NilIsIgnored(t *testing.T) {
	m, err := New(alwaysUp, WithOnChange(nil))
	if err != nil {
		t.Fatalf("New() with nil callback error = %v", err)
	}
	if got := len(m.notifier.callbacks); got != 0 {
		t.Errorf("callbacks registered = %d, want 0", got)
	}
}

func TestWithOnChange_RegistrationOrder(t *testing.T) {
	var order []int

	m, err := New(alwaysUp,
		WithOnChange(func(bool) { order = append(order, 1) }),
		WithOnChange(func(bool) { order = append(order, 2) }),
		WithOnChange(func(bool) { order = append(order, 3) }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	m.notifier.notify(true)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("callback order = %v, want [1 2 3]", order)
	}
}
