package utils

import "testing"

func TestCalculateBMR(t *testing.T) {
	tests := []struct {
		name string
		in   TargetInput
		want int
	}{
		{"no weight falls back", TargetInput{}, 1500},
		// 150 lb = 68.0388 kg, 5'6" = 167.64 cm: 10*68.0388 + 6.25*167.64 - 5*30 - 161 = 1417
		{"female defaults", TargetInput{CurrentWeight: 150}, 1417},
		// same profile male: +5 instead of -161 = 1583
		{"male", TargetInput{CurrentWeight: 150, Gender: "male"}, 1583},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateBMR(tc.in); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCalculateTDEE(t *testing.T) {
	if got := CalculateTDEE(1500, "moderate"); got != 2325 {
		t.Fatalf("expected 2325, got %d", got)
	}
	if got := CalculateTDEE(1500, "unknown"); got != 1800 {
		t.Fatalf("unknown level must fall back to sedentary, got %d", got)
	}
}

func TestCalculateDailyTarget(t *testing.T) {
	t.Run("maintenance without goal", func(t *testing.T) {
		in := TargetInput{CurrentWeight: 150}
		if got, tdee := CalculateDailyTarget(in), CalculateTDEE(CalculateBMR(in), ""); got != tdee {
			t.Fatalf("expected maintenance %d, got %d", tdee, got)
		}
	})

	t.Run("deficit stays above floor", func(t *testing.T) {
		// An aggressive one-month goal would dip far below safe intake.
		in := TargetInput{CurrentWeight: 150, GoalWeight: 110, Timeline: 1}
		got := CalculateDailyTarget(in)
		bmr := float64(CalculateBMR(in))
		floor := 1200.0
		if bmr*0.8 > floor {
			floor = bmr * 0.8
		}
		if float64(got) < floor {
			t.Fatalf("target %d below safety floor %.0f", got, floor)
		}
	})

	t.Run("surplus capped", func(t *testing.T) {
		in := TargetInput{CurrentWeight: 150, GoalWeight: 250, Timeline: 1}
		got := CalculateDailyTarget(in)
		ceiling := float64(CalculateTDEE(CalculateBMR(in), "")) * 1.2
		if float64(got) > ceiling {
			t.Fatalf("target %d above cap %.0f", got, ceiling)
		}
	})
}

func TestGetCalorieProgress(t *testing.T) {
	tests := []struct {
		name       string
		consumed   int
		target     int
		wantStatus string
	}{
		{"well under", 1000, 2000, "under"},
		{"just under band", 1799, 2000, "under"},
		{"at target low edge", 1800, 2000, "at"},
		{"at target high edge", 2200, 2000, "at"},
		{"over", 2201, 2000, "over"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := GetCalorieProgress(tc.consumed, tc.target)
			if p.Status != tc.wantStatus {
				t.Fatalf("expected %q, got %q", tc.wantStatus, p.Status)
			}
			if p.Remaining != tc.target-tc.consumed {
				t.Fatalf("remaining mismatch: %d", p.Remaining)
			}
		})
	}

	p := GetCalorieProgress(500, 2000)
	if p.PercentComplete != 25 {
		t.Fatalf("expected 25%%, got %d", p.PercentComplete)
	}
	if p.StatusText != "1500 calories remaining" {
		t.Fatalf("unexpected status text %q", p.StatusText)
	}
}
