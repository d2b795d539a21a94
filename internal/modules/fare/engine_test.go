package fare

import (
	"reflect"
	"testing"
	"time"
)

func TestIsSurgeHour_Boundaries(t *testing.T) {
	cases := []struct {
		hour int
		want bool
	}{
		{21, false},
		{22, true},
		{23, true},
		{0, true},
		{6, true},
		{7, false},
		{12, false},
	}
	for _, c := range cases {
		if got := IsSurgeHour(c.hour); got != c.want {
			t.Errorf("IsSurgeHour(%d) = %v, want %v", c.hour, got, c.want)
		}
	}
}

// The surge tier must stay exactly normal × 1.5; this pins the current
// numeric relationship so neither side can be edited alone.
func TestSurgeTierDerivation(t *testing.T) {
	e := DefaultEngine()
	want := Config{BaseFare: 75, PerKmRate: 33.75, MinimumFare: 75}
	if e.surge != want {
		t.Fatalf("surge tier = %+v, want %+v", e.surge, want)
	}
	if e.surge != Normal.Scale(SurgeMultiplier) {
		t.Fatal("surge tier is not derived from the normal tier")
	}
}

func TestPerRide(t *testing.T) {
	e := DefaultEngine()
	cases := []struct {
		name      string
		km        float64
		pickup    TimeOfDay
		wantFare  int64
		wantSurge bool
	}{
		{"daytime per-km", 10, TimeOfDay{Hour: 14, Minute: 30}, 225, false},
		{"daytime minimum floor", 0.5, TimeOfDay{Hour: 8}, 50, false},
		{"daytime zero distance", 0, TimeOfDay{Hour: 12}, 50, false},
		{"surge minimum floor", 2, TimeOfDay{Hour: 23}, 75, true},
		{"surge per-km", 10, TimeOfDay{Hour: 23}, 338, true}, // 337.5 rounds half away from zero
		{"early morning surge", 3, TimeOfDay{Hour: 6, Minute: 59}, 101, true},
		{"boundary 07:00 not surge", 3, TimeOfDay{Hour: 7}, 68, false},
		{"boundary 22:00 surge", 3, TimeOfDay{Hour: 22}, 101, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fare, surge, _ := e.PerRide(c.km, c.pickup)
			if fare != c.wantFare || surge != c.wantSurge {
				t.Errorf("PerRide(%v, %v) = (%d, %v), want (%d, %v)",
					c.km, c.pickup, fare, surge, c.wantFare, c.wantSurge)
			}
		})
	}
}

func TestCalculate_Scenarios(t *testing.T) {
	e := DefaultEngine()

	t.Run("three weekday commute", func(t *testing.T) {
		got := e.Calculate(10, TimeOfDay{Hour: 14, Minute: 30},
			[]time.Weekday{time.Monday, time.Wednesday, time.Friday})
		if got.IsSurgePricing {
			t.Error("14:30 must not be surge")
		}
		if got.PerRideFare != 225 || got.NumberOfDays != 3 || got.TotalWeeklyFare != 675 {
			t.Errorf("got %+v, want per-ride 225 × 3 days = 675", got)
		}
		if got.DistanceFare != 225 || got.SurgeMultiplier != 1 {
			t.Errorf("breakdown fields wrong: %+v", got)
		}
	})

	t.Run("short night trip hits minimum", func(t *testing.T) {
		got := e.Calculate(2, TimeOfDay{Hour: 23},
			[]time.Weekday{time.Monday, time.Tuesday})
		if !got.IsSurgePricing || got.PerRideFare != 75 || got.TotalWeeklyFare != 150 {
			t.Errorf("got %+v, want surge minimum 75 × 2 = 150", got)
		}
		// The unrounded distance fare stays below the floor for transparency.
		if got.DistanceFare != 67.5 {
			t.Errorf("DistanceFare = %v, want 67.5", got.DistanceFare)
		}
		if got.SurgeMultiplier != 1.5 {
			t.Errorf("SurgeMultiplier = %v, want 1.5", got.SurgeMultiplier)
		}
	})

	t.Run("single short day", func(t *testing.T) {
		got := e.Calculate(0.5, TimeOfDay{Hour: 8}, []time.Weekday{time.Monday})
		if got.PerRideFare != 50 || got.TotalWeeklyFare != 50 {
			t.Errorf("got %+v, want 50 × 1 = 50", got)
		}
	})
}

func TestCalculate_TotalInvariant(t *testing.T) {
	e := DefaultEngine()
	all := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for n := 1; n <= 7; n++ {
		got := e.Calculate(7.3, TimeOfDay{Hour: 9, Minute: 15}, all[:n])
		if got.NumberOfDays != n {
			t.Fatalf("NumberOfDays = %d, want %d", got.NumberOfDays, n)
		}
		if got.TotalWeeklyFare != got.PerRideFare*int64(n) {
			t.Errorf("n=%d: total %d != per-ride %d × %d", n, got.TotalWeeklyFare, got.PerRideFare, n)
		}
	}
}

func TestCalculate_DedupesDays(t *testing.T) {
	e := DefaultEngine()
	got := e.Calculate(5, TimeOfDay{Hour: 9},
		[]time.Weekday{time.Monday, time.Monday, time.Friday, time.Monday})
	if got.NumberOfDays != 2 {
		t.Errorf("NumberOfDays = %d, want 2 after dedup", got.NumberOfDays)
	}
}

func TestCalculate_EmptyDays(t *testing.T) {
	got := DefaultEngine().Calculate(5, TimeOfDay{Hour: 9}, nil)
	if got.NumberOfDays != 0 || got.TotalWeeklyFare != 0 {
		t.Errorf("empty day set should price to zero, got %+v", got)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	e := DefaultEngine()
	days := []time.Weekday{time.Tuesday, time.Thursday}
	a := e.Calculate(12.75, TimeOfDay{Hour: 22, Minute: 5}, days)
	b := e.Calculate(12.75, TimeOfDay{Hour: 22, Minute: 5}, days)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different breakdowns:\n%+v\n%+v", a, b)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"14:30", TimeOfDay{Hour: 14, Minute: 30}, false},
		{"00:00", TimeOfDay{}, false},
		{"23:59", TimeOfDay{Hour: 23, Minute: 59}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"-1:00", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = (%v, %v), want %v", c.in, got, err, c.want)
		}
	}
}

func TestValidateDistance(t *testing.T) {
	if err := ValidateDistance(0); err != nil {
		t.Errorf("zero distance should be valid: %v", err)
	}
	if err := ValidateDistance(12.5); err != nil {
		t.Errorf("positive distance should be valid: %v", err)
	}
	for _, bad := range []float64{-1, -0.001} {
		if err := ValidateDistance(bad); err == nil {
			t.Errorf("ValidateDistance(%v): expected error", bad)
		}
	}
}
