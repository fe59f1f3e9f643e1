package recommend

import (
	"testing"
	"time"

	"github.com/question-bank/backend/internal/models"
)

// attemptsOn builds n attempts per listed day, all of the given type.
func attemptsOn(qt models.QuestionType, perDay int, days ...int) []models.Attempt {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var attempts []models.Attempt
	for _, d := range days {
		for i := 0; i < perDay; i++ {
			attempts = append(attempts, models.Attempt{
				QuestionID:   int64(len(attempts) + 1),
				QuestionType: qt,
				CompletedAt:  base.AddDate(0, 0, d).Add(time.Duration(i) * time.Minute),
			})
		}
	}
	return attempts
}

func TestAnalyzePatternNoHistory(t *testing.T) {
	p := AnalyzePattern(nil)
	if p.Type != models.LearnerNew {
		t.Errorf("Type = %s, want %s", p.Type, models.LearnerNew)
	}
	if p.Intensity != models.IntensityMedium {
		t.Errorf("Intensity = %s, want %s", p.Intensity, models.IntensityMedium)
	}
	if p.PreferredType != "" {
		t.Errorf("PreferredType = %q, want empty", p.PreferredType)
	}
}

func TestAnalyzePatternSingleAttempt(t *testing.T) {
	// One attempt: span 1 day, 1/day, consistency 1.0.
	p := AnalyzePattern(attemptsOn(models.TypeTheory, 1, 0))
	if p.Type != models.LearnerCasual {
		t.Errorf("Type = %s, want %s", p.Type, models.LearnerCasual)
	}
	if p.Intensity != models.IntensityLow {
		t.Errorf("Intensity = %s, want %s", p.Intensity, models.IntensityLow)
	}
	if p.Consistency != 1.0 {
		t.Errorf("Consistency = %f, want 1.0", p.Consistency)
	}
}

func TestAnalyzePatternLearnerTypes(t *testing.T) {
	tests := []struct {
		name     string
		attempts []models.Attempt
		want     models.LearnerType
	}{
		// 10 per day across 2 consecutive days: 10/day, consistency 1.0
		{"intensive", attemptsOn(models.TypeCoding, 10, 0, 1), models.LearnerIntensive},
		// 3 per day on 2 of 3 days: 2/day fails intensive, consistency 2/3
		{"regular", attemptsOn(models.TypeCoding, 3, 0, 2), models.LearnerRegular},
		// 1 attempt on 2 of 5 days: 0.4/day, consistency 0.4
		{"casual", attemptsOn(models.TypeCoding, 1, 0, 4), models.LearnerCasual},
		// 1 attempt on 2 of 10 days: consistency 0.2
		{"sporadic", attemptsOn(models.TypeCoding, 1, 0, 9), models.LearnerSporadic},
	}

	for _, tt := range tests {
		got := AnalyzePattern(tt.attempts)
		if got.Type != tt.want {
			t.Errorf("%s: Type = %s, want %s", tt.name, got.Type, tt.want)
		}
	}
}

func TestAnalyzePatternIntensity(t *testing.T) {
	tests := []struct {
		name     string
		attempts []models.Attempt
		want     models.Intensity
	}{
		{"high at 10 per day", attemptsOn(models.TypeTheory, 10, 0), models.IntensityHigh},
		{"medium at 3 per day", attemptsOn(models.TypeTheory, 3, 0), models.IntensityMedium},
		{"low at 2 per day", attemptsOn(models.TypeTheory, 2, 0), models.IntensityLow},
	}

	for _, tt := range tests {
		got := AnalyzePattern(tt.attempts)
		if got.Intensity != tt.want {
			t.Errorf("%s: Intensity = %s, want %s", tt.name, got.Intensity, tt.want)
		}
	}
}

func TestAnalyzePatternPreferredType(t *testing.T) {
	attempts := attemptsOn(models.TypeCoding, 3, 0)
	attempts = append(attempts, attemptsOn(models.TypeTheory, 1, 0)...)

	p := AnalyzePattern(attempts)
	if p.PreferredType != models.TypeCoding {
		t.Errorf("PreferredType = %s, want %s", p.PreferredType, models.TypeCoding)
	}
}

func TestAnalyzePatternSpansDayBoundary(t *testing.T) {
	// Two attempts 90 days apart: consistency 2/91, sporadic.
	p := AnalyzePattern(attemptsOn(models.TypeTheory, 1, 0, 90))
	if p.Type != models.LearnerSporadic {
		t.Errorf("Type = %s, want %s", p.Type, models.LearnerSporadic)
	}
	if p.Intensity != models.IntensityLow {
		t.Errorf("Intensity = %s, want %s", p.Intensity, models.IntensityLow)
	}
}
