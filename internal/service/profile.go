package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/internal/models"
	"github.com/pageza/healthara/backend/internal/storage"
	"github.com/pageza/healthara/backend/internal/types"
)

// CorruptProfileError carries a stored document that could not be decoded
type CorruptProfileError struct {
	Data []byte
	Err  error
}

func (e *CorruptProfileError) Error() string {
	return "failed to parse stored profile: " + e.Err.Error()
}

func (e *CorruptProfileError) Unwrap() error { return e.Err }

// ErrPersistFailed marks an update that was applied in memory but not saved
var ErrPersistFailed = errors.New("profile could not be persisted")

// ProfileStore owns one in-memory health profile and the record it is saved to.
// It is not safe for concurrent use; the owning session serializes access.
type ProfileStore struct {
	records storage.RecordStore
	profile *models.HealthProfile
	now     func() time.Time
}

// NewProfileStore loads the stored profile, falling back to defaults when it is missing or unreadable
func NewProfileStore(ctx context.Context, records storage.RecordStore) *ProfileStore {
	profile, err := LoadProfile(ctx, records)
	var corrupt *CorruptProfileError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Debug().Msg("No stored health profile, starting from defaults")
	case errors.As(err, &corrupt):
		// The next persist overwrites the record, so the raw document is only kept here
		log.Error().Err(corrupt.Err).Str("record", string(corrupt.Data)).
			Msg("Stored health profile is unreadable, using defaults")
	case err != nil:
		log.Error().Err(err).Msg("Failed to load health profile, using defaults")
	}

	return &ProfileStore{
		records: records,
		profile: profile,
		now:     time.Now,
	}
}

// LoadProfile always returns a usable profile. A non-nil error means the defaults were used.
func LoadProfile(ctx context.Context, records storage.RecordStore) (*models.HealthProfile, error) {
	data, err := records.Read(ctx)
	if err != nil {
		return models.DefaultHealthProfile(), err
	}

	profile, err := MergeOntoDefaults(data)
	if err != nil {
		return models.DefaultHealthProfile(), &CorruptProfileError{Data: data, Err: err}
	}
	return profile, nil
}

// Profile returns a copy of the current profile
func (s *ProfileStore) Profile() *models.HealthProfile {
	return s.profile.Clone()
}

// Summary renders the current profile as text
func (s *ProfileStore) Summary() string {
	return s.profile.Summary()
}

// UpdatePersonalInfo applies the provided fields, recomputes BMI and persists
func (s *ProfileStore) UpdatePersonalInfo(ctx context.Context, u types.PersonalInfoUpdate) error {
	if u.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*u.Gender))
		u.Gender = &gender
	}
	if err := validateUpdate(u); err != nil {
		return err
	}

	info := &s.profile.PersonalInfo
	setIfPresent(&info.Age, u.Age)
	setIfPresent(&info.Gender, u.Gender)
	setIfPresent(&info.HeightCm, u.HeightCm)
	setIfPresent(&info.WeightKg, u.WeightKg)
	RecomputeBMI(s.profile)

	return s.persistUpdate(ctx, "personal_info")
}

// UpdateMedicalHistory replaces each provided list and persists
func (s *ProfileStore) UpdateMedicalHistory(ctx context.Context, u types.MedicalHistoryUpdate) error {
	if err := validateUpdate(u); err != nil {
		return err
	}

	history := &s.profile.MedicalHistory
	if u.Allergies != nil {
		history.Allergies = normalizeSet(u.Allergies)
	}
	if u.ChronicConditions != nil {
		history.ChronicConditions = normalizeList(u.ChronicConditions)
	}
	if u.Medications != nil {
		history.Medications = normalizeList(u.Medications)
	}
	if u.DietaryRestrictions != nil {
		history.DietaryRestrictions = normalizeSet(u.DietaryRestrictions)
	}

	return s.persistUpdate(ctx, "medical_history")
}

// UpdateHealthGoals applies the provided goals and persists
func (s *ProfileStore) UpdateHealthGoals(ctx context.Context, u types.HealthGoalsUpdate) error {
	if err := validateUpdate(u); err != nil {
		return err
	}

	goals := &s.profile.HealthGoals
	setIfPresent(&goals.WeightGoal, u.WeightGoal)
	if u.ActivityLevel != nil {
		goals.ActivityLevel = *u.ActivityLevel
	}
	if u.PrimaryGoal != nil {
		goals.PrimaryGoal = *u.PrimaryGoal
	}

	return s.persistUpdate(ctx, "health_goals")
}

// UpdateDietPreferences applies the provided preferences and persists
func (s *ProfileStore) UpdateDietPreferences(ctx context.Context, u types.DietPreferencesUpdate) error {
	if err := validateUpdate(u); err != nil {
		return err
	}

	prefs := &s.profile.DietPreferences
	if u.PreferredCuisines != nil {
		prefs.PreferredCuisines = normalizeSet(u.PreferredCuisines)
	}
	if u.MealFrequency != nil {
		prefs.MealFrequency = *u.MealFrequency
	}
	if u.WaterIntakeGoalLiters != nil {
		prefs.WaterIntakeGoalLiters = *u.WaterIntakeGoalLiters
	}

	return s.persistUpdate(ctx, "diet_preferences")
}

// Persist stamps last_updated and writes the whole record.
// On failure the previous last_updated is restored.
func (s *ProfileStore) Persist(ctx context.Context) error {
	previous := s.profile.HealthMetrics.LastUpdated
	s.profile.HealthMetrics.LastUpdated = models.NewTimestamp(s.now().UTC())

	data, err := json.MarshalIndent(s.profile, "", "  ")
	if err == nil {
		err = s.records.Write(ctx, data)
	}
	if err != nil {
		s.profile.HealthMetrics.LastUpdated = previous
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) persistUpdate(ctx context.Context, section string) error {
	if err := s.Persist(ctx); err != nil {
		log.Error().Err(err).Str("section", section).Msg("Profile updated in memory but not saved")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	log.Debug().Str("section", section).Msg("Profile updated")
	return nil
}

// CalculateBMI returns weight / height(m)^2 rounded to two decimals
func CalculateBMI(heightCm, weightKg float64) float64 {
	meters := heightCm / 100
	return math.Round(weightKg/(meters*meters)*100) / 100
}

// RecomputeBMI sets the derived BMI, or clears it when height or weight is unknown
func RecomputeBMI(p *models.HealthProfile) {
	info := p.PersonalInfo
	if info.HeightCm == nil || info.WeightKg == nil || *info.HeightCm <= 0 || *info.WeightKg <= 0 {
		p.HealthMetrics.BMI = nil
		return
	}
	bmi := CalculateBMI(*info.HeightCm, *info.WeightKg)
	p.HealthMetrics.BMI = &bmi
}

func setIfPresent[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// normalizeList trims entries and drops blanks, keeping order and duplicates
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normalizeSet is normalizeList plus case-insensitive de-duplication, first spelling wins
func normalizeSet(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, item := range normalizeList(in) {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
