package service

import (
	"strings"

	apperrors "fittrack/backend/pkg/errors"
)

const (
	lbsPerKg    = 2.20462
	cmPerInch   = 2.54
	sedentaryAF = 1.2
	lightAF     = 1.375
	moderateAF  = 1.55
	activeAF    = 1.725
)

// EnergyEstimate is the derived basal and total daily energy expenditure
// for a user's profile stats. It is stateless: nothing here is stored.
type EnergyEstimate struct {
	BMR  float64 `json:"bmr"`
	TDEE struct {
		Sedentary float64 `json:"sedentary"`
		Light     float64 `json:"light"`
		Moderate  float64 `json:"moderate"`
		Active    float64 `json:"active"`
	} `json:"tdee"`
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Height is in inches and weight in pounds, matching the profile fields.
func BMR(sex string, age int, heightInches, weightLbs float64) (float64, error) {
	if age <= 0 || heightInches <= 0 || weightLbs <= 0 {
		return 0, apperrors.New(apperrors.ErrCodeValidation, "age, height and weight must be positive")
	}

	kg := weightLbs / lbsPerKg
	cm := heightInches * cmPerInch
	base := 10*kg + 6.25*cm - 5*float64(age)

	switch strings.ToLower(sex) {
	case "male", "m":
		return base + 5, nil
	case "female", "f":
		return base - 161, nil
	default:
		return 0, apperrors.New(apperrors.ErrCodeValidation, "sex must be male or female")
	}
}

// Energy computes the full estimate across standard activity multipliers.
func Energy(sex string, age int, heightInches, weightLbs float64) (*EnergyEstimate, error) {
	bmr, err := BMR(sex, age, heightInches, weightLbs)
	if err != nil {
		return nil, err
	}

	est := &EnergyEstimate{BMR: bmr}
	est.TDEE.Sedentary = bmr * sedentaryAF
	est.TDEE.Light = bmr * lightAF
	est.TDEE.Moderate = bmr * moderateAF
	est.TDEE.Active = bmr * activeAF
	return est, nil
}
