package service

import (
	"testing"

	apperrors "fittrack/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR(t *testing.T) {
	t.Run("male", func(t *testing.T) {
		// 180 lbs, 70 in, 30 years:
		// 10*81.646 + 6.25*177.8 - 5*30 + 5 = 1782.72 (approx)
		bmr, err := BMR("male", 30, 70, 180)
		require.NoError(t, err)
		assert.InDelta(t, 1782.7, bmr, 0.5)
	})

	t.Run("female", func(t *testing.T) {
		// 140 lbs, 65 in, 25 years:
		// 10*63.503 + 6.25*165.1 - 5*25 - 161 = 1380.9 (approx)
		bmr, err := BMR("female", 25, 65, 140)
		require.NoError(t, err)
		assert.InDelta(t, 1380.9, bmr, 0.5)
	})

	t.Run("accepts single-letter sex in any case", func(t *testing.T) {
		long, err := BMR("male", 30, 70, 180)
		require.NoError(t, err)
		short, err := BMR("M", 30, 70, 180)
		require.NoError(t, err)
		assert.Equal(t, long, short)
	})

	t.Run("rejects unknown sex and non-positive stats", func(t *testing.T) {
		_, err := BMR("other", 30, 70, 180)
		assertCode(t, err, apperrors.ErrCodeValidation)

		_, err = BMR("male", 0, 70, 180)
		assertCode(t, err, apperrors.ErrCodeValidation)

		_, err = BMR("male", 30, -1, 180)
		assertCode(t, err, apperrors.ErrCodeValidation)

		_, err = BMR("male", 30, 70, 0)
		assertCode(t, err, apperrors.ErrCodeValidation)
	})
}

func TestEnergy(t *testing.T) {
	est, err := Energy("male", 30, 70, 180)
	require.NoError(t, err)

	assert.InDelta(t, est.BMR*1.2, est.TDEE.Sedentary, 0.001)
	assert.InDelta(t, est.BMR*1.375, est.TDEE.Light, 0.001)
	assert.InDelta(t, est.BMR*1.55, est.TDEE.Moderate, 0.001)
	assert.InDelta(t, est.BMR*1.725, est.TDEE.Active, 0.001)
	assert.Greater(t, est.TDEE.Active, est.TDEE.Sedentary)
}
