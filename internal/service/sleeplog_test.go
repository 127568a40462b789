package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testUser(timeZone string) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Name:     "tester",
		TimeZone: timeZone,
	}
}

func TestSleepLogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives date from wake time in user timezone", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		// 03:30 UTC is 22:30 the previous evening in New York
		user := testUser("America/New_York")
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		var stored *domain.SleepLog
		mockLogRepo.On("Create", ctx, mock.AnythingOfType("*domain.SleepLog")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.SleepLog)
			}).
			Return(nil)

		input := domain.SleepLogCreate{
			BedTime:  time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 1, 2, 3, 30, 0, 0, time.UTC),
			Mood:     domain.MoodGood,
		}

		created, err := svc.Create(ctx, user.ID, input)
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.Equal(t, domain.NewDate(2024, time.January, 1), stored.Date)
		assert.Equal(t, 7*time.Hour+30*time.Minute, stored.Duration)
		assert.Equal(t, created, stored)
		assert.NotEqual(t, uuid.Nil, stored.ID)

		mockLogRepo.AssertExpectations(t)
	})

	t.Run("UTC wake time lands on its own calendar date", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		user := testUser("UTC")
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		var stored *domain.SleepLog
		mockLogRepo.On("Create", ctx, mock.AnythingOfType("*domain.SleepLog")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.SleepLog)
			}).
			Return(nil)

		_, err := svc.Create(ctx, user.ID, domain.SleepLogCreate{
			BedTime:  time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 1, 2, 7, 30, 0, 0, time.UTC),
			Mood:     domain.MoodGood,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.NewDate(2024, time.January, 2), stored.Date)
	})

	t.Run("rejects wake time not after bed time", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		user := testUser("UTC")
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		bed := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)

		_, err := svc.Create(ctx, user.ID, domain.SleepLogCreate{
			BedTime:  bed,
			WakeTime: bed.Add(-time.Second),
			Mood:     domain.MoodOK,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Create(ctx, user.ID, domain.SleepLogCreate{
			BedTime:  bed,
			WakeTime: bed,
			Mood:     domain.MoodOK,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)

		mockLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown user fails referential integrity", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		userID := uuid.New()
		mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil)

		_, err := svc.Create(ctx, userID, domain.SleepLogCreate{
			BedTime:  time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC),
			Mood:     domain.MoodGood,
		})
		assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
	})

	t.Run("duplicate date passes through unchanged", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		user := testUser("UTC")
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		dup := fmt.Errorf("%w: sleep_logs_user_id_date_key", domain.ErrDuplicateKey)
		mockLogRepo.On("Create", ctx, mock.AnythingOfType("*domain.SleepLog")).Return(dup)

		_, err := svc.Create(ctx, user.ID, domain.SleepLogCreate{
			BedTime:  time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC),
			Mood:     domain.MoodBad,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})
}

func TestSleepLogService_UpdateByID(t *testing.T) {
	ctx := context.Background()

	t.Run("re-derives date and keeps id", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		user := testUser("UTC")
		logID := uuid.New()
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		var submitted *domain.SleepLog
		mockLogRepo.On("Update", ctx, mock.AnythingOfType("*domain.SleepLog")).
			Run(func(args mock.Arguments) {
				submitted = args.Get(1).(*domain.SleepLog)
			}).
			Return(&domain.SleepLog{ID: logID}, nil)

		_, err := svc.UpdateByID(ctx, user.ID, logID, domain.SleepLogCreate{
			BedTime:  time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 3, 5, 6, 45, 0, 0, time.UTC),
			Mood:     domain.MoodOK,
		})
		require.NoError(t, err)
		assert.Equal(t, logID, submitted.ID)
		assert.Equal(t, domain.NewDate(2024, time.March, 5), submitted.Date)
	})

	t.Run("absent row is not an error", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewSleepLogService(mockLogRepo, mockUserRepo, nil)

		user := testUser("UTC")
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		mockLogRepo.On("Update", ctx, mock.AnythingOfType("*domain.SleepLog")).Return(nil, nil)

		updated, err := svc.UpdateByID(ctx, user.ID, uuid.New(), domain.SleepLogCreate{
			BedTime:  time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC),
			WakeTime: time.Date(2024, 3, 5, 6, 45, 0, 0, time.UTC),
			Mood:     domain.MoodOK,
		})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestSleepLogService_DeleteByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	logID := uuid.New()

	t.Run("returns the deleted record", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		svc := NewSleepLogService(mockLogRepo, new(MockUserRepository), nil)

		deleted := &domain.SleepLog{ID: logID, UserID: userID}
		mockLogRepo.On("Delete", ctx, userID, logID).Return(deleted, nil)

		got, err := svc.DeleteByID(ctx, userID, logID)
		assert.NoError(t, err)
		assert.Equal(t, deleted, got)
	})

	t.Run("absent row is not an error", func(t *testing.T) {
		mockLogRepo := new(MockSleepLogRepository)
		svc := NewSleepLogService(mockLogRepo, new(MockUserRepository), nil)

		mockLogRepo.On("Delete", ctx, userID, logID).Return(nil, nil)

		got, err := svc.DeleteByID(ctx, userID, logID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
