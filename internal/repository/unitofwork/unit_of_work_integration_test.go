package unitofwork

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/model"
	"greenwatch-be/internal/repository/specification"
	"greenwatch-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeRepositories(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.IntakeSession{}, &model.IntakeMessage{}, &model.IntakeLog{}))

	ctx := context.Background()
	factory := NewRepositoryFactory(db)
	uow := factory.NewUnitOfWork(ctx)

	sessionID := uuid.New()
	t.Cleanup(func() {
		db.Unscoped().Where("intake_session_id = ?", sessionID).Delete(&model.IntakeMessage{})
		db.Unscoped().Where("intake_session_id = ?", sessionID).Delete(&model.IntakeLog{})
		db.Unscoped().Delete(&model.IntakeSession{}, sessionID)
	})

	t.Run("session and messages in one transaction", func(t *testing.T) {
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		err := uow.IntakeSessionRepository().Create(ctx, &entity.IntakeSession{
			Id:      sessionID,
			OwnerId: "integration",
			Mode:    "logging",
			Phase:   "questions",
		})
		require.NoError(t, err)

		now := time.Now().UTC()
		err = uow.IntakeMessageRepository().CreateBatch(ctx, []*entity.IntakeMessage{
			{Id: uuid.New(), IntakeSessionId: sessionID, Role: "assistant", Text: "What is the vessel name?", CreatedAt: now},
			{Id: uuid.New(), IntakeSessionId: sessionID, Role: "user", Text: "MV Aurora", CreatedAt: now.Add(time.Millisecond)},
		})
		require.NoError(t, err)
		require.NoError(t, uow.Commit())
	})

	t.Run("read back", func(t *testing.T) {
		s, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "questions", s.Phase)

		msgs, err := uow.IntakeMessageRepository().FindAll(ctx,
			specification.ByIntakeSessionID{IntakeSessionID: sessionID},
			specification.OrderBy{Field: "created_at"},
		)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "MV Aurora", msgs[1].Text)
	})

	t.Run("log upsert replaces", func(t *testing.T) {
		repo := uow.IntakeLogRepository()
		for _, summary := range []string{"first", "second"} {
			require.NoError(t, repo.Upsert(ctx, &entity.IntakeLog{
				IntakeSessionId: sessionID,
				Answers:         map[string]string{"vessel_name": "MV Aurora"},
				Summary:         summary,
				CompletedAt:     time.Now().UTC(),
			}))
		}
		logs, err := repo.FindAll(ctx, specification.ByIntakeSessionID{IntakeSessionID: sessionID})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "second", logs[0].Summary)
	})

	t.Run("missing session", func(t *testing.T) {
		s, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: uuid.New()})
		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		otherID := uuid.New()
		err := factory.WithinTransaction(ctx, func(tx UnitOfWork) error {
			if err := tx.IntakeSessionRepository().Create(ctx, &entity.IntakeSession{Id: otherID, OwnerId: "integration"}); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.EqualError(t, err, "abort")

		s, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: otherID})
		assert.NoError(t, err)
		assert.Nil(t, s)
	})
}
