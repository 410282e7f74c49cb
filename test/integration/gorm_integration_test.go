package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.PeriodRepository())
	assert.NotNil(t, uow.AnswerRepository())
	assert.NotNil(t, uow.RankingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Transactional Answer Upsert", func(t *testing.T) {
		ctx := context.Background()

		// The upsert key is (respondent, period, question), so seed one
		// of each first.
		respondentId := uuid.New()
		user := &entity.User{
			Id:       respondentId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test Student",
			Role:     entity.UserRoleStudent,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		periodId := uuid.New()
		period := &entity.Period{
			Id:     periodId,
			Name:   "Integration Period " + uuid.New().String(),
			Status: entity.PeriodStatusOpen,
		}
		err = uow.PeriodRepository().Create(ctx, period)
		assert.NoError(t, err)

		questionId := uuid.New()
		question := &entity.Question{
			Id:       questionId,
			PeriodId: periodId,
			Text:     "How much prior project experience do you have?",
			Kind:     entity.QuestionKindScale,
			ScaleMin: 1,
			ScaleMax: 5,
			Position: 1,
		}
		err = uow.QuestionRepository().Create(ctx, question)
		assert.NoError(t, err)

		// Transaction Test: two upserts on the same key must collapse
		// into one row holding the later value, because that is what the
		// commit consumer relies on when a message is redelivered.
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		first := 3.0
		err = uow.AnswerRepository().Upsert(ctx, &entity.Answer{
			Id:           uuid.New(),
			RespondentId: respondentId,
			PeriodId:     periodId,
			QuestionId:   questionId,
			Kind:         entity.QuestionKindScale,
			NumberValue:  &first,
		})
		assert.NoError(t, err)

		second := 5.0
		err = uow.AnswerRepository().Upsert(ctx, &entity.Answer{
			Id:           uuid.New(),
			RespondentId: respondentId,
			PeriodId:     periodId,
			QuestionId:   questionId,
			Kind:         entity.QuestionKindScale,
			NumberValue:  &second,
		})
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		answers, err := uow.AnswerRepository().FindAll(ctx, specification.ByRespondentAndPeriod{
			RespondentID: respondentId,
			PeriodID:     periodId,
		})
		assert.NoError(t, err)
		assert.Len(t, answers, 1)
		if assert.NotNil(t, answers[0].NumberValue) {
			assert.Equal(t, 5.0, *answers[0].NumberValue)
		}

		t.Log("Successfully collapsed two upserts into a single answer row")
	})

	t.Run("Check Ranking Full Replacement", func(t *testing.T) {
		ctx := context.Background()

		respondentId := uuid.New()
		user := &entity.User{
			Id:       respondentId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test Ranker",
			Role:     entity.UserRoleStudent,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		periodId := uuid.New()
		period := &entity.Period{
			Id:     periodId,
			Name:   "Integration Ranking Period " + uuid.New().String(),
			Status: entity.PeriodStatusOpen,
		}
		err = uow.PeriodRepository().Create(ctx, period)
		assert.NoError(t, err)

		// First submission orders two topics.
		firstSet := []*entity.Ranking{
			{Id: uuid.New(), RespondentId: respondentId, PeriodId: periodId, TopicId: uuid.New(), Rank: 1},
			{Id: uuid.New(), RespondentId: respondentId, PeriodId: periodId, TopicId: uuid.New(), Rank: 2},
		}
		err = uow.RankingRepository().ReplaceForRespondent(ctx, respondentId, periodId, firstSet)
		assert.NoError(t, err)

		// A re-submission must replace the whole set, not merge into it.
		secondSet := []*entity.Ranking{
			{Id: uuid.New(), RespondentId: respondentId, PeriodId: periodId, TopicId: uuid.New(), Rank: 1},
			{Id: uuid.New(), RespondentId: respondentId, PeriodId: periodId, TopicId: uuid.New(), Rank: 2},
			{Id: uuid.New(), RespondentId: respondentId, PeriodId: periodId, TopicId: uuid.New(), Rank: 3},
		}
		err = uow.RankingRepository().ReplaceForRespondent(ctx, respondentId, periodId, secondSet)
		assert.NoError(t, err)

		rankings, err := uow.RankingRepository().FindAll(ctx,
			specification.ByRespondentAndPeriod{RespondentID: respondentId, PeriodID: periodId},
			specification.OrderByRank{},
		)
		assert.NoError(t, err)
		assert.Len(t, rankings, 3)
		for i, r := range rankings {
			assert.Equal(t, i+1, r.Rank)
		}

		t.Log("Successfully replaced the full preference order on re-submission")
	})
}
