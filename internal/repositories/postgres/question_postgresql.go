package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const questionCacheTTL = 10 * time.Minute

type QuestionPostgreSQL struct {
	db     *gorm.DB
	cache  cache.CacheService
	logger *slog.Logger
}

// NewQuestionPostgreSQL builds the question repository. cacheService may be
// nil, in which case every read goes to the database.
func NewQuestionPostgreSQL(db *gorm.DB, cacheService cache.CacheService, logger *slog.Logger) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db, cache: cacheService, logger: logger}
}

func questionCacheKey(id uint) string { return fmt.Sprintf("survey:question:%d", id) }

// ===== BASIC OPERATIONS =====

// Create stores the question row and its metadata
func (q *QuestionPostgreSQL) Create(ctx context.Context, record *models.Record, createdBy string) error {
	values, deletes, err := record.Meta()
	if err != nil {
		return fmt.Errorf("failed to encode question meta: %w", err)
	}

	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &models.QuestionPost{Title: record.Title, CreatedBy: createdBy}
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
		record.ID = post.ID
		record.CreatedBy = createdBy
		return NewMetaStorePostgreSQL(tx).SaveMeta(ctx, post.ID, values, deletes)
	})
}

// GetByID retrieves a question record, served from cache when possible
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Record, error) {
	if q.cache != nil {
		var cached models.Record
		if err := q.cache.Get(ctx, questionCacheKey(id), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			q.logger.Warn("Question cache read failed", "question_id", id, "error", err)
		}
	}

	var post models.QuestionPost
	if err := q.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	meta, err := NewMetaStorePostgreSQL(q.db).GetMeta(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := models.RecordFromMeta(post.ID, post.Title, meta)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", id, err)
	}
	record.CreatedBy = post.CreatedBy

	if q.cache != nil {
		if err := q.cache.Set(ctx, questionCacheKey(id), record, questionCacheTTL); err != nil {
			q.logger.Warn("Question cache write failed", "question_id", id, "error", err)
		}
	}
	return record, nil
}

// GetByIDs retrieves records in the order of ids, skipping missing ones
func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var posts []models.QuestionPost
	if err := q.db.WithContext(ctx).Preload("Meta").Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	byID := make(map[uint]*models.Record, len(posts))
	for i := range posts {
		record, err := recordFromPost(&posts[i])
		if err != nil {
			return nil, err
		}
		byID[record.ID] = record
	}

	records := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// Update replaces title and metadata
func (q *QuestionPostgreSQL) Update(ctx context.Context, record *models.Record) error {
	values, deletes, err := record.Meta()
	if err != nil {
		return fmt.Errorf("failed to encode question meta: %w", err)
	}

	err = q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QuestionPost{}).Where("id = ?", record.ID).Update("title", record.Title)
		if result.Error != nil {
			return fmt.Errorf("failed to update question: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("question %d: %w", record.ID, repositories.ErrNotFound)
		}
		return NewMetaStorePostgreSQL(tx).SaveMeta(ctx, record.ID, values, deletes)
	})
	if err != nil {
		return err
	}

	q.invalidate(ctx, record.ID)
	return nil
}

// Delete soft-deletes the question and drops its metadata
func (q *QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.QuestionPost{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete question: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
		}
		if err := NewMetaStorePostgreSQL(tx).DeleteMeta(ctx, id); err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.SurveyQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to detach question from surveys: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	q.invalidate(ctx, id)
	return nil
}

// ===== QUERY OPERATIONS =====

// List returns questions matching filters, newest first
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Record, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.QuestionPost{})

	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.Type != nil {
		query = query.Where("id IN (?)", q.db.Model(&models.QuestionMeta{}).
			Select("question_id").
			Where("meta_key = ? AND meta_value #>> '{}' = ?", models.MetaQuestionType, string(*filters.Type)))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var posts []models.QuestionPost
	if err := query.Preload("Meta").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	records := make([]*models.Record, 0, len(posts))
	for i := range posts {
		record, err := recordFromPost(&posts[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}

func (q *QuestionPostgreSQL) invalidate(ctx context.Context, id uint) {
	if q.cache == nil {
		return
	}
	if err := q.cache.Delete(ctx, questionCacheKey(id)); err != nil {
		q.logger.Warn("Question cache invalidation failed", "question_id", id, "error", err)
	}
}

func recordFromPost(post *models.QuestionPost) (*models.Record, error) {
	meta := make(map[string]datatypes.JSON, len(post.Meta))
	for _, row := range post.Meta {
		meta[row.MetaKey] = row.MetaValue
	}
	record, err := models.RecordFromMeta(post.ID, post.Title, meta)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", post.ID, err)
	}
	record.CreatedBy = post.CreatedBy
	return record, nil
}
