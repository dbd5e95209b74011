// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/catalog/usecase"
)

const pgUniqueViolation = "23505"

// gamePostgres はGameRepositoryインターフェースのPostgreSQL実装です。
type gamePostgres struct {
	db *gorm.DB
}

var _ usecase.GameRepository = (*gamePostgres)(nil)

// NewGameRepository は指定されたDB接続でgamePostgresの新しいインスタンスを生成します。
func NewGameRepository(db *gorm.DB) *gamePostgres {
	return &gamePostgres{db: db}
}

// GameModel はgamesテーブルのGORMモデルです。
type GameModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Title       string `gorm:"size:255;not null;index"`
	Genre       string `gorm:"size:255"`
	ImageURL    string `gorm:"size:512"`
	Rating      *float64
	ReleaseDate string `gorm:"size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GameModel) TableName() string {
	return "games"
}

func toGameModel(e *entity.Game) GameModel {
	return GameModel{
		ID:          e.ID,
		Title:       e.Title,
		Genre:       e.Genre,
		ImageURL:    e.ImageURL,
		Rating:      e.Rating,
		ReleaseDate: e.ReleaseDate,
	}
}

func toGameEntity(m GameModel) entity.Game {
	return entity.Game{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		ImageURL:    m.ImageURL,
		Rating:      m.Rating,
		ReleaseDate: m.ReleaseDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create はゲームを新規登録します。同じIDが既に存在する場合はErrGameAlreadyExistsを返します。
func (r *gamePostgres) Create(ctx context.Context, game *entity.Game) error {
	m := toGameModel(game)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrGameAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrGameAlreadyExists
		}
		return err
	}
	return nil
}

// Update はゲーム情報を全項目更新します。対象が存在しない場合はErrGameNotFoundを返します。
func (r *gamePostgres) Update(ctx context.Context, game *entity.Game) error {
	m := toGameModel(game)
	res := r.db.WithContext(ctx).Model(&GameModel{ID: game.ID}).
		Select("Title", "Genre", "ImageURL", "Rating", "ReleaseDate").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrGameNotFound
	}
	return nil
}

// Delete はゲームを削除します。対象が存在しない場合はErrGameNotFoundを返します。
func (r *gamePostgres) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&GameModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrGameNotFound
	}
	return nil
}

// FindByID はIDでゲームを取得します。
func (r *gamePostgres) FindByID(ctx context.Context, id string) (*entity.Game, error) {
	var m GameModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGameNotFound
		}
		return nil, err
	}
	e := toGameEntity(m)
	return &e, nil
}

// List はタイトル部分一致検索付きでゲーム一覧をタイトル順で返します。
func (r *gamePostgres) List(ctx context.Context, search string) ([]entity.Game, error) {
	q := r.db.WithContext(ctx).Model(&GameModel{}).Order("title ASC")
	if search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}
	var rows []GameModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Game, 0, len(rows))
	for _, m := range rows {
		out = append(out, toGameEntity(m))
	}
	return out, nil
}

// UpsertMetadata はETLが発見したゲームを登録し、既存行には空項目のみ補完します。
func (r *gamePostgres) UpsertMetadata(ctx context.Context, game *entity.Game) error {
	var existing GameModel
	err := r.db.WithContext(ctx).Where("id = ?", game.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m := toGameModel(game)
		return r.db.WithContext(ctx).Create(&m).Error
	}
	if err != nil {
		return err
	}

	// 既存値は上書きせず、空の項目だけを埋める
	updates := map[string]interface{}{}
	if existing.Genre == "" && game.Genre != "" {
		updates["genre"] = game.Genre
	}
	if existing.ImageURL == "" && game.ImageURL != "" {
		updates["image_url"] = game.ImageURL
	}
	if existing.Rating == nil && game.Rating != nil {
		updates["rating"] = game.Rating
	}
	if existing.ReleaseDate == "" && game.ReleaseDate != "" {
		updates["release_date"] = game.ReleaseDate
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&GameModel{ID: game.ID}).Updates(updates).Error
}
