// Package usecase はcatalogフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"gamedeals_backend/internal/feature/catalog/domain/entity"
)

var (
	// ErrGameNotFound は指定されたゲームが存在しない場合に返されます。
	ErrGameNotFound = errors.New("game not found")

	// ErrGameAlreadyExists は同じIDのゲームが既に存在する場合に返されます。
	ErrGameAlreadyExists = errors.New("game already exists")
)

// GameRepository はゲームエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Game, error)

	// List はタイトル部分一致検索付きの一覧を返します。searchが空なら全件です。
	List(ctx context.Context, search string) ([]entity.Game, error)

	// UpsertMetadata はETLが発見したゲームを登録します。
	// 既存行がある場合は空のメタデータ項目のみを補完し、既存値は上書きしません。
	UpsertMetadata(ctx context.Context, game *entity.Game) error
}

// StoreRepository はストア参照データの読み出しを抽象化します。
type StoreRepository interface {
	List(ctx context.Context) ([]entity.Store, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// CatalogUsecase はゲームカタログの業務操作を提供します。
type CatalogUsecase struct {
	games  GameRepository
	stores StoreRepository
}

// NewCatalogUsecase はCatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(games GameRepository, stores StoreRepository) *CatalogUsecase {
	return &CatalogUsecase{games: games, stores: stores}
}

// ListGames はタイトル検索付きでゲーム一覧を返します。
func (u *CatalogUsecase) ListGames(ctx context.Context, search string) ([]entity.Game, error) {
	return u.games.List(ctx, search)
}

// GetGame はIDでゲームを取得します。
func (u *CatalogUsecase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return u.games.FindByID(ctx, id)
}

// CreateGame は管理者操作としてゲームを登録します。
func (u *CatalogUsecase) CreateGame(ctx context.Context, game *entity.Game) error {
	if game.ID == "" || game.Title == "" {
		return errors.New("game id and title are required")
	}
	return u.games.Create(ctx, game)
}

// UpdateGame は管理者操作としてゲーム情報を更新します。
func (u *CatalogUsecase) UpdateGame(ctx context.Context, game *entity.Game) error {
	return u.games.Update(ctx, game)
}

// DeleteGame は管理者操作としてゲームを削除します。
// 価格履歴は追記専用のため削除されません。
func (u *CatalogUsecase) DeleteGame(ctx context.Context, id string) error {
	return u.games.Delete(ctx, id)
}

// ListStores はストア参照データの一覧を返します。
func (u *CatalogUsecase) ListStores(ctx context.Context) ([]entity.Store, error) {
	return u.stores.List(ctx)
}

// GenreStats はカタログ内のジャンル別ゲーム数を集計します。
// ジャンル未設定のゲームは"Unknown"として数えます。
func (u *CatalogUsecase) GenreStats(ctx context.Context) (map[string]int, error) {
	games, err := u.games.List(ctx, "")
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int)
	for _, g := range games {
		genres := g.Genres()
		if len(genres) == 0 {
			stats["Unknown"]++
			continue
		}
		for _, name := range genres {
			stats[name]++
		}
	}
	return stats, nil
}
