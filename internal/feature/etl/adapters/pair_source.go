package adapters

import (
	"context"
	"strings"

	catalogentity "gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// GameLister はカタログからゲーム一覧を読み出す操作を抽象化します。
type GameLister interface {
	List(ctx context.Context, search string) ([]catalogentity.Game, error)
}

// StoreIDLister は構成済みストアのキー一覧を読み出す操作を抽象化します。
type StoreIDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// catalogPairSource はカタログのゲーム×ストアの直積を実行対象ペアとして
// 提供するPairSource実装です。
type catalogPairSource struct {
	games  GameLister
	stores StoreIDLister
}

var _ usecase.PairSource = (*catalogPairSource)(nil)

// NewCatalogPairSource はカタログを元にしたPairSourceを生成します。
func NewCatalogPairSource(games GameLister, stores StoreIDLister) *catalogPairSource {
	return &catalogPairSource{games: games, stores: stores}
}

// Pairs は登録済みの全ゲームと全ストアの組み合わせを返します。
// ストア側の検索キーにはゲームタイトルを使います。
func (s *catalogPairSource) Pairs(ctx context.Context) ([]entity.Pair, error) {
	games, err := s.games.List(ctx, "")
	if err != nil {
		return nil, err
	}
	storeIDs, err := s.stores.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]entity.Pair, 0, len(games)*len(storeIDs))
	for _, g := range games {
		title := strings.TrimSpace(g.Title)
		if title == "" {
			continue
		}
		for _, storeID := range storeIDs {
			pairs = append(pairs, entity.Pair{
				GameID:    g.ID,
				StoreID:   storeID,
				LookupKey: title,
			})
		}
	}
	return pairs, nil
}
