package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/realm-auth/internal/auth"
)

// RealmStore はレルムを Redis の JSON ドキュメントとして保存します。
// 全件取得のために ID を集合インデックスでも管理します。
type RealmStore struct {
	rdb *redis.Client
}

// NewRealmStore は RealmStore を作成します。
func NewRealmStore(rdb *redis.Client) *RealmStore {
	return &RealmStore{rdb: rdb}
}

// Create はレルムを保存し、インデックスへ ID を追加します。
func (s *RealmStore) Create(ctx context.Context, realm *auth.Realm) error {
	payload, err := json.Marshal(realm)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, realmKey(realm.ID), payload, 0)
	pipe.SAdd(ctx, realmIndexKey, realm.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// FindAll は全レルムを返します。レルムが 1 件もない場合は空のリストを返します。
func (s *RealmStore) FindAll(ctx context.Context) ([]auth.Realm, error) {
	ids, err := s.rdb.SMembers(ctx, realmIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = realmKey(id)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	realms := make([]auth.Realm, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// インデックスにだけ残った ID は読み飛ばす
			continue
		}
		var realm auth.Realm
		if err := json.Unmarshal([]byte(raw), &realm); err != nil {
			return nil, err
		}
		realms = append(realms, realm)
	}
	return realms, nil
}

// FindByID は id のレルムを返します。存在しない場合は (nil, nil) を返します。
func (s *RealmStore) FindByID(ctx context.Context, id string) (*auth.Realm, error) {
	data, err := s.rdb.Get(ctx, realmKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var realm auth.Realm
	if err := json.Unmarshal(data, &realm); err != nil {
		return nil, err
	}
	return &realm, nil
}
