package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/realm-auth/internal/auth"
)

// AccountStore はアカウントを Redis の JSON ドキュメントとして保存します。
// キーは正規化済み email なので、SetNX がそのまま一意性制約になります。
type AccountStore struct {
	rdb *redis.Client
}

// NewAccountStore は AccountStore を作成します。
func NewAccountStore(rdb *redis.Client) *AccountStore {
	return &AccountStore{rdb: rdb}
}

// accountRecord は保存用の表現です。auth.Account はレスポンス向けに
// PasswordHash をシリアライズしないため、保存時はこちらへ写し替えます。
type accountRecord struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *accountRecord) account() *auth.Account {
	return &auth.Account{
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CreatedAt:    r.CreatedAt,
	}
}

// FindByEmail は email のアカウントを返します。存在しない場合は (nil, nil) を返します。
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	data, err := s.rdb.Get(ctx, accountKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var record accountRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record.account(), nil
}

// Create はアカウントを保存します。email が既に使われている場合は
// auth.ErrEmailTaken を返します。
func (s *AccountStore) Create(ctx context.Context, account *auth.Account) error {
	payload, err := json.Marshal(&accountRecord{
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		CreatedAt:    account.CreatedAt,
	})
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, accountKey(account.Email), payload, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return auth.ErrEmailTaken
	}
	return nil
}

// Delete は email のアカウントを削除します。存在しない場合も成功扱いです。
func (s *AccountStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, accountKey(email)).Err()
}
