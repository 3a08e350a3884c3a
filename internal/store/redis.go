// Package store はアカウントとレルムを Redis のドキュメントとして永続化します。
package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix = "account:"
	realmKeyPrefix   = "realm:"
	realmIndexKey    = "realms"
)

// NewClient は接続 URL から Redis クライアントを作成します。
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func accountKey(email string) string {
	return accountKeyPrefix + email
}

func realmKey(id string) string {
	return realmKeyPrefix + id
}
