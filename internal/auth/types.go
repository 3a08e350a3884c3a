package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultRealmName はサインアップ時に自動作成されるレルムの名前です。
const DefaultRealmName = "__default_"

// ErrEmailTaken は email が既に登録済みの場合に AccountStore.Create が返します。
var ErrEmailTaken = errors.New("email already taken")

// Account は登録済みユーザーを表します。
// Email は小文字に正規化された一意な識別子です。PasswordHash は bcrypt ダイジェストで、
// レスポンスには決してシリアライズしません。
type Account struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Realm はテナント（ワークスペース）単位のユーザーグループを表します。
// Members に加えて Administrator も常にメンバーとして扱います。
type Realm struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	Administrator string    `json:"administrator"`
	Members       []string  `json:"members,omitempty"`
}

// HasMember は email がこのレルムのメンバーかどうかを判定します。
func (r *Realm) HasMember(email string) bool {
	if r == nil {
		return false
	}
	if r.Administrator == email {
		return true
	}
	for _, member := range r.Members {
		if member == email {
			return true
		}
	}
	return false
}

// NormalizeEmail はメールアドレスを小文字へ正規化します。
// ルックアップと保存の前には必ずこの正規化を通します。
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// AccountStore はアカウントの永続化を担います。
// FindByEmail は存在しない場合に (nil, nil) を返します。
// Create の email 一意性はストレージ層で保証される必要があります。
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Delete(ctx context.Context, email string) error
}

// RealmStore はレルムの永続化を担います。
// FindByID は存在しない場合に (nil, nil) を返します。
type RealmStore interface {
	Create(ctx context.Context, realm *Realm) error
	FindAll(ctx context.Context) ([]Realm, error)
	FindByID(ctx context.Context, id string) (*Realm, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
// Compare は不一致 (false, nil) と照合エラー (false, err) を区別します。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, digest string) (bool, error)
}
