package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Workflow はサインアップ・ログイン・レルム選択の一連の流れを実装します。
// 各操作は ResultCode を持つ結果を返すだけで、レスポンス送信と結果ログは
// 呼び出し側（ハンドラー層）が結果ごとに一度だけ行います。
// ストア障害の詳細はサーバー側ログにのみ残し、呼び出し元へは返しません。
type Workflow struct {
	accounts AccountStore
	realms   RealmStore
	hasher   PasswordHasher
	logger   *log.Logger
}

// NewWorkflow は Workflow を作成します。
func NewWorkflow(accounts AccountStore, realms RealmStore, hasher PasswordHasher, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = log.Default()
	}
	return &Workflow{
		accounts: accounts,
		realms:   realms,
		hasher:   hasher,
		logger:   logger,
	}
}

// SignupInput はサインアップの入力です。4 項目すべて必須です。
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AccountSummary はサインアップ成功時に返すアカウント情報です。
type AccountSummary struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Realm     *Realm `json:"realm"`
}

// SignupResult は Signup の終端結果です。Account は成功時のみ設定されます。
type SignupResult struct {
	Status  ResultCode
	Account *AccountSummary
}

// LoginResult は Login の終端結果です。User は成功時のみ設定されます。
type LoginResult struct {
	Status ResultCode
	User   *SessionUser
}

// SelectRealmResult は SelectRealm の終端結果です。Realm は成功時のみ設定されます。
type SelectRealmResult struct {
	Status ResultCode
	Realm  *Realm
}

// Signup は新規アカウントを作成し、あわせてデフォルトレルムを作成します。
// レルム作成に失敗した場合はアカウントだけが残る不整合を避けるため、
// 補償としてアカウントを削除してから DB_ERROR を返します。
func (w *Workflow) Signup(ctx context.Context, in SignupInput) SignupResult {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return SignupResult{Status: ResultMissingField}
	}

	email := NormalizeEmail(in.Email)

	existing, err := w.accounts.FindByEmail(ctx, email)
	if err != nil {
		w.logger.Printf("signup: account lookup failed for %s: %v", email, err)
		return SignupResult{Status: ResultDBError}
	}
	if existing != nil {
		return SignupResult{Status: ResultEmailTaken}
	}

	digest, err := w.hasher.Hash(in.Password)
	if err != nil {
		w.logger.Printf("signup: password hashing failed for %s: %v", email, err)
		return SignupResult{Status: ResultEncryptError}
	}

	account := &Account{
		Email:        email,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := w.accounts.Create(ctx, account); err != nil {
		// ストレージ層の一意性制約が先行サインアップを検知した場合
		if errors.Is(err, ErrEmailTaken) {
			return SignupResult{Status: ResultEmailTaken}
		}
		w.logger.Printf("signup: account create failed for %s: %v", email, err)
		return SignupResult{Status: ResultDBError}
	}

	realm := &Realm{
		ID:            uuid.NewString(),
		Name:          DefaultRealmName,
		CreatedAt:     time.Now().UTC(),
		Administrator: email,
	}
	if err := w.realms.Create(ctx, realm); err != nil {
		w.logger.Printf("signup: default realm create failed for %s: %v", email, err)
		if derr := w.accounts.Delete(ctx, email); derr != nil {
			w.logger.Printf("signup: compensating account delete failed for %s: %v", email, derr)
		}
		return SignupResult{Status: ResultDBError}
	}

	return SignupResult{
		Status: ResultSuccess,
		Account: &AccountSummary{
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Email:     account.Email,
			Realm:     realm,
		},
	}
}

// Login は資格情報を検証し、所属レルムを解決してセッションユーザーを組み立てます。
// 所属レルムがちょうど 1 つの場合はそのレルムを自動選択し、複数の場合は
// 明示的な選択を待つため ActiveRealm を未設定のままにします。
func (w *Workflow) Login(ctx context.Context, email, password string) LoginResult {
	if email == "" || password == "" {
		return LoginResult{Status: ResultMissingField}
	}

	email = NormalizeEmail(email)

	account, err := w.accounts.FindByEmail(ctx, email)
	if err != nil {
		w.logger.Printf("login: account lookup failed for %s: %v", email, err)
		return LoginResult{Status: ResultDBError}
	}
	if account == nil {
		return LoginResult{Status: ResultUserNotFound}
	}

	matched, err := w.hasher.Compare(password, account.PasswordHash)
	if err != nil {
		w.logger.Printf("login: password comparison failed for %s: %v", email, err)
		return LoginResult{Status: ResultEncryptError}
	}
	if !matched {
		return LoginResult{Status: ResultInvalidPassword}
	}

	all, err := w.realms.FindAll(ctx)
	if err != nil {
		w.logger.Printf("login: realm lookup failed for %s: %v", email, err)
		return LoginResult{Status: ResultDBError}
	}

	var memberOf []Realm
	for i := range all {
		if all[i].HasMember(email) {
			memberOf = append(memberOf, all[i])
		}
	}
	if len(memberOf) == 0 {
		return LoginResult{Status: ResultRealmNotFound}
	}

	user := &SessionUser{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     email,
		Realms:    memberOf,
	}
	if len(memberOf) == 1 {
		user.ActiveRealm = &memberOf[0]
	}

	return LoginResult{Status: ResultSuccess, User: user}
}

// SelectRealm はレルムを取得してメンバーシップを確認します。
// セッションが確立済みであることは呼び出し側のパイプラインが保証します。
func (w *Workflow) SelectRealm(ctx context.Context, user *SessionUser, realmID string) SelectRealmResult {
	realm, err := w.realms.FindByID(ctx, realmID)
	if err != nil {
		w.logger.Printf("select-realm: realm lookup failed for %s: %v", realmID, err)
		return SelectRealmResult{Status: ResultDBError}
	}
	if !realm.HasMember(user.Email) {
		return SelectRealmResult{Status: ResultInvalidRealm}
	}
	return SelectRealmResult{Status: ResultSuccess, Realm: realm}
}
