package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/realm-auth/internal/auth"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestAccountStoreCreateAndFind(t *testing.T) {
	s := NewAccountStore(newTestClient(t))
	ctx := context.Background()

	account := &auth.Account{
		Email:        "bob@co.com",
		PasswordHash: "$2a$10$digest",
		FirstName:    "Bob",
		LastName:     "Lee",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.Create(ctx, account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	found, err := s.FindByEmail(ctx, "bob@co.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found == nil {
		t.Fatal("account not found after create")
	}
	if found.PasswordHash != account.PasswordHash {
		t.Fatalf("password hash = %s, want %s", found.PasswordHash, account.PasswordHash)
	}
	if found.FirstName != "Bob" || found.LastName != "Lee" {
		t.Fatalf("unexpected names: %s %s", found.FirstName, found.LastName)
	}
	if !found.CreatedAt.Equal(account.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", found.CreatedAt, account.CreatedAt)
	}
}

func TestAccountStoreFindAbsent(t *testing.T) {
	s := NewAccountStore(newTestClient(t))

	found, err := s.FindByEmail(context.Background(), "nobody@co.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected absent account, got %#v", found)
	}
}

func TestAccountStoreCreateDuplicate(t *testing.T) {
	s := NewAccountStore(newTestClient(t))
	ctx := context.Background()

	first := &auth.Account{Email: "bob@co.com", PasswordHash: "h1"}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	second := &auth.Account{Email: "bob@co.com", PasswordHash: "h2"}
	err := s.Create(ctx, second)
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("duplicate create error = %v, want ErrEmailTaken", err)
	}

	// 先勝ちで元のレコードが残る
	found, err := s.FindByEmail(ctx, "bob@co.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found.PasswordHash != "h1" {
		t.Fatalf("password hash = %s, want h1", found.PasswordHash)
	}
}

func TestAccountStoreDelete(t *testing.T) {
	s := NewAccountStore(newTestClient(t))
	ctx := context.Background()

	if err := s.Create(ctx, &auth.Account{Email: "bob@co.com"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := s.Delete(ctx, "bob@co.com"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	found, err := s.FindByEmail(ctx, "bob@co.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found != nil {
		t.Fatal("account still present after delete")
	}

	// 存在しないアカウントの削除も成功扱い
	if err := s.Delete(ctx, "nobody@co.com"); err != nil {
		t.Fatalf("Delete of absent account returned error: %v", err)
	}
}

func TestRealmStoreCreateAndFind(t *testing.T) {
	s := NewRealmStore(newTestClient(t))
	ctx := context.Background()

	realms := []*auth.Realm{
		{ID: "r1", Name: auth.DefaultRealmName, Administrator: "bob@co.com"},
		{ID: "r2", Name: "shared", Administrator: "alice@co.com", Members: []string{"bob@co.com"}},
	}
	for _, realm := range realms {
		if err := s.Create(ctx, realm); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	all, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("FindAll returned %d realms, want 2", len(all))
	}
	byID := make(map[string]auth.Realm, len(all))
	for _, realm := range all {
		byID[realm.ID] = realm
	}
	if byID["r2"].Members[0] != "bob@co.com" {
		t.Fatalf("unexpected members for r2: %#v", byID["r2"].Members)
	}

	found, err := s.FindByID(ctx, "r1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found == nil || found.Name != auth.DefaultRealmName {
		t.Fatalf("unexpected realm: %#v", found)
	}
}

func TestRealmStoreFindByIDAbsent(t *testing.T) {
	s := NewRealmStore(newTestClient(t))

	found, err := s.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected absent realm, got %#v", found)
	}
}

func TestRealmStoreFindAllEmpty(t *testing.T) {
	s := NewRealmStore(newTestClient(t))

	all, err := s.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("FindAll returned %d realms, want 0", len(all))
	}
}

func TestRealmStoreFindAllSkipsDanglingIndexEntry(t *testing.T) {
	rdb := newTestClient(t)
	s := NewRealmStore(rdb)
	ctx := context.Background()

	if err := s.Create(ctx, &auth.Realm{ID: "r1", Name: auth.DefaultRealmName, Administrator: "bob@co.com"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	// レルム本体のないインデックスエントリを混入させる
	if err := rdb.SAdd(ctx, realmIndexKey, "ghost").Err(); err != nil {
		t.Fatalf("SAdd returned error: %v", err)
	}

	all, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 1 || all[0].ID != "r1" {
		t.Fatalf("unexpected realms: %#v", all)
	}
}
