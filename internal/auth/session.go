package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
)

const (
	SessionCookieName    = "ra_session"
	sessionKeyUser       = "auth_user"
	sessionKeyIssuedAt   = "issued_at"
	sessionKeyLastActive = "last_activity"
	sessionKeyCSRF       = "csrf_token"

	csrfHeader = "X-CSRF-Token"
)

var (
	maxSessionLifetime = 12 * time.Hour
	idleTimeout        = 30 * time.Minute
)

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(maxSessionLifetime.Seconds())
}

// SessionUser はログイン済みユーザーのセッション格納情報です。
// ActiveRealm は設定される場合、必ず Realms のいずれかと一致します。
type SessionUser struct {
	FirstName   string  `json:"firstname"`
	LastName    string  `json:"lastname"`
	Email       string  `json:"email"`
	Realms      []Realm `json:"realms"`
	ActiveRealm *Realm  `json:"realm,omitempty"`
}

// currentUser はセッションから SessionUser を復元します。未ログインなら nil を返します。
func currentUser(session sessions.Session) *SessionUser {
	raw, ok := session.Get(sessionKeyUser).(string)
	if !ok || raw == "" {
		return nil
	}
	var user SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// setUser は SessionUser を JSON 文字列としてセッションへ書き込みます。
// Save は呼び出し側が行います。
func setUser(session sessions.Session, user *SessionUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	session.Set(sessionKeyUser, string(payload))
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
