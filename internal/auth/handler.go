// Package auth は認証・認可機能を提供します。
package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handler は認証系エンドポイントの gin ハンドラー群です。
// 入力の取り出しとレスポンス送信・結果ログだけを担い、判定は Workflow に委ねます。
type Handler struct {
	workflow *Workflow
	logger   *log.Logger
}

// NewHandler は Handler を作成します。
func NewHandler(workflow *Workflow, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		workflow: workflow,
		logger:   logger,
	}
}

type signupRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"firstname" form:"firstname"`
	LastName  string `json:"lastname" form:"lastname"`
}

type loginRequest struct {
	Email string `json:"email" form:"email"`
	// 旧コントラクトではパスワードのフィールド名が secretword です
	Secretword string `json:"secretword" form:"secretword"`
}

type selectRealmRequest struct {
	ID string `json:"id" form:"id"`
}

// emit は終端結果をレスポンスとログへ結果ごとに一度だけ反映します。
func (h *Handler) emit(c *gin.Context, op string, status ResultCode) {
	h.logger.Printf("%s: %s", op, status)
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Signup は POST /api/auth/signup のハンドラーです。
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.emit(c, "signup", ResultMissingField)
		return
	}

	result := h.workflow.Signup(c.Request.Context(), SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if result.Status != ResultSuccess {
		h.emit(c, "signup", result.Status)
		return
	}

	h.logger.Printf("signup: new account %s (%s)", result.Account.Email, result.Status)
	c.JSON(http.StatusOK, gin.H{
		"status":  result.Status,
		"account": result.Account,
	})
}

// Login は POST /api/auth/login のハンドラーです。
// 成功時はセッションを確立し、CSRF トークンをレスポンスヘッダーで返します。
// セッション内容はボディには載せません。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.emit(c, "login", ResultMissingField)
		return
	}

	result := h.workflow.Login(c.Request.Context(), req.Email, req.Secretword)
	if result.Status != ResultSuccess {
		h.emit(c, "login", result.Status)
		return
	}

	token, err := generateToken()
	if err != nil {
		h.logger.Printf("login: csrf token generation failed: %v", err)
		h.emit(c, "login", ResultEncryptError)
		return
	}

	session := sessions.Default(c)
	now := time.Now()
	if err := setUser(session, result.User); err != nil {
		h.logger.Printf("login: session user encode failed: %v", err)
		h.emit(c, "login", ResultDBError)
		return
	}
	session.Set(sessionKeyIssuedAt, now.Unix())
	session.Set(sessionKeyLastActive, now.Unix())
	session.Set(sessionKeyCSRF, token)
	if err := session.Save(); err != nil {
		h.logger.Printf("login: session save failed: %v", err)
		h.emit(c, "login", ResultDBError)
		return
	}

	c.Header(csrfHeader, token)
	if result.User.ActiveRealm != nil {
		h.logger.Printf("login: %s selected realm %s (%s)",
			result.User.Email, result.User.ActiveRealm.Name, result.Status)
	} else {
		h.logger.Printf("login: %s has %d realms, selection pending (%s)",
			result.User.Email, len(result.User.Realms), result.Status)
	}
	c.JSON(http.StatusOK, gin.H{"status": result.Status})
}

// Logout は POST /api/auth/logout のハンドラーです。
// 無条件にセッションを破棄し、アプリケーションルートへリダイレクトします。
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.logger.Printf("logout: session clear failed: %v", err)
	}
	h.logger.Printf("logout: redirect to /")
	c.Redirect(http.StatusFound, "/")
}

// SelectRealm は POST /api/auth/realm/select のハンドラーです。
// RequireLogin 配下でのみ配線されます。
func (h *Handler) SelectRealm(c *gin.Context) {
	var req selectRealmRequest
	if err := c.ShouldBind(&req); err != nil {
		h.emit(c, "select-realm", ResultMissingField)
		return
	}

	user := CurrentUser(c)
	result := h.workflow.SelectRealm(c.Request.Context(), user, req.ID)
	if result.Status != ResultSuccess {
		h.emit(c, "select-realm", result.Status)
		return
	}

	user.ActiveRealm = result.Realm
	session := sessions.Default(c)
	if err := setUser(session, user); err != nil {
		h.logger.Printf("select-realm: session user encode failed: %v", err)
		h.emit(c, "select-realm", ResultDBError)
		return
	}
	if err := session.Save(); err != nil {
		h.logger.Printf("select-realm: session save failed: %v", err)
		h.emit(c, "select-realm", ResultDBError)
		return
	}

	h.logger.Printf("select-realm: %s switched to realm %s (%s)",
		user.Email, result.Realm.Name, result.Status)
	c.JSON(http.StatusOK, gin.H{"status": result.Status})
}

// Me は GET /api/auth/me のハンドラーです。現在のセッションユーザーを返します。
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": ResultSuccess,
		"user":   CurrentUser(c),
	})
}
