package auth

// ResultCode はワークフロー操作の終端結果を表します。
// ワイヤー上の文字列は旧システムからの契約なので変更しないでください。
type ResultCode string

const (
	ResultSuccess         ResultCode = "success"
	ResultDBError         ResultCode = "db-error"
	ResultEncryptError    ResultCode = "encrypt-error"
	ResultMissingField    ResultCode = "missing-field"
	ResultUserNotFound    ResultCode = "login-user-not-found"
	ResultInvalidPassword ResultCode = "login-invalid-password"
	ResultInvalidRealm    ResultCode = "login-invalid-realm"
	ResultRealmNotFound   ResultCode = "login-realm-not-found"
	// ResultRealmTaken は契約互換のために予約されています（現行フローでは未使用）。
	ResultRealmTaken ResultCode = "signup-realm-taken"
	ResultEmailTaken ResultCode = "signup-email-taken"
)
