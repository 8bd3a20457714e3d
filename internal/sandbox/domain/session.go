package domain

// Session store keys. Both entries are present for an authenticated session
// and both absent otherwise; a token without a parsable user record is a
// corrupt session and is treated as logged out.
const (
	SessionKeyToken = "auth_token"
	SessionKeyUser  = "auth_user"
)
