package authz

// Session は 1 リクエスト分の認証情報です。nil の Session は匿名アクセスを表します。
// 本コアはセッションを永続化せず、リクエストごとに外部から受け取ります。
type Session struct {
	UserID int64
	Role   Role
}

// NewSession は Session を生成します。
func NewSession(userID int64, role Role) *Session {
	return &Session{UserID: userID, Role: role}
}
