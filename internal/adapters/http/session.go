package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// ErrInvalidSessionHeader は認証ヘッダが不正な場合のエラーです。
var ErrInvalidSessionHeader = errors.New("session: invalid header")

// sessionFromRequest はゲートウェイが付与する認証ヘッダからセッションを
// 復元します。両ヘッダが無い場合は匿名として nil を返します。
func sessionFromRequest(r *http.Request) (*authz.Session, error) {
	rawID := strings.TrimSpace(r.Header.Get(headerUserID))
	rawRole := strings.TrimSpace(r.Header.Get(headerUserRole))

	if rawID == "" && rawRole == "" {
		return nil, nil
	}

	if rawID == "" || rawRole == "" {
		return nil, ErrInvalidSessionHeader
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidSessionHeader
	}

	role, err := authz.ParseRole(rawRole)
	if err != nil {
		return nil, ErrInvalidSessionHeader
	}

	return authz.NewSession(userID, role), nil
}
