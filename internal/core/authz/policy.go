package authz

// Authorize はセッションが許可された役割を持つか検査します。
// セッションが無ければ ErrUnauthorized、役割が許可集合に含まれなければ
// ErrForbidden を返します。副作用はなく、ストアには一切触れません。
func Authorize(sess *Session, allowed ...Role) error {
	if sess == nil {
		return ErrUnauthorized
	}
	for _, role := range allowed {
		if sess.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
