package policy

// Viewer 当前访问者，UserID 为 0 表示匿名
type Viewer struct {
	UserID   uint
	Username string
}

// Anonymous 匿名访问者
func Anonymous() Viewer {
	return Viewer{}
}

// IsAuthenticated 是否已登录
func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

// Is 是否为指定用户，匿名访问者永远不是任何人
func (v Viewer) Is(userID uint) bool {
	return v.IsAuthenticated() && v.UserID == userID
}
