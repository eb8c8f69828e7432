package user

import (
	"time"
)

// User 后台操作员账号（聚合根）
// 配件目录的所有写接口（建档、调价、库存、促销）都要求登录账号。
// Password字段存bcrypt哈希，领域层不持有明文。
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建操作员账号
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}
