package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/autoparts/internal/domain/user"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/autoparts/pkg/jwt"
)

// LoginUseCase 账号登录用例
// 编排三步：领域服务验证凭据 → 签发JWT → Redis记录会话。
// 会话写入失败不阻断登录（JWT本身无状态，会话只用于后台审计和踢下线）。
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱和密码
	account, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token对
	tokenPair, err := uc.jwtManager.GenerateToken(account.ID, account.Email, account.Nickname)
	if err != nil {
		return nil, err
	}

	// 3. 记录会话（失败只告警，不影响登录结果）
	sessionData := map[string]interface{}{
		"user_id":  account.ID,
		"email":    account.Email,
		"nickname": account.Nickname,
		"login_at": time.Now().Format(time.RFC3339),
		"ip":       req.IP,
	}
	if err := uc.sessionStore.SaveSession(ctx, account.ID, sessionData, 7*24*time.Hour); err != nil {
		log.Printf("[warn] 保存会话失败 user_id=%d: %v", account.ID, err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:       account.ID,
			Email:    account.Email,
			Nickname: account.Nickname,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 账号登出用例
// 删除Redis会话，并把当前Access Token加入黑名单直到其自然过期，
// 让无状态的JWT也能立即失效。
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 黑名单TTL与Access Token有效期一致，过期后自动清理
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	IP       string // 客户端IP，由HTTP层透传，写入会话供审计
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// UserInfo 账号基本信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
