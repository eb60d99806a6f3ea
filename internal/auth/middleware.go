package auth

import (
	"strings"

	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextIdentity = "identity"
	ContextToken    = "token"
)

// Identity 已解析的用户身份
type Identity struct {
	ID       string     `json:"id"`
	Role     model.Role `json:"role"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
}

// Verifier 会话身份校验器
type Verifier struct {
	store  *store.Store
	secret string
}

// NewVerifier 创建身份校验器
func NewVerifier(s *store.Store, secret string) *Verifier {
	return &Verifier{store: s, secret: secret}
}

// Resolve 将 bearer token 解析为未被封禁用户的身份
func (v *Verifier) Resolve(token string) (*Identity, error) {
	if token == "" {
		return nil, errs.Unauthenticated("缺少认证令牌")
	}

	claims, err := ParseToken(token, v.secret)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnauthenticated, "无效或过期的令牌", err)
	}

	// 会话必须仍然有效（登出或过期后令牌作废）
	session, err := v.store.GetSessionByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, errs.Unauthenticated("会话已失效")
	}

	user, err := v.store.GetUser(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsBanned {
		return nil, errs.Unauthenticated("无效令牌或账号已被封禁")
	}

	return &Identity{
		ID:       user.ID,
		Role:     user.Role,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Authenticate 认证中间件，解析身份并写入上下文
func (v *Verifier) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		identity, err := v.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(errs.HTTPStatus(err), gin.H{
				"kind":  errs.KindOf(err),
				"error": "认证失败",
			})
			return
		}
		c.Set(ContextIdentity, identity)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireRole 角色门禁中间件，必须位于 Authenticate 之后
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity == nil || !roleAllowed(identity.Role, roles) {
			c.AbortWithStatusJSON(403, gin.H{
				"kind":  errs.KindForbidden,
				"error": "权限不足",
			})
			return
		}
		c.Next()
	}
}

// IdentityFrom 从上下文读取已解析的身份
func IdentityFrom(c *gin.Context) *Identity {
	value, exists := c.Get(ContextIdentity)
	if !exists {
		return nil
	}
	identity, _ := value.(*Identity)
	return identity
}

// TokenFrom 从上下文读取原始 token
func TokenFrom(c *gin.Context) string {
	value, exists := c.Get(ContextToken)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
