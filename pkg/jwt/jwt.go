package jwt

import (
	"context"
	"time"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/middleware"
	"VidTube.com/pkg/utils"
	"VidTube.com/pkg/viewer"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	gjwt "github.com/golang-jwt/jwt/v4"
	"github.com/hertz-contrib/jwt"
)

var JwtMiddleware *jwt.HertzJWTMiddleware

// Init 用户身份只从 token 中的 user_id 读取
func Init(secret string, timeout time.Duration) error {
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidtube",
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		// snowflake id 超过 float64 精度，claims 按 json.Number 解析
		ParseOptions: []gjwt.ParserOption{gjwt.WithJSONNumber()},
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if id, ok := data.(int64); ok {
				return jwt.MapClaims{constants.IdentityKey: id}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			return identityOf(jwt.ExtractClaims(ctx, c))
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			return nil, jwt.ErrFailedAuthentication
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			id, ok := data.(int64)
			return ok && id > 0
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxInfof(ctx, "unauthorized request %s: %s", c.FullPath(), message)
			middleware.AbortWithErr(c, errno.TokenInvailedErr)
		},
	})
	if err != nil {
		return err
	}
	JwtMiddleware = mw
	return nil
}

func identityOf(claims jwt.MapClaims) int64 {
	id := utils.Transfer(claims[constants.IdentityKey])
	if id <= 0 {
		return 0
	}
	return id
}

// GenerateToken 签发访问 token
func GenerateToken(userId int64) (string, time.Time, error) {
	return JwtMiddleware.TokenGenerator(userId)
}

// RequireViewer 没有合法 token 时返回 401
func RequireViewer() app.HandlerFunc {
	return JwtMiddleware.MiddlewareFunc()
}

// OptionalViewer 没有 token 时按匿名用户处理，带了非法 token 仍然返回 401
func OptionalViewer() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if len(c.GetHeader("Authorization")) == 0 && c.Query("token") == "" {
			c.Next(ctx)
			return
		}
		claims, err := JwtMiddleware.GetClaimsFromJWT(ctx, c)
		if err != nil {
			hlog.CtxInfof(ctx, "invalid viewer token: %v", err)
			middleware.AbortWithErr(c, errno.TokenInvailedErr)
			return
		}
		if id := identityOf(claims); id > 0 {
			c.Set(constants.IdentityKey, id)
		}
		c.Next(ctx)
	}
}

// ViewerFrom 读取中间件写入的用户身份
func ViewerFrom(c *app.RequestContext) viewer.Viewer {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return viewer.Anonymous()
	}
	return viewer.Of(utils.Transfer(v))
}
