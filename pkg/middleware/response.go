package middleware

import (
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// Response 所有接口统一的响应格式
type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// AbortWithErr 终止后续 handler 并按错误码返回 HTTP 状态
func AbortWithErr(c *app.RequestContext, err error) {
	Err := errno.ConvertErr(err)
	c.AbortWithStatusJSON(Err.HTTPStatus(), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
	})
}
