package handlers

import (
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/middleware"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var Svc *service.Service

func Init(svc *service.Service) {
	Svc = svc
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	status := Err.HTTPStatus()
	if status >= consts.StatusInternalServerError {
		hlog.Errorf("%s %s failed: %v", c.Method(), c.FullPath(), err)
	}
	c.JSON(status, middleware.Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// SendCreated 创建成功返回 201
func SendCreated(c *app.RequestContext, msg string, data interface{}) {
	c.JSON(consts.StatusCreated, middleware.Response{
		Code:    errno.SuccessCode,
		Message: msg,
		Data:    data,
	})
}

func success(msg string) error {
	return errno.Success.WithMessage(msg)
}

// pathID 非数字的 id 解析为 -1，由 service 层返回 Invalid xxx
func pathID(c *app.RequestContext, name string) int64 {
	return utils.Transfer(c.Param(name))
}

type ContentParam struct {
	Content string `json:"content" form:"content"`
}

type PageParam struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func (p PageParam) Request() paginator.Request {
	return paginator.Request{Page: p.Page, Limit: p.Limit}
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type NotificationParam struct {
	Limit int `query:"limit"`
}

// bindPage 分页参数无法解析时按未指定处理
func bindPage(c *app.RequestContext) paginator.Request {
	var p PageParam
	if err := c.BindQuery(&p); err != nil {
		hlog.Debugf("ignore malformed paging params: %v", err)
		return paginator.Request{}
	}
	return p.Request()
}
