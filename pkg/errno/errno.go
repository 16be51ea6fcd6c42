package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode                = 0
	ServiceErrCode             = 10001
	ParamErrCode               = 10002
	NotFoundErrCode            = 10003
	AuthorizationFailedErrCode = 10004
	PersistenceErrCode         = 10005
	MysqlErrCode               = 10006
	RedisErrCode               = 10007
	TokenInvailedErrCode       = 10008
	TooManyRequestErrCode      = 10009
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is 只比较错误码，WithMessage 派生出的错误仍然匹配原始错误
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	return ok && t.ErrCode == e.ErrCode
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// HTTPStatus 错误码对应的 HTTP 状态码
func (e ErrNo) HTTPStatus() int {
	switch e.ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case ParamErrCode:
		return consts.StatusBadRequest
	case TokenInvailedErrCode:
		return consts.StatusUnauthorized
	case AuthorizationFailedErrCode:
		return consts.StatusForbidden
	case NotFoundErrCode:
		return consts.StatusNotFound
	case PersistenceErrCode:
		return consts.StatusConflict
	case TooManyRequestErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	RequestErr             = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedErrCode, "Authorization failed")
	PersistenceErr         = NewErrNo(PersistenceErrCode, "Failed to persist changes")
	MysqlErr               = NewErrNo(MysqlErrCode, "Mysql error")
	RedisErr               = NewErrNo(RedisErrCode, "Redis error")
	TokenInvailedErr       = NewErrNo(TokenInvailedErrCode, "Token is invalid or missing")
	TooManyRequestErr      = NewErrNo(TooManyRequestErrCode, "Too many requests, please try again later")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}
