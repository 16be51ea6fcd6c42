package utils

import (
	"encoding/json"
	"math"
	"strconv"
)

// maxExactFloat float64 能精确表示的最大整数 2^53
const maxExactFloat = 1 << 53

// Transfer 把 jwt claims 里的身份值转成 int64，无法识别时返回 -1
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= maxExactFloat {
			return int64(v)
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return -1
}

func ConvertStringToInt64(v string) (int64, error) {
	if res, err := strconv.ParseInt(v, 10, 64); err != nil {
		return -1, err
	} else {
		return res, nil
	}
}
