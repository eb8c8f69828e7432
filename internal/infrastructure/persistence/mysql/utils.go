package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突
// SKU、邮箱的唯一性都靠UNIQUE索引兜底，各Repository据此转换为业务错误。
// MySQL错误码1062：Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 部分驱动版本未映射到gorm.ErrDuplicatedKey，按错误信息兜底
	return strings.Contains(err.Error(), "Duplicate entry")
}
