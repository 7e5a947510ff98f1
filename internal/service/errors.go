package service

import (
	"errors"
	"fmt"
)

// 业务错误按种类区分，接口层据此映射状态码（400/404/409）
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfRelationship   = errors.New("cannot create relationship with self")
	ErrRelationshipExists = errors.New("relationship already exists")
	ErrHasRelationships   = errors.New("cannot delete user with active relationships")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
