package principals

import "errors"

var (
	// ErrInternal возвращается при ошибке хранилища во время определения роли
	ErrInternal = errors.New("principals.service: internal error")
)
