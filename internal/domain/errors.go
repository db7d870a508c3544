package domain

import "errors"

var (
	ErrCardNotFound   = errors.New("card not found")
	ErrReloadRejected = errors.New("reload rejected by card state")
)
