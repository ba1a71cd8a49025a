package vip

import "errors"

var (
	ErrAlreadyVip = errors.New("member is already vip")
	ErrNotVip     = errors.New("member is not vip")
)
