package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNodeNotInContainer = errors.New("node does not belong to container")
)
