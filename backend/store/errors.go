package store

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotEnrolled        = errors.New("user is not enrolled in course")
	ErrCourseIncomplete   = errors.New("course has uncompleted lessons")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCorrupt            = errors.New("stored record is corrupt")
)
