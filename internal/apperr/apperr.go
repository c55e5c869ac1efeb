// Package apperr задает единую классификацию ошибок сервиса.
// Каждая ошибка бизнес-логики оборачивает один из видов ниже,
// HTTP-слой переводит вид в статус ответа.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// Error связывает вид ошибки с сообщением для клиента
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage оборачивает ошибку хранилища; исходный текст наружу не отдается
func Storage(err error) error {
	return &Error{Kind: ErrStorage, Message: fmt.Sprintf("storage failure: %v", err)}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsStorage(err error) bool    { return errors.Is(err, ErrStorage) }
