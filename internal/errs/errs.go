// Package errs содержит таксономию ошибок движка заказов.
package errs

import "errors"

var (
	// ErrNotFound возвращается, если сущность с указанным идентификатором не существует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition возвращается, если текущий статус или роль не допускают переход.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrConflict возвращается, если заказ уже забрал другой бустер.
	ErrConflict = errors.New("conflict")
	// ErrValidation возвращается при некорректной сумме, цене, пруфе или реквизитах.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden возвращается, если у вызывающего нет прав на действие.
	ErrForbidden = errors.New("forbidden")
	// ErrStorageUnavailable оборачивает любые сбои хранилища.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Code возвращает машиночитаемый код ошибки для ответа API.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation_failed"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal"
	}
}
