package quotetable

import "errors"

var (
	ErrTableNotFound         = errors.New("quote table not found")
	ErrRowNotFound           = errors.New("product row not found")
	ErrCursorInEditableField = errors.New("cursor is inside a quote table title or description")
	ErrInvalidTaxRate        = errors.New("tax rate must be a non-negative number")
	ErrUnknownTheme          = errors.New("unknown theme")
	ErrUnknownColumn         = errors.New("unknown column")
	ErrUnknownSelectionMode  = errors.New("unknown product selection mode")
	ErrUnknownField          = errors.New("unknown editable field")
	ErrSignatureNotFound     = errors.New("signature block not found")
)
