package catalog

import "errors"

var (
	ErrEntryNotFound     = errors.New("catalog entry not found")
	ErrCopyNotFound      = errors.New("copy not found")
	ErrCopyBarcodeExists = errors.New("copy barcode already exists")
	ErrCopyUnavailable   = errors.New("copy is already checked out")
)
