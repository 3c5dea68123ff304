package importer

import "errors"

var (
	ErrCatalogRequired = errors.New("importer: catalog repository is required")
	ErrMissingColumns  = errors.New("importer: csv is missing required columns")
	ErrBadRow          = errors.New("importer: invalid csv row")
)
