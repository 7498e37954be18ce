package content

import "errors"

var (
	ErrFetch           = errors.New("content: fetch failed")
	ErrDecode          = errors.New("content: decode failed")
	ErrItemNotFound    = errors.New("content: item not found")
	ErrNoIndex         = errors.New("content: no index available")
	ErrUnknownStrategy = errors.New("content: unknown localization strategy")
	ErrUnknownKind     = errors.New("content: unknown content kind")
)
