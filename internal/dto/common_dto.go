package dto

// ListQuery is bound from the query string of every collection GET.
// Page 0 means "no pagination": the whole filtered collection is returned.
type ListQuery struct {
	Q     string `form:"q"`
	Page  int    `form:"page"  validate:"min=0"`
	Limit int    `form:"limit" validate:"min=0,max=500"`
}

// DefaultLimit is used when a page is requested without a limit.
const DefaultLimit = 20

// ListResponse is the envelope of a collection GET. Pagination is nil, and
// left out of the JSON, when the request did not ask for a page.
type ListResponse[T any] struct {
	Ok   bool `json:"ok"`
	Data []T  `json:"data"`
	*Pagination
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// DataResponse is the {ok, data} success envelope.
type DataResponse[T any] struct {
	Ok   bool `json:"ok"`
	Data T    `json:"data"`
}

// MsgResponse is the {ok, msg} envelope used for deletes and accepted jobs.
type MsgResponse struct {
	Ok  bool   `json:"ok"`
	Msg string `json:"msg"`
}
