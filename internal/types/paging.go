package types

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

// Paging selects a slice of a listing endpoint. Zero fields are omitted from
// the query string. Extra is merged verbatim, for keys this struct does not
// name.
type Paging struct {
	Page    int    `url:"page,omitempty"`
	Count   int    `url:"count,omitempty"`
	SinceID string `url:"since_id,omitempty"`
	MaxID   string `url:"max_id,omitempty"`
	Cursor  string `url:"cursor,omitempty"`

	Extra url.Values `url:"-"`
}

// Values expands p into query parameters.
func (p Paging) Values() (url.Values, error) {
	v, err := query.Values(p)
	if err != nil {
		return nil, err
	}
	for k, vals := range p.Extra {
		v[k] = append(v[k], vals...)
	}
	return v, nil
}
