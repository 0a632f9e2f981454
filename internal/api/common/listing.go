package common

import (
	"net/http"

	"github.com/cartesiandb/federation-registry-server/internal/pagination"
)

// ListResponse is the envelope of every listing endpoint.
type ListResponse struct {
	Items      any              `json:"items"`
	TotalCount int              `json:"total_count"`
	Links      pagination.Links `json:"_links"`
}

// WriteListResponse writes one page of items with the total count and the
// navigation links derived from the request path.
func WriteListResponse(w http.ResponseWriter, r *http.Request, items any, total int, p pagination.Params) {
	WriteJSONResponse(w, ListResponse{
		Items:      items,
		TotalCount: total,
		Links:      pagination.BuildLinks(r.URL.Path, p, total),
	}, http.StatusOK)
}
