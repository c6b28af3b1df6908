package utils

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination is the page/limit/total block every list endpoint returns.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Pages int64 `json:"pages"`
}

// ParsePagination reads page/limit query params. Page is 1-indexed and
// defaults to 1; limit defaults to defLimit and is capped at maxLimit.
func ParsePagination(r *http.Request, defLimit, maxLimit int64) (page, limit, skip int64) {
	q := r.URL.Query()

	page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, (page - 1) * limit
}

// NewPagination computes the pages count for a result set.
func NewPagination(total, page, limit int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// RegexFilter builds a case-insensitive substring match on field.
func RegexFilter(field, search string) bson.M {
	return bson.M{field: bson.M{"$regex": search, "$options": "i"}}
}

// AllSentinel is the search prefix that forces an unfiltered listing when a
// filtered query matched nothing.
const AllSentinel = "@all"

func IsAllSentinel(s string) bool {
	return strings.HasPrefix(s, AllSentinel)
}

// FindAndDecode runs a find and decodes every document into T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}
