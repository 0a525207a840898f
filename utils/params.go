package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParsePagination reads skip/limit from ?page= and ?limit= with sane bounds.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a ?sort= key to a bson sort document, falling back to def
// for unknown or empty keys.
func ParseSort(key string, def bson.D, allowed map[string]bson.D) bson.D {
	if key == "" || allowed == nil {
		return def
	}
	if sort, ok := allowed[key]; ok {
		return sort
	}
	return def
}

// RegexFilter builds a case-insensitive substring match for a field.
func RegexFilter(field, value string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: value, Options: "i"}}}
}
