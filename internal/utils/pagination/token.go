package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Cursor points just past the last row of a page in a deterministically sorted listing.
// LastID guards against the listing having shifted between requests.
type Cursor struct {
	Offset int
	LastID string
}

// EncodeCursor creates a base64 encoded token from a cursor.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(strconv.Itoa(c.Offset), c.LastID)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset < 0 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (offset parse): %q", parts[0])
	}
	return Cursor{Offset: offset, LastID: parts[1]}, nil
}

// Page slices ids-aligned rows according to an optional token and a limit.
// idOf extracts the stable identifier of a row. It returns the page and the
// token for the next page, or nil when there is none.
func Page[T any](rows []T, token *string, limit int, idOf func(T) string) ([]T, *string, error) {
	start := 0
	if token != nil && *token != "" {
		c, err := DecodeCursor(*token)
		if err != nil {
			return nil, nil, err
		}
		if c.Offset > len(rows) || (c.Offset > 0 && idOf(rows[c.Offset-1]) != c.LastID) {
			return nil, nil, fmt.Errorf("stale pagination token")
		}
		start = c.Offset
	}
	if limit <= 0 {
		limit = len(rows) - start
	}

	end := start + limit
	if end >= len(rows) {
		return rows[start:], nil, nil
	}
	next := EncodeCursor(Cursor{Offset: end, LastID: idOf(rows[end-1])})
	return rows[start:end], &next, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
