package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// ErrInvalidToken is returned for tokens that do not decode or no longer match a listed item.
var ErrInvalidToken = errors.New("invalid pagination token")

// EncodeToken creates a base64 encoded token from an item's sort date and ID.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the token back into the sort date and ID.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w (base64 decode): %v", ErrInvalidToken, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w (split)", ErrInvalidToken)
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w (date parse): %v", ErrInvalidToken, err)
	}
	return date, parts[1], nil
}

// Page returns the slice of items following the one named by token, at most limit long.
// A zero limit returns the rest of the list. The returned token is empty on the last page.
// items must already be in display order.
func Page[T any](items []T, limit int, token string, key func(T) (time.Time, string)) ([]T, string, error) {
	start := 0
	if token != "" {
		date, id, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = -1
		for i, item := range items {
			d, itemID := key(item)
			if itemID == id {
				if !d.Equal(date) {
					return nil, "", fmt.Errorf("%w (item moved)", ErrInvalidToken)
				}
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", fmt.Errorf("%w (item not found)", ErrInvalidToken)
		}
	}

	end := len(items)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	page := items[start:end]

	next := ""
	if end < len(items) && len(page) > 0 {
		d, id := key(page[len(page)-1])
		next = EncodeToken(d, id)
	}
	return page, next, nil
}
