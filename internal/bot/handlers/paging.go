package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the number of listing rows shown per message.
const PageSize = 10

// pagePayload is the data carried by a pagination button: the target page
// and the encoded filter that produced the listing.
func pagePayload(page int, filter string) string {
	return strconv.Itoa(page) + "|" + filter
}

func parsePagePayload(data string) (int, url.Values, error) {
	pageStr, filter, _ := strings.Cut(data, "|")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return 0, nil, fmt.Errorf("bad page %q", pageStr)
	}

	values, err := url.ParseQuery(filter)
	if err != nil {
		return 0, nil, fmt.Errorf("bad filter %q: %w", filter, err)
	}

	return page, values, nil
}

// pageBounds clamps page into range and returns the slice bounds for it.
func pageBounds(total, page int) (start, end, clamped, pages int) {
	pages = (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}

	start = page * PageSize
	end = start + PageSize
	if end > total {
		end = total
	}
	return start, end, page, pages
}
