package market

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

var retailerKeys = func() []string {
	out := make([]string, len(Retailers))
	for i, r := range Retailers {
		out[i] = strings.ToLower(string(r))
	}
	return out
}()

// MatchRetailer resolves free text such as "amzn" or "itunes" to a retailer.
// Exact case-insensitive names win; otherwise the best fuzzy match is used.
func MatchRetailer(query string) (Retailer, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", false
	}
	for _, r := range Retailers {
		if strings.EqualFold(string(r), q) {
			return r, true
		}
	}
	matches := fuzzy.Find(strings.ToLower(q), retailerKeys)
	if len(matches) == 0 {
		return "", false
	}
	return Retailers[matches[0].Index], true
}

// ListingFor returns the catalog index for a retailer.
func ListingFor(r Retailer) (int, bool) {
	for i, l := range Catalog {
		if l.Retailer == r {
			return i, true
		}
	}
	return -1, false
}
