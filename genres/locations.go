package genres

import (
	"net/http"
	"strings"

	"encore/globals"
	"encore/rdx"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const locationKey = "autocomplete:locations"

var seedLocations = []string{
	"Amsterdam, Netherlands",
	"Austin, United States",
	"Barcelona, Spain",
	"Berlin, Germany",
	"Chicago, United States",
	"Lagos, Nigeria",
	"Lisbon, Portugal",
	"London, United Kingdom",
	"Los Angeles, United States",
	"Manchester, United Kingdom",
	"Melbourne, Australia",
	"Mexico City, Mexico",
	"Mumbai, India",
	"Nashville, United States",
	"New York, United States",
	"Paris, France",
	"Reykjavik, Iceland",
	"Sao Paulo, Brazil",
	"Seoul, South Korea",
	"Tokyo, Japan",
	"Toronto, Canada",
}

// SeedLocations loads the baseline city index into redis. Members score 0 so
// ZRangeByLex gives plain lexicographic prefix search.
func SeedLocations() error {
	members := make([]redis.Z, len(seedLocations))
	for i, loc := range seedLocations {
		members[i] = redis.Z{Score: 0, Member: loc}
	}
	return rdx.Conn.ZAdd(globals.Ctx, locationKey, members...).Err()
}

// SearchLocations handles GET /api/location-search?q=<prefix>.
func SearchLocations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"locations": []string{}})
		return
	}

	results, err := rdx.Conn.ZRangeByLex(r.Context(), locationKey, &redis.ZRangeBy{
		Min:    "[" + query,
		Max:    "[" + query + "\xff",
		Offset: 0,
		Count:  10,
	}).Result()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Location search failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"locations": results})
}
