package genres

import (
	"net/http"

	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// defaultTaxonomy seeds the genre collection on first read so a fresh
// deployment serves a usable wizard immediately.
var defaultTaxonomy = []models.GenreFamily{
	{
		FamilyID: "rock", Name: "Rock",
		Genres: []models.MainGenre{
			{GenreID: "classic-rock", Name: "Classic Rock", SubGenres: []string{"Psychedelic", "Blues Rock"}},
			{GenreID: "alt-rock", Name: "Alternative Rock", SubGenres: []string{"Grunge", "Shoegaze"}},
			{GenreID: "metal", Name: "Metal", SubGenres: []string{"Doom", "Thrash", "Black Metal"}},
			{GenreID: "punk", Name: "Punk", SubGenres: []string{"Hardcore", "Pop Punk"}},
		},
	},
	{
		FamilyID: "electronic", Name: "Electronic",
		Genres: []models.MainGenre{
			{GenreID: "house", Name: "House", SubGenres: []string{"Deep House", "Tech House"}},
			{GenreID: "techno", Name: "Techno", SubGenres: []string{"Minimal", "Industrial"}},
			{GenreID: "dnb", Name: "Drum & Bass", SubGenres: []string{"Liquid", "Neurofunk"}},
			{GenreID: "ambient", Name: "Ambient"},
		},
	},
	{
		FamilyID: "urban", Name: "Hip-Hop & R&B",
		Genres: []models.MainGenre{
			{GenreID: "hiphop", Name: "Hip-Hop", SubGenres: []string{"Boom Bap", "Trap", "Drill"}},
			{GenreID: "rnb", Name: "R&B", SubGenres: []string{"Neo Soul", "Contemporary"}},
			{GenreID: "funk", Name: "Funk"},
		},
	},
	{
		FamilyID: "roots", Name: "Roots & Acoustic",
		Genres: []models.MainGenre{
			{GenreID: "folk", Name: "Folk", SubGenres: []string{"Indie Folk", "Traditional"}},
			{GenreID: "country", Name: "Country", SubGenres: []string{"Americana", "Bluegrass"}},
			{GenreID: "blues", Name: "Blues"},
			{GenreID: "jazz", Name: "Jazz", SubGenres: []string{"Bebop", "Fusion", "Swing"}},
		},
	},
	{
		FamilyID: "global", Name: "Global & Classical",
		Genres: []models.MainGenre{
			{GenreID: "latin", Name: "Latin", SubGenres: []string{"Reggaeton", "Salsa", "Bossa Nova"}},
			{GenreID: "afrobeat", Name: "Afrobeat"},
			{GenreID: "classical", Name: "Classical", SubGenres: []string{"Baroque", "Contemporary"}},
			{GenreID: "reggae", Name: "Reggae", SubGenres: []string{"Dub", "Dancehall"}},
		},
	},
}

// GetGenres handles GET /api/genres — the family → main genre → sub-genre
// taxonomy backing the wizard's music-preferences step.
func GetGenres(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.GenresCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch genres")
		return
	}
	defer cursor.Close(ctx)

	var families []models.GenreFamily
	if err := cursor.All(ctx, &families); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing genres")
		return
	}

	if len(families) == 0 {
		docs := make([]interface{}, len(defaultTaxonomy))
		for i, f := range defaultTaxonomy {
			docs[i] = f
		}
		// Serve the in-code taxonomy even if seeding fails.
		db.GenresCollection.InsertMany(ctx, docs)
		families = defaultTaxonomy
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"families": families})
}
