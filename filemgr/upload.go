package filemgr

import (
	"net/http"
	"strings"

	"encore/db"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadImage handles POST /api/uploads/:entity/:pictype with a multipart
// "file" field. Gig uploads must come from the gig's artist (pass ?gigid=).
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entity := EntityType(strings.ToLower(ps.ByName("entity")))
	picType := PictureType(strings.ToLower(ps.ByName("pictype")))

	switch entity {
	case EntityUser, EntityArtist:
	case EntityGig:
		gigID := r.URL.Query().Get("gigid")
		if gigID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "gigid is required for gig uploads")
			return
		}
		count, err := db.GigsCollection.CountDocuments(r.Context(), bson.M{"gigid": gigID, "artist_userid": userID})
		if err != nil || count == 0 {
			utils.RespondWithError(w, http.StatusForbidden, "You do not own this gig")
			return
		}
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported entity type")
		return
	}

	if _, ok := pictureSubfolders[picType]; !ok || picType == PicThumb {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported picture type")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file field is required")
		return
	}

	filename, err := SaveImageForEntity(file, header, entity, picType)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"filename": filename,
		"path":     "/" + ResolvePath(entity, picType) + "/" + filename,
	})
}
