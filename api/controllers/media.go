package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazolabs/storefront-backend/api/responses"
	"github.com/hazolabs/storefront-backend/internal/media"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

// multipart form memory budget; larger files spill to temp files
const uploadFormMemory = 8 << 20

func MediaUpload(svc *media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		files := r.MultipartForm.File["image"]
		if len(files) == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "image file is required"))
			return
		}
		file, err := svc.Save(r.Context(), files[0])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, file)
	}
}

func MediaList(svc *media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, files)
	}
}

func MediaDelete(svc *media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "fileName")
		if err := svc.Delete(r.Context(), name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
