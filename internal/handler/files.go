package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/document"
	"github.com/yourusername/resumeiq-api/internal/storage"
)

type FileHandler struct {
	store storage.ObjectStore
}

func NewFileHandler(store storage.ObjectStore) *FileHandler {
	return &FileHandler{store: store}
}

// Upload handles POST /files/upload
// Stores every multipart "files" part and returns [{name, url, key}]
func (h *FileHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	out := make([]storage.Object, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		if _, err := document.DetectKind(fh.Header.Get("Content-Type"), fh.Filename); err != nil {
			respondError(c, err)
			return
		}
		data, err := readFile(fh)
		if err != nil {
			respondError(c, err)
			return
		}

		obj, err := h.store.Put(c.Request.Context(), storage.NewKey(fh.Filename), bytes.NewReader(data), int64(len(data)), fh.Header.Get("Content-Type"))
		if err != nil {
			log.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to store upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}
		obj.Name = fh.Filename
		out = append(out, obj)

		log.Info().Str("key", obj.Key).Int("bytes", len(data)).Msg("File uploaded")
	}

	c.JSON(http.StatusOK, out)
}
