package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/document"
	"github.com/yourusername/resumeiq-api/internal/inference"
	"github.com/yourusername/resumeiq-api/internal/storage"
)

// MaxUploadBytes bounds every uploaded document.
const MaxUploadBytes = 10 << 20

var errFileTooLarge = errors.New("file too large")

// ── Helpers ──────────────────────────────────────────

// respondError maps the errors that may reach a caller to HTTP statuses.
// Anything unexpected is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var extErr *document.ExtractionError
	switch {
	case errors.Is(err, inference.ErrInputTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume text is empty or too short."})
	case errors.As(err, &extErr):
		log.Warn().Err(err).Msg("Document extraction failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Could not read this document. It may be corrupted or image-based.",
		})
	case errors.Is(err, document.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOCX and plain text files are supported"})
	case errors.Is(err, storage.ErrInvalidKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file key"})
	case errors.Is(err, errFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large. Maximum size is 10MB."})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// targetRoleFromPrompt reads "Target Role: X. ..." and returns X.
func targetRoleFromPrompt(prompt string) string {
	role := strings.TrimSpace(strings.Replace(prompt, "Target Role:", "", 1))
	if i := strings.Index(role, "."); i != -1 {
		role = role[:i]
	}
	return strings.TrimSpace(role)
}

// readFile reads an uploaded part into memory, enforcing MaxUploadBytes.
func readFile(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxUploadBytes {
		return nil, errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, errFileTooLarge
	}
	return data, nil
}
