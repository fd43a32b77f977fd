package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/transitdesk/lostfound-backend/internal/dto"
	"github.com/transitdesk/lostfound-backend/internal/http/middleware"
	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
	"github.com/transitdesk/lostfound-backend/internal/storage"
)

// MediaPrefix путь, под которым раздаются загруженные фотографии.
const MediaPrefix = "/media"

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler принимает фотографии вещей для заявлений.
type MediaHandler struct {
	storage *storage.PhotoStorage
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(storage *storage.PhotoStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// UploadImage обрабатывает POST /media/images. Возвращает ссылку для поля image заявления.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.Validation("file", "file is required"))
		return
	}

	if file.Size == 0 {
		response.Error(c, apperror.Validation("file", "file must not be empty"))
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		response.Error(c, apperror.Validation("file", fmt.Sprintf("file exceeds %d bytes", h.storage.MaxUploadBytes())))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		response.Error(c, apperror.Validation("file", "unsupported file extension"))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	// Проверяем магические байты (реальный тип файла)
	buffer := make([]byte, 512)
	n, err := io.ReadFull(src, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation("file", "failed to read file"))
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		response.Error(c, apperror.Validation("file", "only jpeg, png, gif and webp images are accepted"))
		return
	}

	// .jpg и .jpeg - это одно и то же
	expectedExt := "." + kind.Extension
	if ext != expectedExt && !(ext == ".jpeg" && expectedExt == ".jpg") {
		response.Error(c, apperror.Validation("file", fmt.Sprintf("extension %s does not match content %s", ext, expectedExt)))
		return
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		response.Error(c, err)
		return
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), middleware.CurrentIdentity(c).UserID, expectedExt, src)
	if errors.Is(err, storage.ErrTooLarge) {
		response.Error(c, apperror.Validation("file", "file exceeds upload limit"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ImageUploadResponse{
		Image:       MediaPrefix + "/" + relativePath,
		ContentType: kind.MIME.Value,
		Size:        size,
	})
}
