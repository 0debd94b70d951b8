package handlers

import (
	"mime/multipart"
	"strings"

	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/imagestore"
	"github.com/gofiber/fiber/v2"
)

const maxImagesPerUpload = 30

type UploadHandler struct {
	store imagestore.Store
}

func NewUploadHandler(store imagestore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) Thumbnail(c *fiber.Ctx) error {
	return h.single(c, "thumbnail", imagestore.FolderThumbnails)
}

func (h *UploadHandler) EmployeeProfile(c *fiber.Ctx) error {
	return h.single(c, "employeeProfile", imagestore.FolderProfiles)
}

func (h *UploadHandler) Images(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Expected a multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(c, "No images uploaded")
	}
	if len(files) > maxImagesPerUpload {
		return badRequest(c, "At most 30 images per upload")
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.upload(c, imagestore.FolderImages, fh)
		if err != nil {
			return respondError(c, "upload.images", err)
		}
		if url == "" {
			return badRequest(c, "Only image files are accepted")
		}
		urls = append(urls, url)
	}

	return c.JSON(dto.UploadResponse{Success: true, URLs: urls})
}

func (h *UploadHandler) single(c *fiber.Ctx, field, folder string) error {
	fh, err := c.FormFile(field)
	if err != nil {
		return badRequest(c, "Missing file field "+field)
	}

	url, err := h.upload(c, folder, fh)
	if err != nil {
		return respondError(c, "upload."+field, err)
	}
	if url == "" {
		return badRequest(c, "Only image files are accepted")
	}

	return c.JSON(dto.UploadResponse{Success: true, URL: url})
}

// upload returns an empty url without error when the file is not an image.
func (h *UploadHandler) upload(c *fiber.Ctx, folder string, fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.store.Upload(c.UserContext(), folder, fh.Filename, contentType, f)
}
