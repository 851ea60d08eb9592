package handlers

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/purnachandra/internal/services"
)

// mediaStore is the media client surface used by MediaHandler.
type mediaStore interface {
	DefaultFolder() string
	Upload(ctx context.Context, filename string, file io.Reader, folder string) (*services.MediaAsset, error)
	Destroy(ctx context.Context, publicID string) error
	List(ctx context.Context, prefix string) ([]services.MediaAsset, error)
	Rename(ctx context.Context, fromPublicID, toPublicID string) (*services.MediaAsset, error)
	SetMetadata(ctx context.Context, publicID string, meta services.MediaMetadata) error
}

// MediaHandler proxies image management to the media CDN.
type MediaHandler struct {
	media mediaStore
}

// NewMediaHandler constructs MediaHandler.
func NewMediaHandler(media mediaStore) *MediaHandler {
	return &MediaHandler{media: media}
}

func mediaError(err error) error {
	switch {
	case errors.Is(err, services.ErrMediaNotConfigured):
		return fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	case errors.Is(err, services.ErrMediaNotFound):
		return fiber.NewError(fiber.StatusNotFound, "media asset not found")
	default:
		return err
	}
}

// folderFor nests the requested folder under the configured root folder.
func (h *MediaHandler) folderFor(requested string) string {
	root := h.media.DefaultFolder()
	requested = strings.Trim(strings.TrimSpace(requested), "/")
	if requested == "" {
		return root
	}
	if root == "" || strings.HasPrefix(requested, root+"/") || requested == root {
		return requested
	}
	return path.Join(root, requested)
}

// Upload stores the multipart "file" on the CDN.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file")
	}
	defer file.Close()

	asset, err := h.media.Upload(c.UserContext(), header.Filename, file, h.folderFor(c.FormValue("folder")))
	if err != nil {
		return mediaError(err)
	}
	return created(c, asset)
}

// List returns the assets under a folder prefix.
func (h *MediaHandler) List(c *fiber.Ctx) error {
	assets, err := h.media.List(c.UserContext(), h.folderFor(c.Query("prefix")))
	if err != nil {
		return mediaError(err)
	}
	return ok(c, assets)
}

// Delete removes an asset. The public id may contain slashes and is passed as a wildcard.
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	publicID := strings.Trim(c.Params("*"), "/")
	if publicID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "publicId is required")
	}
	if err := h.media.Destroy(c.UserContext(), publicID); err != nil {
		return mediaError(err)
	}
	return ok(c, fiber.Map{"publicId": publicID})
}

type renameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Rename moves an asset to a new public id.
func (h *MediaHandler) Rename(c *fiber.Ctx) error {
	var req renameRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := requiredField("from", req.From); err != nil {
		return err
	}
	if err := requiredField("to", req.To); err != nil {
		return err
	}
	asset, err := h.media.Rename(c.UserContext(), strings.TrimSpace(req.From), strings.TrimSpace(req.To))
	if err != nil {
		return mediaError(err)
	}
	return ok(c, asset)
}

type metadataRequest struct {
	PublicID string `json:"publicId"`
	services.MediaMetadata
}

// SetMetadata attaches alt text, caption and category to an asset.
func (h *MediaHandler) SetMetadata(c *fiber.Ctx) error {
	var req metadataRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := requiredField("publicId", req.PublicID); err != nil {
		return err
	}
	if err := h.media.SetMetadata(c.UserContext(), req.PublicID, req.MediaMetadata); err != nil {
		return mediaError(err)
	}
	return ok(c, req)
}
