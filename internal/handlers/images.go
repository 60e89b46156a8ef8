package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
)

const maxImageWidth = 1600

func imageURL(name string) string {
	if name == "" {
		return ""
	}
	return path.Join("/images", name)
}

// Image serves a picture from the images directory scaled to the requested
// width. Images narrower than the requested width are not upscaled.
func (h *Handler) Image(c *gin.Context) {
	name := c.Param("name")
	ext := strings.ToLower(filepath.Ext(name))
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") || (ext != ".jpg" && ext != ".jpeg" && ext != ".png") {
		c.JSON(http.StatusNotFound, errorResponse{Error: "image not found"})
		return
	}

	width := h.imageWidth
	if v := c.Query("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxImageWidth {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "width must be between 1 and 1600"})
			return
		}
		width = n
	}

	file, err := os.Open(filepath.Join(h.imagesDir, name))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "image not found"})
		return
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		log.WithError(err).WithField("image", name).Warn("[Images] Couldn't decode image")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "image could not be decoded"})
		return
	}

	if img.Bounds().Dx() > width {
		img = resize.Resize(uint(width), 0, img, resize.Lanczos3)
	}

	c.Header("Cache-Control", "public, max-age=3600")
	if format == "png" {
		c.Header("Content-Type", "image/png")
		if err := png.Encode(c.Writer, img); err != nil {
			log.WithError(err).Warn("[Images] Couldn't encode image")
		}
		return
	}
	c.Header("Content-Type", "image/jpeg")
	if err := jpeg.Encode(c.Writer, img, &jpeg.Options{Quality: 90}); err != nil {
		log.WithError(err).Warn("[Images] Couldn't encode image")
	}
}
