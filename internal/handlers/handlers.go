package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/soilpredictor/soil-api/internal/dataset"
	"github.com/soilpredictor/soil-api/internal/soil"
)

const (
	invalidInputMessage   = "Invalid input. Please enter valid numeric values for all fields."
	modelMissingMessage   = "The soil model is not loaded, predictions are unavailable."
	predictFailedMessage  = "Prediction failed. Please try again."
	datasetMissingMessage = "The soil dataset is not loaded."
)

type Options struct {
	Predictor *soil.Predictor

	// ModelErr is the startup load failure, shown to every visitor.
	ModelErr    error
	Classes     []string
	Dataset     *dataset.Dataset
	DatasetErr  error
	ImagesDir   string
	ImageWidth  int
	PreviewRows int
}

type Handler struct {
	predictor   *soil.Predictor
	modelErr    error
	classes     []string
	data        *dataset.Dataset
	dataErr     error
	imagesDir   string
	imageWidth  int
	previewRows int
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		predictor:   opts.Predictor,
		modelErr:    opts.ModelErr,
		classes:     opts.Classes,
		data:        opts.Dataset,
		dataErr:     opts.DatasetErr,
		imagesDir:   opts.ImagesDir,
		imageWidth:  opts.ImageWidth,
		previewRows: opts.PreviewRows,
	}
	if h.predictor == nil {
		h.predictor = soil.NewPredictor(nil)
	}
	if h.data == nil && h.dataErr == nil {
		h.dataErr = errors.New("no dataset configured")
	}
	if h.imageWidth <= 0 {
		h.imageWidth = 250
	}
	return h
}

func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.predictor.Available(),
		Classes:     h.classes,
	}
	if h.modelErr != nil {
		resp.ModelError = h.modelErr.Error()
	}
	if h.data != nil {
		resp.DatasetRows = len(h.data.Rows)
	}
	if h.dataErr != nil {
		resp.DatasetErr = h.dataErr.Error()
	}
	if !resp.ModelLoaded || h.dataErr != nil {
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

// Predict is the JSON counterpart of the prediction form.
func (h *Handler) Predict(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	result, err := h.predictor.Evaluate(req.raw())
	if err != nil {
		status, msg := h.describeError(err)
		resp := errorResponse{Error: msg}
		var inErr *soil.InputError
		if errors.As(err, &inErr) {
			resp.Field = formKeys[fieldIndex(inErr.Field)]
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, PredictionResponse{
		PredictionResult: result,
		ImageURL:         imageURL(result.Image),
		Message:          successMessage(result.Label),
	})
}

// describeError maps a prediction failure to a status and a message that
// is safe to show to the user.
func (h *Handler) describeError(err error) (int, string) {
	var inErr *soil.InputError
	switch {
	case errors.As(err, &inErr):
		return http.StatusUnprocessableEntity, fmt.Sprintf("%s (%s)", invalidInputMessage, inErr.Error())
	case errors.Is(err, soil.ErrModelUnavailable):
		if h.modelErr != nil {
			return http.StatusServiceUnavailable, fmt.Sprintf("%s (%v)", modelMissingMessage, h.modelErr)
		}
		return http.StatusServiceUnavailable, modelMissingMessage
	default:
		log.WithError(err).Error("[Predict] Prediction error")
		return http.StatusInternalServerError, predictFailedMessage
	}
}

func fieldIndex(name string) int {
	for i, f := range soil.FieldNames {
		if f == name {
			return i
		}
	}
	return 0
}

func successMessage(label soil.SoilLabel) string {
	return fmt.Sprintf("According to the entered values, the soil appears to be %s.", label)
}

func (h *Handler) requireDataset(c *gin.Context) bool {
	if h.dataErr != nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: fmt.Sprintf("%s (%v)", datasetMissingMessage, h.dataErr)})
		return false
	}
	return true
}

func (h *Handler) DatasetPreview(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	limit := h.previewRows
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{
		"features": h.data.Features,
		"rows":     h.data.Head(limit),
		"total":    len(h.data.Rows),
	})
}

func (h *Handler) LabelDistribution(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	c.JSON(http.StatusOK, h.data.LabelCounts())
}

func (h *Handler) Correlation(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	c.JSON(http.StatusOK, h.data.Correlation())
}

func (h *Handler) Summary(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	c.JSON(http.StatusOK, h.data.Describe())
}

func (h *Handler) Histogram(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	bins := dataset.DefaultBins
	if v := c.Query("bins"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "bins must be between 1 and 200"})
			return
		}
		bins = n
	}
	feature := c.Query("feature")
	if feature == "" && len(h.data.Features) > 0 {
		feature = h.data.Features[0]
	}
	hist, err := h.data.Histogram(feature, bins)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feature": feature, "bins": hist})
}

func (h *Handler) Scatter(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	x, y := c.Query("x"), c.Query("y")
	if x == "" && len(h.data.Features) > 0 {
		x = h.data.Features[0]
	}
	if y == "" && len(h.data.Features) > 1 {
		y = h.data.Features[1]
	}
	series, err := h.data.Scatter(x, y)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"x": x, "y": y, "series": series})
}
