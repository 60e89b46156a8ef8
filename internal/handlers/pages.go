package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soilpredictor/soil-api/internal/dataset"
	"github.com/soilpredictor/soil-api/internal/soil"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"f2": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"barWidth": func(n, max int) int {
		if max <= 0 {
			return 0
		}
		return n * 100 / max
	},
	"imageURL": imageURL,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}

type page struct {
	Title      string
	Active     string
	ModelError string
}

type formField struct {
	Key   string
	Label string
	Value string
}

type predictPage struct {
	page
	Fields  []formField
	Result  *soil.PredictionResult
	Message string
	Error   string
}

type visualizePage struct {
	page
	Error       string
	Features    []string
	Rows        []dataset.Row
	Total       int
	Labels      []dataset.LabelCount
	MaxCount    int
	Correlation dataset.Matrix
	Summaries   []dataset.Summary
}

func (h *Handler) basePage(title, active string) page {
	p := page{Title: title, Active: active}
	if h.modelErr != nil {
		p.ModelError = h.modelErr.Error()
	}
	return p
}

func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", h.basePage("Soil Predictor", "about"))
}

func (h *Handler) PredictForm(c *gin.Context) {
	c.HTML(http.StatusOK, "predict.html", predictPage{
		page:   h.basePage("Soil Prediction", "predict"),
		Fields: formFields(soil.RawInputs{}),
	})
}

// PredictSubmit handles both form buttons. Clear discards the submission
// and starts over with an empty form.
func (h *Handler) PredictSubmit(c *gin.Context) {
	if c.PostForm("action") == "clear" {
		c.Redirect(http.StatusSeeOther, "/predict")
		return
	}

	var raw soil.RawInputs
	for i, key := range formKeys {
		raw[i] = c.PostForm(key)
	}

	p := predictPage{
		page:   h.basePage("Soil Prediction", "predict"),
		Fields: formFields(raw),
	}

	result, err := h.predictor.Evaluate(raw)
	if err != nil {
		status, msg := h.describeError(err)
		p.Error = msg
		c.HTML(status, "predict.html", p)
		return
	}

	p.Result = result
	p.Message = successMessage(result.Label)
	c.HTML(http.StatusOK, "predict.html", p)
}

func formFields(raw soil.RawInputs) []formField {
	fields := make([]formField, soil.NumFeatures)
	for i := range fields {
		label := soil.FieldNames[i]
		if label == "Moisture" {
			label = "Soil Moisture"
		}
		fields[i] = formField{Key: formKeys[i], Label: label, Value: strings.TrimSpace(raw[i])}
	}
	return fields
}

func (h *Handler) Visualize(c *gin.Context) {
	p := visualizePage{page: h.basePage("Soil Type Classification Dashboard", "visualize")}
	if h.dataErr != nil {
		p.Error = fmt.Sprintf("%s (%v)", datasetMissingMessage, h.dataErr)
		c.HTML(http.StatusServiceUnavailable, "visualize.html", p)
		return
	}

	p.Features = h.data.Features
	p.Rows = h.data.Head(h.previewRows)
	p.Total = len(h.data.Rows)
	p.Labels = h.data.LabelCounts()
	for _, l := range p.Labels {
		if l.Count > p.MaxCount {
			p.MaxCount = l.Count
		}
	}
	p.Correlation = h.data.Correlation()
	p.Summaries = h.data.Describe()
	c.HTML(http.StatusOK, "visualize.html", p)
}
