package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/tidwall/gjson"
)

// localDateLayout is the datetime-local input format sent by the browsers, interpreted as UTC
const localDateLayout = "2006-01-02T15:04:05"

var registerTagNameOnce sync.Once

// metricRequest is the ingestion body. Any client supplied id or timestamp is ignored.
type metricRequest struct {
	ServerName  string `json:"serverName" binding:"required,notblank"`
	Environment string `json:"environment" binding:"required,notblank"`
	MetricType  string `json:"metricType" binding:"required,notblank"`
	MetricValue string `json:"metricValue" binding:"required,notblank"`
	Source      string `json:"source"`
}

func (req metricRequest) toRecord() common.MetricRecord {
	return common.MetricRecord{
		ServerName:  req.ServerName,
		Environment: req.Environment,
		MetricType:  req.MetricType,
		MetricValue: req.MetricValue,
		Source:      req.Source,
	}
}

// dashboardConfigRequest is the create and update body
type dashboardConfigRequest struct {
	Name      string `json:"name" binding:"required,notblank,max=100"`
	Layout    string `json:"layout" binding:"required,notblank"`
	Widgets   string `json:"widgets" binding:"required"`
	Settings  string `json:"settings"`
	IsDefault bool   `json:"isDefault"`
}

func (req dashboardConfigRequest) validateDocuments() map[string]string {
	fields := make(map[string]string)
	if !gjson.Valid(req.Widgets) || !gjson.Parse(req.Widgets).IsArray() {
		fields["widgets"] = "must be a JSON array"
	}
	if len(req.Settings) > 0 && (!gjson.Valid(req.Settings) || !gjson.Parse(req.Settings).IsObject()) {
		fields["settings"] = "must be a JSON object"
	}

	return fields
}

func (req dashboardConfigRequest) toConfig() common.DashboardConfig {
	return common.DashboardConfig{
		Name:      req.Name,
		Layout:    req.Layout,
		Widgets:   req.Widgets,
		Settings:  req.Settings,
		IsDefault: req.IsDefault,
	}
}

// useJSONFieldNames makes the validation errors report the JSON field names
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})
}

// bindJSON decodes and validates the request body, writing the 400 response itself on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	return handleBindError(c, c.ShouldBindJSON(obj))
}

// bindJSONObject accepts only a JSON object body, then decodes and validates it like bindJSON
func bindJSONObject(c *gin.Context, obj interface{}) bool {
	data, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the body must be a JSON object"})
		return false
	}

	return handleBindError(c, binding.JSON.BindBody(data, obj))
}

func handleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondInvalidFields(c, describeValidationErrors(validationErrors))
		return false
	}

	log.Debug("invalid request body", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})

	return false
}

func respondInvalidFields(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "invalid payload",
		"fields": fields,
	})
}

func describeValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required", "notblank":
			fields[fe.Field()] = "is required"
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s characters long", fe.Param())
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s", fe.Param())
		default:
			fields[fe.Field()] = fmt.Sprintf("failed the %s check", fe.Tag())
		}
	}

	return fields
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidID, c.Param("id"))
	}

	return id, nil
}

func parseMetricFilter(c *gin.Context) (common.MetricFilter, error) {
	filter := common.MetricFilter{
		ServerName:  strings.TrimSpace(c.Query("serverName")),
		Environment: strings.TrimSpace(c.Query("environment")),
		MetricType:  strings.TrimSpace(c.Query("metricType")),
	}

	var err error
	filter.StartDate, err = parseDate(c.Query("startDate"))
	if err != nil {
		return common.MetricFilter{}, err
	}
	filter.EndDate, err = parseDate(c.Query("endDate"))
	if err != nil {
		return common.MetricFilter{}, err
	}

	return filter, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err = time.ParseInLocation(localDateLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidDate, value)
	}

	return &t, nil
}
