package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/citasalud/notifier/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationUseCase
}

func NewNotificationHandler(service service.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// UploadAppointments loads a CSV of appointments into the table. With
// auto-run enabled a batch run is queued immediately, once per table.
func (h *NotificationHandler) UploadAppointments(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing appointment file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	stats, err := h.service.LoadAppointments(file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"stats": stats}
	if h.service.AutoRunEnabled() {
		runID, err := h.service.TriggerRun(c.Request.Context(), true)
		if err != nil {
			resp["run_skipped"] = err.Error()
		} else {
			resp["run_id"] = runID
		}
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *NotificationHandler) ListAppointments(c *gin.Context) {
	records := h.service.Records(boolParam(c, "notified"), boolParam(c, "rescheduled"))

	c.JSON(http.StatusOK, gin.H{
		"appointments": records,
		"count":        len(records),
		"stats":        h.service.Stats(),
	})
}

func (h *NotificationHandler) ExportAppointments(c *gin.Context) {
	filename := fmt.Sprintf("citas_actualizadas_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if err := h.service.Export(c.Writer); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
}

func (h *NotificationHandler) TriggerRun(c *gin.Context) {
	runID, err := h.service.TriggerRun(c.Request.Context(), false)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrEmptyTable):
			status = http.StatusConflict
		case errors.Is(err, entity.ErrRunInProgress):
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

func (h *NotificationHandler) GetRun(c *gin.Context) {
	report, err := h.service.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *NotificationHandler) GetLogs(c *gin.Context) {
	logs, err := h.service.Logs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

func boolParam(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
