package main

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"bitbucket.org/mmdatafocus/hours_backend/config"
	"bitbucket.org/mmdatafocus/hours_backend/models"
	"bitbucket.org/mmdatafocus/hours_backend/models/reports"
	"bitbucket.org/mmdatafocus/hours_backend/workflow"
	"github.com/gin-gonic/gin"
)

var reportExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// createSessionHandler accepts the two raw reports as a multipart upload
// ("primary" and "secondary" file fields) and opens a reconciliation
// session over them. All reconciliation logic lives behind the workflow
// call; this handler only moves bytes.
func createSessionHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		primaryHeader, err := c.FormFile("primary")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "primary report file is required"})
			return
		}
		secondaryHeader, err := c.FormFile("secondary")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "secondary report file is required"})
			return
		}

		maxSize := config.MaxUploadSizeBytes()
		if primaryHeader.Size > maxSize || secondaryHeader.Size > maxSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report file exceeds upload size limit"})
			return
		}

		primaryTable, err := readUpload(primaryHeader, models.PrimaryNormalizerConfig())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "primary report: " + err.Error()})
			return
		}
		secondaryTable, err := readUpload(secondaryHeader, models.SecondaryNormalizerConfig())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "secondary report: " + err.Error()})
			return
		}

		session, err := workflow.ProcessReconciliationWorkflow(logger, store.newId(), primaryTable, secondaryTable)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		store.put(session)

		c.JSON(http.StatusCreated, sessionResponse(session))
	}
}

func readUpload(header *multipart.FileHeader, cfg models.NormalizerConfig) (*models.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !reportExtensions[ext] {
		return nil, models.NewInputError("unsupported report format " + ext + " (use .xlsx or .csv)")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return reports.ReadReport(header.Filename, file, cfg)
}

func sessionResponse(session *models.ReconciliationSession) gin.H {
	return gin.H{
		"id":               session.Id,
		"dayFilter":        session.DayFilter,
		"dayFilterApplied": session.DayFilterApplied,
		"tallies":          session.Tallies(),
		"discrepancies":    session.Discrepancies,
	}
}
