package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/mmdatafocus/hours_backend/config"
	"bitbucket.org/mmdatafocus/hours_backend/middlewares"
	"bitbucket.org/mmdatafocus/hours_backend/models"
	"bitbucket.org/mmdatafocus/hours_backend/models/reports"
	"bitbucket.org/mmdatafocus/hours_backend/utils"
	"bitbucket.org/mmdatafocus/hours_backend/workflow"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func statusForError(err error) int {
	var inputErr *models.InputError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrorSessionNotFound), errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func discrepanciesHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			c.JSON(http.StatusOK, sessionResponse(s))
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func reviewHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var edits []models.ReviewInput
		if err := c.ShouldBindJSON(&edits); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			return workflow.ProcessReviewWorkflow(logger, s, edits)
		})
		if err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reviewer input", "fields": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func dayFilterHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var body struct {
			Day string `json:"day"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			if err := workflow.ProcessDayFilterWorkflow(logger, s, body.Day); err != nil {
				return err
			}
			c.JSON(http.StatusOK, sessionResponse(s))
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

// replaceRecordsHandler swaps in reviewer-edited normalized rows for one
// source and recomputes, keeping prior annotations where rows still match.
func replaceRecordsHandler(store *sessionStore, source models.ReportSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []models.EmployeeHourRecord
		if err := c.ShouldBindJSON(&records); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			if source == models.ReportSourcePrimary {
				s.ReplacePrimaryRecords(records)
			} else {
				s.ReplaceSecondaryRecords(records)
			}
			c.JSON(http.StatusOK, sessionResponse(s))
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func validateHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			effective, summary, text := workflow.ProcessValidationWorkflow(logger, s)
			c.JSON(http.StatusOK, gin.H{
				"totals":    summary,
				"status":    summary.MatchStatus(),
				"effective": effective,
				"summary":   text,
			})
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func summaryTextHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			c.Header("Content-Disposition", "attachment; filename=client_summary.txt")
			c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(s.Summary()))
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func exportWorkbookHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			f, err := reports.BuildWorkbook(s)
			if err != nil {
				return err
			}
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", "attachment; filename=reconciliation.xlsx")
			if err := f.Write(c.Writer); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func exportCSVHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.withSession(c.Param("id"), func(s *models.ReconciliationSession) error {
			effective, _ := s.Validate()
			c.Header("Content-Type", "text/csv; charset=utf-8")
			c.Header("Content-Disposition", "attachment; filename=discrepancies_corrected.csv")
			c.Status(http.StatusOK)
			return reports.WriteDiscrepancyCSV(c.Writer, effective)
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
		}
	}
}

func deleteSessionHandler(store *sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.delete(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

func newRouter(store *sessionStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); allowedOrigins != "" {
		corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.POST("/sessions", createSessionHandler(store))

	session := r.Group("/sessions/:id", middlewares.SessionIdMiddleware())
	session.GET("/discrepancies", discrepanciesHandler(store))
	session.POST("/review", reviewHandler(store))
	session.PUT("/day", dayFilterHandler(store))
	session.PUT("/primary", replaceRecordsHandler(store, models.ReportSourcePrimary))
	session.PUT("/secondary", replaceRecordsHandler(store, models.ReportSourceSecondary))
	session.POST("/validate", validateHandler(store))
	session.GET("/summary.txt", summaryTextHandler(store))
	session.GET("/export.xlsx", exportWorkbookHandler(store))
	session.GET("/discrepancies.csv", exportCSVHandler(store))
	session.DELETE("", deleteSessionHandler(store))

	return r
}

func main() {
	config.LoadEnv()
	logger := config.GetLogger()

	if !config.DebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	store := newSessionStore()
	r := newRouter(store)

	srv := &http.Server{
		Addr:    ":" + config.Port(),
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"port": config.Port(),
	}).Info("hours reconciliation backend listening")

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.LogError(logger, "server.go", "main", "Graceful shutdown", nil, err)
		}
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.LogError(logger, "server.go", "main", "HTTP server", nil, err)
			os.Exit(1)
		}
	}
}
