package workflow

import (
	"bitbucket.org/mmdatafocus/hours_backend/config"
	"bitbucket.org/mmdatafocus/hours_backend/models"
	"github.com/sirupsen/logrus"
)

// ProcessReconciliationWorkflow runs the full pipeline over two raw tables:
// normalize both sources, aggregate, classify. Returns the live session.
func ProcessReconciliationWorkflow(logger *logrus.Logger, sessionId string, primary, secondary *models.RawTable) (*models.ReconciliationSession, error) {
	session, err := models.NewReconciliationSession(sessionId, primary, secondary)
	if err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessReconciliationWorkflow", "Creating session", sessionId, err)
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"sessionId":        session.Id,
		"primaryRecords":   len(session.PrimaryRecords),
		"secondaryRecords": len(session.SecondaryRecords),
		"discrepancies":    len(session.Discrepancies),
	}).Info("reconciliation session created")
	return session, nil
}

// ProcessReviewWorkflow applies a batch of reviewer edits. Each edit is
// validated before any row is touched; the first failure aborts the batch.
func ProcessReviewWorkflow(logger *logrus.Logger, session *models.ReconciliationSession, edits []models.ReviewInput) error {
	for _, edit := range edits {
		if err := session.ApplyReview(edit); err != nil {
			config.LogError(logger, "reconciliationWorkflow.go", "ProcessReviewWorkflow", "Applying reviewer edit", edit, err)
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"sessionId": session.Id,
		"edits":     len(edits),
	}).Info("reviewer edits applied")
	return nil
}

// ProcessValidationWorkflow runs the correction overlay and builds the
// client summary for the session's current state.
func ProcessValidationWorkflow(logger *logrus.Logger, session *models.ReconciliationSession) ([]models.EffectiveHours, models.CorrectionSummary, string) {
	effective, summary := session.Validate()
	text := session.Summary()

	logger.WithFields(logrus.Fields{
		"sessionId":               session.Id,
		"correctedPrimaryTotal":   summary.CorrectedPrimaryTotal,
		"correctedSecondaryTotal": summary.CorrectedSecondaryTotal,
		"status":                  summary.MatchStatus(),
	}).Info("validation completed")
	return effective, summary, text
}

// ProcessDayFilterWorkflow restricts the comparison to one day of week and
// recomputes, preserving reviewer annotations on unaffected rows.
func ProcessDayFilterWorkflow(logger *logrus.Logger, session *models.ReconciliationSession, day string) error {
	if err := session.SetDayFilter(day); err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessDayFilterWorkflow", "Setting day filter", day, err)
		return err
	}
	if session.DayFilter != "" && !session.DayFilterApplied {
		logger.WithFields(logrus.Fields{
			"sessionId": session.Id,
			"day":       day,
		}).Warn("selected day not present in primary data, using full totals")
	}
	return nil
}
