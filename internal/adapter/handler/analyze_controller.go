package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/coursepulse/errors"
	"github.com/johnquangdev/coursepulse/internal/usecase/feedback"
	"github.com/johnquangdev/coursepulse/pkg/spreadsheet"
)

// AnalyzeController handles feedback spreadsheet uploads
type AnalyzeController struct {
	svc    feedback.Service
	logger *zap.Logger
}

// NewAnalyzeController creates a new analyze controller
func NewAnalyzeController(svc feedback.Service, logger *zap.Logger) *AnalyzeController {
	return &AnalyzeController{svc: svc, logger: logger}
}

type analyzeRequest struct {
	SourceLang string `form:"source_lang" validate:"omitempty,len=2,alpha"`
}

// Analyze accepts a multipart spreadsheet upload, runs the sentiment
// pipeline and returns current plus previous semester rollups.
func (ac *AnalyzeController) Analyze(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// An upload with an empty filename parses as a plain form value,
		// so FormFile reports it as missing. Tell those two cases apart.
		if form := c.Request().MultipartForm; form != nil {
			if _, ok := form.Value["file"]; ok {
				return HandleError(ac.logger, c, errors.ErrNoFileSelected())
			}
		}
		return HandleError(ac.logger, c, errors.ErrMissingFile())
	}
	if fileHeader.Filename == "" {
		return HandleError(ac.logger, c, errors.ErrNoFileSelected())
	}

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("invalid form fields"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("source_lang must be a two-letter language code"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidWorkbook(err))
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidWorkbook(err))
	}

	rows, err := spreadsheet.ReadTable(bytes.NewReader(raw), fileHeader.Filename)
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidWorkbook(err))
	}

	ac.logger.Info("📥 Feedback upload received",
		zap.String("request_id", getRequestID(c)),
		zap.String("filename", fileHeader.Filename),
		zap.Int("rows", len(rows)))

	report, err := ac.svc.Analyze(c.Request().Context(), feedback.AnalyzeInput{
		Rows:       rows,
		Filename:   fileHeader.Filename,
		Raw:        raw,
		SourceLang: req.SourceLang,
	})
	if err != nil {
		return HandleError(ac.logger, c, err)
	}

	return c.JSON(http.StatusOK, report)
}
