package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"geoks/adapters/report"
	"geoks/adapters/stats/kstest"
	"geoks/adapters/stats/visualize"
	"geoks/domain/core"
	"geoks/domain/geochron"
	apperrors "geoks/internal/errors"
)

// CompareRequest carries two samples and the test options. Uncertainties are
// two-sigma, as reported by the lab; the core halves them on ingest.
type CompareRequest struct {
	XLabel         string    `json:"x_label"`
	YLabel         string    `json:"y_label"`
	XValues        []float64 `json:"x_values" binding:"required"`
	XUncertainties []float64 `json:"x_uncertainties" binding:"required"`
	YValues        []float64 `json:"y_values" binding:"required"`
	YUncertainties []float64 `json:"y_uncertainties" binding:"required"`
	Filter         bool      `json:"filter"`
	Threshold      float64   `json:"threshold"`
	SigmaScale     float64   `json:"sigma_scale"`
	Persist        bool      `json:"persist"`
}

// FilterRequest carries one sample for a standalone xenocryst scan.
type FilterRequest struct {
	Label         string    `json:"label"`
	Values        []float64 `json:"values" binding:"required"`
	Uncertainties []float64 `json:"uncertainties" binding:"required"`
	Threshold     float64   `json:"threshold"`
	SigmaScale    float64   `json:"sigma_scale"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}

	x, y, err := s.buildSamples(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.tester.Run(x, y, s.testOptions(req.Filter, req.Threshold, req.SigmaScale))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Persist && s.results != nil {
		if err := s.results.Save(c.Request.Context(), result); err != nil {
			appErr := apperrors.New(apperrors.CodeStorageFailed, "failed to persist result")
			appErr.Cause = err
			respondError(c, appErr)
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}

	sample, err := geochron.NewSample(label(req.Label, "sample"), req.Values, req.Uncertainties)
	if err != nil {
		respondError(c, err)
		return
	}

	opts := s.cfg.Filter.FilterOptions()
	if req.Threshold != 0 {
		opts.Threshold = req.Threshold
	}
	if req.SigmaScale != 0 {
		opts.SigmaScale = req.SigmaScale
	}

	result, err := kstest.FilterXenocrysts(sample, opts)
	if err != nil {
		respondError(c, apperrors.Wrapf(err, "filter on sample %q", sample.Label))
		return
	}

	c.JSON(http.StatusOK, gin.H{"found": result.Found(), "result": result})
}

func (s *Server) handleVisualize(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}

	x, y, err := s.buildSamples(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.tester.Run(x, y, s.testOptions(req.Filter, req.Threshold, req.SigmaScale))
	if err != nil {
		respondError(c, err)
		return
	}

	// Spans are taken at the post-filter sample points the statistic was
	// computed from.
	if result.FilterX != nil && result.FilterX.Found() {
		x = result.FilterX.RetainedSample()
	}
	if result.FilterY != nil && result.FilterY.Found() {
		y = result.FilterY.RetainedSample()
	}

	comparison, err := visualize.Compare(x, y, result, visualize.DefaultGridPoints)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "comparison": comparison})
}

func (s *Server) handleReport(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperrors.CodeInvalidInput})
		return
	}

	x, y, err := s.buildSamples(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.tester.Run(x, y, s.testOptions(req.Filter, req.Threshold, req.SigmaScale))
	if err != nil {
		respondError(c, err)
		return
	}

	html, err := report.HTML(result, x, y)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleGetResult(c *gin.Context) {
	result, err := s.results.GetByID(c.Request.Context(), core.ResultID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListResults(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	results, err := s.results.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[API] failed to list results: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list results", "code": apperrors.CodeStorageFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (s *Server) buildSamples(req *CompareRequest) (*geochron.Sample, *geochron.Sample, error) {
	x, err := geochron.NewSample(label(req.XLabel, "x"), req.XValues, req.XUncertainties)
	if err != nil {
		return nil, nil, err
	}
	y, err := geochron.NewSample(label(req.YLabel, "y"), req.YValues, req.YUncertainties)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (s *Server) testOptions(filter bool, threshold, sigmaScale float64) kstest.Options {
	opts := kstest.Options{Filter: filter, FilterOptions: s.cfg.Filter.FilterOptions()}
	if threshold != 0 {
		opts.FilterOptions.Threshold = threshold
	}
	if sigmaScale != 0 {
		opts.FilterOptions.SigmaScale = sigmaScale
	}
	return opts
}

func label(raw, fallback string) core.SampleLabel {
	if raw == "" {
		raw = fallback
	}
	return core.SampleLabel(raw)
}

// respondError maps core failures onto HTTP statuses: user-input problems are
// 400s, everything else is a 500. Plain errors from the core are wrapped so
// the response carries a stable code alongside the message.
func respondError(c *gin.Context, err error) {
	if !apperrors.IsAppError(err) {
		err = apperrors.Wrap(err, "request failed")
	}
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	if code == apperrors.CodeInvalidInput || code == apperrors.CodeFilterFailed {
		status = http.StatusBadRequest
	}
	log.Printf("[API] %s: %v", code, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
