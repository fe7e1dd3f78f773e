package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/examsched/internal/scheduler"
	"github.com/rhyrak/examsched/pkg/model"
)

func TestObserveRun(t *testing.T) {
	m := New()
	s, err := scheduler.New(nil, m)
	require.NoError(t, err)

	sections := []*model.ExamSection{
		{SubjectID: "CS101", SectionCode: "C1", Course: "BSCS", YearLevel: "1", Department: "CITC", LectureUnits: 3},
		{SubjectID: "CS101", SectionCode: "C2", Course: "BSCS", YearLevel: "1", Department: "CITC", LectureUnits: 3},
		{SubjectID: "BA101", SectionCode: "B1", Course: "BSBA", YearLevel: "1", Department: "CBA", LectureUnits: 3},
	}
	_, err = s.Run(context.Background(), sections, []string{"SCI-1", "SCI-2"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.groups.WithLabelValues(scheduler.PhaseMajor, "placed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sections.WithLabelValues(scheduler.PhaseMajor, "placed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sections.WithLabelValues(scheduler.PhaseMajor, "deferred")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sections.WithLabelValues(scheduler.PhaseRelaxed, "deferred")))
	assert.InDelta(t, 200.0/3.0, testutil.ToFloat64(m.coverage), 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unscheduled))
}

func TestHandlerAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/health", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "examsched_runs_total 0")
}

func TestNilHandler(t *testing.T) {
	var m *Metrics
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
