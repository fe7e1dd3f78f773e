package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/rhyrak/examsched/internal/csvio"
	"github.com/rhyrak/examsched/internal/logging"
	"github.com/rhyrak/examsched/internal/scheduler"
	"github.com/rhyrak/examsched/internal/store"
	"github.com/rhyrak/examsched/pkg/model"
)

type scheduleForm struct {
	Exams *multipart.FileHeader `form:"exams" binding:"required"`
	Rooms *multipart.FileHeader `form:"rooms" binding:"required"`
	Days  int                   `form:"days" binding:"omitempty,gte=1,lte=31"`
}

type scheduleResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Coverage    float64  `json:"coverage"`
	Scheduled   int      `json:"scheduled"`
	Unscheduled []string `json:"unscheduled"`
	Report      string   `json:"report"`
}

func (s *Server) handlePostSchedule(c *gin.Context) {
	var form scheduleForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		abort(c, badRequest("INVALID_FORM", err))
		return
	}

	delim := s.cfg.CSV.Rune()
	exams, err := loadUpload(form.Exams, func(f multipart.File) ([]*model.ExamSection, error) {
		return csvio.LoadExams(f, delim)
	})
	if err != nil {
		abort(c, badRequest("INVALID_EXAMS", err))
		return
	}
	rooms, err := loadUpload(form.Rooms, func(f multipart.File) ([]*model.Room, error) {
		return csvio.LoadRooms(f, delim)
	})
	if err != nil {
		abort(c, badRequest("INVALID_ROOMS", err))
		return
	}

	cfg := s.cfg.Scheduler.Engine()
	if form.Days > 0 {
		cfg.NumberOfDays = form.Days
	}
	engine, err := scheduler.New(cfg, scheduler.MultiSink{logging.NewEventSink(s.log), s.metrics})
	if err != nil {
		abort(c, badRequest("INVALID_CONFIG", err))
		return
	}
	res, err := engine.Run(c.Request.Context(), exams, model.RoomIDs(rooms))
	if errors.Is(err, scheduler.ErrNoRooms) {
		abort(c, badRequest("INVALID_ROOMS", err))
		return
	}
	if err != nil {
		abort(c, err)
		return
	}

	report := scheduler.Validate(res)
	data, err := csvio.ExportScheduleString(res.Scheduled, delim)
	if err != nil {
		abort(c, err)
		return
	}

	run := &store.Run{
		Status:      store.StatusValid,
		Days:        cfg.NumberOfDays,
		Coverage:    res.Coverage(),
		Scheduled:   res.ScheduledSections(),
		Unscheduled: len(res.Unscheduled),
		Report:      report.Message,
		Data:        data,
	}
	if !report.Valid {
		run.Status = store.StatusInvalid
	}
	if err := s.store.Create(c.Request.Context(), run); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, scheduleResponse{
		ID:          run.ID,
		Status:      run.Status,
		Coverage:    run.Coverage,
		Scheduled:   run.Scheduled,
		Unscheduled: res.UnscheduledCodes(),
		Report:      run.Report,
	})
}

func (s *Server) handleListSchedules(c *gin.Context) {
	runs, err := s.store.List(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": runs})
}

func (s *Server) handleGetSchedule(c *gin.Context) {
	run, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		abort(c, errNotFound)
		return
	}
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	err := s.store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		abort(c, errNotFound)
		return
	}
	if err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func loadUpload[T any](fh *multipart.FileHeader, load func(multipart.File) ([]T, error)) ([]T, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return load(f)
}
