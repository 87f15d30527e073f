package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-vagas-pipeline/internal/database"
	"go-vagas-pipeline/internal/models"

	"github.com/gin-gonic/gin"
)

// Querier is the read side of the repository. *database.Repository satisfies it.
type Querier interface {
	Ping(ctx context.Context) error
	ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	CountJobs(ctx context.Context, f models.JobFilter) (int, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	SearchJobs(ctx context.Context, q string, limit int) ([]models.Job, error)
	Stats(ctx context.Context) (*models.JobStats, error)
	TopSkills(ctx context.Context, limit int) ([]models.CountItem, error)
	Sectors(ctx context.Context) ([]models.CountItem, error)
	Companies(ctx context.Context, limit int) ([]models.CountItem, error)
}

// Response is the envelope of every endpoint.
type Response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type Page struct {
	Items []models.Job `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}

type Handler struct {
	db  Querier
	now func() time.Time
}

func NewHandler(db Querier) *Handler {
	return &Handler{db: db, now: time.Now}
}

// NewRouter builds the engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.Register(r)
	return r
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.GET("/vagas", h.listJobs)
	r.GET("/vagas/count", h.countJobs)
	r.GET("/vagas/search", h.searchJobs)
	r.GET("/vagas/stats", h.stats)
	r.GET("/vagas/:id", h.getJob)
	r.GET("/skills/top", h.topSkills)
	r.GET("/setores", h.sectors)
	r.GET("/empresas", h.companies)
}

func (h *Handler) ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Timestamp: h.now().UTC()})
}

func (h *Handler) fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message, Timestamp: h.now().UTC()})
}

func (h *Handler) internal(c *gin.Context, err error) {
	log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	h.fail(c, http.StatusInternalServerError, "internal error")
}

// intQuery reads a positive integer parameter, def when absent.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

func filterFromQuery(c *gin.Context) (models.JobFilter, int, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return models.JobFilter{}, 0, err
	}
	limit, err := intQuery(c, "limit", database.DefaultLimit)
	if err != nil {
		return models.JobFilter{}, 0, err
	}
	limit = database.ClampLimit(limit)

	estado := strings.TrimSpace(c.Query("estado"))
	if estado != "" && len(estado) != 2 {
		return models.JobFilter{}, 0, fmt.Errorf("estado must be a two-letter UF")
	}

	return models.JobFilter{
		Sector:    strings.TrimSpace(c.Query("setor")),
		City:      strings.TrimSpace(c.Query("cidade")),
		State:     estado,
		Modality:  strings.TrimSpace(c.Query("modalidade")),
		Seniority: strings.TrimSpace(c.Query("senioridade")),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}, page, nil
}

func (h *Handler) root(c *gin.Context) {
	h.ok(c, "Vagas API is running!", gin.H{"status": "healthy"})
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		log.Printf("⚠️ Health check failed: %v", err)
		h.fail(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	h.ok(c, "healthy", gin.H{"database": "ok"})
}

func (h *Handler) listJobs(c *gin.Context) {
	f, page, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	jobs, err := h.db.ListJobs(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err)
		return
	}
	total, err := h.db.CountJobs(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	h.ok(c, fmt.Sprintf("%d vagas", len(jobs)), Page{Items: jobs, Page: page, Limit: f.Limit, Total: total})
}

func (h *Handler) countJobs(c *gin.Context) {
	f, _, err := filterFromQuery(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	n, err := h.db.CountJobs(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err)
		return
	}
	h.ok(c, "count", gin.H{"count": n})
}

func (h *Handler) searchJobs(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		h.fail(c, http.StatusBadRequest, "q must have at least 2 characters")
		return
	}
	limit, err := intQuery(c, "limit", database.DefaultLimit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	jobs, err := h.db.SearchJobs(c.Request.Context(), q, limit)
	if err != nil {
		h.internal(c, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	h.ok(c, fmt.Sprintf("%d vagas", len(jobs)), jobs)
}

func (h *Handler) getJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.fail(c, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	job, err := h.db.GetJob(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		h.fail(c, http.StatusNotFound, fmt.Sprintf("vaga %d not found", id))
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	h.ok(c, "vaga", job)
}

func (h *Handler) stats(c *gin.Context) {
	s, err := h.db.Stats(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	h.ok(c, "stats", s)
}

func (h *Handler) topSkills(c *gin.Context) {
	limit, err := intQuery(c, "limit", database.DefaultLimit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	h.counts(c, "skills")(h.db.TopSkills(c.Request.Context(), limit))
}

func (h *Handler) sectors(c *gin.Context) {
	h.counts(c, "setores")(h.db.Sectors(c.Request.Context()))
}

func (h *Handler) companies(c *gin.Context) {
	limit, err := intQuery(c, "limit", database.DefaultLimit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	h.counts(c, "empresas")(h.db.Companies(c.Request.Context(), limit))
}

// counts writes a ranked list or the error from the query that produced it.
func (h *Handler) counts(c *gin.Context, message string) func([]models.CountItem, error) {
	return func(items []models.CountItem, err error) {
		if err != nil {
			h.internal(c, err)
			return
		}
		if items == nil {
			items = []models.CountItem{}
		}
		h.ok(c, message, items)
	}
}
