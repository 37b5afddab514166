package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/seqkit/definition"
	"github.com/kbukum/seqkit/server"
)

// Handler exposes a catalog and runner over HTTP.
type Handler struct {
	catalog  *definition.Catalog
	runner   *definition.Runner
	registry *definition.Registry
}

// NewHandler creates a Handler.
func NewHandler(catalog *definition.Catalog, runner *definition.Runner, registry *definition.Registry) *Handler {
	return &Handler{catalog: catalog, runner: runner, registry: registry}
}

// Register mounts the /v1 routes on r.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.GET("/pipelines", h.ListPipelines)
	v1.GET("/pipelines/:name", h.GetPipeline)
	v1.POST("/pipelines/:name/run", h.RunPipeline)
	v1.POST("/run", h.RunInline)
	v1.GET("/funcs", h.ListFuncs)
}

// ListPipelines handles GET /v1/pipelines.
func (h *Handler) ListPipelines(c *gin.Context) {
	server.RespondList(c, h.catalog.List())
}

// GetPipeline handles GET /v1/pipelines/:name.
func (h *Handler) GetPipeline(c *gin.Context) {
	def, err := h.catalog.Get(c.Param("name"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, def)
}

// RunPipeline handles POST /v1/pipelines/:name/run.
func (h *Handler) RunPipeline(c *gin.Context) {
	def, err := h.catalog.Get(c.Param("name"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.run(c, def)
}

// RunInline handles POST /v1/run with a definition in the request body.
func (h *Handler) RunInline(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	def, err := definition.Parse(data)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.run(c, def)
}

func (h *Handler) run(c *gin.Context, def *definition.Definition) {
	res, err := h.runner.Run(c.Request.Context(), def)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, res)
}

// ListFuncs handles GET /v1/funcs.
func (h *Handler) ListFuncs(c *gin.Context) {
	server.RespondList(c, h.registry.Funcs())
}
