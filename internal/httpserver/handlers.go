// ABOUTME: HTTP handlers for agent runs, streaming, batch uploads, and store CRUD
// ABOUTME: Core error codes map to HTTP statuses in exactly one place
package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/models"
	"github.com/harper/voicerelay/internal/store"
	"github.com/harper/voicerelay/internal/stream"
)

// Handlers binds the HTTP surface to the core components.
type Handlers struct {
	Supervisor  *agent.Supervisor
	Coordinator *stream.Coordinator
	Stores      *store.Manager
	Builder     *agent.BatchBuilder
}

// NewHandlers wires the handler set.
func NewHandlers(sup *agent.Supervisor, co *stream.Coordinator, stores *store.Manager) *Handlers {
	return &Handlers{
		Supervisor:  sup,
		Coordinator: co,
		Stores:      stores,
		Builder:     agent.NewBatchBuilder(),
	}
}

// Register attaches all routes.
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	e.POST("/api/agent", h.runAgent)
	e.POST("/api/agent/stream", h.streamAgent)
	e.POST("/api/agent/batch", h.uploadBatch)

	e.POST("/api/stores", h.createStore)
	e.GET("/api/stores", h.listStores)
	e.GET("/api/stores/:id", h.getStore)
	e.DELETE("/api/stores/:id", h.deleteStore)
	e.POST("/api/stores/:id/documents", h.addDocument)
	e.POST("/api/stores/search", h.searchStores)
}

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// writeError translates a core failure into a JSON error response.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch agent.CodeOf(err) {
	case agent.CodeUnsupportedInput, agent.CodeInvalidInputType,
		agent.CodeEmptyTranscript, agent.CodeNoChunksTranscribed,
		agent.CodeMissingVectorStores:
		status = http.StatusBadRequest
	case agent.CodeBatchInProgress:
		status = http.StatusConflict
	case agent.CodeTranscriptionFailed, agent.CodeUpstream:
		status = http.StatusBadGateway
	}
	if errors.Is(err, store.ErrStoreNotFound) {
		status = http.StatusNotFound
	}
	return c.JSON(status, errorBody{Code: string(agent.CodeOf(err)), Message: err.Error()})
}

func (h *Handlers) runAgent(c echo.Context) error {
	var req agentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}

	result, err := h.Supervisor.Run(c.Request().Context(), req.ConversationID, input,
		agent.Params{VectorStoreIDs: req.VectorStoreIDs})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handlers) streamAgent(c echo.Context) error {
	var req agentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	sink := newSSESink(resp)
	// The stream protocol reports failures as error events; the HTTP layer
	// must not write a second body after them.
	_ = h.Coordinator.Run(c.Request().Context(), stream.Request{
		ConversationID: req.ConversationID,
		Input:          input,
		Params:         agent.Params{VectorStoreIDs: req.VectorStoreIDs},
	}, sink)
	return nil
}

// uploadBatch accepts a multipart form of audio chunk files, assembles them
// through the batch builder, and runs the result as one batch-audio request.
func (h *Handlers) uploadBatch(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "expected multipart form"})
	}

	mode := models.ParseProcessingMode(c.FormValue("processingMode"))
	if err := h.Builder.Start(mode); err != nil {
		return writeError(c, err)
	}

	files := form.File["chunks"]
	if len(files) == 0 {
		h.Builder.Abort()
		return c.JSON(http.StatusBadRequest, errorBody{Message: "no chunk files provided"})
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.Builder.Abort()
			return c.JSON(http.StatusBadRequest, errorBody{Message: "unreadable chunk " + fh.Filename})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.Builder.Abort()
			return c.JSON(http.StatusBadRequest, errorBody{Message: "unreadable chunk " + fh.Filename})
		}
		if err := h.Builder.Append(models.AudioChunk{
			Data:     data,
			MIMEType: defaultMIME(fh.Header.Get("Content-Type")),
		}); err != nil {
			return writeError(c, err)
		}
	}

	chunks, mode, err := h.Builder.Commit()
	if err != nil {
		return writeError(c, err)
	}

	result, err := h.Supervisor.Run(c.Request().Context(), c.FormValue("conversationId"),
		models.BatchAudioInput{
			Chunks:   chunks,
			Metadata: models.BatchMetadata{ProcessingMode: mode},
		},
		agent.Params{VectorStoreIDs: form.Value["vectorStoreIds"]})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type createStoreRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) createStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}
	info, err := h.Stores.CreateStore(c.Request().Context(), req.Name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}
	return c.JSON(http.StatusCreated, info)
}

func (h *Handlers) listStores(c echo.Context) error {
	stores, err := h.Stores.ListStores(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if stores == nil {
		stores = []store.StoreInfo{}
	}
	return c.JSON(http.StatusOK, stores)
}

func (h *Handlers) getStore(c echo.Context) error {
	info, err := h.Stores.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *Handlers) deleteStore(c echo.Context) error {
	if err := h.Stores.DeleteStore(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addDocumentRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (h *Handlers) addDocument(c echo.Context) error {
	var req addDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}
	doc, err := h.Stores.AddDocument(c.Request().Context(), c.Param("id"), req.Name, req.Text)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return writeError(c, err)
		}
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}
	return c.JSON(http.StatusCreated, doc)
}

type searchRequest struct {
	VectorStoreIDs []string `json:"vectorStoreIds"`
	Query          string   `json:"query"`
	MaxResults     int      `json:"maxResults,omitempty"`
}

func (h *Handlers) searchStores(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}
	results, err := h.Stores.Search(c.Request().Context(), req.VectorStoreIDs, req.Query, req.MaxResults)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return writeError(c, err)
		}
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}
	if results == nil {
		results = []store.SearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}
