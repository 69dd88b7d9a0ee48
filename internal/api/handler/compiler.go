package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/servak/infragraph/internal/cgraph"
	"github.com/servak/infragraph/internal/codec"
	"github.com/servak/infragraph/internal/domain/infragraph"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

// CompilerHandler exposes internal/service.Compiler as spec.md §6's
// six-operation HTTP surface.
type CompilerHandler struct {
	compiler *service.Compiler
	log      *logger.Logger
}

func NewCompilerHandler(compiler *service.Compiler, log *logger.Logger) *CompilerHandler {
	return &CompilerHandler{compiler: compiler, log: log}
}

func (h *CompilerHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "set-graph",
		Method:        http.MethodPost,
		Path:          "/api/graph",
		Summary:       "Compile a new infrastructure declaration",
		Tags:          []string{"graph"},
		DefaultStatus: http.StatusOK,
	}, h.SetGraph)

	huma.Register(api, huma.Operation{
		OperationID: "get-graph",
		Method:      http.MethodGet,
		Path:        "/api/graph",
		Summary:     "Retrieve the compiled graph as node-link data",
		Tags:        []string{"graph"},
	}, h.GetGraph)

	huma.Register(api, huma.Operation{
		OperationID:   "annotate-graph",
		Method:        http.MethodPost,
		Path:          "/api/graph/annotations",
		Summary:       "Annotate nodes of the compiled graph",
		Tags:          []string{"graph"},
		DefaultStatus: http.StatusOK,
	}, h.AnnotateGraph)

	huma.Register(api, huma.Operation{
		OperationID: "query-graph",
		Method:      http.MethodPost,
		Path:        "/api/graph/query",
		Summary:     "Query the compiled graph with conjunctive filters",
		Tags:        []string{"graph"},
	}, h.QueryGraph)

	huma.Register(api, huma.Operation{
		OperationID: "get-shortest-path",
		Method:      http.MethodGet,
		Path:        "/api/graph/shortest-path",
		Summary:     "Shortest path between two node ids",
		Tags:        []string{"graph"},
	}, h.ShortestPath)

	huma.Register(api, huma.Operation{
		OperationID: "get-endpoints",
		Method:      http.MethodGet,
		Path:        "/api/graph/endpoints",
		Summary:     "List node ids carrying an attribute",
		Tags:        []string{"graph"},
	}, h.GetEndpoints)
}

type SetGraphInput struct {
	Body []byte `contentType:"application/yaml"`
}

func (h *CompilerHandler) SetGraph(ctx context.Context, input *SetGraphInput) (*struct{}, error) {
	infra, err := codec.Deserialize(input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest("malformed document", err)
	}
	if _, err := h.compiler.Compile(ctx, infra); err != nil {
		return nil, translateError(err)
	}
	return &struct{}{}, nil
}

type GraphOutput struct {
	Body NodeLinkData
}

type NodeLinkData struct {
	Nodes []NodeData `json:"nodes"`
	Links []LinkData `json:"links"`
}

type NodeData struct {
	ID    string            `json:"id"`
	Attrs map[string]string `json:"attrs"`
}

type LinkData struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Link   string `json:"link"`
}

func (h *CompilerHandler) GetGraph(ctx context.Context, _ *struct{}) (*GraphOutput, error) {
	matches, edges, err := h.compiler.Get(ctx)
	if err != nil {
		return nil, translateError(err)
	}

	data := NodeLinkData{
		Nodes: make([]NodeData, 0, len(matches)),
		Links: make([]LinkData, 0, len(edges)),
	}
	for _, m := range matches {
		data.Nodes = append(data.Nodes, NodeData{ID: m.NodeID, Attrs: m.Attrs})
	}
	for _, e := range edges {
		data.Links = append(data.Links, LinkData{Source: e.A, Target: e.B, Link: e.Link})
	}
	return &GraphOutput{Body: data}, nil
}

type AnnotateGraphInput struct {
	Body struct {
		Requests []infragraph.Annotation `json:"requests"`
	}
}

func (h *CompilerHandler) AnnotateGraph(ctx context.Context, input *AnnotateGraphInput) (*struct{}, error) {
	if err := h.compiler.Annotate(ctx, input.Body.Requests); err != nil {
		return nil, translateError(err)
	}
	return &struct{}{}, nil
}

type QueryGraphInput struct {
	Body struct {
		Filters []cgraph.Filter `json:"filters"`
	}
}

type QueryGraphOutput struct {
	Body struct {
		Matches []cgraph.Match `json:"matches"`
	}
}

func (h *CompilerHandler) QueryGraph(ctx context.Context, input *QueryGraphInput) (*QueryGraphOutput, error) {
	matches, err := h.compiler.Query(ctx, input.Body.Filters)
	if err != nil {
		return nil, translateError(err)
	}
	out := &QueryGraphOutput{}
	out.Body.Matches = matches
	return out, nil
}

type ShortestPathInput struct {
	Src string `query:"src"`
	Dst string `query:"dst"`
}

type ShortestPathOutput struct {
	Body struct {
		Path []string `json:"path"`
	}
}

func (h *CompilerHandler) ShortestPath(ctx context.Context, input *ShortestPathInput) (*ShortestPathOutput, error) {
	path, err := h.compiler.ShortestPath(ctx, input.Src, input.Dst)
	if err != nil {
		return nil, translateError(err)
	}
	out := &ShortestPathOutput{}
	out.Body.Path = path
	return out, nil
}

type GetEndpointsInput struct {
	Attr  string  `query:"attr"`
	Value *string `query:"value"`
}

type GetEndpointsOutput struct {
	Body struct {
		NodeIDs []string `json:"node_ids"`
	}
}

func (h *CompilerHandler) GetEndpoints(ctx context.Context, input *GetEndpointsInput) (*GetEndpointsOutput, error) {
	ids, err := h.compiler.GetEndpoints(ctx, input.Attr, input.Value)
	if err != nil {
		return nil, translateError(err)
	}
	out := &GetEndpointsOutput{}
	out.Body.NodeIDs = ids
	return out, nil
}

// translateError maps the domain error taxonomy onto HTTP status
// codes without losing the typed error message.
func translateError(err error) error {
	switch err.(type) {
	case *infragraph.NotInitializedError:
		return huma.Error409Conflict(err.Error())
	case *infragraph.UnknownEndpointError, *infragraph.NoPathError, *infragraph.UnknownFilterKindError:
		return huma.Error404NotFound(err.Error())
	case *infragraph.MalformedDocumentError, *infragraph.MalformedSliceError,
		*infragraph.OutOfRangeError, *infragraph.UnknownNameError,
		*infragraph.InvariantViolationError:
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
