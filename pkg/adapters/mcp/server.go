package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/quotient"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const conversionURIPrefix = "quotient://conversions/"

// Server wraps the Quotient Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Converter
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards logs.
func NewServer(engine ports.Converter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("quotient-mcp", strings.TrimSpace(quotient.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	automatonArg := mcp.WithString("automaton",
		mcp.Required(),
		mcp.Description(`JSON document {"start", "alphabet", "final_states", "nodes"}`),
	)
	completeArg := mcp.WithBoolean("complete",
		mcp.Description(`Make the dead state explicit as a state named ""`),
	)

	s.mcpServer.AddTool(mcp.NewTool("validate_nfa",
		mcp.WithDescription("Check that an NFA document is well formed."),
		automatonArg,
	), s.handleValidate)

	s.mcpServer.AddTool(mcp.NewTool("determinize_nfa",
		mcp.WithDescription("Convert an NFA into an equivalent DFA by subset construction."),
		automatonArg,
		completeArg,
	), s.handleDeterminize)

	s.mcpServer.AddTool(mcp.NewTool("minimize_nfa",
		mcp.WithDescription("Convert an NFA into the minimal equivalent DFA and record the conversion."),
		automatonArg,
		completeArg,
	), s.handleMinimize)

	s.mcpServer.AddTool(mcp.NewTool("minimize_dfa",
		mcp.WithDescription("Minimize a DFA document (each symbol maps to a single state)."),
		automatonArg,
		completeArg,
	), s.handleMinimizeDfa)
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw automata.RawNfa
	if res := parseAutomaton(request, &raw); res != nil {
		return res, nil
	}
	nfa, err := s.engine.Validate(ctx, raw)
	if err != nil {
		return s.toolError("validate_nfa", err), nil
	}
	return jsonResult(map[string]any{
		"valid":        true,
		"states":       len(nfa.States()),
		"symbols":      len(nfa.Alphabet()),
		"final_states": len(nfa.FinalStates()),
	})
}

func (s *Server) handleDeterminize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw automata.RawNfa
	if res := parseAutomaton(request, &raw); res != nil {
		return res, nil
	}
	dfa, err := s.engine.Determinize(ctx, raw)
	if err != nil {
		return s.toolError("determinize_nfa", err), nil
	}
	return s.dfaResult("determinize_nfa", dfa, request.GetBool("complete", false))
}

func (s *Server) handleMinimize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw automata.RawNfa
	if res := parseAutomaton(request, &raw); res != nil {
		return res, nil
	}
	conv, err := s.engine.Convert(ctx, raw)
	if err != nil {
		return s.toolError("minimize_nfa", err), nil
	}

	out := conv.Minimal
	if request.GetBool("complete", false) {
		dfa, err := automata.ValidateDfa(out)
		if err != nil {
			return s.toolError("minimize_nfa", err), nil
		}
		if out, err = automata.Complete(dfa).Raw(); err != nil {
			return s.toolError("minimize_nfa", err), nil
		}
	}
	return jsonResult(map[string]any{
		"conversion_id": conv.ID,
		"stats":         conv.Stats,
		"dfa":           out,
	})
}

func (s *Server) handleMinimizeDfa(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw automata.RawDfa
	if res := parseAutomaton(request, &raw); res != nil {
		return res, nil
	}
	dfa, err := s.engine.MinimizeDfa(ctx, raw)
	if err != nil {
		return s.toolError("minimize_dfa", err), nil
	}
	return s.dfaResult("minimize_dfa", dfa, request.GetBool("complete", false))
}

func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate(conversionURIPrefix+"{id}", "Recorded conversion",
		mcp.WithTemplateDescription("A conversion recorded by minimize_nfa, addressed by its ID."),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcpServer.AddResourceTemplate(template, s.readConversion)
}

func (s *Server) readConversion(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(request.Params.URI, conversionURIPrefix)
	conv, err := s.engine.Lookup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversion %s: %w", id, err)
	}
	data, err := json.Marshal(conv)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// -- Helpers --

func parseAutomaton(request mcp.CallToolRequest, dst any) *mcp.CallToolResult {
	doc, err := request.RequireString("automaton")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("automaton is not valid JSON: %v", err))
	}
	return nil
}

func (s *Server) dfaResult(tool string, dfa *automata.Dfa, complete bool) (*mcp.CallToolResult, error) {
	if complete {
		dfa = automata.Complete(dfa)
	}
	raw, err := dfa.Raw()
	if err != nil {
		return s.toolError(tool, err), nil
	}
	return jsonResult(raw)
}

// toolError reports err to the client. Automaton errors are expected and only
// logged at debug level.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, automata.ErrInvalidAutomaton) {
		s.logger.Debug("MCP: rejected automaton", "tool", tool, "error", err)
	} else {
		s.logger.Warn("MCP: tool failed", "tool", tool, "error", err)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
