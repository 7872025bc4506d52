package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/tally"
	"github.com/aretw0/tally/pkg/domain"
	"github.com/aretw0/tally/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PressResponse is the unified structured result of the calculator tools.
type PressResponse struct {
	SessionID string `json:"session_id" jsonschema_description:"The calculator session"`
	Display   string `json:"display" jsonschema_description:"The text currently shown"`
	Pending   string `json:"pending,omitempty" jsonschema_description:"Operator awaiting a second operand"`
	Error     string `json:"error,omitempty" jsonschema_description:"Set to division_by_zero when the press failed and the session reset"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Press(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, error)
}

// Server wraps the tally Engine and exposes it as an MCP Server, so agents
// can drive calculator sessions as tools.
type Server struct {
	engine    Engine
	store     ports.StateStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, store ports.StateStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("tally-mcp", tally.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: press
	pressTool := mcp.NewTool("press",
		mcp.WithDescription("Press one calculator button (0-9 . + - × ÷ = C ± %). Creates the session on first use."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Calculator session ID")),
		mcp.WithString("button", mcp.Required(), mcp.Description("Keypad label to press")),
		mcp.WithOutputSchema[PressResponse](),
	)
	s.mcpServer.AddTool(pressTool, mcp.NewStructuredToolHandler(s.handlePress))

	// TOOL: get_display
	displayTool := mcp.NewTool("get_display",
		mcp.WithDescription("Read the current display of a calculator session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Calculator session ID")),
		mcp.WithOutputSchema[PressResponse](),
	)
	s.mcpServer.AddTool(displayTool, mcp.NewStructuredToolHandler(s.handleGetDisplay))

	// TOOL: clear
	clearTool := mcp.NewTool("clear",
		mcp.WithDescription("Reset a calculator session to its initial state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Calculator session ID")),
		mcp.WithOutputSchema[PressResponse](),
	)
	s.mcpServer.AddTool(clearTool, mcp.NewStructuredToolHandler(s.handleClear))
}

// Handler methods for structured tools

func (s *Server) handlePress(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PressResponse, error) {
	sessionID, _ := args["session_id"].(string)
	button, _ := args["button"].(string)
	if sessionID == "" {
		return PressResponse{}, fmt.Errorf("session_id is required")
	}

	ev, err := domain.ParseButton(button)
	if err != nil {
		return PressResponse{}, fmt.Errorf("press rejected: %w", err)
	}

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return PressResponse{}, fmt.Errorf("load failed: %w", err)
		}
		state = domain.NewState()
	}

	newState, pressErr := s.engine.Press(ctx, state, ev)
	if pressErr != nil && !errors.Is(pressErr, domain.ErrDivisionByZero) {
		return PressResponse{}, fmt.Errorf("press failed: %w", pressErr)
	}

	if err := s.store.Save(ctx, sessionID, newState); err != nil {
		return PressResponse{}, fmt.Errorf("save failed: %w", err)
	}

	resp := mapStateToResponse(sessionID, newState)
	if pressErr != nil {
		// Division by zero: the session has reset; report it as data, not as
		// a tool failure, so the agent sees the recovery.
		resp.Error = "division_by_zero"
	}
	return resp, nil
}

func (s *Server) handleGetDisplay(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PressResponse, error) {
	sessionID, _ := args["session_id"].(string)

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// An unseen session shows the initial display.
			return mapStateToResponse(sessionID, domain.NewState()), nil
		}
		return PressResponse{}, fmt.Errorf("load failed: %w", err)
	}

	return mapStateToResponse(sessionID, state), nil
}

func (s *Server) handleClear(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PressResponse, error) {
	sessionID, _ := args["session_id"].(string)

	state := domain.NewState()
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return PressResponse{}, fmt.Errorf("save failed: %w", err)
	}

	return mapStateToResponse(sessionID, state), nil
}

func (s *Server) registerResources() {
	// EXPOSE: tally://keypad
	s.mcpServer.AddResource(mcp.NewResource("tally://keypad", "Keypad Layout",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		layout := [][]string{
			{"C", "±", "%", "÷"},
			{"7", "8", "9", "×"},
			{"4", "5", "6", "-"},
			{"1", "2", "3", "+"},
			{"0", ".", "="},
		}
		jsonBytes, _ := json.Marshal(layout)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tally://keypad",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func mapStateToResponse(sessionID string, state *domain.State) PressResponse {
	return PressResponse{
		SessionID: sessionID,
		Display:   state.Display,
		Pending:   string(state.Pending),
	}
}
