// Package mcpapi exposes the hydrometric lookup as MCP tools over stdio.
package mcpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"idrometria/internal/hydro"
)

// ServerName identifies this tool server to MCP clients.
const ServerName = "idrometria"

// ServerVersion is reported during the MCP handshake.
const ServerVersion = "1.0.0"

type handler struct {
	service *hydro.Service
}

// NewServer builds the MCP server with both hydrometric tools registered.
func NewServer(service *hydro.Service) *server.MCPServer {
	h := &handler{service: service}

	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("livello_idrometrico",
		mcp.WithDescription("Restituisce il livello idrometrico corrente per un fiume o una stazione dell'Emilia-Romagna."),
		mcp.WithString("fiume",
			mcp.Required(),
			mcp.Description("Nome del fiume o della stazione, testo libero."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Numero massimo di stazioni restituite, tra 1 e 10."),
		),
	), h.livelloIdrometrico)

	s.AddTool(mcp.NewTool("elenco_stazioni_idrometriche",
		mcp.WithDescription("Elenca le stazioni idrometriche disponibili, con filtro opzionale sul nome."),
		mcp.WithString("filtro",
			mcp.Description("Filtro opzionale sul nome della stazione."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Numero massimo di stazioni elencate, tra 1 e 50 (default 50)."),
		),
	), h.elencoStazioni)

	return s
}

func (h *handler) livelloIdrometrico(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fiume, err := req.RequireString("fiume")
	if err != nil || strings.TrimSpace(fiume) == "" {
		return mcp.NewToolResultError("Il parametro 'fiume' è obbligatorio."), nil
	}
	fiume = strings.TrimSpace(fiume)

	maxResults := req.GetInt("max_results", 0)
	if maxResults != 0 && (maxResults < 1 || maxResults > 10) {
		return mcp.NewToolResultError("max_results deve essere tra 1 e 10."), nil
	}

	snap, err := h.service.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Recupero dati sensori non riuscito: %v", err)), nil
	}

	retrievalLimit := maxResults
	if retrievalLimit == 0 || retrievalLimit > hydro.MaxSuggestions {
		retrievalLimit = hydro.MaxSuggestions
	}
	res := h.service.ResolveWithFallback(ctx, snap.Stations, fiume, retrievalLimit)

	return mcp.NewToolResultText(renderLivello(snap.Timestamp, fiume, res, maxResults)), nil
}

func (h *handler) elencoStazioni(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filtro := strings.TrimSpace(req.GetString("filtro", ""))

	maxResults := req.GetInt("max_results", 50)
	if maxResults < 1 || maxResults > 50 {
		return mcp.NewToolResultError("max_results deve essere tra 1 e 50."), nil
	}

	snap, err := h.service.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Recupero dati sensori non riuscito: %v", err)), nil
	}

	filtered := hydro.FilterStations(snap.Stations, filtro)
	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}
	return mcp.NewToolResultText(renderElenco(filtered)), nil
}
