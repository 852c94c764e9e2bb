package httpapi

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"idrometria/internal/hydro"
)

var validate = validator.New()

// ServiceName identifies this API in health and root responses.
const ServiceName = "idrometria"

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *hydro.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": ServiceName,
			"endpoints": []string{
				"/livello-idrometrico",
				"/stazioni",
				"/health",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": ServiceName,
		})
	})

	app.Get("/livello-idrometrico", func(c *fiber.Ctx) error {
		var q livelloQuery
		q.Fiume = strings.TrimSpace(c.Query("fiume"))
		q.MaxResults = c.QueryInt("max_results", 10)
		if err := validate.Struct(q); err != nil {
			return badRequest(c, "il parametro 'fiume' è obbligatorio e max_results deve essere tra 1 e 100")
		}

		snap, err := service.Snapshot(c.UserContext())
		if err != nil {
			return upstreamError(c, err)
		}

		// The oracle is only ever asked for a handful of candidates,
		// independent of how many matches the caller wants back.
		retrievalLimit := q.MaxResults
		if retrievalLimit > hydro.MaxSuggestions {
			retrievalLimit = hydro.MaxSuggestions
		}
		res := service.ResolveWithFallback(c.UserContext(), snap.Stations, q.Fiume, retrievalLimit)

		resp := livelloResponse{
			Timestamp: snap.Timestamp.UTC().Format(timestampLayout),
			Query:     q.Fiume,
			Matches:   []stationPayload{},
		}
		if len(res.Matches) == 0 {
			resp.Message = fmt.Sprintf("Nessuna stazione trovata per: %q.", q.Fiume)
			for _, st := range res.Suggestions {
				resp.Suggestions = append(resp.Suggestions, st.Name)
			}
			return c.JSON(resp)
		}

		matches := res.Matches
		if len(matches) > q.MaxResults {
			matches = matches[:q.MaxResults]
		}
		for _, st := range matches {
			resp.Matches = append(resp.Matches, stationPayload{
				StationRecord: st,
				Display:       hydro.FormatValue(st.Value),
			})
		}
		return c.JSON(resp)
	})

	app.Get("/stazioni", func(c *fiber.Ctx) error {
		var q stazioniQuery
		q.Filtro = strings.TrimSpace(c.Query("filtro"))
		q.MaxResults = c.QueryInt("max_results", 50)
		if err := validate.Struct(q); err != nil {
			return badRequest(c, "max_results deve essere tra 1 e 100")
		}

		snap, err := service.Snapshot(c.UserContext())
		if err != nil {
			return upstreamError(c, err)
		}

		filtered := hydro.FilterStations(snap.Stations, q.Filtro)
		if len(filtered) > q.MaxResults {
			filtered = filtered[:q.MaxResults]
		}
		names := make([]string, 0, len(filtered))
		for _, st := range filtered {
			names = append(names, st.Name)
		}
		return c.JSON(stazioniResponse{
			Count:    len(names),
			Stations: names,
		})
	})
}

// NewErrorHandler returns the centralized Fiber error handler emitting the
// {error, detail?} envelope used by every failure response.
func NewErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		return c.Status(code).JSON(errorResponse{Error: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msg})
}

func upstreamError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Error:  "recupero dati sensori non riuscito",
		Detail: err.Error(),
	})
}

// livelloQuery holds query parameters for the river-level endpoint.
type livelloQuery struct {
	Fiume      string `validate:"required"`
	MaxResults int    `validate:"min=1,max=100"`
}

// stazioniQuery holds query parameters for the station-list endpoint.
type stazioniQuery struct {
	Filtro     string
	MaxResults int `validate:"min=1,max=100"`
}

type stationPayload struct {
	hydro.StationRecord
	// Display is the human-readable reading, e.g. "1.24 m".
	Display string `json:"display"`
}

type livelloResponse struct {
	Timestamp   string           `json:"timestamp"`
	Query       string           `json:"query"`
	Matches     []stationPayload `json:"matches"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Message     string           `json:"message,omitempty"`
}

type stazioniResponse struct {
	Count    int      `json:"count"`
	Stations []string `json:"stations"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
