package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// streamPing keeps intermediaries from closing idle SSE connections.
const streamPing = 30 * time.Second

// StreamHandler serves live query subscriptions over SSE. Every matching
// mutation re-delivers the full current result list, never a diff.
type StreamHandler struct {
	watcher *docstore.Watcher
}

// NewStreamHandler constructs a StreamHandler.
func NewStreamHandler(watcher *docstore.Watcher) *StreamHandler {
	return &StreamHandler{watcher: watcher}
}

// resolveTarget maps a collection name plus the request scope onto a watch
// target. Aggregate scope turns nested collections into group scans.
func resolveTarget(name string, sc scope.Scope, stylistID string) (docstore.Target, bool) {
	switch name {
	case repository.ColSalons:
		return docstore.TargetCollection(repository.SalonsCol()), true
	case repository.ColManagers:
		return docstore.TargetCollection(repository.ManagersCol()), true
	case repository.ColProducts, repository.ColSales, repository.ColStylists:
		if sc.Kind == scope.KindAggregate {
			return docstore.TargetGroup(docstore.Group(name)), true
		}
		return docstore.TargetCollection(repository.SalonsCol().Doc(sc.SalonID).Collection(name)), true
	case repository.ColClients, repository.ColRecommendations:
		if sc.Kind == scope.KindAggregate {
			return docstore.TargetGroup(docstore.Group(name)), true
		}
		if stylistID == "" || strings.Contains(stylistID, "/") {
			return docstore.Target{}, false
		}
		return docstore.TargetCollection(repository.StylistsCol(sc.SalonID).Doc(stylistID).Collection(name)), true
	default:
		return docstore.Target{}, false
	}
}

// parseFilters decodes repeated `filter=field:op:value` query parameters.
// Values are coerced: numbers and booleans by literal form, everything else
// as a string.
func parseFilters(raw []string) ([]docstore.Filter, bool) {
	var filters []docstore.Filter
	for _, f := range raw {
		parts := strings.SplitN(f, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, false
		}
		op := docstore.Op(parts[1])
		switch op {
		case docstore.OpEq, docstore.OpNeq, docstore.OpGt, docstore.OpGte, docstore.OpLt, docstore.OpLte:
		default:
			return nil, false
		}
		filters = append(filters, docstore.Filter{Field: parts[0], Op: op, Value: coerceValue(parts[2])})
	}
	return filters, true
}

func coerceValue(raw string) interface{} {
	if raw == "true" {
		return true
	}
	if raw == "false" {
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// parseSort decodes `sort=field` or `sort=field:desc`.
func parseSort(raw string) *docstore.Sort {
	if raw == "" {
		return nil
	}
	field, dir, _ := strings.Cut(raw, ":")
	return &docstore.Sort{Field: field, Desc: dir == "desc"}
}

// Stream handles GET /v1/stream/:collection
//
// The connection stays open until the client disconnects; each event carries
// the full snapshot of the subscribed view.
func (h *StreamHandler) Stream(c *gin.Context) {
	sc := middleware.GetScope(c)
	name := c.Param("collection")

	target, ok := resolveTarget(name, sc, c.Query("stylistId"))
	if !ok {
		utils.Error(c, 400, "UNKNOWN_COLLECTION", "Unknown or underspecified collection")
		return
	}
	filters, ok := parseFilters(c.QueryArray("filter"))
	if !ok {
		utils.Error(c, 400, "INVALID_FILTER", "Filters must be field:op:value")
		return
	}
	sort := parseSort(c.Query("sort"))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	snapshots := make(chan []docstore.Document, 8)
	cancel := h.watcher.Subscribe(target, filters, sort, func(docs []docstore.Document) {
		for {
			select {
			case snapshots <- docs:
				return
			default:
				// Channel full: discard the oldest pending snapshot so the
				// freshest one always gets through.
				select {
				case <-snapshots:
				default:
				}
			}
		}
	})
	defer cancel()

	log.Debug().Str("collection", name).Str("scope", string(sc.Kind)).Msg("stream opened")

	ping := time.NewTicker(streamPing)
	defer ping.Stop()

	clientGone := c.Request.Context().Done()
	c.Writer.Flush()

	for {
		select {
		case <-clientGone:
			return
		case docs := <-snapshots:
			payload := make([]map[string]interface{}, 0, len(docs))
			for i := range docs {
				payload = append(payload, docs[i].Snapshot())
			}
			raw, err := json.Marshal(payload)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal snapshot")
				continue
			}
			c.SSEvent("snapshot", string(raw))
			c.Writer.Flush()
		case <-ping.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			c.Writer.Flush()
		}
	}
}
