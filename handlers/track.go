package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikhilbadyal/tracker/appconfig"
	"github.com/nikhilbadyal/tracker/events"
	"github.com/nikhilbadyal/tracker/geo"
	"github.com/nikhilbadyal/tracker/logging"
	"github.com/nikhilbadyal/tracker/meta"
	"github.com/nikhilbadyal/tracker/metrics"
	"github.com/nikhilbadyal/tracker/middleware"
	"github.com/nikhilbadyal/tracker/timestamp"
	"github.com/nikhilbadyal/tracker/uuid"
)

//TrackHandler accepts one visit-telemetry event per request: rate limits by
//client IP, validates and sanitizes the body and persists the composed record
type TrackHandler struct {
	storage     meta.Storage
	geoResolver geo.Resolver

	countryHeader string

	rateLimitWindowSeconds int
	rateLimitCeiling       int
	visitTTLSeconds        int
	maxEntryBytes          int
}

func NewTrackHandler(storage meta.Storage, geoResolver geo.Resolver) *TrackHandler {
	return &TrackHandler{
		storage:     storage,
		geoResolver: geoResolver,

		countryHeader: appconfig.Instance.CountryHeader,

		rateLimitWindowSeconds: appconfig.Instance.RateLimitWindowSeconds,
		rateLimitCeiling:       appconfig.Instance.RateLimitCeiling,
		visitTTLSeconds:        appconfig.Instance.VisitTTLSeconds,
		maxEntryBytes:          appconfig.Instance.MaxEntryBytes,
	}
}

//Handler runs the gate pipeline strictly in order, short-circuiting on the
//first failure. Origin and client IP were already validated by middleware.
func (th *TrackHandler) Handler(c *gin.Context) {
	origin := c.GetString(middleware.OriginKey)
	clientIP := c.GetString(middleware.ClientIPKey)
	now := timestamp.Now()

	//Approximate sliding window: the read and the rewrite below aren't
	//transactional, two concurrent requests may both slip past the ceiling.
	//Abuse damping, not a hard quota.
	record, err := th.storage.GetRateLimit(clientIP)
	if err != nil {
		logging.Errorf("Error reading rate limit counter for [%s]: %v", clientIP, err)
	}
	if record != nil && record.Count >= th.rateLimitCeiling {
		reject(c, http.StatusTooManyRequests, middleware.ErrRateLimited)
		return
	}

	count := 1
	if record != nil {
		count = record.Count + 1
	}
	if err := th.storage.SaveRateLimit(clientIP, &meta.RateLimitRecord{Count: count, Timestamp: now.UnixMilli()}, th.rateLimitWindowSeconds); err != nil {
		//counter write failures don't block ingestion
		logging.Warnf("Error updating rate limit counter for [%s]: %v", clientIP, err)
	}

	payload := events.Fact{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		reject(c, http.StatusBadRequest, middleware.ErrInvalidJSON)
		return
	}
	if payload == nil {
		reject(c, http.StatusBadRequest, middleware.ErrInvalidJSON)
		return
	}

	if err := events.ValidateSessionID(payload); err != nil {
		reject(c, http.StatusBadRequest, middleware.ErrInvalidData)
		return
	}

	sanitized := events.Sanitize(payload)
	stored := events.ComposeStored(sanitized, timestamp.ToISOFormat(now), clientIP, th.resolveCountry(c, clientIP), c.GetHeader("User-Agent"))

	entry, err := stored.Serialize()
	if err != nil {
		logging.Errorf("Error serializing event from [%s]: %v", clientIP, err)
		reject(c, http.StatusInternalServerError, middleware.ErrStorageError)
		return
	}
	if len(entry) > th.maxEntryBytes {
		reject(c, http.StatusBadRequest, middleware.ErrInvalidData)
		return
	}

	//key is time-ordered and collision-free across concurrent requests
	visitKey := fmt.Sprintf("visit:%d:%s", now.UnixMilli(), uuid.New())

	if err := th.storage.SaveVisit(visitKey, entry, th.visitTTLSeconds); err != nil {
		logging.Errorf("Error storing visit [%s]: %v", visitKey, err)
		reject(c, http.StatusInternalServerError, middleware.ErrStorageError)
		return
	}

	metrics.TrackedEvent()
	middleware.WriteCorsHeaders(c, origin)
	c.String(http.StatusOK, "Tracked")
}

//resolveCountry trusts the edge-supplied geolocation header verbatim and only
//falls back to the local MaxMind db when the header is absent
func (th *TrackHandler) resolveCountry(c *gin.Context, clientIP string) string {
	if country := c.GetHeader(th.countryHeader); country != "" {
		return country
	}

	country, err := th.geoResolver.ResolveCountry(clientIP)
	if err != nil {
		logging.Warnf("Error resolving country for [%s]: %v", clientIP, err)
		return geo.UnknownCountry
	}

	return country
}

func reject(c *gin.Context, status int, code string) {
	metrics.RejectedEvent(code)
	c.JSON(status, middleware.ErrResponse(code))
}
