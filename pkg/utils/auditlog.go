package utils

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/repository"
)

// RecordChange writes ch to the audit trail in the background, attributed to
// the caller of c. Failures are logged and never reach the response.
func RecordChange(c *gin.Context, repo repository.AuditRepo, ch audit.Change) {
	// the gin context is recycled once the handler returns
	origin := RequestOrigin(c)

	go func() {
		if err := WriteChange(repo, origin, ch); err != nil {
			slog.Error("audit log write failed", "action", ch.Action, "resource", ch.Resource, "id", ch.ResourceID, "err", err)
		}
	}()
}

// RequestOrigin reads the actor, client IP and user agent of c.
func RequestOrigin(c *gin.Context) audit.Origin {
	actor, _ := GetActorFromContext(c)
	return audit.Origin{Actor: actor, IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

// WriteChange stores ch synchronously. A snapshot that fails to encode is
// logged and the entry is written without it.
func WriteChange(repo repository.AuditRepo, origin audit.Origin, ch audit.Change) error {
	entry, err := ch.Entry(origin)
	if err != nil {
		slog.Warn("audit snapshot not encodable", "resource", ch.Resource, "id", ch.ResourceID, "err", err)
	}
	return repo.Record(entry)
}
