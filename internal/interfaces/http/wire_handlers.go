package http

import (
	requestHandlers "github.com/adli-inc/adli/internal/interfaces/http/handlers/request"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	publicRequestHandler *requestHandlers.PublicRequestHandler
	panelRequestHandler  *requestHandlers.PanelRequestHandler
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log.Named("http")
	c.hdlrs = &allHandlers{
		publicRequestHandler: requestHandlers.NewPublicRequestHandler(
			c.ucs.createPublicRequestUC,
			c.ucs.trackRequestUC,
			c.ucs.trackRequestUC,
			log,
		),
		panelRequestHandler: requestHandlers.NewPanelRequestHandler(
			c.ucs.listRequestsUC,
			c.ucs.bucketCountsUC,
			c.ucs.getRequestUC,
			c.ucs.actionService,
			log,
		),
	}
}
