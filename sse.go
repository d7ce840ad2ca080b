package toastkit

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/toastkit/toastkit/pkg/logger"
	"github.com/toastkit/toastkit/pkg/toast"
)

// stream serves the live toast region over server-sent events. The client
// receives the current region immediately, then one re-rendered region per
// change event until it disconnects. Patching the whole region keeps the DOM
// in lockstep with the store regardless of which events were dropped for
// slow consumers.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	mgr := h.manager(r)
	sse := datastar.NewSSE(w, r)

	sub := mgr.Subscribe(r.Context())
	defer sub.Close()

	if err := h.patchRegion(sse, r, mgr); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render toast region",
			logger.Component("toast_stream"),
			logger.Error(err),
		)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-sub.Events():
			if !ok {
				// Manager closed or this subscriber was dropped
				return
			}
			if err := h.patchRegion(sse, r, mgr); err != nil {
				h.log.ErrorContext(r.Context(), "Failed to patch toast region",
					logger.Component("toast_stream"),
					logger.Error(err),
				)
				return
			}
		}
	}
}

// patchRegion renders the current snapshot and morphs it over the element
// with id RegionID.
func (h *Handler) patchRegion(sse *datastar.ServerSentEventGenerator, r *http.Request, mgr *toast.Manager) error {
	toasts, err := mgr.List(r.Context())
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(Region(h.basePath, toasts))
}
