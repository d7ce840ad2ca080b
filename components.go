package toastkit

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/toastkit/toastkit/pkg/toast"
)

// RegionID is the DOM id of the toast stacking container. The SSE stream
// patches the element with this id on every change, so pages must render the
// region exactly once.
const RegionID = "toast-region"

// Region renders the toast stacking container with all current toasts in
// insertion order. basePath is the URL prefix the Handler is mounted under;
// dismiss and action buttons post back to it.
func Region(basePath string, toasts []toast.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s" class="toast-region">`, RegionID)
		if len(toasts) > 1 {
			fmt.Fprintf(&b, `<button class="toast-clear-all" data-on-click="@post('%s/dismiss-all')">Clear all</button>`,
				html.EscapeString(basePath))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		for _, t := range toasts {
			if err := Item(basePath, t).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Item renders a single toast card. The card carries the toast ID in its DOM
// id and the severity as a modifier class for styling.
func Item(basePath string, t toast.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		id := html.EscapeString(t.ID)
		base := html.EscapeString(basePath)

		fmt.Fprintf(&b, `<div id="toast-%s" class="toast toast-%s"`, id, t.Severity)
		if !t.Persistent() {
			fmt.Fprintf(&b, ` data-duration-ms="%d"`, t.Duration.Milliseconds())
		}
		b.WriteString(`>`)

		if t.Title != "" {
			fmt.Fprintf(&b, `<strong class="toast-title">%s</strong>`, html.EscapeString(t.Title))
		}
		fmt.Fprintf(&b, `<span class="toast-message">%s</span>`, html.EscapeString(t.Message))

		if t.Action != nil {
			label := html.EscapeString(t.Action.Label)
			if t.Action.URL != "" {
				fmt.Fprintf(&b, `<a class="toast-action" href="%s">%s</a>`, html.EscapeString(t.Action.URL), label)
			} else {
				fmt.Fprintf(&b, `<button class="toast-action" data-on-click="@post('%s/%s/action')">%s</button>`, base, id, label)
			}
		}

		fmt.Fprintf(&b, `<button class="toast-dismiss" aria-label="Dismiss" data-on-click="@post('%s/%s/dismiss')">&times;</button>`, base, id)
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
