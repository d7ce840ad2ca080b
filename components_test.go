package toastkit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastkit/toastkit"
	"github.com/toastkit/toastkit/pkg/toast"
)

func renderToString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestRegion(t *testing.T) {
	tests := []struct {
		name    string
		toasts  []toast.Toast
		want    []string
		notWant []string
	}{
		{
			name:    "empty region",
			toasts:  nil,
			want:    []string{`<div id="toast-region" class="toast-region"></div>`},
			notWant: []string{"toast-clear-all"},
		},
		{
			name: "single toast has no clear all button",
			toasts: []toast.Toast{
				{ID: "t1", Severity: toast.SeverityInfo, Message: "One"},
			},
			want:    []string{`id="toast-t1"`, "One"},
			notWant: []string{"toast-clear-all"},
		},
		{
			name: "multiple toasts get clear all button",
			toasts: []toast.Toast{
				{ID: "t1", Severity: toast.SeverityInfo, Message: "One"},
				{ID: "t2", Severity: toast.SeverityError, Message: "Two"},
			},
			want: []string{
				`<button class="toast-clear-all" data-on-click="@post('/toasts/dismiss-all')">Clear all</button>`,
				`id="toast-t1"`,
				`id="toast-t2"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderToString(t, toastkit.Region(toastkit.DefaultBasePath, tt.toasts))

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestRegion_PreservesOrder(t *testing.T) {
	toasts := []toast.Toast{
		{ID: "c", Severity: toast.SeverityInfo, Message: "charlie"},
		{ID: "a", Severity: toast.SeverityInfo, Message: "alpha"},
		{ID: "b", Severity: toast.SeverityInfo, Message: "bravo"},
	}

	out := renderToString(t, toastkit.Region(toastkit.DefaultBasePath, toasts))

	first := strings.Index(out, "charlie")
	second := strings.Index(out, "alpha")
	third := strings.Index(out, "bravo")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestRegion_CustomBasePath(t *testing.T) {
	toasts := []toast.Toast{
		{ID: "t1", Severity: toast.SeverityInfo, Message: "One"},
		{ID: "t2", Severity: toast.SeverityInfo, Message: "Two"},
	}

	out := renderToString(t, toastkit.Region("/admin/toasts", toasts))

	assert.Contains(t, out, `@post('/admin/toasts/dismiss-all')`)
	assert.Contains(t, out, `@post('/admin/toasts/t1/dismiss')`)
}

func TestItem(t *testing.T) {
	tests := []struct {
		name    string
		toast   toast.Toast
		want    []string
		notWant []string
	}{
		{
			name: "timed toast carries duration in milliseconds",
			toast: toast.Toast{
				ID:       "t1",
				Severity: toast.SeverityInfo,
				Message:  "Saved",
				Duration: 3 * time.Second,
			},
			want: []string{
				`id="toast-t1"`,
				`class="toast toast-info"`,
				`data-duration-ms="3000"`,
				`<span class="toast-message">Saved</span>`,
				`<button class="toast-dismiss" aria-label="Dismiss" data-on-click="@post('/toasts/t1/dismiss')">`,
			},
		},
		{
			name: "persistent toast has no duration attribute",
			toast: toast.Toast{
				ID:       "t2",
				Severity: toast.SeverityError,
				Message:  "Payment failed",
			},
			want:    []string{`class="toast toast-error"`},
			notWant: []string{"data-duration-ms"},
		},
		{
			name: "title renders before message",
			toast: toast.Toast{
				ID:       "t3",
				Severity: toast.SeverityWarning,
				Title:    "Heads up",
				Message:  "Disk almost full",
			},
			want: []string{`<strong class="toast-title">Heads up</strong><span class="toast-message">Disk almost full</span>`},
		},
		{
			name: "no title element without a title",
			toast: toast.Toast{
				ID:       "t4",
				Severity: toast.SeveritySuccess,
				Message:  "Done",
			},
			notWant: []string{"toast-title"},
		},
		{
			name: "action with URL renders as link",
			toast: toast.Toast{
				ID:       "t5",
				Severity: toast.SeverityWarning,
				Message:  "Trial ending",
				Action:   &toast.Action{Label: "Renew", URL: "/billing"},
			},
			want:    []string{`<a class="toast-action" href="/billing">Renew</a>`},
			notWant: []string{`@post('/toasts/t5/action')`},
		},
		{
			name: "action with callback renders as button",
			toast: toast.Toast{
				ID:       "t6",
				Severity: toast.SeverityInfo,
				Message:  "Item archived",
				Action: &toast.Action{
					Label: "Undo",
					Fn:    func(context.Context, toast.Toast) error { return nil },
				},
			},
			want: []string{`<button class="toast-action" data-on-click="@post('/toasts/t6/action')">Undo</button>`},
		},
		{
			name: "no action element without an action",
			toast: toast.Toast{
				ID:       "t7",
				Severity: toast.SeverityInfo,
				Message:  "Plain",
			},
			notWant: []string{"toast-action"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderToString(t, toastkit.Item(toastkit.DefaultBasePath, tt.toast))

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestItem_EscapesHTML(t *testing.T) {
	out := renderToString(t, toastkit.Item(toastkit.DefaultBasePath, toast.Toast{
		ID:       "t1",
		Severity: toast.SeverityError,
		Title:    `<b>bold</b>`,
		Message:  `<script>alert("xss")</script>`,
		Action:   &toast.Action{Label: `<img src=x>`, URL: `/safe?a=1&b=2`},
	}))

	assert.Contains(t, out, `&lt;script&gt;alert(&#34;xss&#34;)&lt;/script&gt;`)
	assert.Contains(t, out, `&lt;b&gt;bold&lt;/b&gt;`)
	assert.Contains(t, out, `&lt;img src=x&gt;`)
	assert.Contains(t, out, `href="/safe?a=1&amp;b=2"`)
	assert.NotContains(t, out, `<script>`)
	assert.NotContains(t, out, `<img`)
}

func TestItem_EscapesID(t *testing.T) {
	out := renderToString(t, toastkit.Item(toastkit.DefaultBasePath, toast.Toast{
		ID:       `t"1`,
		Severity: toast.SeverityInfo,
		Message:  "odd id",
	}))

	assert.Contains(t, out, `id="toast-t&#34;1"`)
	assert.NotContains(t, out, `id="toast-t"1"`)
}
