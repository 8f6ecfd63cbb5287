package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so component bodies read as
// straight-line markup.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

// text writes escaped character data.
func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

// open writes a start tag with pre-rendered attributes.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<", tag)
	h.raw(attrs...)
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</", tag, ">")
}

// element writes a start tag, escaped text, and the end tag.
func (h *htmlWriter) element(tag string, value string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(value)
	h.close(tag)
}

func (h *htmlWriter) render(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

// attr renders one escaped attribute.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// flag renders a boolean attribute when on.
func flag(name string, on bool) string {
	if !on {
		return ""
	}
	return " " + name
}

func classes(values ...string) string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return attr("class", strings.Join(out, " "))
}

// Empty renders nothing.
func Empty() templ.Component {
	return templ.NopComponent
}

// Join renders components one after another.
func Join(components ...templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		for _, c := range components {
			h.render(ctx, c)
		}
	})
}
