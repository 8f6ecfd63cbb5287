package templates

import (
	"context"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// field wraps a control with its label and an optional error line.
func field(h *htmlWriter, label, errMsg string, control func()) {
	h.open("label", classes("form-control", "w-full"))
	if label != "" {
		h.open("div", classes("label"))
		h.element("span", label, classes("label-text"))
		h.close("div")
	}
	control()
	fieldError(h, errMsg)
	h.close("label")
}

func fieldError(h *htmlWriter, errMsg string) {
	if strings.TrimSpace(errMsg) == "" {
		return
	}
	h.element("span", errMsg, attr("role", "alert"), classes("text-error", "text-sm", "mt-1"))
}

func textInput(h *htmlWriter, label, name, inputType, value, errMsg string, extra ...string) {
	field(h, label, errMsg, func() {
		attrs := []string{
			attr("type", inputType),
			attr("id", name),
			attr("name", name),
			attr("value", value),
			classes("input", "input-bordered", "w-full", errorClass(errMsg, "input-error")),
		}
		h.open("input", append(attrs, extra...)...)
	})
}

func hiddenInput(h *htmlWriter, name, value string) {
	if value == "" {
		return
	}
	h.open("input", attr("type", "hidden"), attr("name", name), attr("value", value))
}

func selectInput(h *htmlWriter, placeholder, label, name, value, errMsg string, options []string, extra ...string) {
	field(h, label, errMsg, func() {
		attrs := []string{
			attr("id", name),
			attr("name", name),
			classes("select", "select-bordered", "w-full", errorClass(errMsg, "select-error")),
		}
		h.open("select", append(attrs, extra...)...)
		h.element("option", placeholder, attr("value", ""), flag("selected", value == ""))
		for _, option := range options {
			h.element("option", option, attr("value", option), flag("selected", option == value))
		}
		h.close("select")
	})
}

func checkboxGroup(h *htmlWriter, label, name, errMsg string, options []string, selected []string) {
	h.open("fieldset", classes("form-control", "w-full"))
	h.element("legend", label, classes("label-text", "mb-2"))
	h.open("div", classes("flex", "flex-wrap", "gap-3"))
	for _, option := range options {
		h.open("label", classes("label", "cursor-pointer", "gap-2"))
		h.open("input",
			attr("type", "checkbox"),
			attr("name", name),
			attr("value", option),
			flag("checked", slices.Contains(selected, option)),
			classes("checkbox", "checkbox-sm"),
		)
		h.element("span", option, classes("label-text"))
		h.close("label")
	}
	h.close("div")
	fieldError(h, errMsg)
	h.close("fieldset")
}

func textArea(h *htmlWriter, label, name, value, errMsg string, extra ...string) {
	field(h, label, errMsg, func() {
		attrs := []string{
			attr("id", name),
			attr("name", name),
			attr("rows", "5"),
			classes("textarea", "textarea-bordered", "w-full", errorClass(errMsg, "textarea-error")),
		}
		h.open("textarea", append(attrs, extra...)...)
		h.text(value)
		h.close("textarea")
	})
}

func formError(message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if strings.TrimSpace(message) == "" {
			return
		}
		h.open("div", attr("role", "alert"), attr("id", "form-error"), classes("alert", "alert-error"))
		h.element("span", message)
		h.close("div")
	})
}

func errorClass(errMsg, class string) string {
	if strings.TrimSpace(errMsg) == "" {
		return ""
	}
	return class
}
