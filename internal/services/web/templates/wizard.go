package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// WizardID is the element swapped by step navigation.
const WizardID = "wizard"

// WizardView is everything needed to render one wizard step.
type WizardView struct {
	Page      Page
	BasePath  string
	State     *wizard.State
	Errors    map[string]string
	Warnings  map[string]string
	Options   *catalog.Catalog
	FormError string
	// PreviewURL is set when an image is selected and can be shown.
	PreviewURL string
}

func (v WizardView) options() *catalog.Catalog {
	if v.Options != nil {
		return v.Options
	}
	return catalog.Default()
}

func (v WizardView) state() *wizard.State {
	if v.State != nil {
		return v.State
	}
	return wizard.New(wizard.FlowCreator)
}

// WizardPage renders the full wizard page body.
func WizardPage(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		title := "web.onboarding.title"
		if view.state().Flow == wizard.FlowBrand {
			title = "web.brand_onboarding.title"
		}
		h.element("h1", view.Page.T(title), classes("text-2xl", "font-bold", "mb-4"))
		h.render(ctx, Wizard(view))
	})
}

// Wizard renders the swappable wizard fragment for the current step.
func Wizard(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		machine := state.Machine()
		position, _ := machine.Position(state.Step)
		total := len(machine.Steps())

		h.open("div", attr("id", WizardID), attr("data-step", string(state.Step)), classes("card", "bg-base-200"))
		h.open("div", classes("card-body", "gap-4"))
		h.element("p", view.Page.T("web.wizard.step_of", position, total), classes("text-sm", "opacity-70"))
		h.open("progress", classes("progress", "progress-primary", "w-full"), attr("value", strconv.Itoa(position)), attr("max", strconv.Itoa(total)))
		h.close("progress")
		h.element("h2", view.Page.T("web.wizard.step."+string(state.Step)), classes("card-title"))
		h.render(ctx, formError(view.FormError))

		if state.ReadyToSubmit() {
			h.render(ctx, reviewStep(view))
		} else {
			h.render(ctx, stepForm(view))
		}
		h.close("div")
		h.close("div")
	})
}

func stepForm(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		action := routepath.WizardStep(view.BasePath)
		h.open("form",
			attr("id", "wizard-form"),
			attr("method", "post"),
			attr("action", action),
			attr("enctype", "multipart/form-data"),
			attr("hx-post", action),
			attr("hx-encoding", "multipart/form-data"),
			attr("hx-target", "#"+WizardID),
			attr("hx-swap", "outerHTML"),
			classes("flex", "flex-col", "gap-3"),
		)
		if state.Flow == wizard.FlowBrand {
			h.render(ctx, brandStepFields(view))
		} else {
			h.render(ctx, creatorStepFields(view))
		}
		h.render(ctx, wizardNav(view))
		h.close("form")
	})
}

func reviewStep(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		if state.Flow == wizard.FlowBrand {
			h.render(ctx, brandReview(view))
		} else {
			h.render(ctx, creatorReview(view))
		}
		back := routepath.WizardStep(view.BasePath)
		submit := routepath.WizardSubmit(view.BasePath)
		h.open("div", classes("card-actions", "justify-between", "mt-4"))
		h.open("form", attr("method", "post"), attr("action", back),
			attr("hx-post", back), attr("hx-target", "#"+WizardID), attr("hx-swap", "outerHTML"))
		h.element("button", view.Page.T("web.wizard.back"), attr("type", "submit"), attr("name", "action"), attr("value", "back"), classes("btn"))
		h.close("form")
		h.open("form", attr("id", "submit-form"), attr("method", "post"), attr("action", submit),
			attr("hx-post", submit), attr("hx-target", "#"+WizardID), attr("hx-swap", "outerHTML"),
			attr("hx-disabled-elt", "find button"))
		h.open("button", attr("type", "submit"), classes("btn", "btn-primary"))
		h.element("span", view.Page.T("web.wizard.submit"), classes("submit-idle"))
		h.element("span", view.Page.T("web.wizard.submitting"), classes("submit-busy", "htmx-indicator"))
		h.close("button")
		h.close("form")
		h.close("div")
	})
}

func wizardNav(view WizardView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		state := view.state()
		h.open("div", classes("card-actions", "justify-between", "mt-4"))
		if state.Step != state.Machine().Initial() {
			h.element("button", view.Page.T("web.wizard.back"),
				attr("type", "submit"), attr("name", "action"), attr("value", "back"),
				flag("formnovalidate", true), classes("btn"))
		} else {
			h.raw("<span></span>")
		}
		h.element("button", view.Page.T("web.wizard.next"),
			attr("type", "submit"), attr("name", "action"), attr("value", "next"), classes("btn", "btn-primary"))
		h.close("div")
	})
}

// reviewRow renders one label/value pair on a review step.
func reviewRow(h *htmlWriter, label, value string) {
	if value == "" {
		value = "-"
	}
	h.open("div", classes("flex", "justify-between", "border-b", "border-base-300", "py-1"))
	h.element("dt", label, classes("font-semibold"))
	h.element("dd", value)
	h.close("div")
}

func warning(h *htmlWriter, message string) {
	if message == "" {
		return
	}
	h.open("div", attr("role", "status"), classes("alert", "alert-warning"))
	h.element("span", message)
	h.close("div")
}

// ImagePreview renders the selected image preview slot with an optional
// rejection message.
func ImagePreview(url, errMsg string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("div", attr("id", "asset-preview"), classes("mt-2"))
		if url != "" {
			h.open("img", attr("src", url), attr("alt", ""), classes("h-24", "w-24", "rounded-full", "object-cover"))
		}
		fieldError(h, errMsg)
		h.close("div")
	})
}

func assetInput(ctx context.Context, h *htmlWriter, view WizardView, label, errMsg string) {
	upload := routepath.WizardAsset(view.BasePath)
	fileInput := func() {
		h.open("input",
			attr("type", "file"),
			attr("id", "image"),
			attr("name", "image"),
			attr("accept", "image/*"),
			attr("hx-post", upload),
			attr("hx-encoding", "multipart/form-data"),
			attr("hx-trigger", "change"),
			attr("hx-target", "#asset-preview"),
			attr("hx-swap", "outerHTML"),
			classes("file-input", "file-input-bordered", "w-full", errorClass(errMsg, "file-input-error")),
		)
	}
	field(h, label, errMsg, fileInput)
	h.render(ctx, ImagePreview(view.PreviewURL, ""))
}
