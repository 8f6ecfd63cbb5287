package onboarding

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/submit"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	weberrors "github.com/louisbranch/inpact/internal/services/web/platform/errors"
	"github.com/louisbranch/inpact/internal/services/web/platform/flash"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inpact/internal/services/web/platform/i18n"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// maxFormMemory bounds the multipart bytes held in memory; the rest spills
// to temporary files.
const maxFormMemory = wizard.MaxAssetBytes + 1<<20

type handlers struct {
	modulehandler.Base
	service  service
	basePath string
}

func newHandlers(s service, base modulehandler.Base, basePath string) handlers {
	return handlers{Base: base, service: s, basePath: basePath}
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := h.RequestContext(r)
	sess := h.ResolveRequestSession(r)
	if target, ok := h.service.existingProfile(ctx, sess); ok {
		flash.WriteWithPolicy(w, r, flash.NoticeInfo("web.notice.profile_exists"), h.SchemePolicy())
		httpx.WriteRedirect(w, r, target)
		return
	}
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	state, err := h.service.open(ctx, wizardID, sess)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeWizard(w, r, state, nil, "")
}

func (h handlers) handleStep(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.WriteError(w, r, formError(err))
		return
	}
	input := stepInput{Action: r.PostFormValue("action"), Form: r.PostForm}
	if input.Action != actionBack {
		input.Upload, input.UploadErr = readUpload(r)
	}
	out, err := h.service.step(h.RequestContext(r), wizardID, h.ResolveRequestSession(r), input)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if out.Redirect != "" {
		httpx.WriteRedirect(w, r, out.Redirect)
		return
	}
	h.writeWizard(w, r, out.State, out.Errors, "")
}

func (h handlers) handleYouTube(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.WriteError(w, r, formError(err))
		return
	}
	yt, err := h.service.enrichYouTube(h.RequestContext(r), wizardID, h.ResolveRequestSession(r), r.PostFormValue("youtube_url"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page := h.Page(w, r, "")
	yt.LookupError = webi18n.Message(page.Loc, yt.LookupError)
	h.writeFragment(w, r, webtemplates.YouTubeDetails(page, yt))
}

func (h handlers) handleBio(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.WriteError(w, r, formError(err))
		return
	}
	update, err := h.service.updateBio(h.RequestContext(r), wizardID, h.ResolveRequestSession(r), r.PostFormValue(webtemplates.BioInputID))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page := h.Page(w, r, "")
	counter := webtemplates.BioCounter(page, update.Words)
	if update.Accepted {
		h.writeFragment(w, r, counter)
		return
	}
	restored := webtemplates.BioInput(page, routepath.WizardBio(h.basePath), update.Stored, webi18n.Message(page.Loc, bioCapMessage), true)
	h.writeFragment(w, r, webtemplates.Join(counter, restored))
}

func (h handlers) handleRefine(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.WriteError(w, r, formError(err))
		return
	}
	out, err := h.service.refineBio(h.RequestContext(r), wizardID, h.ResolveRequestSession(r), r.PostFormValue(webtemplates.BioInputID))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page := h.Page(w, r, "")
	errMsg, warning := "", ""
	if out.OverCap {
		errMsg = webi18n.Message(page.Loc, bioCapMessage)
	}
	if out.Failed {
		warning = page.T("web.notice.refine_failed")
	}
	h.writeFragment(w, r, webtemplates.BioField(page, h.basePath, out.Bio, errMsg, warning))
}

func (h handlers) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.WriteError(w, r, formError(err))
		return
	}
	page := h.Page(w, r, "")
	asset, err := readUpload(r)
	if err != nil {
		h.writeFragment(w, r, webtemplates.ImagePreview("", webi18n.Message(page.Loc, uploadMessage(err))))
		return
	}
	if asset == nil {
		h.writeFragment(w, r, webtemplates.ImagePreview("", webi18n.Message(page.Loc, wizard.ErrAssetInvalidType.Message)))
		return
	}
	state, err := h.service.setAsset(h.RequestContext(r), wizardID, h.ResolveRequestSession(r), asset)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeFragment(w, r, webtemplates.ImagePreview(h.previewURL(state), ""))
}

func (h handlers) handleAsset(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := sessioncookie.ReadWizard(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	asset, err := h.service.asset(h.RequestContext(r), wizardID)
	if errors.Is(err, wizardstore.ErrNotFound) {
		h.WriteNotFound(w, r)
		return
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(asset.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(asset.Data)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := h.wizardID(w, r)
	if !ok {
		return
	}
	result, state, err := h.service.submit(h.RequestContext(r), wizardID, h.ResolveRequestSession(r))
	if err != nil {
		if state == nil {
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		h.writeWizard(w, r, state, nil, webi18n.Message(loc, submit.UserMessage(err, state.Flow)))
		return
	}
	flash.WriteWithPolicy(w, r, flash.NoticeSuccess("web.notice.onboarding_complete"), h.SchemePolicy())
	httpx.WriteRedirect(w, r, result.Redirect)
}

// wizardID returns the wizard cookie, issuing one when missing.
func (h handlers) wizardID(w http.ResponseWriter, r *http.Request) (string, bool) {
	wizardID, err := sessioncookie.EnsureWizard(w, r, h.SchemePolicy())
	if err != nil {
		h.WriteError(w, r, err)
		return "", false
	}
	return wizardID, true
}

func (h handlers) writeWizard(w http.ResponseWriter, r *http.Request, state *wizard.State, errs validate.StepErrors, formError string) {
	page := h.Page(w, r, "")
	title := "web.onboarding.title"
	var warnings validate.StepErrors
	if state.Flow == wizard.FlowBrand {
		title = "web.brand_onboarding.title"
		warnings = translate(page.Loc, validate.BrandWarnings(state, state.Step))
	}
	page.Title = page.T(title)
	view := webtemplates.WizardView{
		Page:       page,
		BasePath:   h.basePath,
		State:      state,
		Errors:     translate(page.Loc, errs),
		Warnings:   warnings,
		Options:    catalog.Default(),
		FormError:  formError,
		PreviewURL: h.previewURL(state),
	}
	fragment := webtemplates.WizardPage(view)
	if httpx.IsHTMXRequest(r) {
		fragment = webtemplates.Wizard(view)
	}
	h.WriteComponent(w, r, http.StatusOK, page, fragment)
}

func (h handlers) writeFragment(w http.ResponseWriter, r *http.Request, fragment templ.Component) {
	page := h.Page(w, r, "")
	h.WriteComponent(w, r, http.StatusOK, page, fragment)
}

// previewURL links the selected image, busting caches when it changes.
func (h handlers) previewURL(state *wizard.State) string {
	if state == nil || state.Asset == nil {
		return ""
	}
	return routepath.WizardAsset(h.basePath) + "?v=" + strconv.FormatInt(state.UpdatedAt.UnixNano(), 36)
}

func translate(loc webi18n.Localizer, errs validate.StepErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, message := range errs {
		out[field] = webi18n.Message(loc, message)
	}
	return out
}

// parseForm parses multipart and urlencoded bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formError classifies a body parse failure.
func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return weberrors.Wrap(weberrors.KindTooLarge, "request body too large", err)
	}
	return weberrors.Wrap(weberrors.KindInvalidInput, "invalid form body", err)
}

// readUpload reads the posted image. A missing file is not an error.
func readUpload(r *http.Request) (*wizard.Asset, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[imageField]) == 0 {
		return nil, nil
	}
	header := r.MultipartForm.File[imageField][0]
	if header.Size == 0 && header.Filename == "" {
		return nil, nil
	}
	if header.Size > wizard.MaxAssetBytes {
		return nil, wizard.ErrAssetTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAssetUploadFailed, "Could not read the selected image.", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, wizard.MaxAssetBytes+1))
	if err != nil {
		log.Printf("web: read upload failed: %v", err)
		return nil, apperrors.Wrap(apperrors.CodeAssetUploadFailed, "Could not read the selected image.", err)
	}
	return wizard.NewAsset(header.Filename, header.Header.Get("Content-Type"), data)
}
