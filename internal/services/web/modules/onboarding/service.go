package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/louisbranch/inpact/internal/platform/requestctx"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/submit"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// ChannelLookup resolves a YouTube channel URL to channel metadata.
type ChannelLookup interface {
	LookupURL(ctx context.Context, raw string) (youtube.Channel, error)
}

// Refiner rewrites a bio. On error the returned text is the input.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}

// Submitter persists a finished wizard for the signed-in session.
type Submitter interface {
	SubmitCreator(ctx context.Context, sess *session.Session, state *wizard.State) (submit.Result, error)
	SubmitBrand(ctx context.Context, sess *session.Session, state *wizard.State) (submit.Result, error)
}

// ProfileReader reports records already written for an account.
type ProfileReader interface {
	GetUser(ctx context.Context, id string) (storage.User, error)
	GetBrand(ctx context.Context, userID string) (storage.Brand, error)
}

// Config carries the collaborators shared by both wizard flows.
type Config struct {
	Wizards   wizardstore.Store
	YouTube   ChannelLookup
	Refiner   Refiner
	Submitter Submitter
	Profiles  ProfileReader
	// Logger receives failure lines; nil uses log.Default().
	Logger *log.Logger
}

// Step actions posted by the wizard navigation buttons.
const (
	actionNext = "next"
	actionBack = "back"
)

const bioCapMessage = "Bio must be 2500 words or less."

var errWizardsUnavailable = errors.New("wizard store is not configured")

type service struct {
	flow      wizard.Flow
	wizards   wizardstore.Store
	youtube   ChannelLookup
	refiner   Refiner
	submitter Submitter
	profiles  ProfileReader
	refines   *singleflight.Group
	logger    *log.Logger
}

func newService(flow wizard.Flow, cfg Config) service {
	s := service{
		flow:      flow,
		wizards:   cfg.Wizards,
		youtube:   cfg.YouTube,
		refiner:   cfg.Refiner,
		submitter: cfg.Submitter,
		profiles:  cfg.Profiles,
		refines:   &singleflight.Group{},
		logger:    cfg.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.youtube == nil {
		s.youtube = unavailableLookup{}
	}
	if s.refiner == nil {
		s.refiner = unavailableRefiner{}
	}
	return s
}

func (s service) key(wizardID string) wizardstore.Key {
	return wizardstore.Key{SessionID: wizardID, Flow: s.flow}
}

// existingProfile returns the dashboard route when the signed-in account has
// already finished this flow.
func (s service) existingProfile(ctx context.Context, sess *session.Session) (string, bool) {
	if s.profiles == nil || !sess.Authenticated() {
		return "", false
	}
	if s.flow == wizard.FlowBrand {
		if _, err := s.profiles.GetBrand(ctx, sess.UserID); err == nil {
			return routepath.BrandDashboard, true
		}
		return "", false
	}
	if _, err := s.profiles.GetUser(ctx, sess.UserID); err == nil {
		return routepath.Dashboard, true
	}
	return "", false
}

// open loads the wizard state, creating it when absent. Signed-in sessions
// prefill identity fields that are still empty.
func (s service) open(ctx context.Context, wizardID string, sess *session.Session) (*wizard.State, error) {
	if s.wizards == nil {
		return nil, errWizardsUnavailable
	}
	key := s.key(wizardID)
	state, err := s.wizards.Load(ctx, key)
	switch {
	case errors.Is(err, wizardstore.ErrNotFound):
		state = wizard.New(s.flow)
	case err != nil:
		return nil, fmt.Errorf("load wizard: %w", err)
	}
	if sess.Authenticated() {
		state.Prefill(sess.DisplayName, sess.Email)
	}
	if err := s.wizards.Save(ctx, key, state); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}
	return state, nil
}

// update applies fn to the stored state, creating the state first when it
// expired between requests.
func (s service) update(ctx context.Context, wizardID string, sess *session.Session, fn func(*wizard.State) error) error {
	if s.wizards == nil {
		return errWizardsUnavailable
	}
	key := s.key(wizardID)
	err := s.wizards.Update(ctx, key, fn)
	if !errors.Is(err, wizardstore.ErrNotFound) {
		return err
	}
	if _, err := s.open(ctx, wizardID, sess); err != nil {
		return err
	}
	return s.wizards.Update(ctx, key, fn)
}

// stepInput is one posted step form.
type stepInput struct {
	Action string
	Form   url.Values
	// Upload is the image posted with the form, if any.
	Upload    *wizard.Asset
	UploadErr error
}

// stepOutcome is what the step handler renders.
type stepOutcome struct {
	State    *wizard.State
	Errors   validate.StepErrors
	Redirect string
}

// step binds the posted fields to the current step, then moves back or,
// when the step validates, forward.
func (s service) step(ctx context.Context, wizardID string, sess *session.Session, input stepInput) (stepOutcome, error) {
	var out stepOutcome
	err := s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		bindErrs := bindStep(state, input.Form)
		if input.Upload != nil {
			state.Asset = input.Upload
		}
		if input.UploadErr != nil {
			bindErrs[assetErrorKey(state.Flow)] = uploadMessage(input.UploadErr)
		}
		out.State = state
		out.Errors = validate.StepErrors{}

		if input.Action == actionBack {
			if err := state.Retreat(); err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
				return err
			}
			return nil
		}

		errs := validate.ForState(state)
		for field, message := range bindErrs {
			errs[field] = message
		}
		if !errs.OK() {
			out.Errors = errs
			return nil
		}
		if state.Flow == wizard.FlowCreator && state.Step == wizard.StepRoleSelect && state.Role == wizard.RoleBrand {
			state.MarkPassed(state.Step)
			out.Redirect = routepath.BrandOnboarding
			return nil
		}
		return state.Advance()
	})
	if err != nil {
		return stepOutcome{}, err
	}
	return out, nil
}

// enrichYouTube stores the URL and looks up its channel. The generation is
// saved before the lookup so a response is applied only when no newer lookup
// started meanwhile. Channel data changes only on a successful lookup; a
// failed one records the field error and keeps the previous channel. An
// empty URL clears the channel. It returns the details to render.
func (s service) enrichYouTube(ctx context.Context, wizardID string, sess *session.Session, rawURL string) (wizard.YouTube, error) {
	rawURL = strings.TrimSpace(rawURL)
	var gen uint64
	var current wizard.YouTube
	err := s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		yt := &state.Details.YouTube
		yt.URL = rawURL
		yt.LookupError = ""
		if rawURL == "" {
			yt.ClearChannel()
		}
		gen = state.BeginEnrichment(wizard.FieldYouTube)
		current = *yt
		return nil
	})
	if err != nil {
		return wizard.YouTube{}, err
	}
	if rawURL == "" {
		return current, nil
	}

	channel, lookupErr := s.youtube.LookupURL(ctx, rawURL)
	err = s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		state.ApplyEnrichment(wizard.FieldYouTube, gen, func(state *wizard.State) {
			yt := &state.Details.YouTube
			if lookupErr != nil {
				yt.LookupError = youtube.UserMessage(lookupErr)
				return
			}
			yt.LookupError = ""
			yt.ChannelID = channel.ID
			yt.ChannelName = channel.Title
			yt.ProfileImage = channel.ThumbnailURL
			yt.SubscriberCount = channel.SubscriberCount
		})
		current = state.Details.YouTube
		return nil
	})
	if err != nil {
		return wizard.YouTube{}, err
	}
	return current, nil
}

// bioUpdate is the result of a bio edit.
type bioUpdate struct {
	Stored   string
	Words    int
	Accepted bool
}

// updateBio stores an edited bio unless it exceeds the word cap. Any edit
// supersedes an in-flight refinement.
func (s service) updateBio(ctx context.Context, wizardID string, sess *session.Session, text string) (bioUpdate, error) {
	out := bioUpdate{Words: wizard.WordCount(text)}
	err := s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		out.Accepted = state.SetBio(text)
		if out.Accepted {
			state.BeginEnrichment(wizard.FieldBio)
		}
		out.Stored = state.Personal.Bio
		return nil
	})
	return out, err
}

// bioRefinement is the result of a refine request.
type bioRefinement struct {
	Bio    string
	Failed bool
	// OverCap is set when the submitted text was rejected before refining.
	OverCap bool
}

// refineBio stores the submitted text, refines it, and applies the result
// when no newer edit happened meanwhile. Duplicate requests for one wizard
// share a single upstream call.
func (s service) refineBio(ctx context.Context, wizardID string, sess *session.Session, text string) (bioRefinement, error) {
	value, err, _ := s.refines.Do(s.key(wizardID).String(), func() (any, error) {
		return s.refineOnce(ctx, wizardID, sess, text)
	})
	if err != nil {
		return bioRefinement{}, err
	}
	return value.(bioRefinement), nil
}

func (s service) refineOnce(ctx context.Context, wizardID string, sess *session.Session, text string) (bioRefinement, error) {
	var out bioRefinement
	var gen uint64
	var source string
	err := s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		if !state.SetBio(text) {
			out.OverCap = true
		}
		source = state.Personal.Bio
		gen = state.BeginEnrichment(wizard.FieldBio)
		return nil
	})
	if err != nil {
		return bioRefinement{}, err
	}
	if out.OverCap || strings.TrimSpace(source) == "" {
		out.Bio = source
		return out, nil
	}

	refined, refineErr := s.refiner.Refine(ctx, source)
	if refineErr != nil {
		s.logger.Printf("web: refine failed flow=%s user_id=%s err=%v", s.flow, logUserID(ctx), refineErr)
	}
	err = s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		state.ApplyEnrichment(wizard.FieldBio, gen, func(state *wizard.State) {
			if refineErr != nil || !state.SetBio(refined) {
				out.Failed = true
			}
		})
		out.Bio = state.Personal.Bio
		return nil
	})
	if err != nil {
		return bioRefinement{}, err
	}
	return out, nil
}

// setAsset stores a selected image.
func (s service) setAsset(ctx context.Context, wizardID string, sess *session.Session, asset *wizard.Asset) (*wizard.State, error) {
	var out *wizard.State
	err := s.update(ctx, wizardID, sess, func(state *wizard.State) error {
		state.Asset = asset
		out = state
		return nil
	})
	return out, err
}

// asset returns the selected image.
func (s service) asset(ctx context.Context, wizardID string) (*wizard.Asset, error) {
	if s.wizards == nil {
		return nil, errWizardsUnavailable
	}
	state, err := s.wizards.Load(ctx, s.key(wizardID))
	if err != nil {
		return nil, err
	}
	if state.Asset == nil {
		return nil, wizardstore.ErrNotFound
	}
	return state.Asset, nil
}

// submit persists the wizard and drops its state on success. The returned
// state is what the review step re-renders on failure.
func (s service) submit(ctx context.Context, wizardID string, sess *session.Session) (submit.Result, *wizard.State, error) {
	state, err := s.open(ctx, wizardID, sess)
	if err != nil {
		return submit.Result{}, nil, err
	}
	if s.submitter == nil {
		return submit.Result{}, state, errors.New("submission is not configured")
	}
	var result submit.Result
	if s.flow == wizard.FlowBrand {
		result, err = s.submitter.SubmitBrand(ctx, sess, state)
	} else {
		result, err = s.submitter.SubmitCreator(ctx, sess, state)
	}
	if err != nil {
		return submit.Result{}, state, err
	}
	if err := s.wizards.Delete(ctx, s.key(wizardID)); err != nil {
		s.logger.Printf("web: wizard cleanup failed flow=%s user_id=%s err=%v", s.flow, logUserID(ctx), err)
	}
	return result, state, nil
}

// logUserID returns the request user for log lines, or "-" when anonymous.
func logUserID(ctx context.Context) string {
	if id := requestctx.UserIDFromContext(ctx); id != "" {
		return id
	}
	return "-"
}

type unavailableLookup struct{}

func (unavailableLookup) LookupURL(context.Context, string) (youtube.Channel, error) {
	return youtube.Channel{}, errors.New("channel lookup is not configured")
}

type unavailableRefiner struct{}

func (unavailableRefiner) Refine(_ context.Context, text string) (string, error) {
	return text, errors.New("refinement is not configured")
}
