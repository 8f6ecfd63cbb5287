// Package submit persists a finished onboarding wizard.
//
// A submission resolves the session identity, uploads the selected image
// with overwrite semantics, upserts the primary record, then upserts one
// record per selected platform. Any failure stops the remaining stages and
// nothing already written is rolled back; every write is an upsert so a
// retry replays the whole sequence safely.
package submit

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	platformotel "github.com/louisbranch/inpact/internal/platform/otel"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/objectstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
)

// Landing routes reached after a successful submission.
const (
	CreatorLanding = "/dashboard"
	BrandLanding   = "/brand/dashboard"
)

// Fallback messages shown when a failure carries no message of its own.
const (
	CreatorFailedMessage = "Failed to submit onboarding data."
	BrandFailedMessage   = "Failed to submit brand onboarding data."
)

// Object base names inside each user's folder.
const (
	profileImageBase = "profile"
	brandLogoBase    = "brand-logo"
)

var (
	// ErrNotAuthenticated is returned before any side effect when the
	// session carries no identity.
	ErrNotAuthenticated = apperrors.New(apperrors.CodeNotAuthenticated, "User not authenticated")
	// ErrNotReady is returned when the wizard has not reached its review
	// step.
	ErrNotReady = apperrors.New(apperrors.CodeStepInvalid, "Please complete every step before submitting.")
)

// Uploader is the object storage used for images.
type Uploader interface {
	Upload(ctx context.Context, bucket, path, contentType string, data []byte) error
	PublicURL(bucket, path string) string
}

// Result describes a successful submission.
type Result struct {
	Redirect string
	// ImageURL is the public URL of the uploaded image, if any.
	ImageURL string
}

// Coordinator runs submissions. Concurrent submissions for the same user
// collapse into one run whose result every caller receives.
type Coordinator struct {
	objects  Uploader
	profiles storage.ProfileStore
	group    singleflight.Group
	tracer   trace.Tracer
	logger   *log.Logger
	now      func() time.Time
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger; nil keeps log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoordinator returns a Coordinator writing to objects and profiles.
func NewCoordinator(objects Uploader, profiles storage.ProfileStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		objects:  objects,
		profiles: profiles,
		tracer:   platformotel.Tracer("submit"),
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserMessage returns the single message shown for a failed submission.
func UserMessage(err error, flow wizard.Flow) string {
	fallback := CreatorFailedMessage
	if flow == wizard.FlowBrand {
		fallback = BrandFailedMessage
	}
	return apperrors.Message(err, fallback)
}

// SubmitCreator persists a creator wizard.
func (c *Coordinator) SubmitCreator(ctx context.Context, sess *session.Session, state *wizard.State) (Result, error) {
	return c.run(ctx, sess, state, wizard.FlowCreator, c.creator)
}

// SubmitBrand persists a brand wizard.
func (c *Coordinator) SubmitBrand(ctx context.Context, sess *session.Session, state *wizard.State) (Result, error) {
	return c.run(ctx, sess, state, wizard.FlowBrand, c.brand)
}

type stageFunc func(ctx context.Context, userID string, state *wizard.State) (Result, error)

func (c *Coordinator) run(ctx context.Context, sess *session.Session, state *wizard.State, flow wizard.Flow, stages stageFunc) (Result, error) {
	if !sess.Authenticated() {
		return Result{}, ErrNotAuthenticated
	}
	if c == nil || c.profiles == nil || c.objects == nil {
		return Result{}, fmt.Errorf("submission is not configured")
	}
	if state == nil || state.Flow != flow || !state.ReadyToSubmit() {
		return Result{}, ErrNotReady
	}
	userID := strings.TrimSpace(sess.UserID)

	ctx, span := c.tracer.Start(ctx, "submit."+string(flow), trace.WithAttributes(
		attribute.String("onboarding.flow", string(flow)),
		attribute.Int("onboarding.platforms", len(state.Platforms)),
	))
	defer span.End()

	value, err, shared := c.group.Do(string(flow)+":"+userID, func() (any, error) {
		return stages(ctx, userID, state)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Printf("submit failed flow=%s user_id=%s shared=%t err=%v", flow, userID, shared, err)
		return Result{}, err
	}
	result := value.(Result)
	c.logger.Printf("submit ok flow=%s user_id=%s platforms=%d shared=%t", flow, userID, len(state.Platforms), shared)
	return result, nil
}

func (c *Coordinator) creator(ctx context.Context, userID string, state *wizard.State) (Result, error) {
	imageURL := ""
	if state.Asset != nil {
		url, err := c.upload(ctx, objectstore.BucketProfilePictures, state.Asset.ObjectPath(userID, profileImageBase), state.Asset)
		if err != nil {
			return Result{}, err
		}
		imageURL = url
	}

	now := c.now().UTC()
	category := ""
	if state.Role == wizard.RoleCreator {
		category = state.Personal.ResolvedCategory()
	}
	user := storage.User{
		ID:           userID,
		ProfileImage: imageURL,
		Username:     strings.TrimSpace(state.Personal.Username),
		Age:          state.Personal.Age,
		Gender:       state.Personal.Gender,
		Country:      strings.TrimSpace(state.Personal.Country),
		Role:         string(state.Role),
		Email:        strings.TrimSpace(state.Personal.Email),
		Category:     category,
		Bio:          state.Personal.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.stage(ctx, "submit.upsert_user", func(ctx context.Context) error {
		return c.profiles.UpsertUser(ctx, user)
	}); err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeProfileUpsertFailed, "Failed to save profile.", err)
	}

	for _, platform := range state.Platforms {
		profile := socialProfile(userID, platform, state, now)
		if err := c.stage(ctx, "submit.upsert_social_profile", func(ctx context.Context) error {
			return c.profiles.UpsertSocialProfile(ctx, profile)
		}, attribute.String("onboarding.platform", platform)); err != nil {
			return Result{}, apperrors.WrapWithMetadata(
				apperrors.CodePlatformUpsertFailed,
				fmt.Sprintf("Failed to save %s profile.", platformLabel(platform)),
				map[string]string{"Platform": platform},
				err,
			)
		}
	}

	return Result{Redirect: landingFor(state.Role), ImageURL: imageURL}, nil
}

func (c *Coordinator) brand(ctx context.Context, userID string, state *wizard.State) (Result, error) {
	logoURL := strings.TrimSpace(state.Brand.LogoURL)
	if state.Asset != nil {
		url, err := c.upload(ctx, objectstore.BucketBrandLogos, state.Asset.ObjectPath(userID, brandLogoBase), state.Asset)
		if err != nil {
			return Result{}, err
		}
		logoURL = url
	}

	now := c.now().UTC()
	b := state.Brand
	record := storage.Brand{
		UserID:                     userID,
		BrandName:                  strings.TrimSpace(b.BrandName),
		LogoURL:                    logoURL,
		WebsiteURL:                 strings.TrimSpace(b.WebsiteURL),
		Industry:                   b.Industry,
		CompanySize:                b.CompanySize,
		Location:                   b.Location,
		Description:                strings.TrimSpace(b.Description),
		ContactPerson:              strings.TrimSpace(b.ContactPerson),
		ContactEmail:               strings.TrimSpace(b.ContactEmail),
		ContactPhone:               strings.TrimSpace(b.ContactPhone),
		Role:                       string(wizard.RoleBrand),
		InstagramURL:               strings.TrimSpace(b.InstagramURL),
		FacebookURL:                strings.TrimSpace(b.FacebookURL),
		TwitterURL:                 strings.TrimSpace(b.TwitterURL),
		LinkedInURL:                strings.TrimSpace(b.LinkedInURL),
		YouTubeURL:                 strings.TrimSpace(b.YouTubeURL),
		CollaborationTypes:         b.CollaborationTypes,
		PreferredCreatorCategories: b.PreferredCreatorCategories,
		BrandValues:                b.BrandValues,
		PreferredTone:              b.PreferredTone,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := c.stage(ctx, "submit.upsert_brand", func(ctx context.Context) error {
		return c.profiles.UpsertBrand(ctx, record)
	}); err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeBrandUpsertFailed, "Failed to save brand.", err)
	}
	return Result{Redirect: BrandLanding, ImageURL: logoURL}, nil
}

func (c *Coordinator) upload(ctx context.Context, bucket, path string, asset *wizard.Asset) (string, error) {
	err := c.stage(ctx, "submit.upload", func(ctx context.Context) error {
		return c.objects.Upload(ctx, bucket, path, asset.ContentType, asset.Data)
	}, attribute.String("objectstore.bucket", bucket))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeAssetUploadFailed, "Failed to upload image.", err)
	}
	return c.objects.PublicURL(bucket, path), nil
}

// stage runs one submission step inside its own span.
func (c *Coordinator) stage(ctx context.Context, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := c.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func socialProfile(userID, platform string, state *wizard.State, now time.Time) storage.SocialProfile {
	profile := storage.SocialProfile{
		UserID:    userID,
		Platform:  platform,
		Pricing:   make(map[string]storage.Price),
		UpdatedAt: now,
	}
	for key, price := range state.Pricing.ForPlatform(platform) {
		profile.Pricing[key] = storage.Price{Avg: price.Avg, Currency: price.Currency}
	}

	details := state.Details
	switch platform {
	case catalog.PlatformYouTube:
		profile.ChannelURL = strings.TrimSpace(details.YouTube.URL)
		profile.ChannelID = details.YouTube.ChannelID
		profile.ChannelName = details.YouTube.ChannelName
		profile.ProfileImage = details.YouTube.ProfileImage
		profile.SubscriberCount = parseCount(details.YouTube.SubscriberCount)
	case catalog.PlatformInstagram:
		profile.Username = strings.TrimSpace(details.Instagram.Username)
		profile.Followers = parseCount(details.Instagram.Followers)
		profile.Posts = parseCount(details.Instagram.Posts)
	case catalog.PlatformFacebook:
		profile.Username = strings.TrimSpace(details.Facebook.Username)
	case catalog.PlatformTikTok:
		profile.Username = strings.TrimSpace(details.TikTok.Username)
	}
	return profile
}

// parseCount converts a validated count to an integer; blank or invalid
// input stores NULL.
func parseCount(value string) *int64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return nil
	}
	v := int64(n)
	return &v
}

func platformLabel(platform string) string {
	if def, ok := catalog.Default().Platform(platform); ok && def.Label != "" {
		return def.Label
	}
	return platform
}

func landingFor(role wizard.Role) string {
	if role == wizard.RoleBrand {
		return BrandLanding
	}
	return CreatorLanding
}
