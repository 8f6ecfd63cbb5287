package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/refine"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ChannelLookup resolves a YouTube channel URL.
type ChannelLookup interface {
	LookupURL(ctx context.Context, raw string) (youtube.Channel, error)
}

// Refiner rewrites a bio.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}

// ChannelLookupInput represents the MCP tool input for a channel lookup.
type ChannelLookupInput struct {
	URL string `json:"url" jsonschema:"YouTube channel URL (/channel/, /user/, /c/ or /@handle)"`
}

// ChannelLookupResult represents the resolved channel.
type ChannelLookupResult struct {
	Found           bool   `json:"found" jsonschema:"whether a channel was resolved"`
	ChannelID       string `json:"channel_id,omitempty" jsonschema:"YouTube channel id"`
	Title           string `json:"title,omitempty" jsonschema:"channel title"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty" jsonschema:"highest resolution thumbnail"`
	SubscriberCount string `json:"subscriber_count,omitempty" jsonschema:"subscriber count as reported"`
	Message         string `json:"message,omitempty" jsonschema:"user-facing reason when no channel was found"`
}

// RefineBioInput represents the MCP tool input for bio refinement.
type RefineBioInput struct {
	Text string `json:"text" jsonschema:"bio text to refine"`
}

// RefineBioResult represents the refined bio.
type RefineBioResult struct {
	Refined string `json:"refined" jsonschema:"refined text, or the input when refinement was skipped"`
	Changed bool   `json:"changed" jsonschema:"whether the text differs from the input"`
}

// ValidateCreatorStepInput carries the creator answers to check for one step.
type ValidateCreatorStepInput struct {
	Step      string          `json:"step" jsonschema:"creator step: role_select, personal_details, platforms, platform_details, pricing or asset"`
	Role      string          `json:"role,omitempty" jsonschema:"creator or brand"`
	Personal  wizard.Personal `json:"personal,omitempty" jsonschema:"personal details"`
	Platforms []string        `json:"platforms,omitempty" jsonschema:"selected platforms"`
	Details   wizard.Details  `json:"details,omitempty" jsonschema:"per-platform details"`
	Pricing   wizard.Pricing  `json:"pricing,omitempty" jsonschema:"currency and per-deliverable rates"`
	HasAsset  bool            `json:"has_asset,omitempty" jsonschema:"whether a profile image was uploaded"`
}

// ValidateCreatorStepResult lists field-scoped messages.
type ValidateCreatorStepResult struct {
	Valid  bool              `json:"valid" jsonschema:"whether the step passes"`
	Errors map[string]string `json:"errors,omitempty" jsonschema:"field key to message"`
}

// ChannelLookupTool defines the channel lookup tool.
func ChannelLookupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "youtube_channel_lookup",
		Description: "Resolves a YouTube channel URL to its id, title, thumbnail and subscriber count",
	}
}

// RefineBioTool defines the bio refinement tool.
func RefineBioTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "refine_bio",
		Description: "Rewrites a creator bio for clarity and tone. Returns the input unchanged when refinement yields nothing",
	}
}

// ValidateCreatorStepTool defines the creator step validation tool.
func ValidateCreatorStepTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "validate_creator_step",
		Description: "Validates the answers for one creator onboarding step and returns field errors",
	}
}

// ChannelLookupHandler resolves a channel. Unknown channels and malformed
// URLs are results, not tool errors.
func ChannelLookupHandler(lookup ChannelLookup) mcp.ToolHandlerFor[ChannelLookupInput, ChannelLookupResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChannelLookupInput) (*mcp.CallToolResult, ChannelLookupResult, error) {
		if lookup == nil {
			return nil, ChannelLookupResult{}, errors.New("channel lookup is not configured")
		}
		raw := strings.TrimSpace(input.URL)
		if raw == "" {
			return nil, ChannelLookupResult{}, errors.New("url is required")
		}
		channel, err := lookup.LookupURL(ctx, raw)
		if err != nil {
			if errors.Is(err, youtube.ErrChannelNotFound) || errors.Is(err, youtube.ErrInvalidURL) {
				return nil, ChannelLookupResult{Message: youtube.UserMessage(err)}, nil
			}
			return nil, ChannelLookupResult{}, fmt.Errorf("channel lookup failed: %w", err)
		}
		return nil, ChannelLookupResult{
			Found:           true,
			ChannelID:       channel.ID,
			Title:           channel.Title,
			ThumbnailURL:    channel.ThumbnailURL,
			SubscriberCount: channel.SubscriberCount,
		}, nil
	}
}

// RefineBioHandler refines text. Upstream rejections fall back to the input;
// transport failures surface as tool errors.
func RefineBioHandler(refiner Refiner) mcp.ToolHandlerFor[RefineBioInput, RefineBioResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RefineBioInput) (*mcp.CallToolResult, RefineBioResult, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, RefineBioResult{Refined: input.Text}, nil
		}
		if refiner == nil {
			return nil, RefineBioResult{}, errors.New("refiner is not configured")
		}
		refined, err := refiner.Refine(ctx, input.Text)
		if err != nil {
			if refine.IsTransportFailure(err) {
				return nil, RefineBioResult{}, fmt.Errorf("refine failed: %w", err)
			}
			log.Printf("mcp: refine fallback err=%v", err)
			return nil, RefineBioResult{Refined: input.Text}, nil
		}
		return nil, RefineBioResult{Refined: refined, Changed: refined != input.Text}, nil
	}
}

// ValidateCreatorStepHandler runs the creator validator for input.Step.
func ValidateCreatorStepHandler() mcp.ToolHandlerFor[ValidateCreatorStepInput, ValidateCreatorStepResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ValidateCreatorStepInput) (*mcp.CallToolResult, ValidateCreatorStepResult, error) {
		step := wizard.Step(strings.TrimSpace(input.Step))
		machine := wizard.MachineFor(wizard.FlowCreator)
		if !machine.Contains(step) || step == machine.Final() {
			return nil, ValidateCreatorStepResult{}, fmt.Errorf("step %q is not a creator input step", input.Step)
		}
		state := wizard.New(wizard.FlowCreator)
		state.Step = step
		if role, ok := wizard.ParseRole(input.Role); ok {
			state.Role = role
		}
		state.Personal = input.Personal
		state.Platforms = input.Platforms
		state.Details = input.Details
		state.Pricing = input.Pricing
		if input.HasAsset {
			state.Asset = &wizard.Asset{}
		}
		errs := validate.Creator(state, step)
		return nil, ValidateCreatorStepResult{Valid: errs.OK(), Errors: errs}, nil
	}
}
