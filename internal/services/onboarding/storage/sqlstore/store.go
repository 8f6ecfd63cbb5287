// Package sqlstore implements the onboarding store over database/sql. The
// SQLite and Postgres backends share these queries and differ only in bind
// markers, schema, and constraint error detection.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/platform/storage/migrate"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

// Store persists onboarding records in a SQL database.
type Store struct {
	sqlDB             *sql.DB
	dialect           migrate.Dialect
	isUniqueViolation func(error) bool
}

// New wraps an open, migrated database handle.
func New(sqlDB *sql.DB, dialect migrate.Dialect, isUniqueViolation func(error) bool) *Store {
	if isUniqueViolation == nil {
		isUniqueViolation = func(error) bool { return false }
	}
	return &Store{sqlDB: sqlDB, dialect: dialect, isUniqueViolation: isUniqueViolation}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.sqlDB.ExecContext(ctx, s.dialect.Rebind(query), args...)
	return err
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.sqlDB.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func stamps(created, updated time.Time) (time.Time, time.Time) {
	if created.IsZero() && updated.IsZero() {
		now := time.Now().UTC()
		return now, now
	}
	if created.IsZero() {
		created = updated
	}
	if updated.IsZero() {
		updated = created
	}
	return created.UTC(), updated.UTC()
}

// UpsertUser inserts or replaces the profile keyed by user id.
func (s *Store) UpsertUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(user.ID)
	if id == "" {
		return fmt.Errorf("user id is required")
	}
	createdAt, updatedAt := stamps(user.CreatedAt, user.UpdatedAt)

	err := s.exec(ctx,
		`INSERT INTO users (
		   id, profile_image, username, age, gender, country, role, email, category, bio, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   profile_image = excluded.profile_image,
		   username = excluded.username,
		   age = excluded.age,
		   gender = excluded.gender,
		   country = excluded.country,
		   role = excluded.role,
		   email = excluded.email,
		   category = excluded.category,
		   bio = excluded.bio,
		   updated_at = excluded.updated_at`,
		id,
		user.ProfileImage,
		user.Username,
		user.Age,
		user.Gender,
		user.Country,
		user.Role,
		user.Email,
		user.Category,
		user.Bio,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetUser returns one profile by user id.
func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.User{}, fmt.Errorf("user id is required")
	}

	var (
		user               storage.User
		createdAt, updated int64
	)
	err := s.queryRow(ctx,
		`SELECT id, profile_image, username, age, gender, country, role, email, category, bio, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&user.ID,
		&user.ProfileImage,
		&user.Username,
		&user.Age,
		&user.Gender,
		&user.Country,
		&user.Role,
		&user.Email,
		&user.Category,
		&user.Bio,
		&createdAt,
		&updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updated)
	return user, nil
}

// UpsertSocialProfile inserts or replaces the record keyed by
// (user id, platform).
func (s *Store) UpsertSocialProfile(ctx context.Context, profile storage.SocialProfile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID := strings.TrimSpace(profile.UserID)
	platform := strings.TrimSpace(profile.Platform)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if platform == "" {
		return fmt.Errorf("platform is required")
	}
	pricing := profile.Pricing
	if pricing == nil {
		pricing = map[string]storage.Price{}
	}
	pricingJSON, err := json.Marshal(pricing)
	if err != nil {
		return fmt.Errorf("marshal pricing: %w", err)
	}
	updatedAt := profile.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	err = s.exec(ctx,
		`INSERT INTO social_profiles (
		   user_id, platform, username, channel_url, channel_id, channel_name, profile_image,
		   subscriber_count, followers, posts, pricing, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, platform) DO UPDATE SET
		   username = excluded.username,
		   channel_url = excluded.channel_url,
		   channel_id = excluded.channel_id,
		   channel_name = excluded.channel_name,
		   profile_image = excluded.profile_image,
		   subscriber_count = excluded.subscriber_count,
		   followers = excluded.followers,
		   posts = excluded.posts,
		   pricing = excluded.pricing,
		   updated_at = excluded.updated_at`,
		userID,
		platform,
		profile.Username,
		profile.ChannelURL,
		profile.ChannelID,
		profile.ChannelName,
		profile.ProfileImage,
		nullInt(profile.SubscriberCount),
		nullInt(profile.Followers),
		nullInt(profile.Posts),
		string(pricingJSON),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert social profile %s: %w", platform, err)
	}
	return nil
}

// ListSocialProfiles returns a user's platform records ordered by platform.
func (s *Store) ListSocialProfiles(ctx context.Context, userID string) ([]storage.SocialProfile, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, s.dialect.Rebind(
		`SELECT user_id, platform, username, channel_url, channel_id, channel_name, profile_image,
		        subscriber_count, followers, posts, pricing, updated_at
		 FROM social_profiles WHERE user_id = ? ORDER BY platform`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list social profiles: %w", err)
	}
	defer rows.Close()

	var profiles []storage.SocialProfile
	for rows.Next() {
		var (
			profile                     storage.SocialProfile
			subscribers, followers, pst sql.NullInt64
			pricingJSON                 []byte
			updatedAt                   int64
		)
		if err := rows.Scan(
			&profile.UserID,
			&profile.Platform,
			&profile.Username,
			&profile.ChannelURL,
			&profile.ChannelID,
			&profile.ChannelName,
			&profile.ProfileImage,
			&subscribers,
			&followers,
			&pst,
			&pricingJSON,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan social profile: %w", err)
		}
		if len(pricingJSON) > 0 {
			if err := json.Unmarshal(pricingJSON, &profile.Pricing); err != nil {
				return nil, fmt.Errorf("decode pricing for %s: %w", profile.Platform, err)
			}
		}
		profile.SubscriberCount = intPtr(subscribers)
		profile.Followers = intPtr(followers)
		profile.Posts = intPtr(pst)
		profile.UpdatedAt = fromMillis(updatedAt)
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate social profiles: %w", err)
	}
	return profiles, nil
}

// UpsertBrand inserts or replaces the brand keyed by user id.
func (s *Store) UpsertBrand(ctx context.Context, brand storage.Brand) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID := strings.TrimSpace(brand.UserID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	lists, err := encodeLists(brand.CollaborationTypes, brand.PreferredCreatorCategories, brand.BrandValues, brand.PreferredTone)
	if err != nil {
		return err
	}
	createdAt, updatedAt := stamps(brand.CreatedAt, brand.UpdatedAt)

	err = s.exec(ctx,
		`INSERT INTO brands (
		   user_id, brand_name, logo_url, website_url, industry, company_size, location, description,
		   contact_person, contact_email, contact_phone, role,
		   instagram_url, facebook_url, twitter_url, linkedin_url, youtube_url,
		   collaboration_types, preferred_creator_categories, brand_values, preferred_tone,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   brand_name = excluded.brand_name,
		   logo_url = excluded.logo_url,
		   website_url = excluded.website_url,
		   industry = excluded.industry,
		   company_size = excluded.company_size,
		   location = excluded.location,
		   description = excluded.description,
		   contact_person = excluded.contact_person,
		   contact_email = excluded.contact_email,
		   contact_phone = excluded.contact_phone,
		   role = excluded.role,
		   instagram_url = excluded.instagram_url,
		   facebook_url = excluded.facebook_url,
		   twitter_url = excluded.twitter_url,
		   linkedin_url = excluded.linkedin_url,
		   youtube_url = excluded.youtube_url,
		   collaboration_types = excluded.collaboration_types,
		   preferred_creator_categories = excluded.preferred_creator_categories,
		   brand_values = excluded.brand_values,
		   preferred_tone = excluded.preferred_tone,
		   updated_at = excluded.updated_at`,
		userID,
		brand.BrandName,
		brand.LogoURL,
		brand.WebsiteURL,
		brand.Industry,
		brand.CompanySize,
		brand.Location,
		brand.Description,
		brand.ContactPerson,
		brand.ContactEmail,
		brand.ContactPhone,
		brand.Role,
		brand.InstagramURL,
		brand.FacebookURL,
		brand.TwitterURL,
		brand.LinkedInURL,
		brand.YouTubeURL,
		lists[0],
		lists[1],
		lists[2],
		lists[3],
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert brand: %w", err)
	}
	return nil
}

// GetBrand returns one brand by user id.
func (s *Store) GetBrand(ctx context.Context, userID string) (storage.Brand, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Brand{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.Brand{}, fmt.Errorf("user id is required")
	}

	var (
		brand                            storage.Brand
		collab, categories, values, tone []byte
		createdAt, updatedAt             int64
	)
	err := s.queryRow(ctx,
		`SELECT user_id, brand_name, logo_url, website_url, industry, company_size, location, description,
		        contact_person, contact_email, contact_phone, role,
		        instagram_url, facebook_url, twitter_url, linkedin_url, youtube_url,
		        collaboration_types, preferred_creator_categories, brand_values, preferred_tone,
		        created_at, updated_at
		 FROM brands WHERE user_id = ?`,
		userID,
	).Scan(
		&brand.UserID,
		&brand.BrandName,
		&brand.LogoURL,
		&brand.WebsiteURL,
		&brand.Industry,
		&brand.CompanySize,
		&brand.Location,
		&brand.Description,
		&brand.ContactPerson,
		&brand.ContactEmail,
		&brand.ContactPhone,
		&brand.Role,
		&brand.InstagramURL,
		&brand.FacebookURL,
		&brand.TwitterURL,
		&brand.LinkedInURL,
		&brand.YouTubeURL,
		&collab,
		&categories,
		&values,
		&tone,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Brand{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Brand{}, fmt.Errorf("get brand: %w", err)
	}
	for _, target := range []struct {
		raw []byte
		out *[]string
	}{
		{raw: collab, out: &brand.CollaborationTypes},
		{raw: categories, out: &brand.PreferredCreatorCategories},
		{raw: values, out: &brand.BrandValues},
		{raw: tone, out: &brand.PreferredTone},
	} {
		if len(target.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(target.raw, target.out); err != nil {
			return storage.Brand{}, fmt.Errorf("decode brand list: %w", err)
		}
	}
	brand.CreatedAt = fromMillis(createdAt)
	brand.UpdatedAt = fromMillis(updatedAt)
	return brand, nil
}

func encodeLists(lists ...[]string) ([]string, error) {
	out := make([]string, len(lists))
	for idx, list := range lists {
		if list == nil {
			list = []string{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("marshal brand list: %w", err)
		}
		out[idx] = string(data)
	}
	return out, nil
}

func nullInt(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func intPtr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}
