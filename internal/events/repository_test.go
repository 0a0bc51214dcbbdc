package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hosseinmostafavi2079/roydadpro/internal/categories"
	"github.com/hosseinmostafavi2079/roydadpro/internal/instructors"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/internal/organizations"
	"github.com/hosseinmostafavi2079/roydadpro/internal/testutil"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

func strPtr(s string) *string { return &s }

func TestRepositoryIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	org := &models.Organization{Name: "Acme", Slug: "acme", ThemeColor: models.ThemeIndigo, FontFamily: models.DefaultFontFamily}
	require.NoError(t, organizations.NewRepository(pool).Create(ctx, org))

	catRepo := categories.NewRepository(pool)
	cat := &models.Category{Title: "Workshops", OrganizationID: &org.ID}
	require.NoError(t, catRepo.Create(ctx, cat))

	insRepo := instructors.NewRepository(pool)
	ins := &models.Instructor{OrganizationID: org.ID, Name: "Dr. Karimi", Expertise: "Go", Bio: "Backend engineer"}
	require.NoError(t, insRepo.Create(ctx, ins))

	repo := NewRepository(pool)
	base := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)
	newEvent := func(title, description string, location *string, start time.Time) *models.Event {
		e := &models.Event{
			OrganizationID: org.ID,
			Title:          title,
			CategoryID:     &cat.ID,
			InstructorID:   &ins.ID,
			StartDatetime:  start,
			DateDisplay:    "Nov",
			TimeDisplay:    "18:00",
			Location:       location,
			Capacity:       models.DefaultEventCapacity,
			Description:    description,
		}
		require.NoError(t, repo.Create(ctx, e))
		return e
	}
	launch := newEvent("Launch Night", "Product reveal", strPtr("Tehran"), base)
	meetup := newEvent("Go Meetup", "Talks about LAUNCH tooling", nil, base.Add(48*time.Hour))
	newEvent("Design Day", "Typography", strPtr("Launchpad Hall"), base.Add(-24*time.Hour))
	newEvent("100% Real", "Percent in title", nil, base.Add(-48*time.Hour))
	newEvent("Nightfall Jam", "Late set", nil, base.Add(-72*time.Hour))

	t.Run("details loaded", func(t *testing.T) {
		got, err := repo.GetByID(ctx, launch.ID)
		require.NoError(t, err)
		require.Equal(t, "Acme", got.Organization.Name)
		require.Equal(t, "Workshops", got.Category.Title)
		require.Equal(t, "Dr. Karimi", got.Instructor.Name)
		require.Zero(t, got.RegisteredCount)
	})

	t.Run("search is case-insensitive and ordered by start desc", func(t *testing.T) {
		list, err := repo.List(ctx, ListFilter{Search: "launch"})
		require.NoError(t, err)
		var titles []string
		for _, e := range list {
			titles = append(titles, e.Title)
		}
		require.Equal(t, []string{"Go Meetup", "Launch Night", "Design Day"}, titles)
	})

	t.Run("surrounding spaces are part of the substring", func(t *testing.T) {
		list, err := repo.List(ctx, ListFilter{Search: " Night"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Launch Night", list[0].Title)

		all, err := repo.List(ctx, ListFilter{Search: "   "})
		require.NoError(t, err)
		require.Len(t, all, 5)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		list, err := repo.List(ctx, ListFilter{Search: "%"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "100% Real", list[0].Title)
	})

	t.Run("unknown category is an invalid reference", func(t *testing.T) {
		missing := int64(9999)
		e := *meetup
		e.CategoryID = &missing
		require.ErrorIs(t, repo.Update(ctx, &e), database.ErrInvalidReference)
	})

	t.Run("deleting category and instructor nulls the reference", func(t *testing.T) {
		require.NoError(t, catRepo.Delete(ctx, cat.ID))
		require.NoError(t, insRepo.Delete(ctx, ins.ID))

		got, err := repo.GetByID(ctx, launch.ID)
		require.NoError(t, err)
		require.Nil(t, got.CategoryID)
		require.Nil(t, got.Category)
		require.Nil(t, got.InstructorID)
		require.Nil(t, got.Instructor)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, meetup.ID))
		_, err := repo.GetByID(ctx, meetup.ID)
		require.ErrorIs(t, err, database.ErrNotFound)
		require.ErrorIs(t, repo.Delete(ctx, meetup.ID), database.ErrNotFound)
	})
}
