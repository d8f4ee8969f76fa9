package usecase

import (
	"context"
	"testing"
	"time"

	"screenvault/internal/data/entity"
	"screenvault/internal/dto/request"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest() *request.FilmUploadRequest {
	return &request.FilmUploadRequest{
		Title:           "The Long Take",
		Type:            "movie",
		Genres:          []string{"drama"},
		DurationSeconds: 5400,
		RentPrice:       3.99,
		BuyPrice:        9.99,
	}
}

func seedFilm(repo *fakeFilmRepo, filmmakerID uuid.UUID, status entity.FilmStatus) *entity.Film {
	now := time.Now()
	film := &entity.Film{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FilmmakerID:     filmmakerID,
		Title:           "Seeded",
		Type:            entity.FilmTypeMovie,
		Status:          status,
		DurationSeconds: 3600,
		Currency:        "USD",
	}
	if status == entity.FilmStatusPublished {
		film.PublishedAt = &now
	}
	repo.films[film.ID] = film
	return film
}

func TestUploadFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a film in review with presigned slots", func(t *testing.T) {
		repo := newTestRepo()
		store := &fakeAssetStore{}
		svc := NewFilmService(repo, store, newTestConfig(), testLogger())

		filmmaker := uuid.New()
		req := uploadRequest()
		req.WithThumbnail = true
		req.WithFullFilm = true

		resp, err := svc.UploadFilm(ctx, filmmaker, entity.RoleFilmmaker, req)
		require.NoError(t, err)

		assert.Equal(t, string(entity.FilmStatusReview), resp.Film.Status)
		assert.NotEmpty(t, resp.ThumbnailURL)
		assert.NotEmpty(t, resp.FullFilmURL)
		assert.Empty(t, resp.TrailerURL)
		assert.Equal(t, "USD", resp.Film.Currency)

		filmID, err := utils.ParseUUID(resp.Film.ID)
		require.NoError(t, err)
		stored, err := repo.Film.FindByID(ctx, filmID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entity.FilmStatusReview, stored.Status)
		assert.NotNil(t, stored.ThumbnailKey)
		assert.Nil(t, stored.TrailerKey)
	})

	t.Run("rejects viewers", func(t *testing.T) {
		svc := NewFilmService(newTestRepo(), &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.UploadFilm(ctx, uuid.New(), entity.RoleViewer, uploadRequest())
		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("rejects a future year", func(t *testing.T) {
		svc := NewFilmService(newTestRepo(), &fakeAssetStore{}, newTestConfig(), testLogger())

		year := time.Now().Year() + 2
		req := uploadRequest()
		req.Year = &year

		_, err := svc.UploadFilm(ctx, uuid.New(), entity.RoleFilmmaker, req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("accepts next year's release", func(t *testing.T) {
		svc := NewFilmService(newTestRepo(), &fakeAssetStore{}, newTestConfig(), testLogger())

		year := time.Now().Year() + 1
		req := uploadRequest()
		req.Year = &year

		_, err := svc.UploadFilm(ctx, uuid.New(), entity.RoleFilmmaker, req)
		assert.NoError(t, err)
	})
}

func TestGetFilms(t *testing.T) {
	ctx := context.Background()

	page := func() *request.PaginatedRequest {
		return &request.PaginatedRequest{Page: 1, PerPage: 20}
	}

	t.Run("viewers only see the published catalog", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		seedFilm(films, uuid.New(), entity.FilmStatusPublished)
		seedFilm(films, uuid.New(), entity.FilmStatusReview)
		seedFilm(films, uuid.New(), entity.FilmStatusRejected)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.GetFilms(ctx, entity.RoleViewer, page(), "")
		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, string(entity.FilmStatusPublished), resp.Data[0].Status)
		assert.Equal(t, int64(1), resp.Pagination.Total)
	})

	t.Run("admins see everything without a filter", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		seedFilm(films, uuid.New(), entity.FilmStatusPublished)
		seedFilm(films, uuid.New(), entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.GetFilms(ctx, entity.RoleAdmin, page(), "")
		require.NoError(t, err)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("admins may narrow by status", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		seedFilm(films, uuid.New(), entity.FilmStatusPublished)
		seedFilm(films, uuid.New(), entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.GetFilms(ctx, entity.RoleAdmin, page(), "review")
		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, string(entity.FilmStatusReview), resp.Data[0].Status)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		svc := NewFilmService(newTestRepo(), &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.GetFilms(ctx, entity.RoleAdmin, page(), "bogus")
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestGetFilmByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns presigned asset URLs", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)
		key := "thumbnail/abc"
		film.ThumbnailKey = &key

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.GetFilmByID(ctx, uuid.Nil, entity.RoleViewer, film.ID)
		require.NoError(t, err)
		assert.Contains(t, resp.ThumbnailURL, key)
		assert.Empty(t, resp.TrailerURL)
	})

	t.Run("attaches the caller's watch position", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)
		viewer := uuid.New()

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.SaveProgress(ctx, viewer, film.ID, &request.WatchProgressRequest{
			PositionSeconds: 900,
			DurationSeconds: 3600,
		})
		require.NoError(t, err)

		resp, err := svc.GetFilmByID(ctx, viewer, entity.RoleViewer, film.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.Progress)
		assert.Equal(t, 900, resp.Progress.PositionSeconds)
		assert.Equal(t, 25, resp.Progress.Percent)

		// Anonymous reads carry no progress
		anon, err := svc.GetFilmByID(ctx, uuid.Nil, entity.RoleViewer, film.ID)
		require.NoError(t, err)
		assert.Nil(t, anon.Progress)
	})

	t.Run("hides unpublished films from strangers", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.GetFilmByID(ctx, uuid.New(), entity.RoleViewer, film.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("shows the owner their film in review", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		owner := uuid.New()
		film := seedFilm(films, owner, entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.GetFilmByID(ctx, owner, entity.RoleFilmmaker, film.ID)
		require.NoError(t, err)
		assert.Equal(t, film.ID.String(), resp.ID)
	})
}

func TestPublishFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a film out of review", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.PublishFilm(ctx, film.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.FilmStatusPublished), resp.Status)

		stored, err := repo.Film.FindByID(ctx, film.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.PublishedAt)
	})

	t.Run("rejects publishing twice", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.PublishFilm(ctx, film.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestDeleteFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the film from the catalog", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		require.NoError(t, svc.DeleteFilm(ctx, film.ID))

		_, err := svc.GetFilmByID(ctx, uuid.Nil, entity.RoleViewer, film.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("rejects unknown films", func(t *testing.T) {
		repo := newTestRepo()
		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		err := svc.DeleteFilm(ctx, uuid.New())
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestSaveProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts and reports percent", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())
		viewer := uuid.New()

		resp, err := svc.SaveProgress(ctx, viewer, film.ID, &request.WatchProgressRequest{
			PositionSeconds: 1800,
			DurationSeconds: 3600,
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resp.Percent)

		// Last writer wins: rewinding records the rewound position
		resp, err = svc.SaveProgress(ctx, viewer, film.ID, &request.WatchProgressRequest{
			PositionSeconds: 600,
			DurationSeconds: 3600,
		})
		require.NoError(t, err)
		assert.Equal(t, 16, resp.Percent)

		list, err := svc.ListProgress(ctx, viewer)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 600, list[0].PositionSeconds)
	})

	t.Run("caps an unfinished film at 99 percent", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.SaveProgress(ctx, uuid.New(), film.ID, &request.WatchProgressRequest{
			PositionSeconds: 3600,
			DurationSeconds: 3600,
		})
		require.NoError(t, err)
		assert.Equal(t, 99, resp.Percent)
	})

	t.Run("completed marks 100 percent", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		resp, err := svc.SaveProgress(ctx, uuid.New(), film.ID, &request.WatchProgressRequest{
			PositionSeconds: 3600,
			DurationSeconds: 3600,
			Completed:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, 100, resp.Percent)
	})

	t.Run("rejects progress on an unpublished film", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusReview)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.SaveProgress(ctx, uuid.New(), film.ID, &request.WatchProgressRequest{
			PositionSeconds: 10,
			DurationSeconds: 3600,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("rejects a position past the duration", func(t *testing.T) {
		repo := newTestRepo()
		films := repo.Film.(*fakeFilmRepo)
		film := seedFilm(films, uuid.New(), entity.FilmStatusPublished)

		svc := NewFilmService(repo, &fakeAssetStore{}, newTestConfig(), testLogger())

		_, err := svc.SaveProgress(ctx, uuid.New(), film.ID, &request.WatchProgressRequest{
			PositionSeconds: 4000,
			DurationSeconds: 3600,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
