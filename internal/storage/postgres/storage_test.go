package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaran/planetary-api/internal/model"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
}

func TestStorage_CreateUser(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(1), now)
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "Tester", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "Tester", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnError(uniqueViolation("users_email_key"))
			},
			wantErr: model.ErrEmailTaken,
		},
		{
			name: "duplicate first name",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "Tester", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnError(uniqueViolation("users_first_name_key"))
			},
			wantErr: model.ErrFirstNameTaken,
		},
		{
			name: "missing home planet",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "Tester", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnError(foreignKeyViolation())
			},
			wantErr: model.ErrPlanetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			user := &model.User{
				FirstName:    "Alice",
				LastName:     "Tester",
				Email:        "alice@example.com",
				PasswordHash: "hash",
			}
			err = store.CreateUser(context.Background(), user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.UserID(1), user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_GetUser(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		wantHome  *model.PlanetID
	}{
		{
			name: "found with home planet",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				home := int64(3)
				rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "home_planet_id", "created_at"}).
					AddRow(int64(1), "Alice", "Tester", "alice@example.com", "hash", &home, now)
				mock.ExpectQuery(`SELECT id, first_name, last_name, email, password_hash, home_planet_id, created_at FROM users WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			wantHome: func() *model.PlanetID { id := model.PlanetID(3); return &id }(),
		},
		{
			name: "found without home planet",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "home_planet_id", "created_at"}).
					AddRow(int64(1), "Alice", "Tester", "alice@example.com", "hash", nil, now)
				mock.ExpectQuery(`SELECT id, first_name, last_name, email, password_hash, home_planet_id, created_at FROM users WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, first_name, last_name, email, password_hash, home_planet_id, created_at FROM users WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			user, err := store.GetUser(context.Background(), 1)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Alice", user.FirstName)
				if tt.wantHome != nil {
					require.NotNil(t, user.HomePlanetID)
					assert.Equal(t, *tt.wantHome, *user.HomePlanetID)
				} else {
					assert.Nil(t, user.HomePlanetID)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_SetUserHomePlanet(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET home_planet_id = \$2 WHERE id = \$1`).
					WithArgs(int64(1), int64(3)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "user not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET home_planet_id = \$2 WHERE id = \$1`).
					WithArgs(int64(1), int64(3)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: model.ErrUserNotFound,
		},
		{
			name: "planet not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET home_planet_id = \$2 WHERE id = \$1`).
					WithArgs(int64(1), int64(3)).
					WillReturnError(foreignKeyViolation())
			},
			wantErr: model.ErrPlanetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			err = store.SetUserHomePlanet(context.Background(), 1, 3)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_CreatePlanet(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(4), now)
				mock.ExpectQuery(`INSERT INTO planets`).
					WithArgs("Earth", "M", 5.972e24, float64(3969), 92.96e6, pgxmock.AnyArg()).
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate name",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO planets`).
					WithArgs("Earth", "M", 5.972e24, float64(3969), 92.96e6, pgxmock.AnyArg()).
					WillReturnError(uniqueViolation("planets_name_key"))
			},
			wantErr: model.ErrPlanetNameTaken,
		},
		{
			name: "missing discoverer",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO planets`).
					WithArgs("Earth", "M", 5.972e24, float64(3969), 92.96e6, pgxmock.AnyArg()).
					WillReturnError(foreignKeyViolation())
			},
			wantErr: model.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			planet := &model.Planet{
				Name:     "Earth",
				Class:    "M",
				Mass:     5.972e24,
				Radius:   3969,
				Distance: 92.96e6,
			}
			err = store.CreatePlanet(context.Background(), planet)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.PlanetID(4), planet.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_ListPlanets(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns planets in id order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		discoverer := int64(1)
		rows := pgxmock.NewRows([]string{"id", "name", "class", "mass", "radius", "distance", "discovered_by", "created_at"}).
			AddRow(int64(1), "Mercury", "D", 3.258e23, float64(1516), 35.98e6, nil, now).
			AddRow(int64(2), "Venus", "K", 4.867e24, float64(3760), 67.24e6, &discoverer, now)
		mock.ExpectQuery(`SELECT id, name, class, mass, radius, distance, discovered_by, created_at FROM planets ORDER BY id`).
			WillReturnRows(rows)

		store := NewWithDB(mock)
		planets, err := store.ListPlanets(context.Background())

		require.NoError(t, err)
		require.Len(t, planets, 2)
		assert.Equal(t, "Mercury", planets[0].Name)
		assert.Nil(t, planets[0].DiscoveredBy)
		require.NotNil(t, planets[1].DiscoveredBy)
		assert.Equal(t, model.UserID(1), *planets[1].DiscoveredBy)

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("query error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name, class, mass, radius, distance, discovered_by, created_at FROM planets ORDER BY id`).
			WillReturnError(errors.New("connection refused"))

		store := NewWithDB(mock)
		_, err = store.ListPlanets(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestStorage_UpdatePlanet(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE planets`).
					WithArgs(int64(1), "Terra", "M", 5.972e24, float64(4000), 92.96e6).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE planets`).
					WithArgs(int64(1), "Terra", "M", 5.972e24, float64(4000), 92.96e6).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: model.ErrPlanetNotFound,
		},
		{
			name: "name collision",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE planets`).
					WithArgs(int64(1), "Terra", "M", 5.972e24, float64(4000), 92.96e6).
					WillReturnError(uniqueViolation("planets_name_key"))
			},
			wantErr: model.ErrPlanetNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			err = store.UpdatePlanet(context.Background(), &model.Planet{
				ID:       1,
				Name:     "Terra",
				Class:    "M",
				Mass:     5.972e24,
				Radius:   4000,
				Distance: 92.96e6,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_DeletePlanet(t *testing.T) {
	t.Run("cascades in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM homestars WHERE planet_id = \$1 OR star_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(`UPDATE users SET home_planet_id = NULL WHERE home_planet_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`DELETE FROM planets WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		store := NewWithDB(mock)
		err = store.DeletePlanet(context.Background(), 1)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("not found rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM homestars WHERE planet_id = \$1 OR star_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`UPDATE users SET home_planet_id = NULL WHERE home_planet_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectExec(`DELETE FROM planets WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		store := NewWithDB(mock)
		err = store.DeletePlanet(context.Background(), 1)

		require.ErrorIs(t, err, model.ErrPlanetNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestStorage_AddHomestar(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO homestars`).
					WithArgs(int64(2), int64(1)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "link already exists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO homestars`).
					WithArgs(int64(2), int64(1)).
					WillReturnError(uniqueViolation("homestars_pkey"))
			},
			wantErr: model.ErrHomestarExists,
		},
		{
			name: "missing planet",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO homestars`).
					WithArgs(int64(2), int64(1)).
					WillReturnError(foreignKeyViolation())
			},
			wantErr: model.ErrPlanetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewWithDB(mock)
			err = store.AddHomestar(context.Background(), 2, 1)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_RemoveHomestar(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM homestars WHERE planet_id = \$1 AND star_id = \$2`).
			WithArgs(int64(2), int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		store := NewWithDB(mock)
		require.NoError(t, store.RemoveHomestar(context.Background(), 2, 1))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("link not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM homestars WHERE planet_id = \$1 AND star_id = \$2`).
			WithArgs(int64(2), int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		store := NewWithDB(mock)
		err = store.RemoveHomestar(context.Background(), 2, 1)
		require.ErrorIs(t, err, model.ErrHomestarNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestStorage_PasswordResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(30 * time.Minute)

	t.Run("create reset", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"created_at"}).AddRow(now)
		mock.ExpectQuery(`INSERT INTO password_resets`).
			WithArgs("tokenhash", int64(1), expires).
			WillReturnRows(rows)

		store := NewWithDB(mock)
		reset := &model.PasswordReset{TokenHash: "tokenhash", UserID: 1, ExpiresAt: expires}
		require.NoError(t, store.CreatePasswordReset(context.Background(), reset))
		assert.Equal(t, now, reset.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("create reset for missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO password_resets`).
			WithArgs("tokenhash", int64(1), expires).
			WillReturnError(foreignKeyViolation())

		store := NewWithDB(mock)
		err = store.CreatePasswordReset(context.Background(), &model.PasswordReset{
			TokenHash: "tokenhash", UserID: 1, ExpiresAt: expires,
		})
		require.ErrorIs(t, err, model.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("get reset", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"token_hash", "user_id", "expires_at", "created_at"}).
			AddRow("tokenhash", int64(1), expires, now)
		mock.ExpectQuery(`SELECT token_hash, user_id, expires_at, created_at FROM password_resets WHERE token_hash = \$1`).
			WithArgs("tokenhash").
			WillReturnRows(rows)

		store := NewWithDB(mock)
		reset, err := store.GetPasswordReset(context.Background(), "tokenhash")
		require.NoError(t, err)
		assert.Equal(t, model.UserID(1), reset.UserID)
		assert.Equal(t, expires, reset.ExpiresAt)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("get reset not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT token_hash, user_id, expires_at, created_at FROM password_resets WHERE token_hash = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		store := NewWithDB(mock)
		_, err = store.GetPasswordReset(context.Background(), "missing")
		require.ErrorIs(t, err, model.ErrResetNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("complete reset burns tokens in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET password_hash = \$2 WHERE id = \$1`).
			WithArgs(int64(1), "newhash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`DELETE FROM password_resets WHERE user_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		store := NewWithDB(mock)
		require.NoError(t, store.CompletePasswordReset(context.Background(), 1, "newhash"))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("complete reset for missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET password_hash = \$2 WHERE id = \$1`).
			WithArgs(int64(1), "newhash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		store := NewWithDB(mock)
		err = store.CompletePasswordReset(context.Background(), 1, "newhash")
		require.ErrorIs(t, err, model.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
