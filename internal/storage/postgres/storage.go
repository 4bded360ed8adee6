package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/storage"
)

// DB is the subset of the pgx pool API the storage uses. Both
// *pgxpool.Pool and pgxmock's pool satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Storage is a PostgreSQL-backed implementation of the storage interface.
// Uniqueness invariants are enforced by the schema's UNIQUE constraints and
// surfaced as the model's Conflict sentinels, so concurrent
// check-then-insert cannot produce duplicate rows.
type Storage struct {
	db DB
}

// New connects to PostgreSQL and verifies the connection
func New(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Storage{db: pool}, nil
}

// NewWithDB creates a Storage with an existing pool (for testing)
func NewWithDB(db DB) *Storage {
	return &Storage{db: db}
}

// Close closes the connection pool
func (s *Storage) Close() {
	if pool, ok := s.db.(*pgxpool.Pool); ok {
		pool.Close()
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Constraint names from the migrations. Unique violations on these are
// translated into the model's Conflict sentinels.
const (
	constraintUserEmail     = "users_email_key"
	constraintUserFirstName = "users_first_name_key"
	constraintPlanetName    = "planets_name_key"
	constraintHomestarPK    = "homestars_pkey"
)

func violatesUnique(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}

func violatesForeignKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, home_planet_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		planetIDValue(user.HomePlanetID),
	).Scan(&user.ID, &user.CreatedAt)
	switch {
	case violatesUnique(err, constraintUserEmail):
		return model.ErrEmailTaken
	case violatesUnique(err, constraintUserFirstName):
		return model.ErrFirstNameTaken
	case violatesForeignKey(err):
		return model.ErrPlanetNotFound
	case err != nil:
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password_hash, home_planet_id, created_at
		FROM users
		WHERE id = $1
	`, int64(id))
	return scanUser(row)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password_hash, home_planet_id, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *Storage) SetUserHomePlanet(ctx context.Context, id model.UserID, planetID model.PlanetID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET home_planet_id = $2 WHERE id = $1
	`, int64(id), int64(planetID))
	if violatesForeignKey(err) {
		return model.ErrPlanetNotFound
	}
	if err != nil {
		return fmt.Errorf("updating home planet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Planet operations

func (s *Storage) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO planets (name, class, mass, radius, distance, discovered_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		planet.Name,
		planet.Class,
		planet.Mass,
		planet.Radius,
		planet.Distance,
		userIDValue(planet.DiscoveredBy),
	).Scan(&planet.ID, &planet.CreatedAt)
	switch {
	case violatesUnique(err, constraintPlanetName):
		return model.ErrPlanetNameTaken
	case violatesForeignKey(err):
		return model.ErrUserNotFound
	case err != nil:
		return fmt.Errorf("inserting planet: %w", err)
	}
	return nil
}

func (s *Storage) GetPlanet(ctx context.Context, id model.PlanetID) (*model.Planet, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, class, mass, radius, distance, discovered_by, created_at
		FROM planets
		WHERE id = $1
	`, int64(id))
	return scanPlanet(row)
}

func (s *Storage) GetPlanetByName(ctx context.Context, name string) (*model.Planet, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, class, mass, radius, distance, discovered_by, created_at
		FROM planets
		WHERE name = $1
	`, name)
	return scanPlanet(row)
}

func (s *Storage) ListPlanets(ctx context.Context) ([]*model.Planet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, class, mass, radius, distance, discovered_by, created_at
		FROM planets
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing planets: %w", err)
	}
	defer rows.Close()

	var planets []*model.Planet
	for rows.Next() {
		planet, err := scanPlanetValues(rows)
		if err != nil {
			return nil, err
		}
		planets = append(planets, planet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planets: %w", err)
	}
	return planets, nil
}

func (s *Storage) UpdatePlanet(ctx context.Context, planet *model.Planet) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE planets
		SET name = $2, class = $3, mass = $4, radius = $5, distance = $6
		WHERE id = $1
	`,
		int64(planet.ID),
		planet.Name,
		planet.Class,
		planet.Mass,
		planet.Radius,
		planet.Distance,
	)
	if violatesUnique(err, constraintPlanetName) {
		return model.ErrPlanetNameTaken
	}
	if err != nil {
		return fmt.Errorf("updating planet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlanetNotFound
	}
	return nil
}

func (s *Storage) DeletePlanet(ctx context.Context, id model.PlanetID) error {
	// The schema's ON DELETE actions would cover the cascade on their own;
	// the explicit statements keep the whole mutation in one visible unit
	// of work and mirror the memory backend.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `
		DELETE FROM homestars WHERE planet_id = $1 OR star_id = $1
	`, int64(id)); err != nil {
		return fmt.Errorf("deleting homestar links: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE users SET home_planet_id = NULL WHERE home_planet_id = $1
	`, int64(id)); err != nil {
		return fmt.Errorf("clearing home references: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM planets WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("deleting planet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlanetNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete transaction: %w", err)
	}
	return nil
}

// Homestar operations

func (s *Storage) AddHomestar(ctx context.Context, planetID, starID model.PlanetID) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO homestars (planet_id, star_id) VALUES ($1, $2)
	`, int64(planetID), int64(starID))
	switch {
	case violatesUnique(err, constraintHomestarPK):
		return model.ErrHomestarExists
	case violatesForeignKey(err):
		return model.ErrPlanetNotFound
	case err != nil:
		return fmt.Errorf("inserting homestar link: %w", err)
	}
	return nil
}

func (s *Storage) ListHomestars(ctx context.Context, planetID model.PlanetID) ([]*model.Planet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.name, p.class, p.mass, p.radius, p.distance, p.discovered_by, p.created_at
		FROM homestars h
		JOIN planets p ON p.id = h.star_id
		WHERE h.planet_id = $1
		ORDER BY p.id
	`, int64(planetID))
	if err != nil {
		return nil, fmt.Errorf("listing homestars: %w", err)
	}
	defer rows.Close()

	var stars []*model.Planet
	for rows.Next() {
		star, err := scanPlanetValues(rows)
		if err != nil {
			return nil, err
		}
		stars = append(stars, star)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating homestars: %w", err)
	}
	return stars, nil
}

func (s *Storage) RemoveHomestar(ctx context.Context, planetID, starID model.PlanetID) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM homestars WHERE planet_id = $1 AND star_id = $2
	`, int64(planetID), int64(starID))
	if err != nil {
		return fmt.Errorf("deleting homestar link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrHomestarNotFound
	}
	return nil
}

// Password reset operations

func (s *Storage) CreatePasswordReset(ctx context.Context, reset *model.PasswordReset) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO password_resets (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, reset.TokenHash, int64(reset.UserID), reset.ExpiresAt).Scan(&reset.CreatedAt)
	if violatesForeignKey(err) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("inserting password reset: %w", err)
	}
	return nil
}

func (s *Storage) GetPasswordReset(ctx context.Context, tokenHash string) (*model.PasswordReset, error) {
	var (
		reset  model.PasswordReset
		userID int64
	)
	err := s.db.QueryRow(ctx, `
		SELECT token_hash, user_id, expires_at, created_at
		FROM password_resets
		WHERE token_hash = $1
	`, tokenHash).Scan(&reset.TokenHash, &userID, &reset.ExpiresAt, &reset.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrResetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting password reset: %w", err)
	}
	reset.UserID = model.UserID(userID)
	return &reset, nil
}

func (s *Storage) CompletePasswordReset(ctx context.Context, id model.UserID, passwordHash string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	tag, err := tx.Exec(ctx, `
		UPDATE users SET password_hash = $2 WHERE id = $1
	`, int64(id), passwordHash)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM password_resets WHERE user_id = $1
	`, int64(id)); err != nil {
		return fmt.Errorf("burning reset tokens: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reset transaction: %w", err)
	}
	return nil
}

// Scan helpers

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		user   model.User
		homeID *int64
	)
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&homeID,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if homeID != nil {
		pid := model.PlanetID(*homeID)
		user.HomePlanetID = &pid
	}
	return &user, nil
}

func scanPlanet(row pgx.Row) (*model.Planet, error) {
	planet, err := scanPlanetValues(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPlanetNotFound
	}
	return planet, err
}

func scanPlanetValues(row pgx.Row) (*model.Planet, error) {
	var (
		planet       model.Planet
		discoveredBy *int64
	)
	err := row.Scan(
		&planet.ID,
		&planet.Name,
		&planet.Class,
		&planet.Mass,
		&planet.Radius,
		&planet.Distance,
		&discoveredBy,
		&planet.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning planet: %w", err)
	}
	if discoveredBy != nil {
		uid := model.UserID(*discoveredBy)
		planet.DiscoveredBy = &uid
	}
	return &planet, nil
}

func planetIDValue(id *model.PlanetID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func userIDValue(id *model.UserID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
