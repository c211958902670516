package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	role := user.Role
	if role == "" {
		role = RoleMember
	}
	query := `INSERT INTO users (uid, email, display_name, role, password_hash)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Email,
		user.DisplayName,
		role,
		user.PasswordHash,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, email, display_name, role, password_hash FROM users WHERE id = $1`
	return u.scanOne(u.db.QueryRow(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, email, display_name, role, password_hash FROM users WHERE uid = $1`
	return u.scanOne(u.db.QueryRow(ctx, query, uid))
}

func (u *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, uid, email, display_name, role, password_hash FROM users WHERE lower(email) = lower($1)`
	return u.scanOne(u.db.QueryRow(ctx, query, email))
}

func (u *UserRepoImpl) scanOne(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.Id, &user.Uid, &user.Email, &user.DisplayName, &user.Role, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1 WHERE id = $2`
	if _, err := u.db.Exec(ctx, query, user.DisplayName, userId); err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, err
	}
	return u.GetUser(ctx, userId)
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	if _, err := u.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		log.Errorf("failed to delete user: %v", err)
		return err
	}
	return nil
}
