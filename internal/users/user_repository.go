package users

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"assethub/internal/repository"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	r *repository.Repository
}

func NewUserRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{r: r}
}

func (r *UserRepository) GetUser(id int) (*models.User, error) {
	query := r.r.GoquDBWrapper.From("users").Where(goqu.Ex{"id": id})

	var user models.User
	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) GetUsers(organizationID int) ([]models.User, error) {
	query := r.r.GoquDBWrapper.From("users").Order(goqu.I("id").Asc())
	if organizationID != 0 {
		query = query.Where(goqu.Ex{"organization_id": organizationID})
	}

	var users []models.User
	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return users, nil
}

// Emails are stored lowercased so the unique constraint and the login
// lookup are case-insensitive.
func userRecord(user *models.User) goqu.Record {
	return goqu.Record{
		"name":            user.Name,
		"email":           strings.ToLower(user.Email),
		"role":            user.Role,
		"organization_id": user.OrganizationID,
		"employee_id":     user.EmployeeID,
		"department":      user.Department,
		"position":        user.Position,
	}
}

func (r *UserRepository) Create(user *models.User) error {
	row := userRecord(user)
	row["password_hash"] = user.PasswordHash

	query := r.r.GoquDBWrapper.Insert("users").Rows(row).Returning("id")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate email for user", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert user record: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(id int, user *models.User) error {
	row := userRecord(user)
	row["updated_at"] = time.Now()
	if user.PasswordHash != "" {
		row["password_hash"] = user.PasswordHash
	}

	query := r.r.GoquDBWrapper.Update("users").Set(row).Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate email for user", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update user record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(id int) error {
	query := r.r.GoquDBWrapper.Delete("users").Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("User", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete user record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
