package jsonfile

import (
	"context"
	"strings"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/SscSPs/valutatrade_hub/internal/models"
	"github.com/SscSPs/valutatrade_hub/internal/utils/mapping"
)

// FileUserRepository stores users as a JSON array.
type FileUserRepository struct {
	file *jsonFile
}

func newFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{file: newJSONFile(path)}
}

var _ portsrepo.UserRepositoryFacade = (*FileUserRepository)(nil)

func (r *FileUserRepository) load() ([]models.User, error) {
	var users []models.User
	if err := r.file.read(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUser appends user. Usernames are unique case-insensitively.
func (r *FileUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, user.Username) {
			return apperrors.ErrDuplicate
		}
		if u.UserID == user.UserID {
			return apperrors.ErrDuplicate
		}
	}
	users = append(users, mapping.ToModelUser(user))
	return r.file.write(users)
}

func (r *FileUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.find(func(u models.User) bool { return u.UserID == userID })
}

func (r *FileUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *FileUserRepository) find(match func(models.User) bool) (*domain.User, error) {
	r.file.mu.Lock()
	users, err := r.load()
	r.file.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if match(u) {
			d := mapping.ToDomainUser(u)
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
