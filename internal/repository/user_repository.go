package repository

import (
	"time"

	"github.com/mrnoori/projecthub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddCollaborator inserts a collaborator edge. The compound unique index on
// (user_id, collaborator_id) makes the insert race-free; on conflict the
// existing edge is fetched and returned unchanged.
func (r *GormUserRepository) AddCollaborator(userID, collaboratorID uint64) (*models.Collaborator, error) {
	edge := models.Collaborator{
		UserID:         userID,
		CollaboratorID: collaboratorID,
		AddedAt:        time.Now(),
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "collaborator_id"}},
			DoNothing: true,
		}).
		Create(&edge).Error
	if err != nil {
		return nil, err
	}

	var existing models.Collaborator
	if err := r.db.
		Where("user_id = ? AND collaborator_id = ?", userID, collaboratorID).
		First(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

// RemoveCollaborator deletes a collaborator edge
func (r *GormUserRepository) RemoveCollaborator(userID, collaboratorID uint64) (int64, error) {
	result := r.db.
		Where("user_id = ? AND collaborator_id = ?", userID, collaboratorID).
		Delete(&models.Collaborator{})
	return result.RowsAffected, result.Error
}

// ListCollaborators lists the collaborator edges owned by a user
func (r *GormUserRepository) ListCollaborators(userID uint64) ([]models.Collaborator, error) {
	var edges []models.Collaborator
	if err := r.db.Preload("Collaborator").
		Where("user_id = ?", userID).
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// ListOwnersFor lists the IDs of users who have added the given user as a collaborator
func (r *GormUserRepository) ListOwnersFor(collaboratorID uint64) ([]uint64, error) {
	var ownerIDs []uint64
	if err := r.db.Model(&models.Collaborator{}).
		Where("collaborator_id = ?", collaboratorID).
		Pluck("user_id", &ownerIDs).Error; err != nil {
		return nil, err
	}
	return ownerIDs, nil
}
