package repos

import (
	"gorm.io/gorm"

	"github.com/petuhovskiy/soundpool/internal/models"
)

type SplashRepo struct {
	db *gorm.DB
}

func NewSplashRepo(db *gorm.DB) *SplashRepo {
	return &SplashRepo{
		db: db,
	}
}

// Save splash to the database.
func (r *SplashRepo) Save(splash *models.Splash) error {
	return r.db.Save(splash).Error
}

// FetchLast returns the latest splashes of the pool, newest first.
func (r *SplashRepo) FetchLast(pool string, limit int) ([]models.Splash, error) {
	return r.Find(limit, FilterByPool(pool))
}

// Find returns the latest splashes matching all filters, newest first.
func (r *SplashRepo) Find(limit int, filters ...Filter) ([]models.Splash, error) {
	query := r.db.Model(&models.Splash{})
	for _, f := range filters {
		query = f.Apply(query)
	}

	var splashes []models.Splash
	err := query.
		Order("id DESC").
		Limit(limit).
		Find(&splashes).
		Error

	return splashes, err
}
