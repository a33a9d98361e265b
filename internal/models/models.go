// package models defines the data model for the pack authoring service
package models

import (
	"time"
)

// Entity defines the base interface for all persistent models in the authoring service.
// Implementations include Pack, Song, and AlbumSeries.
type Entity interface {
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Entity] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Timestamps holds creation, update, and soft-delete times shared by all entities.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
